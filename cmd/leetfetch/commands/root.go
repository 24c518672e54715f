// Package commands implements the leetfetch CLI.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codetrackr/leetcode-profile-client/internal/config"
	"github.com/codetrackr/leetcode-profile-client/pkg/logging"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "leetfetch",
	Short: "leetfetch retrieves public LeetCode profile statistics for a batch of usernames.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logging.Setup(logging.Config{
			Level:  logging.LogLevel(cfg.LogLevel),
			Pretty: true,
			Output: os.Stderr,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error.")
}

// loadConfig resolves the effective configuration: file, env, then
// command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// ExecuteContext runs the CLI and exits non-zero on command errors.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
