package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/codetrackr/leetcode-profile-client/pkg/api"
	"github.com/codetrackr/leetcode-profile-client/pkg/batch"
	"github.com/codetrackr/leetcode-profile-client/pkg/chart"
	"github.com/codetrackr/leetcode-profile-client/pkg/export"
	"github.com/codetrackr/leetcode-profile-client/pkg/profile"
)

var (
	inputFile    string
	outputFormat string
	outputPath   string
	chartPath    string
	topCount     int
	concurrency  int
	timeoutSec   int
	batchTimeout int
)

func init() {
	fetchCmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read usernames from a file, one per line.")
	fetchCmd.Flags().StringVarP(&outputFormat, "format", "o", "table", "Output format: table, csv, or json.")
	fetchCmd.Flags().StringVar(&outputPath, "output", "", "Write output to a file instead of stdout.")
	fetchCmd.Flags().StringVar(&chartPath, "chart", "", "Write a PNG bar chart of problems solved to this path.")
	fetchCmd.Flags().IntVar(&topCount, "top", 5, "Print top-N rankings after the table (0 disables).")
	fetchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Max parallel fetches (overrides config).")
	fetchCmd.Flags().IntVar(&timeoutSec, "timeout", 0, "Per-username timeout in seconds (overrides config).")
	fetchCmd.Flags().IntVar(&batchTimeout, "batch-timeout", 0, "Whole-batch timeout in seconds (overrides config).")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [usernames | comma-separated list]",
	Short: "Fetches profile statistics for up to 100 usernames.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatal("failed to load config", err, 2)
		}
		if concurrency > 0 {
			cfg.MaxConcurrency = concurrency
		}
		if timeoutSec > 0 {
			cfg.RequestTimeoutSeconds = timeoutSec
		}
		if batchTimeout > 0 {
			cfg.BatchTimeoutSeconds = batchTimeout
		}

		usernames, err := readUsernames(inputFile, args)
		if err != nil {
			fatal("failed to read usernames", err, 2)
		}

		apiCfg := api.DefaultConfig()
		apiCfg.BaseURL = cfg.BaseURL
		apiCfg.UserAgent = cfg.UserAgent
		apiCfg.Timeout = cfg.RequestTimeout()
		client, err := api.New(apiCfg)
		if err != nil {
			fatal("failed to create API client", err, 2)
		}

		fetcher := batch.NewFetcher(client, batch.Config{
			MaxConcurrency: cfg.MaxConcurrency,
			Timeout:        cfg.RequestTimeout(),
			BatchTimeout:   cfg.BatchTimeout(),
		})

		result, err := fetcher.Fetch(cmd.Context(), usernames)
		if err != nil {
			fatal("invalid username list", err, 2)
		}

		out, closeOut, err := openOutput(outputPath)
		if err != nil {
			fatal("failed to open output", err, 2)
		}

		switch outputFormat {
		case "table":
			export.WriteTable(out, result)
			if topCount > 0 {
				export.WriteRankings(out, result, topCount)
			}
		case "csv":
			err = export.WriteCSV(out, result)
		case "json":
			err = export.WriteJSON(out, result)
		default:
			closeOut()
			fatal("unknown output format", fmt.Errorf("%q (want table, csv, or json)", outputFormat), 2)
		}
		closeOut()
		if err != nil {
			fatal("failed to write output", err, 1)
		}

		if chartPath != "" {
			switch err := writeChart(chartPath, result); {
			case errors.Is(err, chart.ErrNoData):
				log.Warn().Msg("No successful records; chart skipped")
			case err != nil:
				fatal("failed to write chart", err, 1)
			default:
				log.Info().Str("path", chartPath).Msg("Chart written")
			}
		}

		if result.AllFailed() {
			log.Warn().
				Int("usernames", len(result)).
				Msg("Every fetch failed; the API may be unreachable")
			os.Exit(1)
		}
	},
}

func writeChart(path string, result profile.BatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return chart.Render(f, result)
}

// openOutput returns stdout or the requested file.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func fatal(msg string, err error, code int) {
	log.Error().Err(err).Msg(msg)
	os.Exit(code)
}
