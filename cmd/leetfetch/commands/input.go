package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// readUsernames builds the username list from either a file (one name
// per line) or the positional arguments (individual names or a single
// comma-separated string). Blank entries are dropped; size validation
// belongs to the batch fetcher.
func readUsernames(file string, args []string) ([]string, error) {
	if file != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("pass usernames either as arguments or via --file, not both")
		}
		return readUsernameFile(file)
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("no usernames given; pass them as arguments or via --file")
	}

	var usernames []string
	for _, arg := range args {
		for _, name := range strings.Split(arg, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				usernames = append(usernames, name)
			}
		}
	}
	return usernames, nil
}

func readUsernameFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open username file: %w", err)
	}
	defer f.Close()

	var usernames []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			usernames = append(usernames, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read username file: %w", err)
	}
	return usernames, nil
}
