package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/codetrackr/leetcode-profile-client/cmd/leetfetch/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	commands.ExecuteContext(ctx)
}
