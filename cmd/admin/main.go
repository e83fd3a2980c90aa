package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/resumebook/internal/logging"
	"github.com/dmitrijs2005/resumebook/internal/server/admin"
	"github.com/dmitrijs2005/resumebook/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(logging.FormatText, cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := admin.Run(ctx, cfg, subcommand(os.Args[1:]), os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, admin.ErrUsage) {
			fmt.Fprintln(os.Stderr, admin.Usage)
		}
		os.Exit(1)
	}
}

// subcommand drops leading server flags so args[0] is the command name.
func subcommand(args []string) []string {
	for i, a := range args {
		if a == "token" || a == "import" || a == "help" {
			return args[i:]
		}
	}
	return nil
}
