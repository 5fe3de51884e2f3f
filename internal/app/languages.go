package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"lughat.dev/lughat/internal/cli"
)

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Overall operation timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	_, _, svc, err := bootstrap(envLoader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	languages, err := svc.Languages(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list languages: %v\n", err)
		return 1
	}

	for _, lang := range languages {
		fmt.Printf("%-8s %s\n", lang.Code, lang.Name)
	}
	return 0
}
