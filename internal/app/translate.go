package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"lughat.dev/lughat/internal/cli"
	"lughat.dev/lughat/internal/language"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	from := fs.String("from", language.Auto, "Source language code (auto to detect)")
	to := fs.String("to", "", "Target language code (required)")
	timeout := fs.Duration("timeout", 60*time.Second, "Overall operation timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: lughat translate --to <lang> [--from <lang>] <text>")
		return 2
	}
	if strings.TrimSpace(*to) == "" {
		fmt.Fprintln(os.Stderr, "--to is required")
		return 2
	}

	_, _, svc, err := bootstrap(envLoader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	translated, err := svc.TranslateText(ctx, text, *from, *to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		return 1
	}

	fmt.Println(translated)
	return 0
}
