package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"lughat.dev/lughat/internal/cli"
)

func runExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	format := fs.String("format", "pdf", "Output format: pdf or docx")
	in := fs.String("in", "", "Input text file (defaults to args, then stdin)")
	out := fs.String("out", "", "Output file path (required)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if strings.TrimSpace(*out) == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		return 2
	}

	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(*in) != "" {
		data, err := os.ReadFile(*in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *in, err)
			return 1
		}
		text = string(data)
	} else if strings.TrimSpace(text) == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read stdin: %v\n", err)
			return 1
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "usage: lughat export --format pdf|docx --out <path> [--in <file> | text]")
		return 2
	}

	_, _, svc, err := bootstrap(envLoader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}

	var rendered []byte
	switch strings.ToLower(strings.TrimSpace(*format)) {
	case "pdf":
		rendered, err = svc.ExportPDF(text)
	case "docx":
		rendered, err = svc.ExportDOCX(text)
	default:
		fmt.Fprintf(os.Stderr, "unknown format: %s\n", *format)
		return 2
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		return 1
	}

	if err := os.WriteFile(*out, rendered, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *out, err)
		return 1
	}

	fmt.Printf("Wrote %s (%d bytes)\n", *out, len(rendered))
	return 0
}
