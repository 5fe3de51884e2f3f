package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "serve":
		return runServe(args[1:])
	case "translate":
		return runTranslate(args[1:])
	case "languages":
		return runLanguages(args[1:])
	case "cleanup":
		return runCleanup(args[1:])
	case "export":
		return runExport(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "lughat CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lughat <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  serve      Start the translation web server")
	fmt.Fprintln(os.Stderr, "  translate  Translate a snippet of text from the command line")
	fmt.Fprintln(os.Stderr, "  languages  List languages the configured provider supports")
	fmt.Fprintln(os.Stderr, "  cleanup    Drop history entries past the retention window")
	fmt.Fprintln(os.Stderr, "  export     Render text to a PDF or DOCX file")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"lughat <command> -h\" for command-specific flags.")
}
