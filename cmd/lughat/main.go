package main

import (
	"os"

	"lughat.dev/lughat/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
