package main

import (
	"os"

	"hleval/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
