package main

import (
	"fmt"
	"os"

	"github.com/zoonderkins/claude-confirm/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "claude-confirm: %v\n", err)
		os.Exit(1)
	}
}
