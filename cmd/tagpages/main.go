// ABOUTME: Entry point for tagpages CLI application.
// ABOUTME: Initializes and executes the root command.

package main

import (
	"fmt"
	"os"

	"github.com/harper/tagpages/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		os.Exit(1)
	}
}
