// Package main provides the entry point for toolgate.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/safedep/toolgate/cli"
)

func main() {
	err := cli.Execute()
	if err == nil {
		return
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Message(); msg != "" {
			fmt.Fprintln(os.Stderr, strings.TrimRight(msg, "\n"))
		}
		os.Exit(exitErr.ExitCode())
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(cli.ExitGeneral)
}
