// Package main provides the cascade CLI.
package main

import (
	"errors"
	"fmt"
	"os"
)

// errFailed makes the process exit 1 without printing anything further.
var errFailed = errors.New("failed")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
