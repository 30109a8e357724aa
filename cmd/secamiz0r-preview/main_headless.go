//go:build headless

// Package main provides a live preview window for the secamiz0r filter.
//
// This build has no window system; rebuild without the headless tag.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "secamiz0r-preview was built with the headless tag and cannot open a window")
	os.Exit(1)
}
