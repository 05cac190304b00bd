// Package main is the entry point for the tablepad CLI application.
// It uploads CSV files to a tablepad backend, runs SQL over them and shows the results.
package main

import (
	"tablepad/cli/cmd"
)

// main is the entry point for the tablepad CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
