// ABOUTME: Entry point for the a365 CLI
// ABOUTME: Employee self-service client for the A365 HR platform

package main

import (
	"fmt"
	"os"

	"github.com/Nirvasoft/A365SS/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
