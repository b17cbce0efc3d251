// ABOUTME: Entry point for the studyportal CLI
// ABOUTME: Terminal client for the Steady Study tutoring portal

package main

import (
	"fmt"
	"os"

	"github.com/steadystudy/studyportal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
