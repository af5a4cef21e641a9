package main

import (
	"fmt"
	"os"

	"github.com/canopener/canopener/cmd/canopener/cmd"
	"github.com/cockroachdb/errors"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
