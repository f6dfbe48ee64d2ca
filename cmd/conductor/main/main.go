package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/conductor/cmd/conductor"
	"github.com/arthur-debert/conductor/pkg/style"
)

func main() {
	rootCmd := conductor.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}
}
