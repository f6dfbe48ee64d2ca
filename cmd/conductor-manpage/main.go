package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/conductor/cmd/conductor"
	"github.com/arthur-debert/conductor/internal/version"
)

func main() {
	header := &doc.GenManHeader{
		Title:   "CONDUCTOR",
		Section: "1",
		Source:  "conductor " + version.Version,
		Manual:  "conductor manual",
	}

	if err := doc.GenMan(conductor.NewRootCmd(), header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
