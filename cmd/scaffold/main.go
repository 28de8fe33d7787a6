// Package main provides the scaffold command line tool, which generates a
// TypeScript backend from a declarative template.
//
// Usage:
//
//	scaffold generate template.yaml            # Generate into the current directory
//	scaffold generate template.yaml ./server   # Generate into ./server
//	scaffold generate template.yaml -w         # Regenerate whenever the template changes
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// options holds the global flags.
type options struct {
	verbose bool
	stderr  io.Writer
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	opts := &options{stderr: stderr}
	rootCmd := &cobra.Command{
		Use:           "scaffold",
		Short:         "Generate a backend from a template",
		Long:          `Scaffold reads a YAML or JSON template describing runtimes, storage backends and tables, and writes a TypeScript backend implementing it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every written file")
	rootCmd.AddCommand(generateCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
