// Package cmd is the cobra command tree for the cherry binary: a thin,
// out-of-core collaborator that maps flags onto analysis.Config, invokes
// the Facade, and hands the result to an export.Encoder. It owns no
// analysis semantics of its own.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags; left at dev default otherwise.
	Version = "0.1.0-dev"
)

var rootCmd = &cobra.Command{
	Use:   "cherry",
	Short: "Static call-graph analyzer for compiled JVM class files",
	Long: `cherry builds a call graph over compiled JVM class files using
Class-Hierarchy Analysis (CHA) or Rapid Type Analysis (RTA).

Examples:
  # Analyze a directory of class files, default (main-method) entry points
  cherry analyze ./classes

  # Analyze a jar with RTA, restricting output to one package
  cherry analyze app.jar --algorithm RTA --include com.example

  # Emit a graphviz-renderable call graph
  cherry analyze app.jar --format dot > graph.dot`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose diagnostic logging")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
