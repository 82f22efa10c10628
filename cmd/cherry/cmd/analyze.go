package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cherrygraph/cherry/analysis"
	"github.com/cherrygraph/cherry/callgraph"
	"github.com/cherrygraph/cherry/export"
	"github.com/cherrygraph/cherry/internal/config"
	"github.com/cherrygraph/cherry/internal/diagnostic"
)

var (
	algorithmFlag string
	entryFlag     []string
	includeFlag   []string
	excludeFlag   []string
	excludeJDK    bool
	formatFlag    string
	saveDefaults  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Build a call graph over compiled class files",
	Long: `Walk the given paths (directories, jars, or loose .class files),
load every class file found, build the type hierarchy, resolve entry
points, and run CHA or RTA to produce a call graph.

Examples:
  cherry analyze ./classes
  cherry analyze app.jar --algorithm RTA --entry com.example.Main.main
  cherry analyze app.jar --include com.example --exclude-jdk --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&algorithmFlag, "algorithm", "CHA", "dispatch algorithm: CHA or RTA")
	analyzeCmd.Flags().StringSliceVar(&entryFlag, "entry", nil, "entry-point spec(s); default mode discovers public static main methods")
	analyzeCmd.Flags().StringSliceVar(&includeFlag, "include", nil, "fqn-prefix include filter")
	analyzeCmd.Flags().StringSliceVar(&excludeFlag, "exclude", nil, "fqn-prefix exclude filter")
	analyzeCmd.Flags().BoolVar(&excludeJDK, "exclude-jdk", false, "exclude built-in JDK prefixes")
	analyzeCmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text, csv, json, or dot")
	analyzeCmd.Flags().BoolVar(&saveDefaults, "save-defaults", false, "persist these flags as defaults for this checkout (.cherry.yaml)")
}

func runAnalyze(cc *cobra.Command, args []string) error {
	verbose, _ := cc.Flags().GetBool("verbose")

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cherry: %w", err)
	}
	if defaults, ok, err := config.Load(wd); err == nil && ok {
		applyDefaults(cc, defaults)
	}

	algorithm := callgraph.Algorithm(strings.ToUpper(algorithmFlag))
	if algorithm != callgraph.CHA && algorithm != callgraph.RTA {
		return fmt.Errorf("cherry: unknown algorithm %q, want CHA or RTA", algorithmFlag)
	}

	cfg := analysis.Config{
		Paths:           args,
		Algorithm:       algorithm,
		EntrySpecs:      entryFlag,
		IncludePrefixes: includeFlag,
		ExcludePrefixes: excludeFlag,
		ExcludeJDK:      excludeJDK,
		Verbose:         verbose,
	}

	if saveDefaults {
		if err := config.Save(wd, config.Config{
			Algorithm:       string(algorithm),
			IncludePrefixes: includeFlag,
			ExcludePrefixes: excludeFlag,
			ExcludeJDK:      excludeJDK,
			Format:          formatFlag,
		}); err != nil {
			return fmt.Errorf("cherry: saving defaults: %w", err)
		}
	}

	facade := analysis.NewFacade(diagnostic.NewStderr(verbose))
	res, err := facade.Analyze(cc.Context(), cfg)
	if err != nil {
		var analysisErr *analysis.Error
		if errors.As(err, &analysisErr) {
			exitWithError("%s", analysisErr.Error())
		}
		return err
	}

	encoder, err := export.New(export.Format(formatFlag))
	if err != nil {
		return fmt.Errorf("cherry: %w", err)
	}
	if jsonEncoder, ok := encoder.(export.JSONEncoder); ok {
		jsonEncoder.Verbose = verbose
		encoder = jsonEncoder
	}

	return encoder.Encode(os.Stdout, res)
}

// applyDefaults fills flags the user did not explicitly set on the
// command line from a persisted .cherry.yaml, mirroring the precedence
// an explicit flag always has over a stored default.
func applyDefaults(cc *cobra.Command, defaults config.Config) {
	if !cc.Flags().Changed("algorithm") && defaults.Algorithm != "" {
		algorithmFlag = defaults.Algorithm
	}
	if !cc.Flags().Changed("include") && len(defaults.IncludePrefixes) > 0 {
		includeFlag = defaults.IncludePrefixes
	}
	if !cc.Flags().Changed("exclude") && len(defaults.ExcludePrefixes) > 0 {
		excludeFlag = defaults.ExcludePrefixes
	}
	if !cc.Flags().Changed("exclude-jdk") && defaults.ExcludeJDK {
		excludeJDK = defaults.ExcludeJDK
	}
	if !cc.Flags().Changed("format") && defaults.Format != "" {
		formatFlag = defaults.Format
	}
}
