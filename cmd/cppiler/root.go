package main

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// Tracing keys of the packages the commands drive.
var traceKeys = []string{
	"cppiler.grammar",
	"cppiler.minicpp",
	"cppiler.scanner",
	"cppiler.driver",
	"cppiler.diag",
	"cppiler.cli",
}

func tracer() tracing.Trace {
	return tracing.Select("cppiler.cli")
}

var rootFlags = struct {
	traceLevel *string
}{}

var rootCmd = &cobra.Command{
	Use:   "cppiler",
	Short: "Analyse and parse a mini C++ dialect with an LL(1) grammar",
	Long: `cppiler provides the following features:
- Computes FIRST and FOLLOW sets and the LL(1) parsing table of the built-in grammar.
- Tokenizes and parses a source file, printing the leftmost derivation and the parse tree.
- Runs golden tests that pin derivations of source files.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := tracing.TraceLevelFromString(*rootFlags.traceLevel)
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
	},
}

func init() {
	rootFlags.traceLevel = rootCmd.PersistentFlags().String("trace-level", "Error", "trace level [Debug|Info|Error]")
}

func Execute() error {
	return rootCmd.Execute()
}
