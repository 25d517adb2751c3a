package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/amiralimaroufi/cppiler/grammar"
	"github.com/amiralimaroufi/cppiler/lang/minicpp"
	spec "github.com/amiralimaroufi/cppiler/spec/grammar"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output      *string
	report      *string
	compression *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile the built-in grammar into a portable parsing table",
		Example: `  cppiler compile -o minicpp.json --report minicpp-report.json`,
		Args:    cobra.NoArgs,
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.report = cmd.Flags().String("report", "", "write a report to this path")
	compileFlags.compression = cmd.Flags().Int("compression", spec.CompressionLevelMax, "table compression level (0, 1 or 2)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	g, err := minicpp.Grammar()
	if err != nil {
		return err
	}
	cgram, report, err := grammar.Compile(g, grammar.Compression(*compileFlags.compression), grammar.EnableReporting())
	if err != nil {
		return err
	}

	err = writeJSON(cgram, *compileFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write the compiled grammar: %w", err)
	}
	if *compileFlags.report != "" {
		err = writeJSON(report, *compileFlags.report)
		if err != nil {
			return fmt.Errorf("Cannot write the report: %w", err)
		}
	}

	if len(report.Overwrites) > 0 {
		fmt.Fprintf(os.Stderr, "%v table cells were overwritten\n", len(report.Overwrites))
	}
	return nil
}

func writeJSON(v interface{}, path string) error {
	out, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, string(out))
	return err
}
