package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/amiralimaroufi/cppiler/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	grammar *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <test file path>|<test directory path>",
		Short:   "Check the derivations pinned by test cases",
		Example: `  cppiler test testdata`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	testFlags.grammar = cmd.Flags().String("grammar", "", "compiled grammar file path (default the built-in grammar)")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	cg, err := readCompiledGrammar(*testFlags.grammar)
	if err != nil {
		return fmt.Errorf("Cannot read a compiled grammar: %w", err)
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[0])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Grammar: cg,
		Cases:   cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
