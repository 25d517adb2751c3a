package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/amiralimaroufi/cppiler/diag"
	"github.com/amiralimaroufi/cppiler/driver"
	"github.com/amiralimaroufi/cppiler/token"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	start   *string
	grammar *string
	lexer   *string
	define  *[]string
	noTree  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse [source file path]",
		Short: "Parse a source file and print its leftmost derivation and parse tree",
		Example: `  cppiler parse main.cpp --define s
  echo 'int a = 1;' | cppiler parse --start Id`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	parseFlags.start = cmd.Flags().String("start", "", "non-terminal to derive from (default the start symbol)")
	parseFlags.grammar = cmd.Flags().String("grammar", "", "compiled grammar file path (default the built-in grammar)")
	parseFlags.lexer = cmd.Flags().String("lexer", lexerMaleeni, "scanner backend (maleeni or lexmachine)")
	parseFlags.define = cmd.Flags().StringSlice("define", nil, "report the line of the first definition of these identifiers")
	parseFlags.noTree = cmd.Flags().Bool("no-tree", false, "print only the derivation")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}

	cgram, err := readCompiledGrammar(*parseFlags.grammar)
	if err != nil {
		return fmt.Errorf("Cannot read a compiled grammar: %w", err)
	}
	gram := driver.NewGrammar(cgram)

	toks, err := readSource(path, *parseFlags.lexer)
	if err != nil {
		return err
	}

	var opts []driver.ParserOption
	if *parseFlags.start != "" {
		opts = append(opts, driver.StartSymbol(*parseFlags.start))
	}
	p, err := driver.NewParser(gram, opts...)
	if err != nil {
		return err
	}
	trace, err := p.Parse(toks)
	if err != nil {
		var synErr *driver.SyntaxError
		if errors.As(err, &synErr) {
			printSyntaxError(synErr)
			return errors.New("Syntax error")
		}
		return err
	}

	pterm.DefaultSection.Println("Derivation")
	for _, line := range trace.Lines() {
		fmt.Fprintln(os.Stdout, line)
	}

	root, err := driver.BuildTree(gram, trace, toks)
	if err != nil {
		return err
	}
	if !*parseFlags.noTree {
		pterm.DefaultSection.Println("Parse tree")
		if err := renderTree(root); err != nil {
			return err
		}
	}

	printAssignmentWarnings(toks)

	for _, name := range *parseFlags.define {
		printDefinition(root, name)
	}
	return nil
}

func printSyntaxError(synErr *driver.SyntaxError) {
	pterm.Error.Println(synErr.Error())
}

func printAssignmentWarnings(toks []*token.Token) {
	for _, w := range diag.CheckAssignments(toks) {
		pterm.Warning.Println(w.String())
	}
}

func printDefinition(root *driver.Node, name string) {
	line, ok := driver.FindFirstDefinition(root, name)
	if !ok {
		pterm.Info.Printf("'%v' is not defined\n", name)
		return
	}
	pterm.Info.Printf("First definition of '%v' at line %v\n", name, line)
}
