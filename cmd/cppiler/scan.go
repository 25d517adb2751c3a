package main

import (
	"fmt"

	"github.com/amiralimaroufi/cppiler/diag"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var scanFlags = struct {
	lexer *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "scan [source file path]",
		Short:   "Tokenize a source file and print its token table",
		Example: `  cppiler scan --lexer lexmachine main.cpp`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runScan,
	}
	scanFlags.lexer = cmd.Flags().String("lexer", lexerMaleeni, "scanner backend (maleeni or lexmachine)")
	rootCmd.AddCommand(cmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	toks, err := readSource(path, *scanFlags.lexer)
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("Tokens")
	data := pterm.TableData{{"Line", "Kind", "Lexeme"}}
	for _, tok := range toks {
		data = append(data, []string{fmt.Sprint(tok.Line), tok.Kind.String(), tok.Lexeme})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Token table")
	rows, err := diag.BuildTokenTable(toks).Rows()
	if err != nil {
		return err
	}
	data = append(pterm.TableData{{"Key", "Kind", "Value"}}, rows...)
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	printAssignmentWarnings(toks)
	return nil
}
