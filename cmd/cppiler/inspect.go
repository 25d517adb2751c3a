package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amiralimaroufi/cppiler/driver"
	"github.com/amiralimaroufi/cppiler/grammar"
	"github.com/amiralimaroufi/cppiler/lang/minicpp"
	"github.com/amiralimaroufi/cppiler/scanner"
	spec "github.com/amiralimaroufi/cppiler/spec/grammar"
	"github.com/amiralimaroufi/cppiler/token"
	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var inspectFlags = struct {
	lexer *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "inspect [source file path]",
		Short: "Explore the grammar and a parse interactively",
		Long: `inspect starts a prompt that accepts these commands:
  first <symbol>               FIRST set of a symbol
  follow <non-terminal>        FOLLOW set of a non-terminal
  lookup <non-terminal> <term> table entry
  parse <non-terminal> <src>   parse src starting at the non-terminal
  trace                        derivation of the last parse
  tree                         parse tree of the last parse
  def <identifier>             line of the first definition
  quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInspect,
	}
	inspectFlags.lexer = cmd.Flags().String("lexer", lexerMaleeni, "scanner backend (maleeni or lexmachine)")
	rootCmd.AddCommand(cmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	intp, err := newInspector(os.Stdout)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		toks, err := readSource(args[0], *inspectFlags.lexer)
		if err != nil {
			return err
		}
		err = intp.parse(intp.gram.NonTerminal(intp.gram.StartSymbol()), toks)
		if err != nil {
			return err
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: "cppiler> ",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("first"),
			readline.PcItem("follow"),
			readline.PcItem("lookup"),
			readline.PcItem("parse"),
			readline.PcItem("trace"),
			readline.PcItem("tree"),
			readline.PcItem("def"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("Quit with quit or <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	return nil
}

type inspector struct {
	out    io.Writer
	gram   driver.Grammar
	report *spec.Report
	sets   map[string]*spec.NonTerminal
	terms  map[int]string
	trace  *driver.Trace
	tree   *driver.Node
}

func newInspector(out io.Writer) (*inspector, error) {
	g, err := minicpp.Grammar()
	if err != nil {
		return nil, err
	}
	cgram, report, err := grammar.Compile(g, grammar.EnableReporting())
	if err != nil {
		return nil, err
	}
	intp := &inspector{
		out:    out,
		gram:   driver.NewGrammar(cgram),
		report: report,
		sets:   map[string]*spec.NonTerminal{},
		terms:  map[int]string{},
	}
	for _, nt := range report.NonTerminals {
		intp.sets[nt.Name] = nt
	}
	for _, t := range report.Terminals {
		intp.terms[t.Number] = t.Name
	}
	return intp, nil
}

var errNoParse = errors.New("nothing has been parsed yet")

func (intp *inspector) eval(line string) (bool, error) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	tracer().Debugf("inspect: %v %v", cmd, args)

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "first":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: first <symbol>")
		}
		return false, intp.first(args[0])
	case "follow":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: follow <non-terminal>")
		}
		nt, ok := intp.sets[args[0]]
		if !ok {
			return false, fmt.Errorf("unknown non-terminal: %v", args[0])
		}
		fmt.Fprintf(intp.out, "FOLLOW(%v) = {%v}\n", nt.Name, intp.names(nt.Follow))
		return false, nil
	case "lookup":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: lookup <non-terminal> <terminal>")
		}
		return false, intp.lookup(args[0], args[1])
	case "parse":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: parse <non-terminal> <source>")
		}
		src := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(strings.TrimPrefix(line, cmd)), args[0]))
		toks, err := scanner.Scan(strings.NewReader(src), scanner.SourceName("prompt"))
		if err != nil {
			return false, err
		}
		err = intp.parse(args[0], toks)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(intp.out, "parsed %v tokens in %v steps\n", len(toks), len(intp.trace.Steps))
		return false, nil
	case "trace":
		if intp.trace == nil {
			return false, errNoParse
		}
		for i, l := range intp.trace.Lines() {
			fmt.Fprintf(intp.out, "%3v  %v\n", i+1, l)
		}
		return false, nil
	case "tree":
		if intp.tree == nil {
			return false, errNoParse
		}
		driver.PrintTree(intp.out, intp.tree)
		return false, nil
	case "def":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: def <identifier>")
		}
		if intp.tree == nil {
			return false, errNoParse
		}
		line, ok := driver.FindFirstDefinition(intp.tree, args[0])
		if !ok {
			fmt.Fprintf(intp.out, "'%v' is not defined\n", args[0])
			return false, nil
		}
		fmt.Fprintf(intp.out, "First definition of '%v' at line %v\n", args[0], line)
		return false, nil
	}
	return false, fmt.Errorf("unknown command: %v", cmd)
}

func (intp *inspector) first(name string) error {
	if nt, ok := intp.sets[name]; ok {
		names := intp.names(nt.First)
		if nt.FirstEmpty {
			names = strings.TrimSpace(names + " " + grammar.Epsilon)
		}
		fmt.Fprintf(intp.out, "FIRST(%v) = {%v}\n", name, names)
		return nil
	}
	if _, ok := intp.gram.ToTerminal(name); ok {
		fmt.Fprintf(intp.out, "FIRST(%v) = {%v}\n", name, name)
		return nil
	}
	return fmt.Errorf("unknown symbol: %v", name)
}

func (intp *inspector) lookup(nonTerm, term string) error {
	nt, ok := intp.gram.ToNonTerminal(nonTerm)
	if !ok {
		return fmt.Errorf("unknown non-terminal: %v", nonTerm)
	}
	t, ok := intp.gram.ToTerminal(term)
	if !ok {
		return fmt.Errorf("unknown terminal: %v", term)
	}
	prod := intp.gram.Lookup(nt, t)
	if prod == spec.ProductionNil {
		fmt.Fprintf(intp.out, "M[%v, %v] = (no production)\n", nonTerm, term)
		return nil
	}
	fmt.Fprintf(intp.out, "M[%v, %v] = %v\n", nonTerm, term, driver.FormatProduction(intp.gram, prod))
	return nil
}

func (intp *inspector) parse(start string, toks []*token.Token) error {
	p, err := driver.NewParser(intp.gram, driver.StartSymbol(start))
	if err != nil {
		return err
	}
	trace, err := p.Parse(toks)
	if err != nil {
		return err
	}
	tree, err := driver.BuildTree(intp.gram, trace, toks)
	if err != nil {
		return err
	}
	intp.trace = trace
	intp.tree = tree
	return nil
}

func (intp *inspector) names(nums []int) string {
	names := make([]string, 0, len(nums))
	for _, num := range nums {
		names = append(names, intp.terms[num])
	}
	return strings.Join(names, " ")
}
