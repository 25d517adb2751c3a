package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amiralimaroufi/cppiler/grammar"
	"github.com/amiralimaroufi/cppiler/lang/minicpp"
	spec "github.com/amiralimaroufi/cppiler/spec/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [report file path]",
		Short: "Print FIRST and FOLLOW sets, the parsing table and overwritten cells",
		Example: `  cppiler show
  cppiler show minicpp-report.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	var report *spec.Report
	if len(args) > 0 {
		r, err := readReport(args[0])
		if err != nil {
			return err
		}
		report = r
	} else {
		g, err := minicpp.Grammar()
		if err != nil {
			return err
		}
		_, report, err = grammar.Compile(g, grammar.EnableReporting())
		if err != nil {
			return err
		}
	}
	return writeReport(report)
}

func readReport(path string) (*spec.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the report %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	report := &spec.Report{}
	err = json.Unmarshal(d, report)
	if err != nil {
		return nil, err
	}

	return report, nil
}

type reportNames struct {
	terms    map[int]string
	nonTerms map[int]string
	prods    map[int]*spec.Production
}

func newReportNames(r *spec.Report) *reportNames {
	n := &reportNames{
		terms:    map[int]string{},
		nonTerms: map[int]string{},
		prods:    map[int]*spec.Production{},
	}
	for _, t := range r.Terminals {
		n.terms[t.Number] = t.Name
	}
	for _, nt := range r.NonTerminals {
		n.nonTerms[nt.Number] = nt.Name
	}
	for _, p := range r.Productions {
		n.prods[p.Number] = p
	}
	return n
}

func (n *reportNames) terminals(nums []int) string {
	names := make([]string, 0, len(nums))
	for _, num := range nums {
		names = append(names, n.terms[num])
	}
	return strings.Join(names, " ")
}

func (n *reportNames) production(num int) string {
	p, ok := n.prods[num]
	if !ok {
		return fmt.Sprintf("#%v", num)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", n.nonTerms[p.LHS])
	for _, v := range p.RHS {
		num, terminal := spec.DecodeSymbol(v)
		if terminal {
			fmt.Fprintf(&b, " %v", n.terms[num])
		} else {
			fmt.Fprintf(&b, " %v", n.nonTerms[num])
		}
	}
	return b.String()
}

func writeReport(r *spec.Report) error {
	names := newReportNames(r)

	pterm.DefaultSection.Println("FIRST and FOLLOW")
	sets := pterm.TableData{{"Non-terminal", "FIRST", "FOLLOW"}}
	for _, nt := range r.NonTerminals {
		first := names.terminals(nt.First)
		if nt.FirstEmpty {
			first = strings.TrimSpace(first + " " + grammar.Epsilon)
		}
		sets = append(sets, []string{nt.Name, first, names.terminals(nt.Follow)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(sets).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Productions")
	prods := pterm.TableData{{"#", "Production"}}
	for _, p := range r.Productions {
		prods = append(prods, []string{fmt.Sprint(p.Number), names.production(p.Number)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(prods).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Parsing table")
	cells := pterm.TableData{{"Non-terminal", "Terminal", "Production"}}
	for _, c := range r.Cells {
		cells = append(cells, []string{names.nonTerms[c.NonTerminal], names.terms[c.Terminal], names.production(c.Production)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(cells).Render(); err != nil {
		return err
	}

	if len(r.Overwrites) == 0 {
		pterm.Success.Println("The grammar is LL(1): no cell was written twice")
		return nil
	}
	pterm.DefaultSection.Println("Overwritten cells")
	ows := pterm.TableData{{"Non-terminal", "Terminal", "Previous", "Adopted"}}
	for _, ow := range r.Overwrites {
		ows = append(ows, []string{
			names.nonTerms[ow.NonTerminal],
			names.terms[ow.Terminal],
			names.production(ow.Previous),
			names.production(ow.Adopted),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(ows).Render(); err != nil {
		return err
	}
	pterm.Warning.Printf("%v cells were overwritten; the later production won\n", len(r.Overwrites))
	return nil
}
