package tester

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amiralimaroufi/cppiler/driver"
	"github.com/amiralimaroufi/cppiler/scanner"
	spec "github.com/amiralimaroufi/cppiler/spec/grammar"
)

// StepDiff is the first step at which the actual derivation leaves the expected one.
// An empty side means that derivation had already ended.
type StepDiff struct {
	Step     int
	Expected string
	Actual   string
}

type TestResult struct {
	TestCasePath string
	Error        error
	Diff         *StepDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if r.Diff == nil {
			return msg
		}
		diffLines := []string{
			fmt.Sprintf("step %v", r.Diff.Step+1),
			fmt.Sprintf("%vexpected: %v", indent1, orEnd(r.Diff.Expected)),
			fmt.Sprintf("%vactual:   %v", indent1, orEnd(r.Diff.Actual)),
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

func orEnd(s string) string {
	if s == "" {
		return "(end of derivation)"
	}
	return s
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

// ListTestCases loads the test case at testPath, or every test case below it when it
// is a directory.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCase(f)
}

type Tester struct {
	Grammar *spec.CompiledGrammar
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	gram := driver.NewGrammar(t.Grammar)
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(gram, c))
	}
	return rs
}

func runTest(gram driver.Grammar, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	toks, err := scanner.Scan(bytes.NewReader(c.TestCase.Source), scanner.SourceName(c.FilePath))
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	p, err := driver.NewParser(gram)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	trace, err := p.Parse(toks)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	// Every passing derivation must also replay into a tree.
	_, err = driver.BuildTree(gram, trace, toks)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	diff := diffDerivation(c.TestCase.Derivation, trace.Lines())
	if diff != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diff:         diff,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func diffDerivation(expected, actual []string) *StepDiff {
	n := len(expected)
	if len(actual) > n {
		n = len(actual)
	}
	for i := 0; i < n; i++ {
		var e, a string
		if i < len(expected) {
			e = expected[i]
		}
		if i < len(actual) {
			a = actual[i]
		}
		if e != a {
			return &StepDiff{
				Step:     i,
				Expected: e,
				Actual:   a,
			}
		}
	}
	return nil
}
