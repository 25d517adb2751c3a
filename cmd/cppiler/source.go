package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/amiralimaroufi/cppiler/driver"
	"github.com/amiralimaroufi/cppiler/lang/minicpp"
	"github.com/amiralimaroufi/cppiler/scanner"
	"github.com/amiralimaroufi/cppiler/scanner/lexmach"
	spec "github.com/amiralimaroufi/cppiler/spec/grammar"
	"github.com/amiralimaroufi/cppiler/token"
	"github.com/pterm/pterm"
)

const (
	lexerMaleeni    = "maleeni"
	lexerLexmachine = "lexmachine"
)

// readSource tokenizes the file at path, or stdin when path is empty.
func readSource(path string, lexer string) ([]*token.Token, error) {
	src := io.Reader(os.Stdin)
	name := "stdin"
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot open the source file %s: %w", path, err)
		}
		defer f.Close()
		src = f
		name = path
	}

	switch lexer {
	case "", lexerMaleeni:
		return scanner.Scan(src, scanner.FilePath(path), scanner.SourceName(name))
	case lexerLexmachine:
		s, err := lexmach.NewScanner(src, path)
		if err != nil {
			return nil, err
		}
		return s.Tokens()
	default:
		return nil, fmt.Errorf("unknown lexer: %v (want %v or %v)", lexer, lexerMaleeni, lexerLexmachine)
	}
}

// readCompiledGrammar loads a grammar written by `cppiler compile`, or returns the
// built-in grammar when path is empty.
func readCompiledGrammar(path string) (*spec.CompiledGrammar, error) {
	if path == "" {
		return minicpp.Compile()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the compiled grammar %s: %w", path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	cgram := &spec.CompiledGrammar{}
	err = json.Unmarshal(data, cgram)
	if err != nil {
		return nil, err
	}
	if cgram.Syntactic == nil {
		return nil, fmt.Errorf("%s has no syntactic part", path)
	}
	return cgram, nil
}

func leveledTree(node *driver.Node) pterm.LeveledList {
	var ll pterm.LeveledList
	var visit func(n *driver.Node, level int)
	visit = func(n *driver.Node, level int) {
		text := n.KindName
		if len(n.Children) == 0 && n.Line != 0 {
			text = fmt.Sprintf("%v %q (line %v)", n.KindName, n.Text, n.Line)
		}
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  text,
		})
		for _, c := range n.Children {
			visit(c, level+1)
		}
	}
	visit(node, 0)
	return ll
}

func renderTree(root *driver.Node) error {
	return pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(leveledTree(root))).Render()
}
