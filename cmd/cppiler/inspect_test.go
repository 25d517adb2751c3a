package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestInspector_Eval(t *testing.T) {
	tests := []struct {
		caption string
		lines   []string
		output  string
		error   bool
	}{
		{
			caption: "FIRST of a non-terminal",
			lines:   []string{"first Start"},
			output:  "FIRST(Start) = {#include using int}\n",
		},
		{
			caption: "FIRST of a nullable non-terminal carries ε",
			lines:   []string{"first S"},
			output:  "FIRST(S) = {#include ε}\n",
		},
		{
			caption: "FIRST of a terminal is the terminal",
			lines:   []string{"first while"},
			output:  "FIRST(while) = {while}\n",
		},
		{
			caption: "FOLLOW of the start symbol",
			lines:   []string{"follow Start"},
			output:  "FOLLOW(Start) = {$}\n",
		},
		{
			caption: "a table entry",
			lines:   []string{"lookup P ;"},
			output:  "M[P, ;] = P → ε\n",
		},
		{
			caption: "an empty table entry",
			lines:   []string{"lookup M while"},
			output:  "M[M, while] = (no production)\n",
		},
		{
			caption: "parse a snippet and look up a definition",
			lines:   []string{"parse Id int a = 1, b;", "def b", "def c"},
			output: "parsed 7 tokens in 8 steps\n" +
				"First definition of 'b' at line 1\n" +
				"'c' is not defined\n",
		},
		{
			caption: "the trace of the last parse",
			lines:   []string{"parse Output cout << x;", "trace"},
			output: "parsed 4 tokens in 3 steps\n" +
				"  1  Output → cout << C H ;\n" +
				"  2  C → identifier\n" +
				"  3  H → ε\n",
		},
		{
			caption: "an unknown command",
			lines:   []string{"frist S"},
			error:   true,
		},
		{
			caption: "an unknown non-terminal",
			lines:   []string{"follow X"},
			error:   true,
		},
		{
			caption: "a syntax error",
			lines:   []string{"parse Id int a = 1"},
			error:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			var out bytes.Buffer
			intp, err := newInspector(&out)
			if err != nil {
				t.Fatal(err)
			}
			var lastErr error
			for _, line := range tt.lines {
				quit, err := intp.eval(line)
				if quit {
					t.Fatalf("%v must not quit", line)
				}
				lastErr = err
			}
			if tt.error {
				if lastErr == nil {
					t.Fatal("expected error didn't occur")
				}
				return
			}
			if lastErr != nil {
				t.Fatal(lastErr)
			}
			if out.String() != tt.output {
				t.Fatalf("unexpected output; want:\n%v\ngot:\n%v", tt.output, out.String())
			}
		})
	}
}

func TestInspector_NothingParsed(t *testing.T) {
	intp, err := newInspector(&strings.Builder{})
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"trace", "tree", "def a"} {
		_, err := intp.eval(line)
		if !errors.Is(err, errNoParse) {
			t.Fatalf("%v: unexpected error: %v", line, err)
		}
	}
	quit, err := intp.eval("quit")
	if err != nil || !quit {
		t.Fatalf("quit must end the session; quit: %v, err: %v", quit, err)
	}
}
