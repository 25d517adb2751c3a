package diag

import (
	"fmt"

	"github.com/amiralimaroufi/cppiler/token"
	"github.com/cnf/structhash"
)

// Entry is a distinct (kind, value) pair of the token stream.
type Entry struct {
	Kind  token.Kind
	Value string
}

// TokenTable collects the distinct tokens of a stream in order of first appearance.
type TokenTable struct {
	index   map[Entry]int
	entries []Entry
}

func NewTokenTable() *TokenTable {
	return &TokenTable{
		index: map[Entry]int{},
	}
}

// Add records tok unless an equal (kind, value) pair is already present.
func (tt *TokenTable) Add(tok *token.Token) {
	e := Entry{
		Kind:  tok.Kind,
		Value: tok.Lexeme,
	}
	if _, ok := tt.index[e]; ok {
		return
	}
	tt.index[e] = len(tt.entries)
	tt.entries = append(tt.entries, e)
}

func (tt *TokenTable) Contains(kind token.Kind, value string) bool {
	_, ok := tt.index[Entry{Kind: kind, Value: value}]
	return ok
}

func (tt *TokenTable) Len() int {
	return len(tt.entries)
}

func (tt *TokenTable) Entries() []Entry {
	return append([]Entry{}, tt.entries...)
}

// Key returns the display key of e. It is a digest for presentation only; the table
// itself is keyed by the pair.
func Key(e Entry) (string, error) {
	h, err := structhash.Hash(e, 1)
	if err != nil {
		return "", fmt.Errorf("failed to hash %v %q: %w", e.Kind, e.Value, err)
	}
	return h, nil
}

// Rows renders the table as `key, kind, value` rows.
func (tt *TokenTable) Rows() ([][]string, error) {
	rows := make([][]string, 0, len(tt.entries))
	for _, e := range tt.entries {
		k, err := Key(e)
		if err != nil {
			return nil, err
		}
		rows = append(rows, []string{k, e.Kind.String(), e.Value})
	}
	return rows, nil
}

func BuildTokenTable(toks []*token.Token) *TokenTable {
	tt := NewTokenTable()
	for _, tok := range toks {
		tt.Add(tok)
	}
	tracer().Debugf("token table: %v distinct tokens out of %v", tt.Len(), len(toks))
	return tt
}
