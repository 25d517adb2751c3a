package grammar

// CompiledGrammar is the portable form of an analysed grammar. It carries everything a
// predictive parser needs and nothing it could modify.
type CompiledGrammar struct {
	Name      string         `json:"name"`
	Syntactic *SyntacticSpec `json:"syntactic"`
}

// Table compression levels.
const (
	CompressionLevelNone         = 0
	CompressionLevelUniqueRows   = 1
	CompressionLevelRowDisplaced = 2
	CompressionLevelMin          = CompressionLevelNone
	CompressionLevelMax          = CompressionLevelRowDisplaced
)

// ProductionNil marks an empty table cell.
const ProductionNil = 0

const terminalSymbolEncodingMinimum = 1

// SyntacticSpec describes symbols, productions and the LL(1) table.
//
// Terminal and non-terminal numbers are indexes into Terminals and NonTerminals. Index 0
// of both is unused. RHSSymbols encodes a terminal as its positive number and a
// non-terminal as its negated number. The table is row-major with one row per
// non-terminal and one column per terminal; an entry is a production number and
// ProductionNil marks an empty cell.
type SyntacticSpec struct {
	Terminals        []string            `json:"terminals"`
	TerminalCount    int                 `json:"terminal_count"`
	NonTerminals     []string            `json:"non_terminals"`
	NonTerminalCount int                 `json:"non_terminal_count"`
	StartSymbol      int                 `json:"start_symbol"`
	EOFSymbol        int                 `json:"eof_symbol"`
	EpsilonSymbol    int                 `json:"epsilon_symbol"`
	LHSSymbols       []int               `json:"lhs_symbols"`
	RHSSymbols       [][]int             `json:"rhs_symbols"`
	CompressionLevel int                 `json:"compression_level"`
	Table            []int               `json:"table,omitempty"`
	CompressedTable  *UniqueEntriesTable `json:"compressed_table,omitempty"`
}

type RowDisplacementTable struct {
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
	EmptyValue       int   `json:"empty_value"`
	Entries          []int `json:"entries"`
	Bounds           []int `json:"bounds"`
	RowDisplacement  []int `json:"row_displacement"`
}

type UniqueEntriesTable struct {
	UniqueEntries             *RowDisplacementTable `json:"unique_entries,omitempty"`
	UncompressedUniqueEntries []int                 `json:"uncompressed_unique_entries,omitempty"`
	RowNums                   []int                 `json:"row_nums"`
	OriginalRowCount          int                   `json:"original_row_count"`
	OriginalColCount          int                   `json:"original_col_count"`
	EmptyValue                int                   `json:"empty_value"`
}

// EncodeTerminal returns the RHS encoding of a terminal number.
func EncodeTerminal(num int) int {
	return num
}

// EncodeNonTerminal returns the RHS encoding of a non-terminal number.
func EncodeNonTerminal(num int) int {
	return -num
}

// DecodeSymbol splits an RHS entry into its number and kind.
func DecodeSymbol(v int) (num int, terminal bool) {
	if v >= terminalSymbolEncodingMinimum {
		return v, true
	}
	return -v, false
}
