package grammar

type Terminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type NonTerminal struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	First      []int  `json:"first"`
	FirstEmpty bool   `json:"first_empty"`
	Follow     []int  `json:"follow"`
}

type Production struct {
	Number int   `json:"number"`
	LHS    int   `json:"lhs"`
	RHS    []int `json:"rhs"`
}

type Cell struct {
	NonTerminal int `json:"non_terminal"`
	Terminal    int `json:"terminal"`
	Production  int `json:"production"`
}

type Overwrite struct {
	NonTerminal int `json:"non_terminal"`
	Terminal    int `json:"terminal"`
	Previous    int `json:"previous"`
	Adopted     int `json:"adopted"`
	ResolvedBy  int `json:"resolved_by"`
}

// Report describes an analysed grammar for humans. Symbol references use the same
// numbering as SyntacticSpec.
type Report struct {
	Terminals    []*Terminal    `json:"terminals"`
	NonTerminals []*NonTerminal `json:"non_terminals"`
	Productions  []*Production  `json:"productions"`
	Cells        []*Cell        `json:"cells"`
	Overwrites   []*Overwrite   `json:"overwrites"`
}
