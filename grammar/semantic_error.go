package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction        = newSemanticError("a grammar needs at least one production")
	semErrUndefinedSym        = newSemanticError("undefined symbol")
	semErrDuplicateProduction = newSemanticError("duplicate production")
	semErrDuplicateTerminal   = newSemanticError("duplicate terminal")
	semErrDuplicateName       = newSemanticError("duplicate names are not allowed between terminals and non-terminals")
	semErrEpsilonMixed        = newSemanticError("epsilon must be the only symbol of an alternative")
	semErrStartNotDefined     = newSemanticError("the start symbol has no production")
	semErrNoAlternative       = newSemanticError("a non-terminal needs at least one alternative")
	semErrReservedName        = newSemanticError("reserved symbol names cannot be declared")
)
