package application

// MatchResult is the outcome of looking up a free-text application name in a
// user's inventory. It is one of NotFound, ExactFound or SimilarFound.
type MatchResult interface {
	isMatchResult()
}

// NotFound means nothing in the inventory resembles the requested name.
type NotFound struct{}

// ExactFound carries the normalized name that matched exactly.
type ExactFound struct {
	Name string
}

// SimilarFound carries the normalized name of the closest inventory entry.
type SimilarFound struct {
	Name string
}

func (NotFound) isMatchResult()     {}
func (ExactFound) isMatchResult()   {}
func (SimilarFound) isMatchResult() {}
