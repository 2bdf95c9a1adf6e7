package bnf

// flavor distinguishes a lexical production (parsed without internal
// whitespace skipping) from a syntactic production (parsed with whitespace
// skipping before each terminal, and eligible to carry a reducer).
type flavor int

const (
	flavorLexical flavor = iota
	flavorSyntactic
)

// Production is a named, possibly-recursive grammar production. It is
// declared with Lexical or Syntactic and its body is assigned afterward
// with Define, which is what lets a production's body refer back to the
// production itself (recursion) — the Production value is a stable handle
// from the moment it is declared.
type Production struct {
	name    string
	flavor  flavor
	body    Node
	reducer any // nil, or a Reducer[D] registered by Bind for some D
}

// Lexical declares a named lexical production (a "Lexem" in
// original_source's terms): parsed without whitespace skipping internally.
func Lexical(name string) *Production {
	return &Production{name: name, flavor: flavorLexical}
}

// Syntactic declares a named syntactic production (a "Rule"): parsed with
// whitespace skipping before each terminal, and eligible for Bind.
func Syntactic(name string) *Production {
	return &Production{name: name, flavor: flavorSyntactic}
}

// Define assigns or reassigns p's body. Calling Define on a production
// whose own body (directly or transitively) already refers to p is how a
// recursive grammar is expressed; Define just stores the pointer, so the
// reference stays valid.
func (p *Production) Define(body Node) *Production {
	p.body = body
	return p
}

// Name returns p's diagnostic name.
func (p *Production) Name() string { return p.name }

// SetName overrides p's diagnostic name.
func (p *Production) SetName(name string) Node { p.name = name; return p }

// Reducer converts the semantic values collected while parsing a bound
// Production's body into that production's own payload. The engine, not
// the reducer, determines the final matched span and name.
type Reducer[D any] func(children []Interface[D]) D

// Bind attaches reducer to p, a syntactic Production. Analyzing with a
// different payload type than the one reducer was bound with is a caller
// error, reported as a fatal BadRule status rather than a panic.
func Bind[D any](p *Production, reducer Reducer[D]) *Production {
	p.reducer = reducer
	return p
}
