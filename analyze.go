package bnf

import "github.com/pkg/errors"

// Analyze runs root against input without collecting any semantic value,
// the fast path for grammars used purely for recognition (or whose only
// side effect is a Predicate). It returns the final Status together with
// a non-nil error whenever that Status is fatal.
func Analyze(root Node, input string) (Status, error) {
	return AnalyzeContextNoData(root, NewContext(input))
}

// AnalyzeContextNoData is Analyze over a caller-supplied Context, letting
// a host override whitespace skipping or the Try catch hook while still
// using the no-op dispatcher.
func AnalyzeContextNoData(root Node, ctx *Context) (Status, error) {
	st := root.eval(ctx)
	tail, _ := ctx.Tail()
	st |= tail
	return st, statusError(st)
}

// AnalyzeWith runs root against input, collecting a D-typed semantic value
// from whichever production sits at the grammar's root. It is a
// convenience wrapper around AnalyzeContext for the common case of a
// default Context.
func AnalyzeWith[D any](root Node, input string) (Status, Interface[D], error) {
	return AnalyzeContext[D](root, NewContext(input))
}

// AnalyzeContext runs root against a caller-supplied Context, installing a
// typed Callback Dispatcher for the duration of the call. Any dispatcher
// already set on ctx is replaced: a Context is single-use, so there is
// nothing useful to preserve.
func AnalyzeContext[D any](root Node, ctx *Context) (Status, Interface[D], error) {
	dsp := newTypedDispatcher[D]()
	ctx.dispatch = dsp

	st := root.eval(ctx)
	tail, _ := ctx.Tail()
	st |= tail

	var out Interface[D]
	if children := dsp.rootChildren(); len(children) > 0 {
		out = children[0]
	}
	return st, out, statusError(st)
}

// statusError translates a fatal Status into an error identifying which
// kind of failure occurred; a non-fatal Status always yields a nil error,
// even if it carries Rest or Over (those are reported through Status, not
// error, when the grammar chose not to treat them as failures).
func statusError(st Status) error {
	if !st.Fatal() {
		return nil
	}
	switch {
	case st&BadRule != 0:
		return errors.Wrap(errBadRule, "bnf: analyze")
	case st&BadLexem != 0:
		return errors.Wrap(errBadLexem, "bnf: analyze")
	case st&Eof != 0:
		return errors.Wrap(errEOF, "bnf: analyze")
	case st&Over != 0:
		return errors.Wrap(errOverflow, "bnf: analyze")
	case st&Rest != 0:
		return errors.Wrap(errTrailingInput, "bnf: analyze")
	default:
		return errors.Wrap(errParse, "bnf: analyze")
	}
}

var (
	errBadRule       = errors.New("malformed grammar: production has no body, or was used outside syntactic mode")
	errBadLexem      = errors.New("malformed grammar: lexical production has no body")
	errEOF           = errors.New("input exhausted before a match completed")
	errOverflow      = errors.New("repetition exceeded its overflow limit")
	errTrailingInput = errors.New("unconsumed input remains after parsing")
	errParse         = errors.New("parse failed")
)
