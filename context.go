package bnf

// Context is the mutable state of one Analyze invocation: the input cursor
// stack, the current mode level, and (through dispatch) the semantic-value
// stack. A Context is single-use; concurrent Analyze calls against the same
// Node graph each get their own.
type Context struct {
	input string

	// cursors is the cursor stack: an ordered sequence of byte offsets
	// into input. The top is the current position; a matched span is
	// demarcated by a start offset pushed before the match and the
	// resulting offset pushed after it.
	cursors []int

	// level is the mode level: >=1 is syntactic mode (whitespace is
	// skipped before each terminal), 0 is lexical mode (no skipping).
	level int

	skipWhitespace func(input string, pos int) int
	catch          func() Status

	dispatch dispatcher
}

// ContextOption configures a Context built by NewContext.
type ContextOption func(*Context)

// WithSkipWhitespace overrides the whitespace-skipping hook a Context uses
// in syntactic mode. The default skips space, tab, newline and carriage
// return.
func WithSkipWhitespace(fn func(input string, pos int) int) ContextOption {
	return func(c *Context) { c.skipWhitespace = fn }
}

// WithCatch overrides the Context's syntax-error-recovery hook, invoked
// when a Try-marked Sequence element fails. The default does nothing and
// returns zero.
func WithCatch(fn func() Status) ContextOption {
	return func(c *Context) { c.catch = fn }
}

func defaultSkipWhitespace(input string, pos int) int {
	for pos < len(input) {
		switch input[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func defaultCatch() Status { return 0 }

// NewContext builds a Context over input, starting in syntactic mode (level
// 1), the same default original_source's _Base constructor uses.
func NewContext(input string, opts ...ContextOption) *Context {
	c := &Context{
		input:          input,
		cursors:        []int{0, 0},
		level:          1,
		skipWhitespace: defaultSkipWhitespace,
		catch:          defaultCatch,
		dispatch:       noopDispatcher{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) top() int { return c.cursors[len(c.cursors)-1] }

func (c *Context) size() int { return len(c.cursors) }

func (c *Context) push(pos int) { c.cursors = append(c.cursors, pos) }

// truncate rewinds the cursor stack to size n, discarding everything
// pushed after it — the backtracking primitive every composite node uses
// to restore state on a rejected attempt.
func (c *Context) truncate(n int) {
	c.cursors = c.cursors[:n]
	c.dispatch.truncate(n)
}

// snapshotCursors copies everything pushed since cursor-stack size n,
// without altering the stack — Alternation's try-then-restore-winner
// policy uses this to hold a candidate's cursors aside while it tries the
// remaining children.
func (c *Context) snapshotCursors(n int) []int {
	kept := make([]int, len(c.cursors)-n)
	copy(kept, c.cursors[n:])
	return kept
}

// appendCursors re-applies a snapshot taken by snapshotCursors, which the
// caller must already have truncated back to the matching size.
func (c *Context) appendCursors(kept []int) {
	c.cursors = append(c.cursors, kept...)
}

func (c *Context) skipWS(pos int) int {
	return c.skipWhitespace(c.input, pos)
}

func (c *Context) byteAt(pos int) (byte, bool) {
	if pos >= len(c.input) {
		return 0, false
	}
	return c.input[pos], true
}

func (c *Context) incLevel() { c.level++ }
func (c *Context) decLevel() { c.level-- }

// Tail reports whether input remains unconsumed after a parse and the
// offset of the first unconsumed byte, mirroring original_source's
// Get_tail. It is meaningful even after a fatal parse: the stop position is
// the last position the cursor stack recorded, moved past whatever the
// Context's skip-whitespace hook skips there.
func (c *Context) Tail() (Status, int) {
	stop := c.skipWS(c.top())
	if stop < len(c.input) {
		return Error | Rest, stop
	}
	return 0, stop
}
