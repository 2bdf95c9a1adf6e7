package bnf

// Node is a grammar expression: a Terminal, Predicate, Sequence,
// Alternation, Repetition, Control marker, or named Production. The graph
// is logically immutable once built, except that a *Production's body can
// be assigned after the Production itself is referenced, which is how
// recursive (cyclic) grammars are expressed.
type Node interface {
	// Name returns the node's diagnostic name.
	Name() string

	// eval runs the interpreter for this node against ctx. It is
	// unexported: the Interpreter (interpret.go) is the only caller,
	// and hosts only ever reach it indirectly through Analyze.
	eval(ctx *Context) Status
}

// Namer lets a node's auto-generated diagnostic name be overridden, the way
// original_source's Name()/setName() do.
type Namer interface {
	SetName(name string) Node
}

// byteSet is a 256-bit membership set, one bit per byte value.
type byteSet [4]uint64

func (s *byteSet) add(b byte) { s[b>>6] |= 1 << (b & 63) }

func (s *byteSet) remove(b byte) { s[b>>6] &^= 1 << (b & 63) }

func (s byteSet) test(b byte) bool { return s[b>>6]&(1<<(b&63)) != 0 }

// terminalNode matches exactly one input byte against a byte-class.
type terminalNode struct {
	name string
	set  byteSet
}

func (n *terminalNode) Name() string { return n.name }

func (n *terminalNode) SetName(name string) Node { n.name = name; return n }

// Byte builds a Terminal matching a single byte value.
func Byte(b byte) Node {
	n := &terminalNode{name: autoName("Byte")}
	n.set.add(b)
	return n
}

// Range builds a Terminal matching any byte in [low, high].
func Range(low, high byte) Node {
	n := &terminalNode{name: autoName("Range")}
	for c := int(low); c <= int(high); c++ {
		n.set.add(byte(c))
	}
	return n
}

// Set builds a Terminal matching any byte that occurs in sample.
func Set(sample string) Node {
	n := &terminalNode{name: autoName("Set")}
	for i := 0; i < len(sample); i++ {
		n.set.add(sample[i])
	}
	return n
}

// Exclude builds a Terminal matching any byte not in sample.
func Exclude(sample string) Node {
	n := &terminalNode{name: autoName("Exclude")}
	for c := 0; c < 256; c++ {
		n.set.add(byte(c))
	}
	for i := 0; i < len(sample); i++ {
		n.set.remove(sample[i])
	}
	return n
}

// Literal builds a chain of single-byte Terminals matching the exact byte
// sequence s. An empty literal is equivalent to Null.
func Literal(s string) Node {
	if len(s) == 0 {
		return Null
	}
	if len(s) == 1 {
		return Byte(s[0])
	}
	n := &sequenceNode{name: autoName("Literal")}
	for i := 0; i < len(s); i++ {
		n.kids = append(n.kids, Byte(s[i]))
	}
	return n
}

// predicateNode invokes a host function against the most recently matched
// span and reports its boolean result. It never advances the cursor.
type predicateNode struct {
	name string
	fn   func(span []byte) bool
}

func (n *predicateNode) Name() string { return n.name }

func (n *predicateNode) SetName(name string) Node { n.name = name; return n }

// Predicate builds a node that invokes fn against the most recently matched
// span when evaluated inline in a Sequence.
func Predicate(fn func(span []byte) bool) Node {
	return &predicateNode{name: autoName("Predicate"), fn: fn}
}

// toNode converts a combinator argument (a Node, a string literal, or a
// byte) to a Node, the Go analog of original_source's implicit
// string/Token conversions in operator+ and operator|.
func toNode(item any) Node {
	switch v := item.(type) {
	case Node:
		return v
	case string:
		return Literal(v)
	case byte:
		return Byte(v)
	default:
		panic("bnf: Seq/Alt/Then/Or item must be a Node, string, or byte")
	}
}

// sequenceNode evaluates its children left-to-right and fails unless every
// child matches.
type sequenceNode struct {
	name string
	kids []Node
}

func (n *sequenceNode) Name() string { return n.name }

func (n *sequenceNode) SetName(name string) Node { n.name = name; return n }

func (n *sequenceNode) children() []Node { return n.kids }

// alternationNode tries each child from the same starting cursor and, by
// default, accepts the one with the greatest cursor advance.
type alternationNode struct {
	name string
	kids []Node
}

func (n *alternationNode) Name() string { return n.name }

func (n *alternationNode) SetName(name string) Node { n.name = name; return n }

func (n *alternationNode) children() []Node { return n.kids }

type compound interface {
	children() []Node
}

// Then composes a and b into a Sequence. If a is already an open Sequence
// (one this call produced earlier in a fold), b is appended to it in place
// rather than nesting a new Sequence — the Go equivalent of
// original_source's _is_compound() dynamic_cast check in _And::operator+.
func Then(a, b Node) Node {
	if seq, ok := a.(*sequenceNode); ok {
		seq.kids = append(seq.kids, b)
		return seq
	}
	return &sequenceNode{name: autoName("Seq"), kids: []Node{a, b}}
}

// Or composes a and b into an Alternation, folding into an already-open
// Alternation the same way Then folds into a Sequence.
func Or(a, b Node) Node {
	if alt, ok := a.(*alternationNode); ok {
		alt.kids = append(alt.kids, b)
		return alt
	}
	return &alternationNode{name: autoName("Alt"), kids: []Node{a, b}}
}

// Seq builds a Sequence from two or more items, each a Node, string, or
// byte.
func Seq(items ...any) Node {
	if len(items) < 2 {
		panic("bnf: Seq requires at least 2 items")
	}
	acc := toNode(items[0])
	for _, it := range items[1:] {
		acc = Then(acc, toNode(it))
	}
	return acc
}

// Alt builds an Alternation from two or more items, each a Node, string, or
// byte.
func Alt(items ...any) Node {
	if len(items) < 2 {
		panic("bnf: Alt requires at least 2 items")
	}
	acc := toNode(items[0])
	for _, it := range items[1:] {
		acc = Or(acc, toNode(it))
	}
	return acc
}

// repetitionNode evaluates its body between min and max times.
type repetitionNode struct {
	name     string
	min, max int
	overflow bool // true when max was reached because of the cap, not a request for exactly max
	body     Node
}

func (n *repetitionNode) Name() string { return n.name }

func (n *repetitionNode) SetName(name string) Node { n.name = name; return n }

// defaultTerminalCap and defaultSyntacticCap mirror original_source's
// maxLexemLength (1024) and maxIterate (0x4096) defaults, applied depending
// on whether the repeated body is a lexical-level or syntactic-level node.
const (
	defaultTerminalCap  = 1024
	defaultSyntacticCap = 0x4096
)

// unboundedMax is the placeholder max Any and AtLeastOne pass to Repeat for
// "as many as will fit under whichever default cap applies." It must stay
// greater than both defaultTerminalCap and defaultSyntacticCap so Repeat's
// `max > cfg.cap` clamp always fires for it — passing defaultSyntacticCap
// itself here would equal cfg.cap whenever the repeated body falls into the
// default case, so the clamp would never trigger and Over could never be
// reported no matter how many iterations actually ran.
const unboundedMax = 1 << 30

func defaultCap(body Node) int {
	switch v := body.(type) {
	case *terminalNode, *predicateNode:
		return defaultTerminalCap
	case *Production:
		if v.flavor == flavorLexical {
			return defaultTerminalCap
		}
		return defaultSyntacticCap
	default:
		return defaultSyntacticCap
	}
}

// RepeatOption configures a Repetition built by Repeat.
type RepeatOption func(*repeatConfig)

type repeatConfig struct {
	cap int
}

// WithOverflowLimit overrides the default repetition overflow cap.
func WithOverflowLimit(n int) RepeatOption {
	return func(c *repeatConfig) { c.cap = n }
}

// Repeat builds a Repetition matching body at least min and at most max
// times (use a large max for "unbounded"). If max exceeds the overflow cap
// — the explicit one from WithOverflowLimit, or the type-based default
// otherwise — max is lowered to the cap, and a match that runs to the cap
// still succeeds but has the Over bit set. A max at or below the cap never
// sets Over.
func Repeat(min, max int, body Node, opts ...RepeatOption) Node {
	cfg := repeatConfig{cap: defaultCap(body)}
	for _, opt := range opts {
		opt(&cfg)
	}
	n := &repetitionNode{name: autoName("Repeat"), min: min, max: max, body: body}
	if max > cfg.cap {
		n.max = cfg.cap
		n.overflow = true
	}
	return n
}

// Any builds a Repetition matching body zero or more times.
func Any(body Node) Node { return Repeat(0, unboundedMax, body) }

// Optional builds a Repetition matching body zero or one times.
func Optional(body Node) Node { return Repeat(0, 1, body) }

// AtLeastOne builds a Repetition matching body one or more times.
func AtLeastOne(body Node) Node { return Repeat(1, unboundedMax, body) }

// Exactly builds a Repetition matching body exactly k times.
func Exactly(k int, body Node) Node { return Repeat(k, k, body) }

// controlNode returns a canned status pattern without touching the cursor.
type controlNode struct {
	name string
	flag Status
}

func (n *controlNode) Name() string { return n.name }

func (n *controlNode) SetName(name string) Node { n.name = name; return n }

// Control markers tune the interpreter. Null is an always-matching epsilon
// placeholder; Return forces early return from a Sequence into its
// enclosing Alternation; AcceptFirst switches the enclosing Alternation to
// "first non-empty match wins"; Skip checks but does not consume the next
// Sequence element (pure lookahead); Try asks the enclosing Sequence to
// offer a mismatch to the Context's Catch hook before unwinding.
var (
	Null        Node = &controlNode{name: "Null", flag: Ok}
	Return      Node = &controlNode{name: "Return", flag: Ok | retBit}
	AcceptFirst Node = &controlNode{name: "AcceptFirst", flag: firstBit}
	Skip        Node = &controlNode{name: "Skip", flag: Ok | skipBit}
	Try         Node = &controlNode{name: "Try", flag: Ok | tryBit}
)
