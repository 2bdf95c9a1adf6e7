package bnf

// Interface is the per-node semantic record spec.md's data model calls the
// Interface quadruple: a host-chosen payload D together with the matched
// text span and the name of the production that produced it. The engine,
// not a Reducer, always computes Text/Length/Name from the actual matched
// range — a Reducer's only observable effect is on Data, mirroring
// original_source's _do_call, which re-stamps span/name on whatever
// Interface value a callback returned.
type Interface[D any] struct {
	Data   D
	Text   string
	Length int
	Name   string

	begin, end int
	src        string
}

// stubInterface builds a span-only Interface with a zero Data value, the
// engine's equivalent of original_source's _stub_call construction.
func stubInterface[D any](src string, begin, end int, name string) Interface[D] {
	return Interface[D]{Text: src[begin:end], Length: end - begin, Name: name, begin: begin, end: end, src: src}
}

// childInterface builds a result Interface carrying a reducer's (or a
// reducer-free production's zero-value) payload, stamped with the
// production's actual matched span.
func childInterface[D any](data D, src string, begin, end int, name string) Interface[D] {
	return Interface[D]{Data: data, Text: src[begin:end], Length: end - begin, Name: name, begin: begin, end: end, src: src}
}

// StubInterface is the "stub-from-match" construction arity spec.md §6
// requires of a host-supplied payload type; here the package supplies it
// once for any D instead of asking every payload type to implement it.
func StubInterface[D any](text, name string) Interface[D] {
	return Interface[D]{Text: text, Length: len(text), Name: name}
}

// InterfaceFromChild is the "copy-from-child" construction arity: it keeps
// child's Data and restamps the span and name.
func InterfaceFromChild[D any](child Interface[D], text, name string) Interface[D] {
	return Interface[D]{Data: child.Data, Text: text, Length: len(text), Name: name}
}

// ReduceInterface is the "reducer result" construction arity: data is a
// Reducer's return value, and the span is derived from the first and last
// child's span when both are known to come from the same source text.
func ReduceInterface[D any](data D, children []Interface[D], name string) Interface[D] {
	if len(children) == 0 {
		return Interface[D]{Data: data, Name: name}
	}
	front, back := children[0], children[len(children)-1]
	if front.src != "" && front.src == back.src {
		return Interface[D]{Data: data, Text: front.src[front.begin:back.end], Length: back.end - front.begin, Name: name, begin: front.begin, end: back.end, src: front.src}
	}
	return Interface[D]{Data: data, Text: front.Text, Length: front.Length, Name: name}
}

// ConcatInterface is the "span-concat" construction arity: it joins front's
// start to back's end, discarding both payloads.
func ConcatInterface[D any](front, back Interface[D], name string) Interface[D] {
	if front.src != "" && front.src == back.src {
		return Interface[D]{Text: front.src[front.begin:back.end], Length: back.end - front.begin, Name: name, begin: front.begin, end: back.end, src: front.src}
	}
	return Interface[D]{Text: front.Text + back.Text, Length: front.Length + back.Length, Name: name}
}

// EmptyInterface is the "empty" construction arity: the zero Interface.
func EmptyInterface[D any]() Interface[D] { return Interface[D]{} }

// dispatcher is the Context-side hook surface of the Callback Dispatcher.
// Context itself is not generic over the payload type D (it is built once
// per Analyze call and threaded through the whole, non-generic Node/eval
// graph); dispatcher hides D behind this interface so a single Context can
// still drive a typed frame stack when a payload type is in play, and a
// no-op implementation when it is not (the "fast path" of Analyze, where
// only predicate callbacks can fire).
type dispatcher interface {
	// truncate drops everything recorded in the current frame since
	// cursor-stack size n — the semantic-stack half of Context.truncate's
	// backtracking contract.
	truncate(n int)

	// snapshot captures everything recorded in the current frame since
	// cursor-stack size n, for Alternation's try-then-restore-winner
	// policy. restore re-applies a snapshot after truncating to n.
	snapshot(n int) any
	restore(n int, snap any)

	// compatible reports whether p's bound reducer (if any) matches this
	// dispatcher's payload type. A mismatch is a caller error, surfaced as
	// BadRule rather than a panic (see Bind's doc comment).
	compatible(p *Production) bool

	// preCall/doCall/postCall are the pre_call/do_call/post_call
	// equivalents around a syntactic Production's body parse; stub is the
	// equivalent invoked by a lexical Production and by Terminal.
	preCall(hasReducer bool)
	doCall(p *Production, input string, begin, end int, name string, mark int)
	postCall(hasReducer bool)
	stub(input string, begin, end int, name string, mark int)
}

// noopDispatcher is the dispatcher used by the fast-path Analyze: every
// hook is a no-op, so no frame stack is ever allocated.
type noopDispatcher struct{}

func (noopDispatcher) truncate(int)                 {}
func (noopDispatcher) snapshot(int) any              { return nil }
func (noopDispatcher) restore(int, any)              {}
func (noopDispatcher) compatible(*Production) bool   { return true }
func (noopDispatcher) preCall(bool)                  {}
func (noopDispatcher) doCall(*Production, string, int, int, string, int) {}
func (noopDispatcher) postCall(bool)                 {}
func (noopDispatcher) stub(string, int, int, string, int) {}

// dispatchEntry pairs a collected Interface with the cursor-stack size at
// the time it was appended, so truncate/snapshot can tell which entries
// were added during a since-rejected attempt.
type dispatchEntry[D any] struct {
	mark int
	ifc  Interface[D]
}

// typedDispatcher is the real Callback Dispatcher: a stack of semantic
// frames, one per syntactic Production that has a reducer bound (§4.4: "a
// new frame... only if the production has a reducer bound"). frames[0] is
// the implicit root frame that always exists, the Go analog of
// original_source's _Parser<U> being constructed with an already-live
// result vector.
type typedDispatcher[D any] struct {
	frames [][]dispatchEntry[D]
}

func newTypedDispatcher[D any]() *typedDispatcher[D] {
	return &typedDispatcher[D]{frames: [][]dispatchEntry[D]{nil}}
}

func (d *typedDispatcher[D]) top() int { return len(d.frames) - 1 }

func (d *typedDispatcher[D]) truncate(n int) {
	i := d.top()
	entries := d.frames[i]
	j := len(entries)
	for j > 0 && entries[j-1].mark >= n {
		j--
	}
	d.frames[i] = entries[:j]
}

func (d *typedDispatcher[D]) snapshot(n int) any {
	entries := d.frames[d.top()]
	j := len(entries)
	for j > 0 && entries[j-1].mark >= n {
		j--
	}
	kept := make([]dispatchEntry[D], len(entries)-j)
	copy(kept, entries[j:])
	return kept
}

func (d *typedDispatcher[D]) restore(n int, snap any) {
	d.truncate(n)
	kept, _ := snap.([]dispatchEntry[D])
	i := d.top()
	d.frames[i] = append(d.frames[i], kept...)
}

func (d *typedDispatcher[D]) compatible(p *Production) bool {
	if p.reducer == nil {
		return true
	}
	_, ok := p.reducer.(Reducer[D])
	return ok
}

func (d *typedDispatcher[D]) preCall(hasReducer bool) {
	if hasReducer {
		d.frames = append(d.frames, nil)
	}
}

func (d *typedDispatcher[D]) postCall(hasReducer bool) {
	if hasReducer {
		d.frames = d.frames[:d.top()]
	}
}

func (d *typedDispatcher[D]) children() []Interface[D] {
	entries := d.frames[d.top()]
	out := make([]Interface[D], len(entries))
	for i, e := range entries {
		out[i] = e.ifc
	}
	return out
}

func (d *typedDispatcher[D]) doCall(p *Production, input string, begin, end int, name string, mark int) {
	var data D
	if p.reducer != nil {
		if reduce, ok := p.reducer.(Reducer[D]); ok {
			data = reduce(d.children())
		}
	}
	ifc := childInterface(data, input, begin, end, name)
	idx := d.top()
	if p.reducer != nil {
		idx--
	}
	d.frames[idx] = append(d.frames[idx], dispatchEntry[D]{mark: mark, ifc: ifc})
}

func (d *typedDispatcher[D]) stub(input string, begin, end int, name string, mark int) {
	ifc := stubInterface[D](input, begin, end, name)
	i := d.top()
	d.frames[i] = append(d.frames[i], dispatchEntry[D]{mark: mark, ifc: ifc})
}

// rootChildren returns whatever landed in the implicit root frame — the
// top-level semantic result AnalyzeContext reports to its caller.
func (d *typedDispatcher[D]) rootChildren() []Interface[D] {
	entries := d.frames[0]
	out := make([]Interface[D], len(entries))
	for i, e := range entries {
		out[i] = e.ifc
	}
	return out
}
