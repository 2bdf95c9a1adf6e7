package bnf

// This file is the Interpreter (spec.md §4.3): an eval method per concrete
// Node variant. Every method's contract is the same one spec.md states for
// the whole component: success sets Ok, a fatal condition sets Error plus
// a kind bit, and a soft mismatch returns zero, leaving the Context exactly
// as it found it.

func (n *terminalNode) eval(ctx *Context) Status {
	pos := ctx.top()
	syntactic := ctx.level >= 1
	if syntactic {
		pos = ctx.skipWS(pos)
	}
	b, ok := ctx.byteAt(pos)
	if !ok || !n.set.test(b) {
		return 0
	}
	if syntactic {
		mark := ctx.size()
		ctx.dispatch.stub(ctx.input, pos, pos+1, n.name, mark)
		ctx.push(pos)
	}
	pos++
	ctx.push(pos)
	if pos >= len(ctx.input) {
		return Ok | Eof
	}
	return Ok
}

// eval on a Predicate calls fn against the span most recently matched —
// the bytes between the two topmost cursor positions — and never advances
// the cursor itself.
func (n *predicateNode) eval(ctx *Context) Status {
	size := ctx.size()
	if size < 2 {
		return 0
	}
	end := ctx.cursors[size-1]
	start := ctx.cursors[size-2]
	if start < 0 || end > len(ctx.input) || start > end {
		return 0
	}
	if n.fn([]byte(ctx.input[start:end])) {
		return Ok
	}
	return 0
}

// eval on a Sequence matches its children left to right. A Skip marker
// retracts the consumption of whichever child follows it once that child
// succeeds (pure lookahead); a Ret marker forces an immediate Ok|Ret
// return, promoting a partial match through an enclosing Alternation; a
// Try marker offers the Context's Catch hook a chance to recover from the
// failure of any child after it. Any unrecovered failure rewinds the cursor and
// semantic stacks to the Sequence's entry state.
func (n *sequenceNode) eval(ctx *Context) Status {
	if len(n.kids) == 0 {
		return Error | BadRule
	}
	startSize := ctx.size()
	saved := 0
	tried := false
	var carry Status
	for _, kid := range n.kids {
		st := kid.eval(ctx)
		if !st.Has(Ok) || st.Fatal() {
			if ctx.level > 0 && tried && !st.Fatal() && saved == 0 {
				st |= ctx.catch()
			}
			ctx.truncate(startSize)
			rest := st &^ (tryBit | skipBit | Ok)
			if st&(Eof|Over) != 0 {
				return Error | rest
			}
			return rest
		}
		if saved != 0 {
			ctx.truncate(saved)
			saved = 0
		}
		if st&skipBit != 0 {
			saved = ctx.size()
		}
		if st&tryBit != 0 {
			tried = true
		}
		if st&retBit != 0 {
			return Ok | retBit
		}
		carry |= st &^ (Ok | skipBit | retBit | tryBit)
	}
	return Ok | carry
}

// eval on an Alternation tries every child from the same starting cursor,
// restoring state between attempts, and keeps the child with the greatest
// cursor advance (ties go to the first occurrence) — unless First has
// already been seen, in which case the next child that matches with a
// positive advance is taken immediately, without comparing it to any later
// sibling. A zero-advance match still counts, so an Alternation of only
// epsilon productions still reports Ok.
//
// stat mirrors original_source's _Or::_parse accumulator: every child's
// status is folded into it, but Ok/Ret/Error are cleared before the next
// child runs while First is left alone, so a First control child occurring
// anywhere in the list (even one contributing no Ok of its own) keeps
// forcing every later candidate to win on sight instead of competing for
// the longest match.
func (n *alternationNode) eval(ctx *Context) Status {
	if len(n.kids) == 0 {
		return Error | BadRule
	}
	startSize := ctx.size()
	org := ctx.top()

	var stat Status
	max := 0
	tmp := -1
	var bestCursors []int
	var bestFrame any

	for _, kid := range n.kids {
		ctx.truncate(startSize)
		st := kid.eval(ctx)
		stat |= st
		if stat.Has(Ok) || stat.Fatal() {
			tmp = ctx.top() - org
			if tmp > max || (tmp > 0 && stat&(firstBit|retBit|Error) != 0) {
				max = tmp
				bestCursors = ctx.snapshotCursors(startSize)
				bestFrame = ctx.dispatch.snapshot(startSize)
				if stat&(firstBit|retBit|Error) != 0 {
					break
				}
				stat &^= Ok | retBit | Error
				continue
			}
		}
		stat &^= Ok | retBit | Error
	}

	ctx.truncate(startSize)
	if max == 0 && tmp < 0 {
		return 0
	}
	if max > 0 {
		ctx.appendCursors(bestCursors)
		ctx.dispatch.restore(startSize, bestFrame)
	}
	return (stat | Ok) &^ (firstBit | retBit)
}

// eval on a Repetition runs body up to max times, clearing transient
// control bits between iterations. A failure before min iterations fails
// the whole Repetition; at or past min, whatever was consumed stands.
// Reaching max sets Over only when max itself is the construction-time
// overflow cap (WithOverflowLimit or the type-based default), not when max
// is simply the caller's own exact bound.
func (n *repetitionNode) eval(ctx *Context) Status {
	startSize := ctx.size()
	var stat Status
	i := 0
	for ; i < n.max; i++ {
		st := n.body.eval(ctx)
		stat |= st
		if st.Has(Ok) && !st.Fatal() {
			stat &^= firstBit | tryBit | skipBit | retBit | Ok
			continue
		}
		if i < n.min {
			ctx.truncate(startSize)
			return stat &^ Ok
		}
		return stat | Ok
	}
	result := stat | Ok
	if n.overflow {
		result |= Over
	}
	return result
}

// eval on a Control marker returns its canned flag pattern without
// touching the cursor.
func (n *controlNode) eval(ctx *Context) Status { return n.flag }

// eval on a Production dispatches to the lexical or syntactic algorithm
// according to its flavor.
func (p *Production) eval(ctx *Context) Status {
	if p.flavor == flavorLexical {
		return p.evalLexical(ctx)
	}
	return p.evalSyntactic(ctx)
}

// evalLexical implements the "Lexem" half of NamedProduction: no body is
// fatal (BadLexem); a body that is itself a bare Predicate is delegated to
// directly (so a predicate can sit at the top of a lexical form); otherwise
// the production switches the Context to lexical mode for its body, and on
// a non-epsilon success collapses every cursor it pushed down to a single
// start/end pair, emitting one semantic stub for the whole span.
func (p *Production) evalLexical(ctx *Context) Status {
	if p.body == nil {
		return Error | BadLexem
	}
	if pred, ok := p.body.(*predicateNode); ok {
		return pred.eval(ctx)
	}

	size := ctx.size()
	org := ctx.skipWS(ctx.top())
	ctx.push(org)
	ctx.decLevel()
	st := p.body.eval(ctx)
	ctx.incLevel()

	if st.Has(Ok) && !st.Fatal() && ctx.size()-size > 1 {
		end := ctx.top()
		mark := ctx.size()
		ctx.dispatch.stub(ctx.input, org, end, p.name, mark)
		ctx.cursors = ctx.cursors[:size]
		ctx.push(org)
		ctx.push(end)
	} else {
		ctx.cursors = ctx.cursors[:size]
	}
	return st
}

// evalSyntactic implements the "Rule" half of NamedProduction: no body, or
// a body invoked outside syntactic mode, is fatal (BadRule); a bound
// reducer whose payload type doesn't match the Context's active dispatcher
// is also reported as BadRule, rather than panicking (see Bind's doc
// comment). Otherwise it runs pre_call, parses the body, and on a
// non-epsilon success calls do_call (which fires the reducer, if any, and
// stamps a result Interface into the enclosing frame) before collapsing
// cursors the same way evalLexical does. post_call always runs, even on
// failure, so the dispatcher can unwind its frame stack cleanly.
func (p *Production) evalSyntactic(ctx *Context) Status {
	if p.body == nil || ctx.level == 0 {
		return Error | BadRule
	}
	if !ctx.dispatch.compatible(p) {
		return Error | BadRule
	}
	if pred, ok := p.body.(*predicateNode); ok {
		return pred.eval(ctx)
	}

	size := ctx.size()
	hasReducer := p.reducer != nil
	ctx.dispatch.preCall(hasReducer)
	st := p.body.eval(ctx)

	if st.Has(Ok) && !st.Fatal() && ctx.size()-size > 1 {
		begin := ctx.cursors[size]
		end := ctx.top()
		mark := ctx.size()
		ctx.dispatch.doCall(p, ctx.input, begin, end, p.name, mark)
		ctx.cursors = ctx.cursors[:size]
		ctx.push(begin)
		ctx.push(end)
	} else {
		ctx.cursors = ctx.cursors[:size]
	}
	ctx.dispatch.postCall(hasReducer)
	return st
}
