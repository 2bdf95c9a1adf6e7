package bnf

import "testing"

func TestBindAndReduce(t *testing.T) {
	digit := Range('0', '9')
	sum := Syntactic("sum")
	Bind(sum, Reducer[int](func(children []Interface[int]) int {
		total := 0
		for _, c := range children {
			total += len(c.Text)
		}
		return total
	}))
	sum.Define(AtLeastOne(digit))

	st, ifc, err := AnalyzeWith[int](sum, "12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Accepted() {
		t.Fatalf("expected match, got status %#x", uint32(st))
	}
	if ifc.Text != "12345" {
		t.Fatalf("Text = %q, want %q", ifc.Text, "12345")
	}
	if ifc.Name != "sum" {
		t.Fatalf("Name = %q, want %q", ifc.Name, "sum")
	}
}

func TestNestedReducers(t *testing.T) {
	// pair := digit "," digit, reduced to the concatenation of both digits'
	// text, read back out of the children slice a parent reducer sees.
	digit := Lexical("digit").Define(Range('0', '9'))
	pair := Syntactic("pair")
	Bind(pair, Reducer[string](func(children []Interface[string]) string {
		if len(children) < 2 {
			return ""
		}
		return children[0].Text + children[len(children)-1].Text
	}))
	pair.Define(Seq(digit, ",", digit))

	st, ifc, err := AnalyzeWith[string](pair, "3,7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Accepted() {
		t.Fatalf("expected match, got status %#x", uint32(st))
	}
	if ifc.Data != "37" {
		t.Fatalf("Data = %q, want %q", ifc.Data, "37")
	}
}

func TestBindTypeMismatchIsFatalBadRule(t *testing.T) {
	p := Syntactic("p")
	Bind(p, Reducer[int](func(children []Interface[int]) int { return 0 }))
	p.Define(Literal("x"))

	// AnalyzeWith instantiated with a different payload type than Bind
	// used: the mismatch must surface as a fatal BadRule Status, not a
	// panic.
	st, _, err := AnalyzeWith[string](p, "x")
	if !st.Fatal() || st&BadRule == 0 {
		t.Fatalf("expected Error|BadRule, got %#x", uint32(st))
	}
	if err == nil {
		t.Fatalf("expected a non-nil error")
	}
}

func TestDispatcherDiscardsRejectedAlternative(t *testing.T) {
	// Each branch is a reducer-bound production; only the winning
	// branch's semantic contribution should survive in the parent's
	// children slice.
	short := Syntactic("short")
	Bind(short, Reducer[string](func(children []Interface[string]) string { return "short" }))
	short.Define(Literal("ab"))

	long := Syntactic("long")
	Bind(long, Reducer[string](func(children []Interface[string]) string { return "long" }))
	long.Define(Literal("abc"))

	root := Syntactic("root")
	Bind(root, Reducer[string](func(children []Interface[string]) string {
		if len(children) != 1 {
			return "wrong-count"
		}
		return children[0].Data
	}))
	root.Define(Alt(short, long))

	st, ifc, err := AnalyzeWith[string](root, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Accepted() {
		t.Fatalf("expected match, got status %#x", uint32(st))
	}
	if ifc.Data != "long" {
		t.Fatalf("Data = %q, want %q (the rejected short branch must not leak into root's children)", ifc.Data, "long")
	}
}
