package bnf

import (
	"errors"
	"testing"
)

func TestAnalyzeFastPath(t *testing.T) {
	node := Seq("foo", "=", AtLeastOne(Exclude("\n")))
	st, err := Analyze(node, "foo=bar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Accepted() {
		t.Fatalf("expected match, got status %#x", uint32(st))
	}
}

func TestAnalyzeTrailingInput(t *testing.T) {
	node := Literal("foo")
	st, err := Analyze(node, "foobar")
	if !st.Fatal() || st&Rest == 0 {
		t.Fatalf("expected Error|Rest, got %#x", uint32(st))
	}
	if err == nil {
		t.Fatalf("expected a non-nil error for trailing input")
	}
}

func TestAnalyzeNoMatchIsNotFatal(t *testing.T) {
	node := Literal("foo")
	st, err := Analyze(node, "bar")
	if st.Accepted() {
		t.Fatalf("expected no match, got status %#x", uint32(st))
	}
	if st.Fatal() {
		t.Fatalf("a plain mismatch should not be reported as fatal: %#x", uint32(st))
	}
	if err != nil {
		t.Fatalf("a plain mismatch should not produce an error: %v", err)
	}
}

func TestAnalyzeWithPredicate(t *testing.T) {
	var seen string
	node := Seq(AtLeastOne(Range('a', 'z')), Predicate(func(span []byte) bool {
		seen = string(span)
		return true
	}))
	st, err := Analyze(node, "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Accepted() {
		t.Fatalf("expected match, got status %#x", uint32(st))
	}
	// A bare repetition does not collapse its Terminals into one span, so
	// the predicate sees only the last Terminal's match.
	if seen != "o" {
		t.Fatalf("predicate saw %q, want %q", seen, "o")
	}
}

func TestAnalyzeContextCustomWhitespace(t *testing.T) {
	skipDashes := func(input string, pos int) int {
		for pos < len(input) && input[pos] == '-' {
			pos++
		}
		return pos
	}
	node := Seq("a", "b")
	ctx := NewContext("a---b", WithSkipWhitespace(skipDashes))
	st, err := AnalyzeContextNoData(node, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Accepted() {
		t.Fatalf("expected match, got status %#x", uint32(st))
	}
}

func TestAnalyzeBadRuleError(t *testing.T) {
	p := Syntactic("empty")
	st, err := Analyze(p, "x")
	if !st.Fatal() || st&BadRule == 0 {
		t.Fatalf("expected Error|BadRule, got %#x", uint32(st))
	}
	if err == nil {
		t.Fatalf("expected a non-nil error")
	}
	if !errors.Is(err, errBadRule) {
		t.Fatalf("expected err to wrap errBadRule, got %v", err)
	}
}
