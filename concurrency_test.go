package bnf

import (
	"fmt"
	"sync"
	"testing"
)

// TestConcurrentAnalyze exercises spec.md §5's concurrency contract: one
// already-built Node graph, analyzed by many goroutines at once, each
// through its own Context. Nothing here should race or cross-contaminate
// results between goroutines.
func TestConcurrentAnalyze(t *testing.T) {
	digit := Lexical("digit").Define(AtLeastOne(Range('0', '9')))
	sum := Syntactic("sum")
	Bind(sum, Reducer[string](func(children []Interface[string]) string {
		if len(children) == 0 {
			return ""
		}
		return children[0].Text
	}))
	sum.Define(Seq(digit, Any(Seq("+", digit))))

	const n = 64
	var wg sync.WaitGroup
	errs := make([]error, n)
	texts := make([]string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := fmt.Sprintf("%d+%d+%d", i, i+1, i+2)
			st, ifc, err := AnalyzeWith[string](sum, input)
			if !st.Accepted() {
				errs[i] = fmt.Errorf("goroutine %d: expected match for %q, status %#x", i, input, uint32(st))
				return
			}
			errs[i] = err
			texts[i] = ifc.Data
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: %v", i, errs[i])
		}
		want := fmt.Sprintf("%d", i)
		if texts[i] != want {
			t.Fatalf("goroutine %d: reducer saw %q, want %q", i, texts[i], want)
		}
	}
}

// TestConcurrentPredicateReentrancy checks that a Predicate shared by every
// goroutine lets each concurrent Analyze call over the same input succeed.
func TestConcurrentPredicateReentrancy(t *testing.T) {
	node := Seq(AtLeastOne(Range('a', 'z')), Predicate(func(span []byte) bool {
		return len(span) > 0
	}))

	const n = 32
	var wg sync.WaitGroup
	results := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, err := Analyze(node, "abcdef")
			results[i] = st.Accepted() && err == nil
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		if !ok {
			t.Fatalf("goroutine %d did not see a successful match", i)
		}
	}
}
