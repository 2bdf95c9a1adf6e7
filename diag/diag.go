// Package diag formats a bnf parse stop as a human-readable diagnostic,
// adapting the teacher's grammar-compile diagnostic (error.SpecError:
// cause + source name + row, with the offending line read back and
// appended) to a parse-stop diagnostic instead: the position comes from
// (*bnf.Context).Tail rather than from a grammar file's line table.
package diag

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// StopError reports where in an input a parse stopped, formatted the way
// the teacher's SpecError formats a grammar-compile error: an optional
// source name, a 1-based line/column, and the offending source line.
type StopError struct {
	Cause      error
	SourceName string
	Line       int
	Col        int
	line       string
}

func (e *StopError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	fmt.Fprintf(&b, "%v:%v: ", e.Line, e.Col)
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.line != "" {
		fmt.Fprintf(&b, "\n    %v", e.line)
	}
	return b.String()
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *StopError) Unwrap() error { return e.Cause }

// errTrailing is the default Cause used when AtStop isn't given one.
var errTrailing = errors.New("unconsumed input remains")

// AtStop builds a StopError for the byte offset stop within input —
// typically the second result of (*bnf.Context).Tail after a failed or
// partial parse. sourceName may be empty (e.g. when input came from
// stdin rather than a named file, matching the teacher's own handling of
// an empty SpecError.SourceName).
func AtStop(input string, stop int, sourceName string) *StopError {
	line, col, text := locate(input, stop)
	return &StopError{
		Cause:      errTrailing,
		SourceName: sourceName,
		Line:       line,
		Col:        col,
		line:       text,
	}
}

// AtStopCause is AtStop with an explicit Cause, for a caller reporting a
// different kind of failure (a fatal Status translated by a host, say)
// anchored at the same stop position.
func AtStopCause(input string, stop int, sourceName string, cause error) *StopError {
	e := AtStop(input, stop, sourceName)
	e.Cause = cause
	return e
}

// locate converts a byte offset into a 1-based line/column and returns
// the full text of that line.
func locate(input string, stop int) (line, col int, text string) {
	if stop < 0 {
		stop = 0
	}
	if stop > len(input) {
		stop = len(input)
	}

	line = 1
	lineStart := 0
	for i := 0; i < stop; i++ {
		if input[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = stop - lineStart + 1

	lineEnd := strings.IndexByte(input[lineStart:], '\n')
	if lineEnd < 0 {
		text = input[lineStart:]
	} else {
		text = input[lineStart : lineStart+lineEnd]
	}
	return line, col, text
}
