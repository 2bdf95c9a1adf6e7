package diag

import (
	"errors"
	"strings"
	"testing"
)

func TestAtStopLocatesLineAndColumn(t *testing.T) {
	input := "name=value\n[section]\nkey=bad\n"
	stop := strings.Index(input, "bad")

	e := AtStop(input, stop, "config.ini")
	if e.Line != 3 {
		t.Fatalf("Line = %v, want 3", e.Line)
	}
	if e.Col != 5 {
		t.Fatalf("Col = %v, want 5", e.Col)
	}
	if e.line != "key=bad" {
		t.Fatalf("line = %q, want %q", e.line, "key=bad")
	}
}

func TestAtStopFormatsWithoutSourceName(t *testing.T) {
	e := AtStop("ab", 1, "")
	if strings.HasPrefix(e.Error(), ":") {
		t.Fatalf("Error() = %q, did not expect a leading source-name separator", e.Error())
	}
	if !strings.Contains(e.Error(), "unconsumed input remains") {
		t.Fatalf("Error() = %q, want it to mention the default cause", e.Error())
	}
}

func TestAtStopCauseOverridesCauseAndUnwraps(t *testing.T) {
	cause := errors.New("boom")
	e := AtStopCause("ab", 1, "src", cause)
	if !errors.Is(e, cause) {
		t.Fatalf("errors.Is(e, cause) = false, want true")
	}
	if !strings.Contains(e.Error(), "src:") {
		t.Fatalf("Error() = %q, want it to include the source name", e.Error())
	}
}

func TestAtStopClampsOutOfRangeOffsets(t *testing.T) {
	input := "abc"
	e := AtStop(input, 100, "")
	if e.Line != 1 || e.Col != len(input)+1 {
		t.Fatalf("Line/Col = %v/%v, want 1/%v", e.Line, e.Col, len(input)+1)
	}
}
