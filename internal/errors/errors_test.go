package errors

import (
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestKeywordTypo(t *testing.T) {
	tests := []struct {
		ident string
		want  string
	}{
		{"elseif", "elif"},
		{"elsif", "elif"},
		{"define", "def"},
		{"function", "def"},
		{"func", "def"},
		{"cls", "class"},
		{"switch", "match"},
		{"foreach", "for"},
		{"until", "while not"},
		{"unless", "if not"},
	}

	for _, tt := range tests {
		got := KeywordTypo(tt.ident)
		if !strings.Contains(got, tt.want) {
			t.Errorf("KeywordTypo(%q) = %q, should contain %q", tt.ident, got, tt.want)
		}
	}

	if got := KeywordTypo("banana"); got != "" {
		t.Errorf("KeywordTypo(banana) = %q, want empty", got)
	}
}

func TestNearbyKeyword(t *testing.T) {
	if got := NearbyKeyword("whlie"); !strings.Contains(got, "while") {
		t.Errorf("NearbyKeyword(whlie) = %q", got)
	}
	if got := NearbyKeyword("retrun"); !strings.Contains(got, "return") {
		t.Errorf("NearbyKeyword(retrun) = %q", got)
	}
	// Exact keywords and far-away names produce nothing.
	if got := NearbyKeyword("while"); got != "" {
		t.Errorf("NearbyKeyword(while) = %q, want empty", got)
	}
	if got := NearbyKeyword("xyzzyzzy"); got != "" {
		t.Errorf("NearbyKeyword(xyzzyzzy) = %q, want empty", got)
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"count", "counter", "total"}

	if got := FindSimilar("cuont", candidates, 2); got != "count" {
		t.Errorf("FindSimilar(cuont) = %q, want count", got)
	}
	if got := FindSimilar("count", candidates, 2); got != "" {
		t.Errorf("FindSimilar with exact match = %q, want empty", got)
	}
	if got := FindSimilar("zzz", candidates, 2); got != "" {
		t.Errorf("FindSimilar(zzz) = %q, want empty", got)
	}
	if got := FindSimilar("anything", nil, 2); got != "" {
		t.Errorf("FindSimilar with no candidates = %q", got)
	}
}

func TestFormatter(t *testing.T) {
	source := "x = 5\nif y\n    pass\n"
	diag := &CompileError{
		Code:    E0101,
		Level:   LevelError,
		Message: "Expected ':' after if condition, found newline",
		File:    "demo.mamba",
		Line:    2,
		Column:  5,
		Hints:   []string{"add ':' at the end of the line"},
	}

	f := NewFormatter()
	f.Colors = false
	out := f.Format(diag, strings.Split(source, "\n"))

	for _, want := range []string{
		"error[E0101]",
		"demo.mamba:2:5",
		"if y",
		"^",
		"= help:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestFormatterTabExpansion(t *testing.T) {
	f := NewFormatter()
	f.Colors = false
	diag := &CompileError{
		Code: E0100, Level: LevelError, Message: "m",
		File: "t.mamba", Line: 1, Column: 2,
	}
	out := f.Format(diag, []string{"\tx = 1"})
	if strings.Contains(out, "\t") {
		t.Errorf("tabs should be expanded:\n%s", out)
	}
}

func TestCombine(t *testing.T) {
	if Combine(nil) != nil {
		t.Error("Combine(nil) should be nil")
	}

	errs := []*CompileError{
		{Code: E0001, Level: LevelError, Message: "first", File: "f", Line: 1, Column: 1},
		{Code: E0100, Level: LevelError, Message: "second", File: "f", Line: 2, Column: 1},
	}
	combined := Combine(errs)
	if combined == nil {
		t.Fatal("expected a combined error")
	}
	if got := len(multierr.Errors(combined)); got != 2 {
		t.Errorf("expected 2 unwrapped errors, got %d", got)
	}
}
