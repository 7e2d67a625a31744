package lang_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/minilang/internal/lang"
	"github.com/karupanerura/minilang/internal/types"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source   string
		expected *lang.Program
	}{
		{
			source:   "",
			expected: &lang.Program{},
		},
		{
			source:   "  \n\t ",
			expected: &lang.Program{},
		},
		{
			source: "a = (1 + 2) * 3;",
			expected: &lang.Program{
				Assignments: []*lang.Assignment{
					{
						Target: &lang.Identifier{Name: "a", Begin: 0, End: 1, Line: 1},
						Value: &lang.Term{
							Left: &lang.Fact{
								Inner: &lang.Term{
									Left:  &lang.Literal{Value: 1, Begin: 5, End: 6, Line: 1},
									Op:    lang.OpPlus,
									Right: &lang.Literal{Value: 2, Begin: 9, End: 10, Line: 1},
								},
							},
							Op:    lang.OpMultiply,
							Right: &lang.Literal{Value: 3, Begin: 14, End: 15, Line: 1},
						},
					},
				},
			},
		},
		{
			source: "x=1;y=x;",
			expected: &lang.Program{
				Assignments: []*lang.Assignment{
					{
						Target: &lang.Identifier{Name: "x", Begin: 0, End: 1, Line: 1},
						Value:  &lang.Literal{Value: 1, Begin: 2, End: 3, Line: 1},
					},
					{
						Target: &lang.Identifier{Name: "y", Begin: 4, End: 5, Line: 1},
						Value:  &lang.Identifier{Name: "x", Begin: 6, End: 7, Line: 1},
					},
				},
			},
		},
		{
			source: "v = --2;",
			expected: &lang.Program{
				Assignments: []*lang.Assignment{
					{
						Target: &lang.Identifier{Name: "v", Begin: 0, End: 1, Line: 1},
						Value: &lang.Fact{
							Inner: &lang.UnaryOp{
								Sign: lang.SignMinus,
								Operand: &lang.Fact{
									Inner: &lang.UnaryOp{
										Sign:    lang.SignMinus,
										Operand: &lang.Literal{Value: 2, Begin: 6, End: 7, Line: 1},
									},
								},
							},
						},
					},
				},
			},
		},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			prog, diags := lang.Parse([]byte(tt.source))
			if len(diags) != 0 {
				t.Fatalf("expected no diagnostics but got %+v", diags)
			}
			if diff := cmp.Diff(tt.expected, prog); diff != "" {
				t.Errorf("unexpected AST (-expected, +got):\n%s", diff)
			}
		})
	}
}

func TestParseRecovery(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source          string
		wantAssignments int
		wantDiags       []types.Diagnostic
	}{
		{
			source:          "a = 1; b = 2; c = 3;",
			wantAssignments: 3,
		},
		{
			source:          "x = 007;",
			wantAssignments: 1,
			wantDiags: []types.Diagnostic{
				{Message: "the integer `007` is invalid: literals must be either 0 or start with a non-zero digit", Line: 1, Column: 5},
			},
		},
		{
			source:          "y = 99999999999999999999;",
			wantAssignments: 1,
			wantDiags: []types.Diagnostic{
				{Message: "the integer `99999999999999999999` is out of range: literals must fit in a 64-bit signed integer", Line: 1, Column: 5},
			},
		},
		{
			// Recovery across the statement boundary: the empty expression is
			// reported once and `b` still parses.
			source:          "a = ; b = 5;",
			wantAssignments: 1,
			wantDiags: []types.Diagnostic{
				{Message: "unexpected `Semicolon` (`;`) found when parsing fact", Line: 1, Column: 5},
			},
		},
		{
			source:          "a = 1 + ; b = 2;",
			wantAssignments: 1,
			wantDiags: []types.Diagnostic{
				{Message: "unexpected `Semicolon` (`;`) found when parsing fact", Line: 1, Column: 9},
			},
		},
		{
			// The assignment is kept: identifier and expression both parsed.
			source:          "a = 1",
			wantAssignments: 1,
			wantDiags: []types.Diagnostic{
				{Message: "expected `Semicolon` after `1`, but got end of input", Line: 1, Column: 6},
			},
		},
		{
			// The next token is on another line, so the diagnostic points
			// just past the identifier.
			source:          "a\nb = 1;",
			wantAssignments: 1,
			wantDiags: []types.Diagnostic{
				{Message: "expected `Equal` after `a`", Line: 1, Column: 2},
			},
		},
		{
			source:          "a 5;",
			wantAssignments: 0,
			wantDiags: []types.Diagnostic{
				{Message: "expected `Equal` after `a`, but got `Literal`", Line: 1, Column: 3},
				{Message: "expected `Identifier`, but got `Literal` (`5`)", Line: 1, Column: 3},
				{Message: "expected `Identifier`, but got `Semicolon` (`;`)", Line: 1, Column: 4},
			},
		},
		{
			source:          "a = (1 + 2;",
			wantAssignments: 0,
			wantDiags: []types.Diagnostic{
				{Message: "expected `RightParen`, but got `Semicolon` (`;`)", Line: 1, Column: 11},
			},
		},
		{
			source:          "x = (2; y = 3;",
			wantAssignments: 1,
			wantDiags: []types.Diagnostic{
				{Message: "expected `RightParen`, but got `Semicolon` (`;`)", Line: 1, Column: 7},
			},
		},
		{
			source:          "a = ",
			wantAssignments: 0,
			wantDiags: []types.Diagnostic{
				{Message: "expected `Literal | Identifier | LeftParen | Minus | Plus`, but got end of input", Line: 1, Column: 4},
				{Message: "expected `Semicolon` after `=`, but got end of input", Line: 1, Column: 4},
			},
		},
		{
			source:          "x = 1;\nyy 2;",
			wantAssignments: 1,
			wantDiags: []types.Diagnostic{
				{Message: "expected `Equal` after `yy`, but got `Literal`", Line: 2, Column: 4},
				{Message: "expected `Identifier`, but got `Literal` (`2`)", Line: 2, Column: 4},
				{Message: "expected `Identifier`, but got `Semicolon` (`;`)", Line: 2, Column: 5},
			},
		},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			prog, diags := lang.Parse([]byte(tt.source))
			if diff := cmp.Diff(tt.wantDiags, diags); diff != "" {
				t.Errorf("unexpected diagnostics (-expected, +got):\n%s", diff)
			}
			if len(prog.Assignments) != tt.wantAssignments {
				t.Errorf("expected %d assignments but got %d", tt.wantAssignments, len(prog.Assignments))
			}
		})
	}
}

func TestParseNestingDepth(t *testing.T) {
	t.Parallel()

	t.Run("within the limit", func(t *testing.T) {
		t.Parallel()

		source := "a = " + strings.Repeat("(", 150) + "1" + strings.Repeat(")", 150) + ";"
		prog, diags := lang.Parse([]byte(source))
		if len(diags) != 0 {
			t.Fatalf("expected no diagnostics but got %+v", diags)
		}
		if len(prog.Assignments) != 1 {
			t.Errorf("expected 1 assignment but got %d", len(prog.Assignments))
		}
	})

	t.Run("over the limit", func(t *testing.T) {
		t.Parallel()

		source := "a = " + strings.Repeat("(", lang.MaxNestingDepth+50) + "1"
		prog, diags := lang.Parse([]byte(source))
		if len(diags) == 0 {
			t.Fatal("expected diagnostics")
		}
		if !strings.Contains(diags[0].Message, "too deeply nested") {
			t.Errorf("expected a nesting diagnostic but got %q", diags[0].Message)
		}
		if len(prog.Assignments) != 0 {
			t.Errorf("expected 0 assignments but got %d", len(prog.Assignments))
		}
	})

	t.Run("deep sign chain over the limit", func(t *testing.T) {
		t.Parallel()

		source := "a = " + strings.Repeat("-", lang.MaxNestingDepth+50) + "1;"
		_, diags := lang.Parse([]byte(source))
		if len(diags) == 0 {
			t.Fatal("expected diagnostics")
		}
		if !strings.Contains(diags[0].Message, "too deeply nested") {
			t.Errorf("expected a nesting diagnostic but got %q", diags[0].Message)
		}
	})

	t.Run("long flat chains are fine", func(t *testing.T) {
		t.Parallel()

		source := "a = 1" + strings.Repeat(" + 1", 50000) + ";"
		prog, diags := lang.Parse([]byte(source))
		if len(diags) != 0 {
			t.Fatalf("expected no diagnostics but got %+v", diags)
		}
		if len(prog.Assignments) != 1 {
			t.Errorf("expected 1 assignment but got %d", len(prog.Assignments))
		}
	})
}

func FuzzParse(f *testing.F) {
	f.Add("a = (1 + 2) * 3;")
	f.Add("a = ; b = 5;")
	f.Add("x = 007;")
	f.Fuzz(func(t *testing.T, source string) {
		src := []byte(source)

		tokens := lang.NewLexer(src).LexAll()
		offset := 0
		for _, tok := range tokens {
			if tok.Begin != offset {
				t.Fatalf("token %+v does not start at offset %d", tok, offset)
			}
			offset = tok.End
		}
		if offset != len(src) {
			t.Fatalf("tokens cover %d of %d bytes", offset, len(src))
		}

		prog, _ := lang.Parse(src)
		lang.NewEvaluator(src).Evaluate(prog)
	})
}
