package types_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/minilang/internal/types"
)

func TestWriteReport(t *testing.T) {
	t.Parallel()

	diags := []types.Diagnostic{
		types.NewDiagnostic("the integer `007` is invalid", 1, 5),
		types.NewDiagnosticf(3, 9, "the identifier `%s` has not yet been initialized", "q"),
	}

	var b strings.Builder
	if err := types.WriteReport(&b, "main.mini", diags); err != nil {
		t.Fatal(err)
	}

	expected := " 1) main.mini:1:5\n" +
		"\tthe integer `007` is invalid\n" +
		"\n" +
		" 2) main.mini:3:9\n" +
		"\tthe identifier `q` has not yet been initialized\n"
	if diff := cmp.Diff(expected, b.String()); diff != "" {
		t.Errorf("unexpected report (-expected, +got):\n%s", diff)
	}
}

func TestDiagnosticIsAnError(t *testing.T) {
	t.Parallel()

	var err error = types.NewDiagnostic("boom", 1, 1)
	if err.Error() != "boom" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
