package types

import (
	"fmt"
	"io"
)

// Diagnostic is a recoverable defect found in a source program. It is plain
// data: the component that found it keeps going, and only the driver decides
// whether any diagnostics mean overall failure.
type Diagnostic struct {
	Message string
	Line    int // 1-based
	Column  int // 1-based, measured from the start of the line
}

var _ error = Diagnostic{}

func NewDiagnostic(message string, line, column int) Diagnostic {
	return Diagnostic{
		Message: message,
		Line:    line,
		Column:  column,
	}
}

func NewDiagnosticf(line, column int, format string, args ...any) Diagnostic {
	return NewDiagnostic(fmt.Sprintf(format, args...), line, column)
}

func (d Diagnostic) Error() string {
	return d.Message
}

// WriteReport renders diagnostics as a 1-indexed listing, one entry per
// diagnostic with a blank line between entries:
//
//	 1) main.mini:3:5
//	 	the identifier `x` has not yet been initialized
func WriteReport(w io.Writer, sourceName string, diags []Diagnostic) error {
	for i, d := range diags {
		if i != 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("fmt.Fprintln: %w", err)
			}
		}
		_, err := fmt.Fprintf(w, "%2d) %s:%d:%d\n\t%s\n", i+1, sourceName, d.Line, d.Column, d.Message)
		if err != nil {
			return fmt.Errorf("fmt.Fprintf: %w", err)
		}
	}
	return nil
}
