package lang

import (
	"fmt"

	"github.com/karupanerura/minilang/internal/types"
)

// Evaluator walks a parsed Program and fills in a variable table. It trusts
// the parser: syntax is not re-validated.
//
// Arithmetic is 64-bit two's complement; `+`, `-`, `*` and unary negation
// wrap on overflow.
type Evaluator struct {
	// Bindings receives the variables. Pre-seeded entries act as already
	// initialized variables.
	Bindings *types.Bindings

	src []byte
}

// NewEvaluator creates an evaluator with an empty variable table. The source
// is needed to resolve diagnostic positions.
func NewEvaluator(src []byte) *Evaluator {
	return &Evaluator{
		Bindings: types.NewBindings(),
		src:      src,
	}
}

// Evaluate runs the program's assignments in source order. The whole tree is
// always walked, even after a diagnostic, so one pass surfaces every
// uninitialized-variable use. The returned list is empty on success.
func (e *Evaluator) Evaluate(prog *Program) []types.Diagnostic {
	var diags []types.Diagnostic
	for _, asn := range prog.Assignments {
		value := e.eval(asn.Value, &diags)
		e.Bindings.Set(asn.Target.Name, value)
	}
	return diags
}

func (e *Evaluator) eval(node Node, diags *[]types.Diagnostic) int64 {
	switch n := node.(type) {
	case *Term:
		// Evaluate both sides before combining so that diagnostics from the
		// right side are not lost to one on the left.
		left := e.eval(n.Left, diags)
		right := e.eval(n.Right, diags)
		switch n.Op {
		case OpPlus:
			return left + right
		case OpMinus:
			return left - right
		default:
			return left * right
		}

	case *Fact:
		return e.eval(n.Inner, diags)

	case *UnaryOp:
		v := e.eval(n.Operand, diags)
		if n.Sign == SignMinus {
			return -v
		}
		return v

	case *Identifier:
		if v, ok := e.Bindings.Get(n.Name); ok {
			return v
		}
		*diags = append(*diags, types.NewDiagnosticf(n.Line, columnAt(e.src, n.Begin), "the identifier `%s` has not yet been initialized", n.Name))
		// Substitute zero so the surrounding expression still evaluates.
		return 0

	case *Literal:
		return n.Value

	default:
		panic(fmt.Sprintf("unexpected node %T in expression position", node))
	}
}
