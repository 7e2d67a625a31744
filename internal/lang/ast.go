package lang

// Operator is a binary arithmetic operator.
type Operator int

const (
	OpPlus Operator = iota
	OpMinus
	OpMultiply
)

var operatorNames = [...]string{
	OpPlus:     "+",
	OpMinus:    "-",
	OpMultiply: "*",
}

func (op Operator) String() string {
	return operatorNames[op]
}

// Sign is a unary prefix operator. It is a separate type from Operator so
// that a unary multiply cannot be constructed at all.
type Sign int

const (
	SignPlus Sign = iota
	SignMinus
)

func (s Sign) String() string {
	if s == SignMinus {
		return "-"
	}
	return "+"
}

// Node is implemented by every AST node. The node set is closed: the parser
// is the only producer.
type Node interface {
	node()
}

// Program is the root node: the assignments of a source file in order.
type Program struct {
	Assignments []*Assignment
}

// Assignment binds the value of an expression to an identifier.
type Assignment struct {
	Target *Identifier
	Value  Node
}

// Term is a binary arithmetic node. Left-associative chains of `+`, `-` and
// `*` are folded into nested Terms with the operator chain's left operand at
// the bottom.
type Term struct {
	Left  Node
	Op    Operator
	Right Node
}

// Fact wraps a parenthesized expression or a sign-prefixed fact.
type Fact struct {
	Inner Node
}

// UnaryOp applies a prefix sign to a fact.
type UnaryOp struct {
	Sign    Sign
	Operand Node
}

// Identifier is a variable reference (or assignment target), carrying its
// source position for diagnostics.
type Identifier struct {
	Name  string
	Begin int
	End   int
	Line  int
}

// Literal is an integer literal.
type Literal struct {
	Value int64
	Begin int
	End   int
	Line  int
}

func (*Program) node()    {}
func (*Assignment) node() {}
func (*Term) node()       {}
func (*Fact) node()       {}
func (*UnaryOp) node()    {}
func (*Identifier) node() {}
func (*Literal) node()    {}
