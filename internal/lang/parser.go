package lang

import (
	"strconv"

	"github.com/karupanerura/minilang/internal/types"
)

// MaxNestingDepth bounds how deeply parenthesized and sign-prefixed facts
// may nest. Parsing and evaluation both recurse by grammar shape, so the
// bound keeps pathological inputs from exhausting the call stack.
const MaxNestingDepth = 200

// Parser builds a Program from a token sequence by recursive descent.
//
// The parser is fail-slow: it recovers from each malformed construct and
// keeps parsing subsequent assignments, so one run surfaces every defect.
// Diagnostics accumulate; an assignment whose identifier and expression both
// parsed is kept even when other parts of it were reported.
type Parser struct {
	src    []byte
	tokens []Token
	pos    int
	depth  int
	diags  []types.Diagnostic

	// done is set when a missing semicolon coincides with the end of input,
	// the one case where the rest of the program is abandoned.
	done bool
}

func NewParser(src []byte) *Parser {
	return NewParserFromTokens(src, NewLexer(src).Lex())
}

func NewParserFromTokens(src []byte, tokens []Token) *Parser {
	if len(tokens) == 0 {
		tokens = []Token{{Kind: KindEndOfFile, Line: 1}}
	}
	return &Parser{
		src:    src,
		tokens: tokens,
	}
}

// Parse is a shorthand for NewParser(src).Parse().
func Parse(src []byte) (*Program, []types.Diagnostic) {
	return NewParser(src).Parse()
}

// Parse parses the whole token sequence. The returned Program omits
// assignments that could not be recovered; the caller should treat a
// non-empty diagnostics list as overall failure regardless.
func (p *Parser) Parse() (*Program, []types.Diagnostic) {
	prog := &Program{}
	for !p.done {
		tok := p.next()
		if tok.Kind == KindEndOfFile {
			break
		}
		if asn := p.parseAssignment(tok); asn != nil {
			prog.Assignments = append(prog.Assignments, asn)
		}
	}
	return prog, p.diags
}

// parseAssignment parses `Identifier '=' Expression ';'` starting from the
// already-consumed first token. It returns nil when the identifier or the
// expression failed; the diagnostics are recorded either way.
func (p *Parser) parseAssignment(first Token) *Assignment {
	if first.Kind != KindIdentifier {
		info := first.Info(p.src)
		p.report(info.Line, info.Column, "expected `Identifier`, but got `%s` (`%s`)", first.Kind, info.Literal)
		return nil
	}
	target := &Identifier{
		Name:  first.Text(p.src),
		Begin: first.Begin,
		End:   first.End,
		Line:  first.Line,
	}

	if !p.expectEqual(first) {
		return nil
	}

	value, ok := p.parseExprRecover()
	p.expectSemicolon()
	if !ok {
		return nil
	}

	return &Assignment{Target: target, Value: value}
}

// expectEqual consumes the `=` after the assignment target. When it is
// missing, the diagnostic points at the offending token if one exists on the
// identifier's line, and just past the identifier otherwise; the offending
// token is left for statement-level recovery.
func (p *Parser) expectEqual(ident Token) bool {
	if p.current().Kind == KindEqual {
		p.advance()
		return true
	}

	name := ident.Text(p.src)
	if tok := p.current(); tok.Kind != KindEndOfFile && tok.Line == ident.Line {
		info := tok.Info(p.src)
		p.report(info.Line, info.Column, "expected `Equal` after `%s`, but got `%s`", name, tok.Kind)
	} else {
		p.report(ident.Line, columnAt(p.src, ident.End), "expected `Equal` after `%s`", name)
	}
	return false
}

// expectSemicolon consumes the `;` terminating an assignment. A missing
// semicolon is reported just past the last consumed token; if the input ends
// there, the rest of the program is abandoned.
func (p *Parser) expectSemicolon() {
	if p.current().Kind == KindSemicolon {
		p.advance()
		return
	}

	prev := p.previous()
	if tok := p.current(); tok.Kind == KindEndOfFile {
		p.report(prev.Line, columnAt(p.src, prev.End), "expected `Semicolon` after `%s`, but got end of input", prev.Text(p.src))
		p.done = true
	} else {
		p.report(prev.Line, columnAt(p.src, prev.End), "expected `Semicolon` after `%s`, but got `%s`", prev.Text(p.src), tok.Kind)
	}
}

// parseExprRecover parses an expression and, on failure, rewinds the cursor
// by one token unless it sits on EndOfFile or Semicolon. The rewind keeps a
// token that statement-level recovery still needs (typically the `;` or the
// start of the next assignment) from being lost.
func (p *Parser) parseExprRecover() (Node, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		if k := p.current().Kind; k != KindEndOfFile && k != KindSemicolon {
			p.rewind()
		}
	}
	return expr, ok
}

// parseExpr parses `Term (('+' | '-') Term)*`, folding the chain left.
func (p *Parser) parseExpr() (Node, bool) {
	left, ok := p.parseTerm()
	if !ok {
		return nil, false
	}
	for {
		var op Operator
		switch p.current().Kind {
		case KindPlus:
			op = OpPlus
		case KindMinus:
			op = OpMinus
		default:
			return left, true
		}
		p.advance()

		right, ok := p.parseTerm()
		if !ok {
			return nil, false
		}
		left = &Term{Left: left, Op: op, Right: right}
	}
}

// parseTerm parses `Fact ('*' Fact)*`, folding the chain left.
func (p *Parser) parseTerm() (Node, bool) {
	left, ok := p.parseFact()
	if !ok {
		return nil, false
	}
	for p.current().Kind == KindStar {
		p.advance()

		right, ok := p.parseFact()
		if !ok {
			return nil, false
		}
		left = &Term{Left: left, Op: OpMultiply, Right: right}
	}
	return left, true
}

// parseFact parses the tightest-binding unit: a literal, an identifier, a
// parenthesized expression, or a sign-prefixed fact. An unexpected token is
// consumed to guarantee forward progress; at EndOfFile nothing is consumed
// and the diagnostic points one column past the last token.
func (p *Parser) parseFact() (Node, bool) {
	tok := p.current()
	if tok.Kind == KindEndOfFile {
		prev := p.previous()
		p.report(prev.Line, columnAt(p.src, prev.End), "expected `Literal | Identifier | LeftParen | Minus | Plus`, but got end of input")
		return nil, false
	}
	p.advance()

	switch tok.Kind {
	case KindLiteral:
		return p.parseLiteral(tok)
	case KindIdentifier:
		return &Identifier{
			Name:  tok.Text(p.src),
			Begin: tok.Begin,
			End:   tok.End,
			Line:  tok.Line,
		}, true
	case KindLeftParen:
		return p.parseParen(tok)
	case KindPlus, KindMinus:
		return p.parseSigned(tok)
	default:
		info := tok.Info(p.src)
		p.report(info.Line, info.Column, "unexpected `%s` (`%s`) found when parsing fact", tok.Kind, info.Literal)
		return nil, false
	}
}

// parseLiteral validates an already-consumed integer literal token. Invalid
// literals are reported but yield a zero-valued node so that construction of
// the surrounding expression continues.
func (p *Parser) parseLiteral(tok Token) (Node, bool) {
	info := tok.Info(p.src)
	node := &Literal{Begin: tok.Begin, End: tok.End, Line: tok.Line}

	if len(info.Literal) > 1 && info.Literal[0] == '0' {
		p.report(info.Line, info.Column, "the integer `%s` is invalid: literals must be either 0 or start with a non-zero digit", info.Literal)
		return node, true
	}

	v, err := strconv.ParseInt(info.Literal, 10, 64)
	if err != nil {
		// The token is all digits, so the only way to fail is range.
		p.report(info.Line, info.Column, "the integer `%s` is out of range: literals must fit in a 64-bit signed integer", info.Literal)
		return node, true
	}
	node.Value = v
	return node, true
}

// parseParen parses the expression after an already-consumed `(` and its
// closing `)`.
func (p *Parser) parseParen(open Token) (Node, bool) {
	if !p.enterNesting(open) {
		return nil, false
	}
	defer p.leaveNesting()

	expr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	if tok := p.current(); tok.Kind != KindRightParen {
		if tok.Kind == KindEndOfFile {
			prev := p.previous()
			p.report(prev.Line, columnAt(p.src, prev.End), "expected `RightParen` after `%s`, but got end of input", prev.Text(p.src))
		} else {
			info := tok.Info(p.src)
			p.report(info.Line, info.Column, "expected `RightParen`, but got `%s` (`%s`)", tok.Kind, info.Literal)
		}
		return nil, false
	}
	p.advance()

	return &Fact{Inner: expr}, true
}

// parseSigned parses the fact after an already-consumed `+` or `-`.
func (p *Parser) parseSigned(tok Token) (Node, bool) {
	if !p.enterNesting(tok) {
		return nil, false
	}
	defer p.leaveNesting()

	operand, ok := p.parseFact()
	if !ok {
		return nil, false
	}

	sign := SignPlus
	if tok.Kind == KindMinus {
		sign = SignMinus
	}
	return &Fact{Inner: &UnaryOp{Sign: sign, Operand: operand}}, true
}

func (p *Parser) enterNesting(tok Token) bool {
	if p.depth == MaxNestingDepth {
		info := tok.Info(p.src)
		p.report(info.Line, info.Column, "the expression is too deeply nested: at most %d levels are supported", MaxNestingDepth)
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leaveNesting() {
	p.depth--
}

// next returns the token under the cursor and advances.
func (p *Parser) next() Token {
	tok := p.current()
	p.advance()
	return tok
}

// current returns the token under the cursor. Once the cursor passes the end
// it keeps returning the EndOfFile token.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// previous returns the most recently consumed token.
func (p *Parser) previous() Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) rewind() {
	if p.pos > 0 {
		p.pos--
	}
}

func (p *Parser) report(line, column int, format string, args ...any) {
	p.diags = append(p.diags, types.NewDiagnosticf(line, column, format, args...))
}
