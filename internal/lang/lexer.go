package lang

import (
	"github.com/karupanerura/minilang/internal/types"
)

type byteClass uint8

const (
	classInvalid byteClass = iota
	classDigit
	classLetter
	classEqual
	classLeftParen
	classRightParen
	classStar
	classPlus
	classMinus
	classSemicolon
	classLinebreak
	classWhitespace
)

// byteClasses maps every possible byte to its lexical class. Bytes not set
// below keep the zero value, classInvalid.
var byteClasses = func() (table [256]byteClass) {
	table['\t'] = classWhitespace
	table['\f'] = classWhitespace
	table[' '] = classWhitespace
	table['\n'] = classLinebreak
	table['\r'] = classLinebreak
	table[';'] = classSemicolon
	table['*'] = classStar
	table['-'] = classMinus
	table['+'] = classPlus
	table['='] = classEqual
	table['('] = classLeftParen
	table[')'] = classRightParen
	for b := byte('0'); b <= '9'; b++ {
		table[b] = classDigit
	}
	for b := byte('a'); b <= 'z'; b++ {
		table[b] = classLetter
	}
	for b := byte('A'); b <= 'Z'; b++ {
		table[b] = classLetter
	}
	return
}()

func isIdentByte(b byte) bool {
	return byteClasses[b] == classLetter || byteClasses[b] == classDigit || b == '_'
}

// Lexer turns a byte sequence into tokens. Tokens cover every input byte
// exactly once; unrecognized bytes are forwarded as Unknown tokens rather
// than errors, so the lexer itself never fails.
type Lexer struct {
	src  []byte
	curr int
	eof  bool
	line int
}

func NewLexer(src []byte) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
	}
}

// Lex consumes the whole input, dropping Whitespace tokens. The last token
// is always a zero-width EndOfFile.
func (l *Lexer) Lex() []Token {
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		if tok.Kind != KindWhitespace {
			tokens = append(tokens, tok)
		}
	}
}

// LexAll is Lex but preserves Whitespace tokens, for tooling that needs to
// reconstruct the source.
func (l *Lexer) LexAll() []Token {
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token. After the EndOfFile token has been emitted it
// returns ok=false forever.
func (l *Lexer) Next() (tok Token, ok bool) {
	if l.eof {
		return Token{}, false
	}
	if l.curr >= len(l.src) {
		l.eof = true
		return Token{Kind: KindEndOfFile, Begin: l.curr, End: l.curr, Line: l.line}, true
	}

	begin, line := l.curr, l.line

	var kind TokenKind
	switch byteClasses[l.src[l.curr]] {
	case classEqual:
		kind = KindEqual
		l.curr++
	case classLeftParen:
		kind = KindLeftParen
		l.curr++
	case classRightParen:
		kind = KindRightParen
		l.curr++
	case classStar:
		kind = KindStar
		l.curr++
	case classPlus:
		kind = KindPlus
		l.curr++
	case classMinus:
		kind = KindMinus
		l.curr++
	case classSemicolon:
		kind = KindSemicolon
		l.curr++
	case classDigit:
		kind = KindLiteral
		l.consumeRun(func(b byte) bool { return byteClasses[b] == classDigit })
	case classLetter:
		kind = KindIdentifier
		l.consumeRun(isIdentByte)
	case classLinebreak, classWhitespace:
		kind = KindWhitespace
		l.consumeWhitespace()
	default:
		kind = KindUnknown
		l.consumeRun(func(b byte) bool { return byteClasses[b] == classInvalid })
	}

	return Token{Kind: kind, Begin: begin, End: l.curr, Line: line}, true
}

// consumeRun consumes the current byte and the maximal run of following
// bytes accepted by the predicate.
func (l *Lexer) consumeRun(accept func(byte) bool) {
	l.curr++
	for l.curr < len(l.src) && accept(l.src[l.curr]) {
		l.curr++
	}
}

// consumeWhitespace consumes a maximal whitespace run, counting line breaks
// as it goes. A `\r\n` pair counts as a single break; a lone `\r` or `\n`
// counts as one.
func (l *Lexer) consumeWhitespace() {
	for l.curr < len(l.src) {
		b := l.src[l.curr]
		if c := byteClasses[b]; c != classWhitespace && c != classLinebreak {
			return
		}
		if b == '\n' {
			l.line++
		} else if b == '\r' && (l.curr+1 >= len(l.src) || l.src[l.curr+1] != '\n') {
			l.line++
		}
		l.curr++
	}
}

// UnknownDiagnostics converts Unknown tokens into diagnostics. Deciding that
// unrecognized bytes are fatal is the caller's responsibility, not the
// lexer's.
func UnknownDiagnostics(src []byte, tokens []Token) []types.Diagnostic {
	var diags []types.Diagnostic
	for _, tok := range tokens {
		if tok.Kind == KindUnknown {
			info := tok.Info(src)
			diags = append(diags, types.NewDiagnosticf(info.Line, info.Column, "the token `%s` is invalid", info.Literal))
		}
	}
	return diags
}
