package lang

import (
	"bytes"
	"fmt"
)

// TokenKind represents the kind of token.
type TokenKind int

const (
	// KindLiteral is an integer literal.
	KindLiteral TokenKind = iota
	// KindIdentifier is an identifier. Identifiers start with a letter and
	// may continue with letters, digits and `_`.
	KindIdentifier
	// KindEqual is the literal character `=`.
	KindEqual
	// KindLeftParen is the literal character `(`.
	KindLeftParen
	// KindRightParen is the literal character `)`.
	KindRightParen
	// KindStar is the literal character `*`.
	KindStar
	// KindPlus is the literal character `+`.
	KindPlus
	// KindMinus is the literal character `-`.
	KindMinus
	// KindSemicolon is the literal character `;`.
	KindSemicolon
	// KindWhitespace is a run of whitespace characters (` `, `\t`, `\f`,
	// `\r`, `\n`).
	KindWhitespace
	// KindUnknown is a run of unrecognized characters.
	KindUnknown
	// KindEndOfFile marks the end of the input source.
	KindEndOfFile
)

var tokenKindNames = [...]string{
	KindLiteral:    "Literal",
	KindIdentifier: "Identifier",
	KindEqual:      "Equal",
	KindLeftParen:  "LeftParen",
	KindRightParen: "RightParen",
	KindStar:       "Star",
	KindPlus:       "Plus",
	KindMinus:      "Minus",
	KindSemicolon:  "Semicolon",
	KindWhitespace: "Whitespace",
	KindUnknown:    "Unknown",
	KindEndOfFile:  "EndOfFile",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a minimal lexical unit: a kind plus the half-open byte range
// [Begin, End) it covers and the 1-based line its first byte is on.
type Token struct {
	Kind  TokenKind
	Begin int
	End   int
	Line  int
}

// Text returns the source bytes the token covers.
func (t Token) Text(src []byte) string {
	return string(src[t.Begin:t.End])
}

// TokenInfo is position information about a Token, resolved against the
// source it was lexed from.
type TokenInfo struct {
	Line    int
	Column  int
	Literal string
}

// Info resolves the token's 1-based line/column and literal text.
func (t Token) Info(src []byte) TokenInfo {
	return TokenInfo{
		Line:    t.Line,
		Column:  columnAt(src, t.Begin),
		Literal: t.Text(src),
	}
}

// columnAt returns the 1-based column of the byte at offset, measured from
// the start of the line containing it. A line starts after the last `\n` or
// lone `\r`, matching the breaks the lexer counts. A `\r` of a `\r\n` pair
// is never the last break before a token boundary: the `\n` follows it.
func columnAt(src []byte, offset int) int {
	return offset - bytes.LastIndexAny(src[:offset], "\r\n")
}
