package expression

import (
	"fmt"

	"github.com/karupanerura/exprsuite/internal/types"
)

// singleCharTokenKinds is the read-only token pattern table for the
// single character tokens, built once at startup.
var singleCharTokenKinds = map[byte]tokenKind{
	'+': plusToken,
	'-': minusToken,
	'*': starToken,
	'/': slashToken,
	'(': leftParenToken,
	')': rightParenToken,
}

// lexer scans tokens on demand as the parser pulls them. It holds no
// parse state; restarting means constructing a new lexer.
type lexer struct {
	source string
	index  int
}

func newLexer(source string) *lexer {
	return &lexer{
		source: source,
		index:  0,
	}
}

func (l *lexer) consume() (token, error) {
	for l.index != len(l.source) {
		c := l.source[l.index]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			l.index++ // just skip white spaces

		case isDigit(c):
			return l.consumeNumericLiteral(), nil

		case isIdentifierHead(c):
			return l.consumeIdentifier(), nil

		default:
			if kind, ok := singleCharTokenKinds[c]; ok {
				l.index++
				return token{kind: kind, beginsPos: l.index - 1, endsPos: l.index}, nil
			}
			return token{}, &types.Error{
				Tag:   types.LexErrorTag,
				Err:   fmt.Errorf("invalid character %q at %d", c, l.index),
				Extra: map[string]any{"position": l.index},
			}
		}
	}

	return token{kind: eofToken, beginsPos: l.index, endsPos: l.index}, nil
}

// consumeNumericLiteral matches greedily: digits with at most one
// decimal point, and only when digits follow it. A trailing dot is
// left in the source for the next consume to reject.
func (l *lexer) consumeNumericLiteral() token {
	beginsPos := l.index
	for l.index != len(l.source) && isDigit(l.source[l.index]) {
		l.index++
	}
	if l.index+1 < len(l.source) && l.source[l.index] == '.' && isDigit(l.source[l.index+1]) {
		l.index += 2
		for l.index != len(l.source) && isDigit(l.source[l.index]) {
			l.index++
		}
	}
	return token{kind: numberToken, beginsPos: beginsPos, endsPos: l.index}
}

func (l *lexer) consumeIdentifier() token {
	beginsPos := l.index
	for l.index != len(l.source) && isIdentifierTail(l.source[l.index]) {
		l.index++
	}
	return token{kind: identifierToken, beginsPos: beginsPos, endsPos: l.index}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentifierHead(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isIdentifierTail(c byte) bool {
	return isIdentifierHead(c) || isDigit(c)
}
