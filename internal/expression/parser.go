package expression

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
	"github.com/karupanerura/exprsuite/internal/types"
)

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("EXPRSUITE_EXPRESSION_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

// parser is a recursive descent parser with one token of lookahead.
// Precedence is encoded by the grammar layering:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := '(' expr ')' | NUMBER | IDENTIFIER
type parser struct {
	source    string
	lex       *lexer
	lookahead token
	debug     bool
}

func Parse(source string) (Node, error) {
	p := &parser{source: source, debug: parserDebugLog}
	return p.parse()
}

func ParseWithDebugOutput(source string) (Node, error) {
	p := &parser{source: source, debug: true}
	return p.parse()
}

func (p *parser) parse() (Node, error) {
	p.lex = newLexer(p.source)
	if err := p.advance(); err != nil {
		return nil, err
	}

	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.lookahead.kind != eofToken {
		if p.debug {
			log.Println("not consumed token: ", p.extractLiteralString(p.lookahead))
		}
		return nil, p.createTrailingTokenError(p.lookahead)
	}

	if p.debug {
		pp.Println(p.source)
		log.Println(Render(node))
	}

	return node, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.consume()
	if err != nil {
		return err
	}
	p.lookahead = tok
	return nil
}

// expect consumes the lookahead token if it has the given kind.
func (p *parser) expect(kind tokenKind) (token, error) {
	if p.lookahead.kind != kind {
		return token{}, p.createUnexpectedTokenError(kind, p.lookahead)
	}

	tok := p.lookahead
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return tok, nil
}

// expr folds '+' and '-' chains left to right: a - b - c builds
// ((a-b)-c).
func (p *parser) expr() (Node, error) {
	node, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.lookahead.kind == plusToken || p.lookahead.kind == minusToken {
		op := OpAdd
		if p.lookahead.kind == minusToken {
			op = OpSub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.term()
		if err != nil {
			return nil, err
		}
		node = &BinaryOp{Operator: op, Left: node, Right: right}
	}
	return node, nil
}

func (p *parser) term() (Node, error) {
	node, err := p.factor()
	if err != nil {
		return nil, err
	}

	for p.lookahead.kind == starToken || p.lookahead.kind == slashToken {
		op := OpMul
		if p.lookahead.kind == slashToken {
			op = OpDiv
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		node = &BinaryOp{Operator: op, Left: node, Right: right}
	}
	return node, nil
}

func (p *parser) factor() (Node, error) {
	switch p.lookahead.kind {
	case leftParenToken:
		if err := p.advance(); err != nil {
			return nil, err
		}
		node, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(rightParenToken); err != nil {
			return nil, err
		}
		return node, nil

	case numberToken:
		tok := p.lookahead
		if err := p.advance(); err != nil {
			return nil, err
		}
		return newNumberLiteral(p.extractLiteralString(tok))

	case identifierToken:
		tok := p.lookahead
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Identifier{Name: p.extractLiteralString(tok)}, nil

	default:
		return nil, p.createUnexpectedFactorError(p.lookahead)
	}
}

func (p *parser) extractLiteralString(t token) string {
	return p.source[t.beginsPos:t.endsPos]
}

func (p *parser) describeToken(t token) string {
	if t.kind == eofToken {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.kind, p.extractLiteralString(t))
}

func (p *parser) createUnexpectedTokenError(expected tokenKind, actual token) error {
	return &types.Error{
		Tag: types.ParseErrorTag,
		Err: fmt.Errorf("expected %s but got %s at %d: expr=%q", expected, p.describeToken(actual), actual.beginsPos+1, p.source),
	}
}

func (p *parser) createUnexpectedFactorError(t token) error {
	return &types.Error{
		Tag: types.ParseErrorTag,
		Err: fmt.Errorf("unexpected %s at %d: expr=%q", p.describeToken(t), t.beginsPos+1, p.source),
	}
}

func (p *parser) createTrailingTokenError(t token) error {
	return &types.Error{
		Tag: types.ParseErrorTag,
		Err: fmt.Errorf("trailing input %s at %d: expr=%q", p.describeToken(t), t.beginsPos+1, p.source),
	}
}
