package expression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/karupanerura/exprsuite/internal/types"
)

// Operator is one of the four arithmetic operators. No other value is
// constructible through the parser.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// Node is the closed set of syntax tree node variants. Consumers
// switch exhaustively over *NumberLiteral, *Identifier and *BinaryOp;
// the unexported marker method keeps the set closed.
type Node interface {
	node()

	// Decoration reports the value the evaluator computed for this
	// node, if an evaluation pass has run.
	Decoration() (any, bool)
}

// decoration is the single-writer result slot carried by every node.
// Only the evaluator writes it, once per evaluation pass.
type decoration struct {
	value   any
	present bool
}

func (d *decoration) decorate(v any) {
	d.value = v
	d.present = true
}

func (d *decoration) Decoration() (any, bool) {
	return d.value, d.present
}

type NumberLiteral struct {
	decoration

	Text  string
	Value any // int64 or float64, fixed at construction
}

type Identifier struct {
	decoration

	Name string
}

type BinaryOp struct {
	decoration

	Operator    Operator
	Left, Right Node
}

func (*NumberLiteral) node() {}
func (*Identifier) node()    {}
func (*BinaryOp) node()      {}

// newNumberLiteral parses the value eagerly: a literal without a
// decimal point is an int64, with one it is a float64.
func newNumberLiteral(text string) (*NumberLiteral, error) {
	if strings.IndexByte(text, '.') == -1 {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &types.Error{
				Tag: types.ParseErrorTag,
				Err: fmt.Errorf("invalid integer literal %q: %w", text, err),
			}
		}
		return &NumberLiteral{Text: text, Value: v}, nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &types.Error{
			Tag: types.ParseErrorTag,
			Err: fmt.Errorf("invalid number literal %q: %w", text, err),
		}
	}
	return &NumberLiteral{Text: text, Value: v}, nil
}
