package expression

import (
	"fmt"
	"strings"

	"github.com/karupanerura/exprsuite/internal/types"
)

// Render renders the tree as indented text, one node per line, with
// the decoration value when an evaluation pass has run. It never
// mutates the tree.
func Render(node Node) string {
	var b strings.Builder
	renderNode(&b, node, "")
	return b.String()
}

func renderNode(b *strings.Builder, node Node, indent string) {
	switch n := node.(type) {
	case *NumberLiteral:
		b.WriteString(indent)
		b.WriteString("Number(")
		b.WriteString(n.Text)
		b.WriteByte(')')
		renderDecoration(b, n)
		b.WriteByte('\n')

	case *Identifier:
		b.WriteString(indent)
		b.WriteString("Identifier(")
		b.WriteString(n.Name)
		b.WriteByte(')')
		renderDecoration(b, n)
		b.WriteByte('\n')

	case *BinaryOp:
		b.WriteString(indent)
		b.WriteString("BinaryOp(")
		b.WriteString(string(n.Operator))
		b.WriteByte(')')
		renderDecoration(b, n)
		b.WriteByte('\n')
		b.WriteString(indent)
		b.WriteString("  L:\n")
		renderNode(b, n.Left, indent+"    ")
		b.WriteString(indent)
		b.WriteString("  R:\n")
		renderNode(b, n.Right, indent+"    ")

	default:
		fmt.Fprintf(b, "%sUnknown(%T)\n", indent, node)
	}
}

func renderDecoration(b *strings.Builder, node Node) {
	if v, ok := node.Decoration(); ok {
		b.WriteString(" = ")
		b.WriteString(types.FormatNumber(v))
	}
}
