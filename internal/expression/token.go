package expression

type tokenKind int

const (
	numberToken tokenKind = iota
	identifierToken
	plusToken
	minusToken
	starToken
	slashToken
	leftParenToken
	rightParenToken
	eofToken
)

var tokenKindNames = map[tokenKind]string{
	numberToken:     "NUMBER",
	identifierToken: "IDENTIFIER",
	plusToken:       "PLUS",
	minusToken:      "MINUS",
	starToken:       "STAR",
	slashToken:      "SLASH",
	leftParenToken:  "LPAREN",
	rightParenToken: "RPAREN",
	eofToken:        "EOF",
}

func (k tokenKind) String() string {
	return tokenKindNames[k]
}

// token is immutable once produced. The lexeme is not stored, it is a
// slice of the source by the byte range.
type token struct {
	kind               tokenKind
	beginsPos, endsPos int
}
