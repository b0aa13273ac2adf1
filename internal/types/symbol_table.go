package types

import (
	"fmt"

	"github.com/samber/lo"
)

// NumberSymbolKind is the only symbol kind for now.
// The kind tag stays on Symbol so that future non-numeric bindings
// do not need a table format change.
const NumberSymbolKind = "number"

type Symbol struct {
	Name  string
	Kind  string
	Value any
}

type SymbolTable struct {
	Symbols  map[string]Symbol
	ReadOnly bool
	Parent   *SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Symbols: map[string]Symbol{},
	}
}

// Get resolves a name through the parent chain. It never fails;
// a missing binding is reported by the second return value.
func (st *SymbolTable) Get(name string) (Symbol, bool) {
	s, ok := st.Symbols[name]
	if ok {
		return s, true
	}
	if st.Parent != nil {
		return st.Parent.Get(name)
	}
	return Symbol{}, false
}

// Add binds name to a numeric value. The last write wins.
func (st *SymbolTable) Add(name string, value any) {
	if st.ReadOnly {
		panic(fmt.Sprintf("Cannot assign %q=%+v to read only symbol table", name, value))
	}
	st.Symbols[name] = Symbol{
		Name:  name,
		Kind:  NumberSymbolKind,
		Value: value,
	}
}

func (st *SymbolTable) ShallowClone() *SymbolTable {
	return &SymbolTable{
		Symbols:  lo.Assign(map[string]Symbol{}, st.Symbols),
		ReadOnly: st.ReadOnly,
		Parent:   st.Parent,
	}
}
