package defaults

import (
	"fmt"
	"math"

	"github.com/karupanerura/exprsuite/internal/types"
)

// DefaultSymbolTable holds named mathematical constants. It is chained
// as the parent of every per-evaluation table, so bindings supplied by
// the caller shadow it without mutating it.
var DefaultSymbolTable = aggregateSymbolsToTable(
	types.Symbol{Name: "pi", Kind: types.NumberSymbolKind, Value: math.Pi},
	types.Symbol{Name: "tau", Kind: types.NumberSymbolKind, Value: 2 * math.Pi},
	types.Symbol{Name: "e", Kind: types.NumberSymbolKind, Value: math.E},
	types.Symbol{Name: "phi", Kind: types.NumberSymbolKind, Value: math.Phi},
	types.Symbol{Name: "sqrt2", Kind: types.NumberSymbolKind, Value: math.Sqrt2},
)

func aggregateSymbolsToTable(symbols ...types.Symbol) *types.SymbolTable {
	m := make(map[string]types.Symbol, len(symbols))
	for _, s := range symbols {
		if _, duplicated := m[s.Name]; duplicated {
			panic(fmt.Sprintf("duplicated symbol name: %s", s.Name))
		}
		m[s.Name] = s
	}
	return &types.SymbolTable{
		Symbols:  m,
		ReadOnly: true,
	}
}
