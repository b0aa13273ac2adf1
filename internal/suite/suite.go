// Package suite loads and runs expression suites: independent
// (expression, symbol bindings) pairs defined in a YAML or JSON
// document. Each entry evaluates against its own fresh symbol table,
// so a failing entry never affects the others.
package suite

import (
	"errors"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/karupanerura/exprsuite/internal/defaults"
	"github.com/karupanerura/exprsuite/internal/expression"
	"github.com/karupanerura/exprsuite/internal/types"
)

type Suite struct {
	Entries []*Entry
}

type Entry struct {
	Name   string
	Source string

	symbols map[string]any
}

type Result struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Value  any    `json:"value,omitempty"`
	Tree   string `json:"tree,omitempty"`
	Error  any    `json:"error,omitempty"`
}

func (s *Suite) Names() []string {
	return lo.Map(s.Entries, func(e *Entry, _ int) string {
		return e.Name
	})
}

// Run evaluates every entry. Entries share nothing, so they run
// concurrently. A failed entry is reported in its Result, it does not
// abort the rest of the suite.
func (s *Suite) Run() []Result {
	results := make([]Result, len(s.Entries))

	eg := errgroup.Group{}
	for i, entry := range s.Entries {
		i, entry := i, entry
		eg.Go(func() error {
			results[i] = entry.run()
			return nil
		})
	}
	_ = eg.Wait() // entry errors land in results, never here

	return results
}

func (e *Entry) run() Result {
	result := Result{
		Name:   e.Name,
		Source: e.Source,
	}

	value, node, err := e.Evaluate()
	if err != nil {
		var exception types.Exception
		if errors.As(err, &exception) {
			result.Error = exception.Exception()
		} else {
			result.Error = err.Error()
		}
		return result
	}

	result.Value = value
	result.Tree = expression.Render(node)
	return result
}

// Evaluate parses and evaluates the entry against a fresh symbol
// table. Nothing survives between calls; running an entry twice
// builds everything from scratch.
func (e *Entry) Evaluate() (any, expression.Node, error) {
	node, err := expression.Parse(e.Source)
	if err != nil {
		return nil, nil, err
	}

	ev := expression.Evaluator{SymbolTable: e.NewSymbolTable()}
	value, err := ev.Evaluate(node)
	if err != nil {
		return nil, nil, err
	}

	return value, node, nil
}

// NewSymbolTable builds the entry's evaluation session table with the
// default constants chained as parent.
func (e *Entry) NewSymbolTable() *types.SymbolTable {
	st := types.NewSymbolTable()
	st.Parent = defaults.DefaultSymbolTable
	for name, value := range e.symbols {
		st.Add(name, value)
	}
	return st
}
