package types

import (
	"testing"
)

func TestSymbolTableAddAndGet(t *testing.T) {
	t.Parallel()

	st := NewSymbolTable()
	if _, ok := st.Get("x"); ok {
		t.Error("empty table should not resolve x")
	}

	st.Add("x", int64(1))
	sym, ok := st.Get("x")
	if !ok {
		t.Fatal("x should be resolvable")
	}
	if sym.Name != "x" || sym.Kind != NumberSymbolKind || sym.Value != int64(1) {
		t.Errorf("unexpected symbol: %+v", sym)
	}

	// last write wins
	st.Add("x", float64(2.5))
	sym, _ = st.Get("x")
	if sym.Value != float64(2.5) {
		t.Errorf("expected overwritten value 2.5 but got %v", sym.Value)
	}
}

func TestSymbolTableParentChain(t *testing.T) {
	t.Parallel()

	parent := NewSymbolTable()
	parent.Add("a", int64(1))
	parent.Add("b", int64(2))

	st := NewSymbolTable()
	st.Parent = parent
	st.Add("b", int64(20))

	if sym, ok := st.Get("a"); !ok || sym.Value != int64(1) {
		t.Errorf("a should resolve through the parent, got %+v (%v)", sym, ok)
	}
	if sym, _ := st.Get("b"); sym.Value != int64(20) {
		t.Errorf("b should be shadowed by the child, got %+v", sym)
	}
	if _, ok := parent.Get("b"); ok {
		if sym, _ := parent.Get("b"); sym.Value != int64(2) {
			t.Errorf("child writes must not leak into the parent, got %+v", sym)
		}
	}
}

func TestSymbolTableReadOnly(t *testing.T) {
	t.Parallel()

	st := NewSymbolTable()
	st.ReadOnly = true

	defer func() {
		if recover() == nil {
			t.Error("Add on a read only table should panic")
		}
	}()
	st.Add("x", int64(1))
}

func TestSymbolTableShallowClone(t *testing.T) {
	t.Parallel()

	st := NewSymbolTable()
	st.Add("x", int64(1))

	clone := st.ShallowClone()
	clone.Add("x", int64(2))
	clone.Add("y", int64(3))

	if sym, _ := st.Get("x"); sym.Value != int64(1) {
		t.Errorf("clone writes must not affect the original, got %+v", sym)
	}
	if _, ok := st.Get("y"); ok {
		t.Error("clone writes must not affect the original")
	}
}
