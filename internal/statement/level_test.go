package statement

import "testing"

func TestStackPushPopBalances(t *testing.T) {
	var s Stack
	if s.Current() != nil {
		t.Fatal("Current() should be nil on an empty stack")
	}
	l0 := s.Push(true, false)
	if l0.Index != 0 {
		t.Fatalf("first pushed level Index = %d, want 0", l0.Index)
	}
	l1 := s.Push(false, true)
	if l1.Index != 1 {
		t.Fatalf("second pushed level Index = %d, want 1", l1.Index)
	}
	if s.Current() != l1 {
		t.Fatal("Current() should return the most recently pushed level")
	}
	s.Pop()
	if s.Current() != l0 {
		t.Fatal("Current() after one Pop should return the first level")
	}
	s.Pop()
	if s.Current() != nil {
		t.Fatal("Current() should be nil after popping every level")
	}
}

func TestStackPopOnEmptyStackIsNoop(t *testing.T) {
	var s Stack
	s.Pop()
	if s.Current() != nil {
		t.Fatal("Pop on an empty stack should not panic or create a level")
	}
}

func TestStackVisibleColumnsRespectsCorrelation(t *testing.T) {
	var s Stack
	outer := s.Push(true, true)
	outer.Relations = append(outer.Relations, Relation{Name: "o", Columns: []RelationColumn{{Name: "x"}}})
	inner := s.Push(true, false)
	inner.Relations = append(inner.Relations, Relation{Name: "i", Columns: []RelationColumn{{Name: "y"}}})

	uncorrelated := s.VisibleColumns(false)
	if len(uncorrelated) != 1 || uncorrelated[0].Name != "y" {
		t.Fatalf("uncorrelated VisibleColumns = %+v, want just [y]", uncorrelated)
	}

	correlated := s.VisibleColumns(true)
	if len(correlated) != 2 {
		t.Fatalf("correlated VisibleColumns has %d entries, want 2", len(correlated))
	}
}

func TestStackBindAndLookupCTEShadowing(t *testing.T) {
	var s Stack
	s.Push(true, true)
	s.BindCTE("cte", []RelationColumn{{Name: "outer_col"}})
	s.Push(true, false)
	s.BindCTE("cte", []RelationColumn{{Name: "inner_col"}})

	cols, ok := s.LookupCTE("cte")
	if !ok || len(cols) != 1 || cols[0].Name != "inner_col" {
		t.Fatalf("LookupCTE did not find the innermost binding: %+v", cols)
	}

	s.Pop()
	cols, ok = s.LookupCTE("cte")
	if !ok || cols[0].Name != "outer_col" {
		t.Fatalf("LookupCTE after Pop should see the outer binding: %+v", cols)
	}
}

func TestLookupCTEMissingReturnsFalse(t *testing.T) {
	var s Stack
	s.Push(true, true)
	if _, ok := s.LookupCTE("nope"); ok {
		t.Fatal("LookupCTE found a binding that was never made")
	}
}

func TestNextAliasGeneratesDistinctNamesPastZ(t *testing.T) {
	l := &Level{}
	seen := map[string]bool{}
	for i := 0; i < 30; i++ {
		a := l.NextAlias()
		if seen[a] {
			t.Fatalf("NextAlias produced a duplicate: %q at iteration %d", a, i)
		}
		seen[a] = true
	}
}
