package statement

import (
	"strings"
	"testing"
)

func TestGenerateSettingsQueryWrapsAndOrdersByAll(t *testing.T) {
	g, _ := newTestGenerator(1, 3)
	q := g.GenerateSettingsQuery()
	if !strings.HasPrefix(q, "SELECT * FROM (") {
		t.Fatalf("GenerateSettingsQuery = %q, want wrapped derived table", q)
	}
	if !strings.HasSuffix(q, "ORDER BY ALL") {
		t.Fatalf("GenerateSettingsQuery = %q, want trailing ORDER BY ALL", q)
	}
}

func TestGenerateSettingsQueryBalancesScopeStack(t *testing.T) {
	g, _ := newTestGenerator(2, 2)
	for i := 0; i < 20; i++ {
		g.GenerateSettingsQuery()
		if g.scope.Current() != nil {
			t.Fatalf("iteration %d: scope level leaked after GenerateSettingsQuery", i)
		}
	}
}
