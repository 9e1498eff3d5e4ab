package typegen

import (
	"strings"
	"testing"

	"fuzzql/internal/randgen"
	"fuzzql/internal/sqltype"
)

func TestRandomNextTypeRespectsDepthBudget(t *testing.T) {
	g := New(randgen.New(1), Budget{MaxDepth: 2, MaxWidth: 3}, AllCapabilities)
	for i := 0; i < 200; i++ {
		typ := g.RandomNextType(0)
		if typ == nil {
			t.Fatal("RandomNextType returned nil")
		}
		// Rendering must terminate and produce non-empty text regardless of
		// how deeply nested the composite happens to be.
		if typ.String() == "" {
			t.Fatal("type rendered to empty string")
		}
	}
}

func TestRandomNextTypeDeterministicForSameSeed(t *testing.T) {
	g1 := New(randgen.New(42), DefaultBudget, AllCapabilities)
	g2 := New(randgen.New(42), DefaultBudget, AllCapabilities)
	for i := 0; i < 50; i++ {
		a := g1.RandomNextType(0)
		b := g2.RandomNextType(0)
		if a.String() != b.String() {
			t.Fatalf("iteration %d: %q != %q", i, a.String(), b.String())
		}
	}
}

func TestGenerateMapTypeKeyIsMapCapable(t *testing.T) {
	g := New(randgen.New(7), DefaultBudget, AllCapabilities)
	for i := 0; i < 100; i++ {
		m := g.generateMapType(0)
		if m.Key.Capabilities()&sqltype.CapMapKey == 0 {
			t.Fatalf("map key %s lacks CapMapKey", m.Key.String())
		}
	}
}

func TestGenerateNestedTypeWidthWithinBudget(t *testing.T) {
	g := New(randgen.New(3), Budget{MaxDepth: 3, MaxWidth: 4}, AllCapabilities)
	n := g.GenerateNestedType()
	if len(n.Subtypes) < 1 || len(n.Subtypes) > 4 {
		t.Fatalf("nested width %d out of [1,4]", len(n.Subtypes))
	}
	if !strings.HasPrefix(n.String(), "Nested(") {
		t.Fatalf("unexpected rendering: %s", n.String())
	}
}

func TestCapabilityMaskExcludesDisallowedClasses(t *testing.T) {
	g := New(randgen.New(5), DefaultBudget, AllowInt|AllowString)
	for i := 0; i < 200; i++ {
		typ := g.RandomNextType(0)
		switch typ.(type) {
		case sqltype.IntType, sqltype.StringType:
		default:
			t.Fatalf("capability mask AllowInt|AllowString produced %T", typ)
		}
	}
}

func TestCapabilityMaskGeoOnlyStillTerminates(t *testing.T) {
	g := New(randgen.New(11), DefaultBudget, AllowGeo)
	for i := 0; i < 50; i++ {
		if g.RandomNextType(0) == nil {
			t.Fatal("RandomNextType returned nil under a Geo-only mask")
		}
	}
}

func TestBottomTypeNeverComposite(t *testing.T) {
	g := New(randgen.New(9), DefaultBudget, AllCapabilities)
	for i := 0; i < 200; i++ {
		if sqltype.IsComposite(g.BottomType()) {
			t.Fatal("BottomType produced a composite type")
		}
	}
}
