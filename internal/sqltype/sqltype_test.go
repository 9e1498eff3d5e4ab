package sqltype

import "testing"

func TestUnwrapStripsNullableAndLowCardinality(t *testing.T) {
	inner := IntType{Width: Int32}
	wrapped := LowCardinalityType{Inner: NullableType{Inner: inner}}
	if got := Unwrap(wrapped); got != Type(inner) {
		t.Fatalf("Unwrap() = %#v, want %#v", got, inner)
	}
}

func TestUnwrapNoopOnScalar(t *testing.T) {
	if got := Unwrap(BoolType{}); got.Kind() != KindBool {
		t.Fatalf("Unwrap(BoolType{}) changed kind: %v", got.Kind())
	}
}

func TestIsCompositeDetectsWrappedArray(t *testing.T) {
	arr := NullableType{Inner: ArrayType{Elem: IntType{Width: Int64}}}
	if !IsComposite(arr) {
		t.Fatal("expected Nullable(Array(...)) to be composite")
	}
	if IsComposite(IntType{Width: Int64}) {
		t.Fatal("expected plain Int64 to not be composite")
	}
}

func TestDecimalTypeRendersPrecisionAndScale(t *testing.T) {
	d := DecimalType{Precision: 18, Scale: 4}
	if got, want := d.String(), "Decimal(18, 4)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringTypeFixedLenVsUnbounded(t *testing.T) {
	if got, want := (StringType{}).String(), "String"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got, want := (StringType{FixedLen: 16}).String(), "FixedString(16)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestNestedTypeRealWidth(t *testing.T) {
	n := NestedType{Names: []string{"a", "b"}, Subtypes: []Type{BoolType{}, BoolType{}}}
	if got := n.RealWidth(); got != 2 {
		t.Fatalf("RealWidth() = %d, want 2", got)
	}
}

func TestKindStringCoversEveryDeclaredKind(t *testing.T) {
	for k := KindBool; k <= KindGeo; k++ {
		if got := k.String(); got == "Unknown" {
			t.Fatalf("Kind(%d).String() returned Unknown", k)
		}
	}
}
