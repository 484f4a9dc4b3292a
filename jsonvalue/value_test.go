package jsonvalue_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lattice-substrate/json-parse/jsonvalue"
)

func TestZeroValueIsNull(t *testing.T) {
	var v jsonvalue.Value
	if !v.IsNull() || v.Kind() != jsonvalue.KindNull {
		t.Fatalf("zero Value kind = %s, want null", v.Kind())
	}
	if v.Interface() != nil {
		t.Fatalf("zero Value Interface() = %v, want nil", v.Interface())
	}
}

func TestScalarAccessors(t *testing.T) {
	if !jsonvalue.Bool(true).Bool() || jsonvalue.Bool(false).Bool() {
		t.Fatal("Bool accessor mismatch")
	}
	if got := jsonvalue.Int(math.MinInt64).Int(); got != math.MinInt64 {
		t.Fatalf("Int = %d", got)
	}
	if got := jsonvalue.Float(1.5).Float(); got != 1.5 {
		t.Fatalf("Float = %v", got)
	}
	if got := jsonvalue.String("x").Str(); got != "x" {
		t.Fatalf("Str = %q", got)
	}
	// Accessors of the wrong kind return zero values.
	if jsonvalue.String("1").Int() != 0 || jsonvalue.Int(1).Float() != 0 || jsonvalue.Int(1).Bool() {
		t.Fatal("mismatched accessor returned non-zero value")
	}
}

func TestNegativeZeroPreserved(t *testing.T) {
	v := jsonvalue.Float(math.Copysign(0, -1))
	if !math.Signbit(v.Float()) {
		t.Fatal("sign of zero lost")
	}
	if v.Equal(jsonvalue.Float(0)) {
		t.Fatal("-0.0 compared equal to 0.0")
	}
}

func TestArrayIsImmutable(t *testing.T) {
	elems := []jsonvalue.Value{jsonvalue.Int(1), jsonvalue.Int(2)}
	v := jsonvalue.Array(elems...)
	elems[0] = jsonvalue.Int(99)
	if v.Index(0).Int() != 1 {
		t.Fatal("Array did not copy its input")
	}
	out := v.Elems()
	out[1] = jsonvalue.Null()
	if v.Index(1).Int() != 2 {
		t.Fatal("Elems exposed the backing slice")
	}
	if v.Len() != 2 {
		t.Fatalf("Len = %d, want 2", v.Len())
	}
}

func TestIndexPanicsOnNonArray(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	jsonvalue.Int(1).Index(0)
}

func TestObjectLookupAndKeys(t *testing.T) {
	v := jsonvalue.Object(map[string]jsonvalue.Value{
		"b": jsonvalue.Int(2),
		"a": jsonvalue.Null(),
	})
	if got := v.Keys(); !cmp.Equal(got, []string{"a", "b"}) {
		t.Fatalf("Keys = %v", got)
	}
	m, ok := v.Lookup("b")
	if !ok || m.Int() != 2 {
		t.Fatalf("Lookup(b) = %v, %v", m, ok)
	}
	if _, ok := v.Lookup("c"); ok {
		t.Fatal("Lookup(c) found a member")
	}
	if _, ok := jsonvalue.Int(1).Lookup("a"); ok {
		t.Fatal("Lookup on non-object found a member")
	}
}

func TestEmptyContainers(t *testing.T) {
	if got := jsonvalue.ArrayOf(nil).Interface(); !cmp.Equal(got, []any{}) {
		t.Fatalf("empty array Interface() = %#v", got)
	}
	if got := jsonvalue.Object(nil).Interface(); !cmp.Equal(got, map[string]any{}) {
		t.Fatalf("empty object Interface() = %#v", got)
	}
}

func TestInterface(t *testing.T) {
	v := jsonvalue.Object(map[string]jsonvalue.Value{
		"list": jsonvalue.Array(jsonvalue.Int(1), jsonvalue.Float(2.5), jsonvalue.Bool(true)),
		"name": jsonvalue.String("x"),
		"none": jsonvalue.Null(),
	})
	want := map[string]any{
		"list": []any{int64(1), 2.5, true},
		"name": "x",
		"none": nil,
	}
	if diff := cmp.Diff(want, v.Interface()); diff != "" {
		t.Fatalf("Interface() mismatch (-want +got):\n%s", diff)
	}
}

func TestEqual(t *testing.T) {
	a := jsonvalue.Array(jsonvalue.Object(map[string]jsonvalue.Value{"k": jsonvalue.String("v")}))
	b := jsonvalue.Array(jsonvalue.Object(map[string]jsonvalue.Value{"k": jsonvalue.String("v")}))
	c := jsonvalue.Array(jsonvalue.Object(map[string]jsonvalue.Value{"k": jsonvalue.String("w")}))
	if !a.Equal(b) {
		t.Fatal("equal trees compared unequal")
	}
	if a.Equal(c) {
		t.Fatal("different trees compared equal")
	}
	if jsonvalue.Int(1).Equal(jsonvalue.Float(1)) {
		t.Fatal("int and double compared equal")
	}
	// cmp picks up the Equal method.
	if !cmp.Equal(a, b) {
		t.Fatal("cmp.Equal disagrees with Equal")
	}
}

func TestKindString(t *testing.T) {
	if jsonvalue.KindObject.String() != "object" || jsonvalue.Kind(200).String() != "invalid" {
		t.Fatal("unexpected Kind names")
	}
}
