package types

import "testing"

func TestIsSubtypeOf(t *testing.T) {
	narrow := NewIntInterval(0, 2)
	wide := NewIntInterval(-5, 5)

	if !narrow.IsSubtypeOf(wide) {
		t.Fatalf("expected %v to be a subtype of %v", narrow, wide)
	}
	if wide.IsSubtypeOf(narrow) {
		t.Fatalf("did not expect %v to be a subtype of %v", wide, narrow)
	}
	if !narrow.IsSubtypeOf(T(Int)) {
		t.Fatalf("expected bounded interval to be a subtype of Int")
	}
}

func TestCommonType(t *testing.T) {
	a := NewIntInterval(0, 3)
	b := NewIntInterval(2, 6)
	got := a.CommonType(b)
	want := NewIntInterval(0, 6)
	if !got.Equal(want) {
		t.Fatalf("CommonType() = %v, want %v", got, want)
	}

	if !T(Bool).CommonType(T(Int)).IsUndefined() {
		t.Fatalf("expected incompatible types to produce Undefined")
	}
}

func TestIsBounded(t *testing.T) {
	cases := []struct {
		typ     Type
		bounded bool
	}{
		{T(Bool), true},
		{NewIntInterval(0, 4), true},
		{T(Int), false},
		{T(Real), false},
	}
	for _, c := range cases {
		if got := c.typ.IsBounded(); got != c.bounded {
			t.Errorf("%v.IsBounded() = %v, want %v", c.typ, got, c.bounded)
		}
	}
}
