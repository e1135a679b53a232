package jsonvalue

import "testing"

// TestRenderDoubleSignificantDigits pins the literal rendered forms
// spec.md §8's end-to-end scenarios 4 and 5 require: a double whose
// shortest round-trippable form has fewer than six significant digits is
// rendered with six digits after the decimal point (5 -> "5.000000",
// 26 -> "26.000000").
func TestRenderDoubleSignificantDigits(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"scenario 4: max([1,2,3,4,5])", 5, "5.000000"},
		{"scenario 5: (x+y)*2 with x=10,y=3", 26, "26.000000"},
	}
	for _, tc := range cases {
		got := Render(NewDouble(tc.in))
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRenderDoubleKeepsShortestFormWhenAlreadySixSignificantDigits(t *testing.T) {
	got := Render(NewDouble(123456.789))
	if got != "123456.789" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderScalars(t *testing.T) {
	cases := []struct {
		in   Value
		want string
	}{
		{NewNull(), "null"},
		{NewBool(true), "true"},
		{NewBool(false), "false"},
		{NewInteger(42), "42"},
		{NewString("hello"), `"hello"`},
	}
	for _, tc := range cases {
		if got := Render(tc.in); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestRenderArrayAndObjectCompactFormat(t *testing.T) {
	arr := NewArray([]Value{NewInteger(1), NewInteger(2), NewInteger(3)})
	if got, want := Render(arr), "[ 1, 2, 3 ]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if got, want := Render(NewArray(nil)), "[]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	obj := NewObject(map[string]Value{"k": NewInteger(1)})
	if got, want := Render(obj), `{ "k": 1 }`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if got, want := Render(NewObject(nil)), "{}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
