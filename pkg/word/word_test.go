package word

import (
	"strings"
	"testing"
)

func TestFromStringRoundTrip(t *testing.T) {
	w, err := FromString("Cat")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	if w.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", w.Len())
	}
	if w.String() != "CAT" {
		t.Fatalf("String() = %q, want CAT", w.String())
	}
}

func TestFromStringSkipsNonLetters(t *testing.T) {
	w, err := FromString("CAN'T-5")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	if w.String() != "CANT" {
		t.Fatalf("String() = %q, want CANT", w.String())
	}
}

func TestFromStringTooLong(t *testing.T) {
	if _, err := FromString(strings.Repeat("A", MaxLength+1)); err != ErrTooLong {
		t.Fatalf("err = %v, want ErrTooLong", err)
	}
}

func TestEqualityAndOrdering(t *testing.T) {
	a, _ := FromString("CAT")
	b, _ := FromString("CAT")
	c, _ := FromString("COT")
	if a != b {
		t.Fatalf("equal words compared unequal")
	}
	if !a.Less(c) {
		t.Fatalf("CAT should sort before COT")
	}
	if c.Less(a) {
		t.Fatalf("COT should not sort before CAT")
	}
}

func TestAsMapKey(t *testing.T) {
	a, _ := FromString("DOG")
	b, _ := FromString("DOG")
	m := map[Word]int{a: 1}
	if m[b] != 1 {
		t.Fatalf("word value did not work as a map key")
	}
}
