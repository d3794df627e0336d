package jobs

import (
	"testing"

	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/word"
)

func TestGridToRawAndBack(t *testing.T) {
	g := grid.New(3, 2, func(x, y int) grid.Cell {
		if x == 1 && y == 0 {
			return grid.BlackCell()
		}
		r := rune('A' + x + y*3)
		return grid.WhiteCell(&r)
	})

	raw := gridToRaw(g, 3, 2)
	if raw[1] != '.' {
		t.Fatalf("raw = %q, want black cell at index 1", raw)
	}

	back := rawToGrid(raw, 3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := g.At(x, y)
			got := back.At(x, y)
			if want.Black != got.Black {
				t.Fatalf("(%d,%d) black = %v, want %v", x, y, got.Black, want.Black)
			}
			if want.Letter == nil && got.Letter != nil {
				t.Fatalf("(%d,%d) letter = %v, want nil", x, y, *got.Letter)
			}
			if want.Letter != nil && (got.Letter == nil || *want.Letter != *got.Letter) {
				t.Fatalf("(%d,%d) letter = %v, want %v", x, y, got.Letter, *want.Letter)
			}
		}
	}
}

func TestGridDigestIsStableAndSensitiveToContent(t *testing.T) {
	white := func(x, y int) bool { return true }

	req1 := Request{Width: 2, Height: 2, White: white}
	req2 := Request{Width: 2, Height: 2, White: white}
	if gridDigest(req1) != gridDigest(req2) {
		t.Fatal("identical requests produced different grid digests")
	}

	req3 := Request{Width: 2, Height: 3, White: white}
	if gridDigest(req1) == gridDigest(req3) {
		t.Fatal("different grid dimensions produced the same digest")
	}
}

func TestGridDigestReflectsPregrid(t *testing.T) {
	white := func(x, y int) bool { return true }
	r := rune('A')
	filled := grid.New(2, 2, func(x, y int) grid.Cell {
		if x == 0 && y == 0 {
			return grid.WhiteCell(&r)
		}
		return grid.WhiteCell(nil)
	})

	plain := Request{Width: 2, Height: 2, White: white}
	withPregrid := Request{Width: 2, Height: 2, White: white, Pregrid: filled}

	if gridDigest(plain) == gridDigest(withPregrid) {
		t.Fatal("pre-filled letters did not change the grid digest")
	}
}

func TestDictDigestIsOrderSensitive(t *testing.T) {
	cat, _ := word.FromString("CAT")
	dog, _ := word.FromString("DOG")

	a := dictDigest([]word.Word{cat, dog})
	b := dictDigest([]word.Word{dog, cat})
	if a == b {
		t.Fatal("dictDigest ignored word order")
	}

	c := dictDigest([]word.Word{cat, dog})
	if a != c {
		t.Fatal("dictDigest is not deterministic for the same input")
	}
}
