package gridgen

import (
	"testing"

	"github.com/crossplay/fillengine/pkg/window"
)

func TestGenerateProducesSymmetricMask(t *testing.T) {
	m, err := Generate(Config{Width: 9, Height: 9, Density: Normal, Seed: 42})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			mx, my := m.Width-1-x, m.Height-1-y
			if m.At(x, y) != m.At(mx, my) {
				t.Fatalf("mask not 180-degree symmetric at (%d,%d) vs (%d,%d)", x, y, mx, my)
			}
		}
	}
}

func TestGenerateProducesConnectedMask(t *testing.T) {
	m, err := Generate(Config{Width: 11, Height: 11, Density: Sparse, Seed: 7})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !isConnected(m) {
		t.Fatal("generated mask is not fully connected")
	}
}

func TestGenerateHasNoDegenerateRuns(t *testing.T) {
	m, err := Generate(Config{Width: 9, Height: 9, Density: Dense, MinWordLength: 3, Seed: 99})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if hasDegenerateRun(m, 3) {
		t.Fatal("generated mask has a degenerate run")
	}
}

func TestGeneratedMaskFeedsWindowMap(t *testing.T) {
	m, err := Generate(Config{Width: 9, Height: 9, Density: Normal, Seed: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	windows := window.FromWhiteMask(m.Width, m.Height, m.At)
	if len(windows.Windows()) == 0 {
		t.Fatal("expected at least one window in a generated mask")
	}
	for _, win := range windows.Windows() {
		if win.Length < 2 {
			t.Fatalf("window %v shorter than the minimum slot length", win)
		}
	}
}

func TestDensityFraction(t *testing.T) {
	tests := []struct {
		density Density
		want    float64
	}{
		{Sparse, 0.06},
		{Normal, 0.08},
		{Dense, 0.12},
		{Density("unknown"), 0.08},
	}
	for _, tt := range tests {
		if got := tt.density.fraction(); got != tt.want {
			t.Errorf("%s.fraction() = %v, want %v", tt.density, got, tt.want)
		}
	}
}
