// Package gridgen builds random black/white cell masks suitable for
// feeding to window.FromWhiteMask: rectangular, 180-degree
// rotationally symmetric, fully connected, and free of degenerate
// word slots.
package gridgen

import (
	"errors"
	"math/rand"
)

// ErrGenerationFailed is returned when no valid mask could be produced
// within MaxAttempts tries.
var ErrGenerationFailed = errors.New("gridgen: failed to generate a valid mask after maximum attempts")

// MaxAttempts bounds how many candidate masks Generate will try before
// giving up.
const MaxAttempts = 1000

// Density is a named black-square density preset.
type Density string

const (
	Sparse Density = "sparse"
	Normal Density = "normal"
	Dense  Density = "dense"
)

func (d Density) fraction() float64 {
	switch d {
	case Sparse:
		return 0.06
	case Dense:
		return 0.12
	default:
		return 0.08
	}
}

// Config controls mask generation.
type Config struct {
	Width, Height int
	Density       Density // ignored if BlackFraction is nonzero
	BlackFraction float64
	MinWordLength int // minimum run length to allow; runs of 1 are always disallowed. Zero means 3.
	Seed          int64
}

// Mask is a generated grid: White[y][x] is true for a white cell.
type Mask struct {
	Width, Height int
	White         [][]bool
}

// At reports whether the cell at (x, y) is white.
func (m *Mask) At(x, y int) bool { return m.White[y][x] }

// Generate produces a random mask meeting cfg's constraints, retrying
// with successive seeds until one validates or MaxAttempts is
// exhausted.
func Generate(cfg Config) (*Mask, error) {
	fraction := cfg.BlackFraction
	if fraction == 0 {
		fraction = cfg.Density.fraction()
	}
	minLen := cfg.MinWordLength
	if minLen == 0 {
		minLen = 3
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		m := newAllWhite(cfg.Width, cfg.Height)
		seedBlack(m, seed+int64(attempt), fraction)
		enforceSymmetry(m)

		if !isConnected(m) {
			continue
		}
		if hasDegenerateRun(m, minLen) {
			continue
		}
		return m, nil
	}
	return nil, ErrGenerationFailed
}

func newAllWhite(w, h int) *Mask {
	white := make([][]bool, h)
	for y := range white {
		row := make([]bool, w)
		for x := range row {
			row[x] = true
		}
		white[y] = row
	}
	return &Mask{Width: w, Height: h, White: white}
}

type cellPos struct{ x, y int }

// seedBlack places black cells at random in the top-left quadrant
// (plus the middle row/column of an odd dimension), to be mirrored by
// enforceSymmetry. The exact center cell, if any, is always left
// white so connectivity checks have a guaranteed white seed.
func seedBlack(m *Mask, seed int64, fraction float64) {
	r := rand.New(rand.NewSource(seed))

	var candidates []cellPos
	halfW, halfH := (m.Width+1)/2, (m.Height+1)/2
	for y := 0; y < halfH; y++ {
		for x := 0; x < halfW; x++ {
			candidates = append(candidates, cellPos{x, y})
		}
	}
	r.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	target := int(float64(m.Width*m.Height) * fraction / 2)
	cx, cy := m.Width/2, m.Height/2
	placed := 0
	for _, p := range candidates {
		if placed >= target {
			break
		}
		if p.x == cx && p.y == cy {
			continue // never black out the center cell
		}
		m.White[p.y][p.x] = false
		placed++
	}
	m.White[cy][cx] = true
}

func enforceSymmetry(m *Mask) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.White[y][x] {
				mx, my := m.Width-1-x, m.Height-1-y
				m.White[my][mx] = false
			}
		}
	}
}

// isConnected reports whether every white cell is reachable from the
// grid's center cell via rook-adjacent white steps.
func isConnected(m *Mask) bool {
	cx, cy := m.Width/2, m.Height/2
	if !m.White[cy][cx] {
		return false
	}

	total := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.White[y][x] {
				total++
			}
		}
	}
	if total == 0 {
		return false
	}

	visited := make([][]bool, m.Height)
	for y := range visited {
		visited[y] = make([]bool, m.Width)
	}
	type pos struct{ x, y int }
	queue := []pos{{cx, cy}}
	visited[cy][cx] = true
	reached := 1
	dirs := [4]pos{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range dirs {
			nx, ny := cur.x+d.x, cur.y+d.y
			if nx < 0 || nx >= m.Width || ny < 0 || ny >= m.Height {
				continue
			}
			if visited[ny][nx] || !m.White[ny][nx] {
				continue
			}
			visited[ny][nx] = true
			reached++
			queue = append(queue, pos{nx, ny})
		}
	}
	return reached == total
}

// hasDegenerateRun reports whether the mask has any white run (across
// or down) of length exactly 1, or of length in [2, minLen).
func hasDegenerateRun(m *Mask, minLen int) bool {
	bad := func(run int) bool {
		return run == 1 || (run >= 2 && run < minLen)
	}
	for y := 0; y < m.Height; y++ {
		run := 0
		for x := 0; x < m.Width; x++ {
			if m.White[y][x] {
				run++
			} else {
				if bad(run) {
					return true
				}
				run = 0
			}
		}
		if bad(run) {
			return true
		}
	}
	for x := 0; x < m.Width; x++ {
		run := 0
		for y := 0; y < m.Height; y++ {
			if m.White[y][x] {
				run++
			} else {
				if bad(run) {
					return true
				}
				run = 0
			}
		}
		if bad(run) {
			return true
		}
	}
	return false
}
