// Package word implements the fixed-capacity letter sequence that
// candidate dictionary entries and grid slots are built from.
package word

import (
	"errors"
	"strings"

	"github.com/crossplay/fillengine/pkg/letter"
)

// MaxLength is the largest word this engine can represent. Grids whose
// white-cell runs exceed this length are outside the engine's soundness
// guarantees (spec Non-goals).
const MaxLength = 16

// ErrTooLong is returned when the input has more than MaxLength letters.
var ErrTooLong = errors.New("word: exceeds maximum length")

// Word is a value type: a length and a fixed buffer of letters. Two
// Words are equal iff their lengths and letters match, so Word is safe
// to use as a map key.
type Word struct {
	length int
	buf    [MaxLength]letter.Letter
}

// New builds a Word directly from letters, failing if there are more
// than MaxLength of them.
func New(letters []letter.Letter) (Word, error) {
	if len(letters) > MaxLength {
		return Word{}, ErrTooLong
	}
	var w Word
	w.length = len(letters)
	copy(w.buf[:], letters)
	return w, nil
}

// FromString builds a Word from a caller-supplied string, extracting
// its letters and skipping anything else (punctuation, digits,
// whitespace). It fails only if the extracted letters exceed
// MaxLength. The caller is responsible for transliterating accented
// characters to ASCII before calling this — the engine itself does no
// normalization.
func FromString(s string) (Word, error) {
	var w Word
	for _, r := range s {
		l, ok := letter.FromRune(r)
		if !ok {
			continue
		}
		if w.length == MaxLength {
			return Word{}, ErrTooLong
		}
		w.buf[w.length] = l
		w.length++
	}
	return w, nil
}

// Len returns the number of letters in w.
func (w Word) Len() int {
	return w.length
}

// At returns the letter at index i. It panics if i is out of range,
// matching the engine's convention that cell/slot bounds violations are
// programmer errors.
func (w Word) At(i int) letter.Letter {
	if i < 0 || i >= w.length {
		panic("word: index out of range")
	}
	return w.buf[i]
}

// Letters returns the letters of w as a slice, in order.
func (w Word) Letters() []letter.Letter {
	out := make([]letter.Letter, w.length)
	copy(out, w.buf[:w.length])
	return out
}

// Less reports whether w sorts before other, lexicographically by
// letter.
func (w Word) Less(other Word) bool {
	n := w.length
	if other.length < n {
		n = other.length
	}
	for i := 0; i < n; i++ {
		if w.buf[i] != other.buf[i] {
			return w.buf[i] < other.buf[i]
		}
	}
	return w.length < other.length
}

func (w Word) String() string {
	var sb strings.Builder
	for i := 0; i < w.length; i++ {
		sb.WriteRune(w.buf[i].Rune())
	}
	return sb.String()
}
