// Package wordset implements WordSet, the per-slot candidate word list
// with its accompanying per-position letter frequency table.
package wordset

import (
	"github.com/crossplay/fillengine/pkg/letter"
	"github.com/crossplay/fillengine/pkg/word"
)

// WordSet holds every candidate word admissible in a slot of a fixed
// length, plus a length×26 frequency table: table[i][c] is the number
// of remaining candidates with letter c at position i. The invariant
// sum_c table[i][c] == len(words) holds after every operation.
type WordSet struct {
	length int
	words  []word.Word
	table  [][letter.Alphabet]int
}

// FromWords builds a WordSet for slots of the given length, including
// exactly those dict entries whose length matches.
func FromWords(dict []word.Word, length int) *WordSet {
	ws := &WordSet{
		length: length,
		table:  make([][letter.Alphabet]int, length),
	}
	for _, w := range dict {
		if w.Len() == length {
			ws.words = append(ws.words, w)
			ws.bump(w, 1)
		}
	}
	return ws
}

// New builds an empty WordSet for slots of the given length.
func New(length int) *WordSet {
	return &WordSet{length: length, table: make([][letter.Alphabet]int, length)}
}

func (ws *WordSet) bump(w word.Word, delta int) {
	for i := 0; i < ws.length; i++ {
		ws.table[i][w.At(i)] += delta
	}
}

// Retain keeps only the words satisfying pred, decrementing the
// frequency table for each one removed. It is a stable filter: the
// relative order of surviving words is unchanged.
func (ws *WordSet) Retain(pred func(word.Word) bool) {
	kept := ws.words[:0]
	for _, w := range ws.words {
		if pred(w) {
			kept = append(kept, w)
		} else {
			ws.bump(w, -1)
		}
	}
	ws.words = kept
}

// Count returns how many candidates have letter c at position i.
func (ws *WordSet) Count(i int, c letter.Letter) int {
	return ws.table[i][c]
}

// Letters returns the set of letters that appear at position i among
// the current candidates.
func (ws *WordSet) Letters(i int) letter.Set {
	var s letter.Set
	for _, c := range letter.All() {
		if ws.table[i][c] > 0 {
			s = s.Insert(c)
		}
	}
	return s
}

// Size returns the number of remaining candidates. Zero means the slot
// is infeasible.
func (ws *WordSet) Size() int {
	return len(ws.words)
}

// Words returns the remaining candidates, in their original relative
// order (the dictionary's order, since Retain is stable).
func (ws *WordSet) Words() []word.Word {
	return ws.words
}

// Length returns the slot length this WordSet was built for.
func (ws *WordSet) Length() int {
	return ws.length
}

// Clone returns a deep copy; mutating the clone never affects ws.
func (ws *WordSet) Clone() *WordSet {
	words := make([]word.Word, len(ws.words))
	copy(words, ws.words)
	table := make([][letter.Alphabet]int, len(ws.table))
	copy(table, ws.table)
	return &WordSet{length: ws.length, words: words, table: table}
}
