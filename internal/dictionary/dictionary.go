// Package dictionary loads word lists for the fill engine: the
// compact binary format described by the engine's own wire format,
// and a plain-text "WORD;SCORE" format compatible with the Broda word
// lists commonly distributed for crossword construction.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/crossplay/fillengine/pkg/word"
)

// Entry is a single dictionary word with its construction-quality score.
type Entry struct {
	Word  word.Word
	Text  string
	Score int
}

// magic is the 8-byte big-endian header every binary dictionary file starts with.
var magic = [8]byte{0xB2, 0x60, 0xFC, 0x0D, 0x00, 0x00, 0x00, 0x00}

// ErrBadMagic is returned when a binary dictionary file doesn't start
// with the expected magic bytes.
var ErrBadMagic = errors.New("dictionary: bad magic header")

// LoadBinary decodes the engine's compact binary dictionary format: a
// magic header, an end-of-section offset, then a run of entries each
// encoded as a single header byte (high bit: has-explicit-length;
// remaining 7 bits minus one: shared prefix length with the previous
// word), a score byte, and either an explicit length-prefixed byte run
// or a raw ASCII run read to the next non-printable byte.
func LoadBinary(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < 12 || [8]byte(data[:8]) != magic {
		return nil, ErrBadMagic
	}
	end := binary.LittleEndian.Uint32(data[8:12])
	if int(end) > len(data) {
		return nil, fmt.Errorf("dictionary: end offset %d exceeds file length %d", end, len(data))
	}

	var entries []Entry
	buf := make([]byte, 0, word.MaxLength+8)
	pos := 12
	for pos < int(end) {
		h := data[pos]
		pos++
		hasLength := h&0x80 != 0
		prefix := int(h&0x7F) - 1
		if prefix < 0 {
			prefix = 0
		}

		rawScore := int(data[pos])
		pos++
		score := rawScore
		if rawScore == 80 {
			score = 0
		}

		switch {
		case hasLength:
			length := int(data[pos])
			pos++
			n := length - prefix
			buf = append(buf[:prefix], data[pos:pos+n]...)
			pos += n
		case prefix == 0:
			start := pos
			for pos < len(data) && data[pos] >= 32 && data[pos] < 127 {
				pos++
			}
			buf = append(buf[:0], data[start:pos]...)
		default:
			n := len(buf) - prefix
			tail := data[pos : pos+n]
			pos += n
			buf = append(buf[:prefix], tail...)
		}

		text := normalizeLetters(buf)
		if text == "" {
			continue
		}
		w, err := word.FromString(text)
		if err != nil {
			continue // longer than the engine's capacity; skip rather than fail the whole load
		}
		entries = append(entries, Entry{Word: w, Text: text, Score: score})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	return entries, nil
}

// normalizeLetters keeps only ASCII letters, upper-cased, the way the
// binary format's decoded buffers are interpreted as words.
func normalizeLetters(buf []byte) string {
	var sb strings.Builder
	sb.Grow(len(buf))
	for _, b := range buf {
		switch {
		case b >= 'a' && b <= 'z':
			sb.WriteByte(b - 'a' + 'A')
		case b >= 'A' && b <= 'Z':
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

// LoadBroda reads a plain-text "WORD;SCORE" word list, one entry per
// line, skipping blank lines and lines starting with '#'.
func LoadBroda(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ";", 2)
		text := normalizeLetters([]byte(strings.ToUpper(strings.TrimSpace(parts[0]))))
		if text == "" {
			continue
		}
		score := 50
		if len(parts) == 2 {
			s, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("dictionary: line %d: invalid score %q: %w", lineNo, parts[1], err)
			}
			score = s
		}
		w, err := word.FromString(text)
		if err != nil {
			continue // longer than the engine's capacity; skip rather than fail the whole load
		}
		entries = append(entries, Entry{Word: w, Text: text, Score: score})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	return entries, nil
}

// Words strips scores, returning just the Word values in entries'
// order, the shape pkg/wordset.FromWords expects.
func Words(entries []Entry) []word.Word {
	out := make([]word.Word, len(entries))
	for i, e := range entries {
		out[i] = e.Word
	}
	return out
}
