// Package puzfile encodes and decodes the .puz binary crossword format
// in AcrossLite's layout: a checksummed header, solution and player
// grids, null-terminated text, and a handful of optional tagged
// extension sections. Two details differ from AcrossLite's own files:
// the text checksum covers every string with its NUL terminator, empty
// strings included, and a GRBS byte is the same 1-based number as the
// RTBL key it refers to, where AcrossLite's GRBS byte is one more than
// its RTBL key.
package puzfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const magicPreamble = "ACROSS&DOWN\x00"

var maskString = [8]byte{'I', 'C', 'H', 'E', 'A', 'T', 'E', 'D'}

// ErrBadMagic is returned by Decode when the file doesn't carry the
// expected preamble at offset 2, right after the global checksum.
var ErrBadMagic = errors.New("puzfile: bad magic preamble")

// Position is a zero-based (x, y) grid cell.
type Position struct{ X, Y int }

// GextFlag is one of the per-cell style bits the GEXT section carries.
type GextFlag byte

const (
	GextPencil      GextFlag = 0x08
	GextWasIncorrect GextFlag = 0x10
	GextIsIncorrect  GextFlag = 0x20
	GextGiven        GextFlag = 0x40
	GextCircled      GextFlag = 0x80
)

// File is a fully decoded (or ready-to-encode) .puz document.
type File struct {
	Width, Height int
	Solution      [][]byte // row-major, '.' marks a black cell
	State         [][]byte // row-major, '-' marks an unfilled white cell
	Title         string
	Author        string
	Copyright     string
	AcrossClues   []string // in top-to-bottom, left-to-right entry order
	DownClues     []string
	Notes         string

	Rebuses     map[Position]string // GRBS/RTBL: multi-letter answers
	Flags       map[Position]GextFlag
	UserRebuses map[Position]string // RUSR: in-progress rebus entries that differ from the solution
	PlayTime    int
	TimerPaused bool
}

// Encode serializes f into the .puz binary format.
func Encode(f *File) ([]byte, error) {
	if f.Width <= 0 || f.Height <= 0 || f.Width > 255 || f.Height > 255 {
		return nil, fmt.Errorf("puzfile: invalid dimensions %dx%d", f.Width, f.Height)
	}
	solution := flatten(f.Solution, f.Width, f.Height, '.')
	state := flatten(f.State, f.Width, f.Height, '-')
	state = blackenState(state, solution)

	clueOrder, err := orderClues(f)
	if err != nil {
		return nil, err
	}

	text := buildText(f.Title, f.Author, f.Copyright, clueOrder, f.Notes)
	cib := cibBytes(byte(f.Width), byte(f.Height), uint16(len(f.AcrossClues)+len(f.DownClues)), 0x0001, 0x0000)

	cCIB := checksumRegion(0, cib)
	cSolution := checksumRegion(0, []byte(solution))
	cState := checksumRegion(0, []byte(state))
	cText := checksumRegion(0, text)

	global := cCIB
	global = checksumRegion(global, []byte(solution))
	global = checksumRegion(global, []byte(state))
	global = checksumRegion(global, text)

	masked := maskedChecksums(cCIB, cSolution, cState, cText)

	buf := new(bytes.Buffer)
	writeU16(buf, global)
	buf.WriteString(magicPreamble)
	writeU16(buf, cCIB)
	buf.Write(masked[:])
	buf.WriteString("1.3\x00")
	writeU16(buf, 0) // reserved
	writeU16(buf, 0) // scrambled checksum: files here are never scrambled
	buf.Write(make([]byte, 12))
	buf.WriteByte(cib[0])
	buf.WriteByte(cib[1])
	writeU16(buf, uint16(len(f.AcrossClues)+len(f.DownClues)))
	writeU16(buf, 0x0001)
	writeU16(buf, 0x0000)
	buf.WriteString(solution)
	buf.WriteString(state)
	buf.Write(text)

	writeExtensions(buf, f)

	return buf.Bytes(), nil
}

// Decode parses the .puz binary format back into a File.
func Decode(data []byte) (*File, error) {
	if len(data) < 0x34 || string(data[2:14]) != magicPreamble {
		return nil, ErrBadMagic
	}

	width := int(data[0x2C])
	height := int(data[0x2D])
	numClues := int(binary.LittleEndian.Uint16(data[0x2E:0x30]))
	gridSize := width * height
	if len(data) < 0x34+2*gridSize {
		return nil, errors.New("puzfile: file too short for declared grid size")
	}

	solutionFlat := string(data[0x34 : 0x34+gridSize])
	stateFlat := string(data[0x34+gridSize : 0x34+2*gridSize])

	rest := data[0x34+2*gridSize:]
	fields, extBytes, err := splitNullTerminated(rest, 4+numClues)
	if err != nil {
		return nil, err
	}

	f := &File{
		Width:     width,
		Height:    height,
		Solution:  unflatten(solutionFlat, width, height),
		State:     unflatten(stateFlat, width, height),
		Title:     fields[0],
		Author:    fields[1],
		Copyright: fields[2],
		Notes:     fields[3+numClues],
	}
	clueTexts := fields[3 : 3+numClues]

	f.AcrossClues, f.DownClues, err = splitClueOrder(f, clueTexts)
	if err != nil {
		return nil, err
	}

	if err := readExtensions(extBytes, f); err != nil {
		return nil, err
	}

	return f, nil
}

func flatten(grid [][]byte, w, h int, blank byte) string {
	buf := make([]byte, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y < len(grid) && x < len(grid[y]) && grid[y][x] != 0 {
				buf = append(buf, grid[y][x])
			} else {
				buf = append(buf, blank)
			}
		}
	}
	return string(buf)
}

// blackenState forces every cell that's black in solution to '.' in
// state, the format's convention for marking black squares in the
// player grid regardless of what an editor left there.
func blackenState(state, solution string) string {
	b := []byte(state)
	for i := range b {
		if solution[i] == '.' {
			b[i] = '.'
		}
	}
	return string(b)
}

func unflatten(flat string, w, h int) [][]byte {
	grid := make([][]byte, h)
	for y := 0; y < h; y++ {
		row := make([]byte, w)
		copy(row, flat[y*w:(y+1)*w])
		grid[y] = row
	}
	return grid
}

func cibBytes(width, height byte, numClues, puzzleType, scrambledState uint16) []byte {
	buf := make([]byte, 8)
	buf[0] = width
	buf[1] = height
	binary.LittleEndian.PutUint16(buf[2:4], numClues)
	binary.LittleEndian.PutUint16(buf[4:6], puzzleType)
	binary.LittleEndian.PutUint16(buf[6:8], scrambledState)
	return buf
}

// checksumRegion folds data into cksum using the format's
// rotate-right-one-then-add accumulation.
func checksumRegion(cksum uint16, data []byte) uint16 {
	for _, b := range data {
		if cksum&0x0001 != 0 {
			cksum = (cksum >> 1) + 0x8000
		} else {
			cksum = cksum >> 1
		}
		cksum = (cksum + uint16(b)) & 0xFFFF
	}
	return cksum
}

func maskedChecksums(cCIB, cSolution, cState, cText uint16) [8]byte {
	var out [8]byte
	low := [4]uint16{cCIB, cSolution, cState, cText}
	for i, c := range low {
		out[i] = byte(c&0xFF) ^ maskString[i]
		out[i+4] = byte(c>>8) ^ maskString[i+4]
	}
	return out
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func buildText(title, author, copyright string, clues []string, notes string) []byte {
	var buf bytes.Buffer
	buf.WriteString(title)
	buf.WriteByte(0)
	buf.WriteString(author)
	buf.WriteByte(0)
	buf.WriteString(copyright)
	buf.WriteByte(0)
	for _, c := range clues {
		buf.WriteString(c)
		buf.WriteByte(0)
	}
	buf.WriteString(notes)
	buf.WriteByte(0)
	return buf.Bytes()
}

func splitNullTerminated(data []byte, count int) ([]string, []byte, error) {
	fields := make([]string, 0, count)
	pos := 0
	for len(fields) < count {
		end := bytes.IndexByte(data[pos:], 0)
		if end < 0 {
			return nil, nil, fmt.Errorf("puzfile: expected %d null-terminated strings, found %d", count, len(fields))
		}
		fields = append(fields, string(data[pos:pos+end]))
		pos += end + 1
	}
	return fields, data[pos:], nil
}

// orderClues interleaves f.AcrossClues and f.DownClues into the
// row-major numbering order the format stores them in.
func orderClues(f *File) ([]string, error) {
	numbers := numberCells(f.Solution, f.Width, f.Height)
	var order []string
	ai, di := 0, 0
	for _, n := range numbers {
		if n.across {
			if ai >= len(f.AcrossClues) {
				return nil, errors.New("puzfile: fewer across clues than across entries")
			}
			order = append(order, f.AcrossClues[ai])
			ai++
		}
		if n.down {
			if di >= len(f.DownClues) {
				return nil, errors.New("puzfile: fewer down clues than down entries")
			}
			order = append(order, f.DownClues[di])
			di++
		}
	}
	return order, nil
}

// splitClueOrder is orderClues's inverse: given the flat clue list
// read from a file, split it back into across/down using the same
// numbering walk.
func splitClueOrder(f *File, clueTexts []string) ([]string, []string, error) {
	numbers := numberCells(f.Solution, f.Width, f.Height)
	var across, down []string
	i := 0
	for _, n := range numbers {
		if n.across {
			if i >= len(clueTexts) {
				return nil, nil, errors.New("puzfile: ran out of clue text while assigning across entries")
			}
			across = append(across, clueTexts[i])
			i++
		}
		if n.down {
			if i >= len(clueTexts) {
				return nil, nil, errors.New("puzfile: ran out of clue text while assigning down entries")
			}
			down = append(down, clueTexts[i])
			i++
		}
	}
	return across, down, nil
}

type numberedCell struct{ across, down bool }

func numberCells(solution [][]byte, w, h int) []numberedCell {
	black := func(x, y int) bool {
		return y < 0 || y >= h || x < 0 || x >= w || solution[y][x] == '.'
	}
	var out []numberedCell
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if black(x, y) {
				continue
			}
			startsAcross := (x == 0 || black(x-1, y)) && !black(x+1, y)
			startsDown := (y == 0 || black(x, y-1)) && !black(x, y+1)
			if startsAcross || startsDown {
				out = append(out, numberedCell{across: startsAcross, down: startsDown})
			}
		}
	}
	return out
}
