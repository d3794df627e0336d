package puzfile

import (
	"reflect"
	"testing"
)

func sampleFile() *File {
	solution := [][]byte{
		[]byte("CAT."),
		[]byte("ARED"),
		[]byte("RUN."),
	}
	state := [][]byte{
		[]byte("----"),
		[]byte("----"),
		[]byte("----"),
	}
	return &File{
		Width:       4,
		Height:      3,
		Solution:    solution,
		State:       state,
		Title:       "Sample Puzzle",
		Author:      "Author Name",
		Copyright:   "© Author Name",
		AcrossClues: []string{"Feline", "Colored, and a preposition", "Jog"},
		DownClues:   []string{"Vehicle, informally", "Cooked egg style", "Sprinted"},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := sampleFile()

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.Title != original.Title || decoded.Author != original.Author || decoded.Copyright != original.Copyright {
		t.Errorf("text fields = %+v, want title/author/copyright preserved", decoded)
	}
	if !reflect.DeepEqual(decoded.AcrossClues, original.AcrossClues) {
		t.Errorf("AcrossClues = %v, want %v", decoded.AcrossClues, original.AcrossClues)
	}
	if !reflect.DeepEqual(decoded.DownClues, original.DownClues) {
		t.Errorf("DownClues = %v, want %v", decoded.DownClues, original.DownClues)
	}
	for y := range original.Solution {
		if string(decoded.Solution[y]) != string(original.Solution[y]) {
			t.Errorf("solution row %d = %q, want %q", y, decoded.Solution[y], original.Solution[y])
		}
	}
}

func TestEncodeDecodeRoundTripIsByteExact(t *testing.T) {
	original := sampleFile()

	first, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(first)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	second, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("re-encoding a decoded file did not reproduce the original bytes")
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	if _, err := Decode(make([]byte, 64)); err != ErrBadMagic {
		t.Fatalf("Decode error = %v, want ErrBadMagic", err)
	}
}

func TestEncodeDecodeWithRebusesAndFlags(t *testing.T) {
	f := sampleFile()
	f.Rebuses = map[Position]string{{X: 0, Y: 0}: "CAT"}
	f.Flags = map[Position]GextFlag{{X: 1, Y: 1}: GextCircled}
	f.PlayTime = 125
	f.TimerPaused = true

	data, err := Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.Rebuses[Position{X: 0, Y: 0}] != "CAT" {
		t.Errorf("rebus not preserved: %+v", decoded.Rebuses)
	}
	if decoded.Flags[Position{X: 1, Y: 1}] != GextCircled {
		t.Errorf("flag not preserved: %+v", decoded.Flags)
	}
	if decoded.PlayTime != 125 || !decoded.TimerPaused {
		t.Errorf("play time not preserved: %d paused=%v", decoded.PlayTime, decoded.TimerPaused)
	}
}

func TestEncodeDecodeWithUserRebuses(t *testing.T) {
	f := sampleFile()
	f.UserRebuses = map[Position]string{{X: 2, Y: 2}: "NN"}

	data, err := Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.UserRebuses[Position{X: 2, Y: 2}] != "NN" {
		t.Errorf("user rebus not preserved: %+v", decoded.UserRebuses)
	}
}

func TestEncodeRejectsOversizedDimensions(t *testing.T) {
	f := sampleFile()
	f.Width = 300
	if _, err := Encode(f); err == nil {
		t.Fatal("expected an error for an out-of-range width")
	}
}
