package dictionary

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

// encodeEntry writes one entry in the binary format's raw-length form
// (has_length, prefix 0), the simplest path a real encoder would use
// for a word sharing no prefix with its predecessor.
func encodeEntry(buf *bytes.Buffer, word string, score byte) {
	h := byte(0x80) | byte(1) // has_length=1, prefix=0 (encoded as 0+1)
	buf.WriteByte(h)
	buf.WriteByte(score)
	buf.WriteByte(byte(len(word)))
	buf.WriteString(word)
}

func buildBinary(words []string, scores []byte) []byte {
	var body bytes.Buffer
	for i, w := range words {
		encodeEntry(&body, w, scores[i])
	}

	var out bytes.Buffer
	out.Write(magic[:])
	var endBuf [4]byte
	binary.LittleEndian.PutUint32(endBuf[:], uint32(12+body.Len()))
	out.Write(endBuf[:])
	out.Write(body.Bytes())
	return out.Bytes()
}

func TestLoadBinaryDecodesRawLengthEntries(t *testing.T) {
	data := buildBinary([]string{"CAT", "DOG", "BIRD"}, []byte{90, 80, 10})
	entries, err := LoadBinary(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadBinary: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	want := map[string]int{"CAT": 90, "DOG": 0, "BIRD": 10}
	for _, e := range entries {
		if want[e.Text] != e.Score {
			t.Errorf("entry %q score = %d, want %d", e.Text, e.Score, want[e.Text])
		}
	}
	// Sorted descending by score.
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Score < entries[i].Score {
			t.Fatalf("entries not sorted by descending score: %+v", entries)
		}
	}
}

func TestLoadBinaryRejectsBadMagic(t *testing.T) {
	data := append([]byte{0, 1, 2, 3, 4, 5, 6, 7}, 12, 0, 0, 0)
	if _, err := LoadBinary(bytes.NewReader(data)); err != ErrBadMagic {
		t.Fatalf("LoadBinary error = %v, want ErrBadMagic", err)
	}
}

func TestLoadBinarySkipsOversizedWords(t *testing.T) {
	data := buildBinary([]string{strings.Repeat("A", 20), "OK"}, []byte{50, 50})
	entries, err := LoadBinary(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadBinary: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "OK" {
		t.Fatalf("entries = %+v, want only OK", entries)
	}
}

func TestLoadBrodaParsesWordAndScore(t *testing.T) {
	input := "CAT;90\nDOG;80\n# a comment\n\nBIRD;10\n"
	entries, err := LoadBroda(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadBroda: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Text != "CAT" || entries[0].Score != 90 {
		t.Errorf("first entry = %+v, want CAT/90", entries[0])
	}
}

func TestLoadBrodaDefaultsScoreWhenAbsent(t *testing.T) {
	entries, err := LoadBroda(strings.NewReader("CAT\n"))
	if err != nil {
		t.Fatalf("LoadBroda: %v", err)
	}
	if len(entries) != 1 || entries[0].Score != 50 {
		t.Fatalf("entries = %+v, want single entry with default score 50", entries)
	}
}

func TestLoadBrodaRejectsMalformedScore(t *testing.T) {
	if _, err := LoadBroda(strings.NewReader("CAT;notanumber\n")); err == nil {
		t.Fatal("expected an error for a non-numeric score")
	}
}

func TestWordsStripsScores(t *testing.T) {
	entries, err := LoadBroda(strings.NewReader("CAT;10\nDOG;20\n"))
	if err != nil {
		t.Fatalf("LoadBroda: %v", err)
	}
	words := Words(entries)
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
}
