package puzfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// writeExtensions appends the optional tagged sections (GRBS, RTBL,
// GEXT, LTIM, RUSR) present on f. Each section is a 4-byte tag, a
// little-endian length, a little-endian checksum of the section's
// data, the data itself, and a trailing NUL not counted in length.
func writeExtensions(buf *bytes.Buffer, f *File) {
	size := f.Width * f.Height

	if len(f.Rebuses) > 0 {
		grbs, rtbl := encodeRebuses(f)
		writeSection(buf, "GRBS", grbs)
		writeSection(buf, "RTBL", rtbl)
	}
	if len(f.Flags) > 0 {
		gext := make([]byte, size)
		for pos, flag := range f.Flags {
			if idx, ok := cellIndex(pos, f.Width, f.Height); ok {
				gext[idx] = byte(flag)
			}
		}
		writeSection(buf, "GEXT", gext)
	}
	if f.PlayTime > 0 || f.TimerPaused {
		running := 1
		if f.TimerPaused {
			running = 0
		}
		writeSection(buf, "LTIM", []byte(fmt.Sprintf("%d,%d", f.PlayTime, running)))
	}
	if len(f.UserRebuses) > 0 {
		var rusr bytes.Buffer
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				rusr.WriteString(f.UserRebuses[Position{X: x, Y: y}])
				rusr.WriteByte(0)
			}
		}
		writeSection(buf, "RUSR", rusr.Bytes())
	}
}

func writeSection(buf *bytes.Buffer, tag string, data []byte) {
	buf.WriteString(tag)
	writeU16(buf, uint16(len(data)))
	writeU16(buf, checksumRegion(0, data))
	buf.Write(data)
	buf.WriteByte(0)
}

func cellIndex(pos Position, w, h int) (int, bool) {
	if pos.X < 0 || pos.X >= w || pos.Y < 0 || pos.Y >= h {
		return 0, false
	}
	return pos.Y*w + pos.X, true
}

// encodeRebuses builds the GRBS per-cell index grid and its matching
// RTBL text table. RTBL indices are 1-based; 0 in GRBS means no rebus.
func encodeRebuses(f *File) (grbs []byte, rtbl []byte) {
	grbs = make([]byte, f.Width*f.Height)

	type entry struct {
		pos   Position
		value string
	}
	var entries []entry
	for pos, v := range f.Rebuses {
		entries = append(entries, entry{pos, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].pos.Y != entries[j].pos.Y {
			return entries[i].pos.Y < entries[j].pos.Y
		}
		return entries[i].pos.X < entries[j].pos.X
	})

	valueIndex := make(map[string]int)
	var table bytes.Buffer
	nextIndex := 1
	for _, e := range entries {
		idx, ok := valueIndex[e.value]
		if !ok {
			idx = nextIndex
			nextIndex++
			valueIndex[e.value] = idx
			fmt.Fprintf(&table, " %02d:%s;", idx, e.value)
		}
		if cellIdx, ok := cellIndex(e.pos, f.Width, f.Height); ok {
			grbs[cellIdx] = byte(idx)
		}
	}
	return grbs, table.Bytes()
}

func readExtensions(data []byte, f *File) error {
	pos := 0
	var grbs, gext []byte
	var rtblTable string
	for pos+8 <= len(data) {
		tag := string(data[pos : pos+4])
		length := int(binary.LittleEndian.Uint16(data[pos+4 : pos+6]))
		wantChecksum := binary.LittleEndian.Uint16(data[pos+6 : pos+8])
		start := pos + 8
		if start+length+1 > len(data) {
			return fmt.Errorf("puzfile: section %q truncated", tag)
		}
		sectionData := data[start : start+length]
		if checksumRegion(0, sectionData) != wantChecksum {
			return fmt.Errorf("puzfile: section %q failed checksum verification", tag)
		}
		pos = start + length + 1 // skip trailing NUL

		switch tag {
		case "GRBS":
			grbs = sectionData
		case "RTBL":
			rtblTable = string(sectionData)
		case "GEXT":
			gext = sectionData
		case "LTIM":
			if err := parseLTIM(string(sectionData), f); err != nil {
				return err
			}
		case "RUSR":
			if err := parseRUSR(sectionData, f); err != nil {
				return err
			}
		default:
			return fmt.Errorf("puzfile: unrecognized section tag %q", tag)
		}
	}

	if grbs != nil {
		rebuses, err := decodeRebuses(grbs, rtblTable, f.Width, f.Height)
		if err != nil {
			return err
		}
		f.Rebuses = rebuses
	}
	if gext != nil {
		f.Flags = make(map[Position]GextFlag)
		for i, b := range gext {
			if b == 0 {
				continue
			}
			f.Flags[Position{X: i % f.Width, Y: i / f.Width}] = GextFlag(b)
		}
	}
	return nil
}

func decodeRebuses(grbs []byte, table string, w, h int) (map[Position]string, error) {
	values := make(map[int]string)
	for _, entry := range strings.Split(table, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("puzfile: malformed RTBL entry %q", entry)
		}
		idx, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("puzfile: malformed RTBL index %q: %w", parts[0], err)
		}
		values[idx] = parts[1]
	}

	rebuses := make(map[Position]string)
	for i, b := range grbs {
		if b == 0 {
			continue
		}
		v, ok := values[int(b)]
		if !ok {
			return nil, fmt.Errorf("puzfile: GRBS cell references unknown RTBL index %d", int(b))
		}
		rebuses[Position{X: i % w, Y: i / w}] = v
	}
	return rebuses, nil
}

func parseLTIM(s string, f *File) error {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return fmt.Errorf("puzfile: malformed LTIM section %q", s)
	}
	seconds, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("puzfile: malformed LTIM elapsed time %q: %w", parts[0], err)
	}
	f.PlayTime = seconds
	f.TimerPaused = parts[1] == "0"
	return nil
}

func parseRUSR(data []byte, f *File) error {
	f.UserRebuses = make(map[Position]string)
	pos := 0
	for i := 0; i < f.Width*f.Height; i++ {
		end := bytes.IndexByte(data[pos:], 0)
		if end < 0 {
			return errors.New("puzfile: RUSR section missing terminator")
		}
		if s := string(data[pos : pos+end]); s != "" {
			f.UserRebuses[Position{X: i % f.Width, Y: i / f.Width}] = s
		}
		pos += end + 1
	}
	return nil
}
