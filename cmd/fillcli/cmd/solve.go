package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/crossplay/fillengine/internal/dictionary"
	"github.com/crossplay/fillengine/internal/puzfile"
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/search"
	"github.com/crossplay/fillengine/pkg/window"
	"github.com/crossplay/fillengine/pkg/word"
	"github.com/spf13/cobra"
)

var (
	solveGrid       string
	solveDictionary string
	solveBinary     bool
	solveOutput     string
	solvePuzOutput  string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Fill a grid from a word list",
	Long: `Read a grid mask (and any pre-filled letters) and a word list, and search for a
complete, non-repeating fill.

Examples:
  # Solve a grid against a Broda-format word list
  fillcli solve --grid sunday.txt --dictionary broda.txt

  # Solve against a binary-encoded word list and write a .puz file
  fillcli solve --grid sunday.txt --dictionary words.bin --binary --puz sunday.puz`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveGrid, "grid", "g", "", "grid mask file: '#' black, '.' blank, any other character pre-filled (required)")
	solveCmd.Flags().StringVarP(&solveDictionary, "dictionary", "w", "", "word list file (required)")
	solveCmd.Flags().BoolVar(&solveBinary, "binary", false, "parse the word list as the binary scored format rather than Broda text")
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "", "output file for the solved grid (default: stdout)")
	solveCmd.Flags().StringVar(&solvePuzOutput, "puz", "", "also write the solution as an AcrossLite .puz file")

	solveCmd.MarkFlagRequired("grid")
	solveCmd.MarkFlagRequired("dictionary")
}

func runSolve(cmd *cobra.Command, args []string) error {
	rows, err := readLines(solveGrid)
	if err != nil {
		return fmt.Errorf("read grid: %w", err)
	}
	width, height, white, pregrid, err := parseGridRows(rows)
	if err != nil {
		return fmt.Errorf("parse grid: %w", err)
	}

	words, err := loadWords(solveDictionary, solveBinary)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	if verbosity > 0 {
		fmt.Fprintf(os.Stderr, "loaded %d words\n", len(words))
	}

	windows := window.FromWhiteMask(width, height, white)
	sr := search.New(windows, words)
	sr.Retain(pregrid)
	sr.RefineAll()

	var found *search.Search
	sr.Solve(search.TakeOne(&found))
	if found == nil {
		return fmt.Errorf("no solution found")
	}

	solution := found.Finish()
	solvedRows := make([]string, height)
	for y := 0; y < height; y++ {
		buf := make([]byte, width)
		for x := 0; x < width; x++ {
			cell := solution.At(x, y)
			if cell.Black {
				buf[x] = '#'
			} else if cell.Letter == nil {
				buf[x] = '.'
			} else {
				buf[x] = byte(*cell.Letter)
			}
		}
		solvedRows[y] = string(buf)
	}

	output := strings.Join(solvedRows, "\n") + "\n"
	if solveOutput == "" {
		fmt.Print(output)
	} else if err := os.WriteFile(solveOutput, []byte(output), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if solvePuzOutput != "" {
		return writePuz(solvedRows, width, height, solvePuzOutput)
	}
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func parseGridRows(rows []string) (width, height int, white func(x, y int) bool, pregrid *grid.Grid[grid.Cell], err error) {
	height = len(rows)
	if height == 0 {
		return 0, 0, nil, nil, fmt.Errorf("grid has no rows")
	}
	width = len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return 0, 0, nil, nil, fmt.Errorf("grid rows have inconsistent width")
		}
	}

	white = func(x, y int) bool { return rows[y][x] != '#' }
	pregrid = grid.New(width, height, func(x, y int) grid.Cell {
		b := rows[y][x]
		if b == '#' {
			return grid.BlackCell()
		}
		if b == '.' {
			return grid.WhiteCell(nil)
		}
		r := rune(b)
		return grid.WhiteCell(&r)
	})
	return width, height, white, pregrid, nil
}

func loadWords(path string, binary bool) ([]word.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []dictionary.Entry
	if binary {
		entries, err = dictionary.LoadBinary(f)
	} else {
		entries, err = dictionary.LoadBroda(f)
	}
	if err != nil {
		return nil, err
	}
	return dictionary.Words(entries), nil
}

func writePuz(rows []string, width, height int, path string) error {
	solution := make([][]byte, height)
	state := make([][]byte, height)
	for y, row := range rows {
		solution[y] = []byte(strings.ReplaceAll(row, "#", "."))
		state[y] = []byte(strings.Repeat("-", width))
	}

	f := &puzfile.File{
		Width:    width,
		Height:   height,
		Solution: solution,
		State:    state,
		Title:    "fillcli solve",
	}
	f.AcrossClues, f.DownClues = placeholderClues(solution, width, height)

	data, err := puzfile.Encode(f)
	if err != nil {
		return fmt.Errorf("encode puz: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// placeholderClues fills in empty clue text for every across/down entry
// the grid implies, since a solved grid alone carries no clue copy.
func placeholderClues(solution [][]byte, w, h int) (across, down []string) {
	black := func(x, y int) bool {
		return y < 0 || y >= h || x < 0 || x >= w || solution[y][x] == '.'
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if black(x, y) {
				continue
			}
			if (x == 0 || black(x-1, y)) && !black(x+1, y) {
				across = append(across, "")
			}
			if (y == 0 || black(x, y-1)) && !black(x, y+1) {
				down = append(down, "")
			}
		}
	}
	return across, down
}
