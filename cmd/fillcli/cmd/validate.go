package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crossplay/fillengine/pkg/word"
	"github.com/spf13/cobra"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate grid mask files",
	Long: `Validate one or more grid mask files for correctness.

Checks include:
  - Grid symmetry (180-degree rotational)
  - Grid connectivity (all white cells reachable)
  - Minimum word length requirements

Examples:
  # Validate a single grid file
  fillcli validate --input sunday.txt

  # Validate every grid in a directory
  fillcli validate --input ./grids`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "grid file or directory to validate (required)")
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(validateInput)
	if err != nil {
		return fmt.Errorf("failed to access input path: %w", err)
	}

	var files []string
	if info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(validateInput, "*.txt"))
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no .txt files found in directory: %s", validateInput)
		}
		files = matches
	} else {
		files = []string{validateInput}
	}

	invalid := 0
	for _, path := range files {
		if problems := validateGridFile(path); len(problems) > 0 {
			invalid++
			fmt.Printf("%s: INVALID\n", filepath.Base(path))
			for _, p := range problems {
				fmt.Printf("  - %s\n", p)
			}
		} else if verbosity > 0 {
			fmt.Printf("%s: valid\n", filepath.Base(path))
		}
	}

	fmt.Printf("\nValidation Summary:\n")
	fmt.Printf("  Total files: %d\n", len(files))
	fmt.Printf("  Valid:       %d\n", len(files)-invalid)
	fmt.Printf("  Invalid:     %d\n", invalid)

	if invalid > 0 {
		os.Exit(1)
	}
	return nil
}

func validateGridFile(path string) []string {
	rows, err := readLines(path)
	if err != nil {
		return []string{fmt.Sprintf("read error: %v", err)}
	}
	if len(rows) == 0 {
		return []string{"grid has no rows"}
	}
	width := len(rows[0])
	height := len(rows)
	for _, row := range rows {
		if len(row) != width {
			return []string{"rows have inconsistent width"}
		}
	}

	var problems []string

	black := func(x, y int) bool {
		if x < 0 || x >= width || y < 0 || y >= height {
			return true
		}
		return rows[y][x] == '#'
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			mirrored := black(width-1-x, height-1-y)
			if black(x, y) != mirrored {
				problems = append(problems, fmt.Sprintf("cell (%d,%d) breaks 180-degree symmetry", x, y))
				break
			}
		}
		if len(problems) > 0 {
			break
		}
	}

	if n := countUnreachableWhite(black, width, height); n > 0 {
		problems = append(problems, fmt.Sprintf("%d white cell(s) unreachable from the rest of the grid", n))
	}

	for y := 0; y < height; y++ {
		runLen := 0
		for x := 0; x <= width; x++ {
			if x < width && !black(x, y) {
				runLen++
				continue
			}
			if runLen == 1 || (runLen >= 2 && runLen > word.MaxLength) {
				problems = append(problems, fmt.Sprintf("row %d has a degenerate or oversized across run of length %d", y, runLen))
			}
			runLen = 0
		}
	}
	for x := 0; x < width; x++ {
		runLen := 0
		for y := 0; y <= height; y++ {
			if y < height && !black(x, y) {
				runLen++
				continue
			}
			if runLen == 1 || (runLen >= 2 && runLen > word.MaxLength) {
				problems = append(problems, fmt.Sprintf("column %d has a degenerate or oversized down run of length %d", x, runLen))
			}
			runLen = 0
		}
	}

	return problems
}

func countUnreachableWhite(black func(x, y int) bool, width, height int) int {
	total := 0
	start := [2]int{-1, -1}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !black(x, y) {
				total++
				if start[0] == -1 {
					start = [2]int{x, y}
				}
			}
		}
	}
	if total == 0 {
		return 0
	}

	visited := make(map[[2]int]bool)
	queue := [][2]int{start}
	visited[start] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next := [2]int{cur[0] + d[0], cur[1] + d[1]}
			if next[0] < 0 || next[0] >= width || next[1] < 0 || next[1] >= height {
				continue
			}
			if black(next[0], next[1]) || visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return total - len(visited)
}
