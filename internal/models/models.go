// Package models holds the data shapes shared between the solve
// service's storage layer, its HTTP handlers, and the puzzle file
// writer.
package models

import "time"

// Difficulty is an advisory label a caller may attach to a puzzle; the
// solve engine itself does not use it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Puzzle is a grid plus its clue lists, the shape a solve result or a
// solve request's pre-filled grid is exchanged in over the wire.
type Puzzle struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Difficulty  Difficulty   `json:"difficulty"`
	GridWidth   int          `json:"gridWidth"`
	GridHeight  int          `json:"gridHeight"`
	Grid        [][]GridCell `json:"grid"`
	CluesAcross []Clue       `json:"cluesAcross"`
	CluesDown   []Clue       `json:"cluesDown"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// GridCell is a single cell in a Puzzle's grid: nil Letter means black.
type GridCell struct {
	Letter *string `json:"letter"`
	Number *int    `json:"number,omitempty"`
}

// Clue is a single clue, numbered and positioned the way AcrossLite
// and similar solvers expect.
type Clue struct {
	Number    int    `json:"number"`
	Text      string `json:"text"`
	Answer    string `json:"answer"`
	PositionX int    `json:"positionX"`
	PositionY int    `json:"positionY"`
	Length    int    `json:"length"`
	Direction string `json:"direction"`
}

// JobStatus is the lifecycle state of a solve job.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// SolveJob records one invocation of the fill engine: the grid and
// dictionary digest that identify the problem, how it turned out, and
// how long it took. It is what internal/jobs persists to Postgres and
// caches results for in Redis.
type SolveJob struct {
	ID          string     `json:"id"`
	GridDigest  string     `json:"gridDigest"`
	DictDigest  string     `json:"dictDigest"`
	Status      JobStatus  `json:"status"`
	Error       string     `json:"error,omitempty"`
	SolutionRaw string     `json:"solutionRaw,omitempty"` // row-major letters, '.' for black
	GridWidth   int        `json:"gridWidth"`
	GridHeight  int        `json:"gridHeight"`
	CreatedAt   time.Time  `json:"createdAt"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
}
