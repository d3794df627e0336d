// Package jobs runs fill searches as tracked, cacheable units of
// work: a grid and a dictionary go in, a solve_jobs row and (on
// success) a cached raw solution come out.
package jobs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/crossplay/fillengine/internal/db"
	"github.com/crossplay/fillengine/internal/models"
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/search"
	"github.com/crossplay/fillengine/pkg/window"
	"github.com/crossplay/fillengine/pkg/word"
	"github.com/google/uuid"
)

// Request describes one grid to solve: its white-cell mask, any
// pre-filled letters, and the dictionary to draw from.
type Request struct {
	Width, Height int
	White         func(x, y int) bool
	Pregrid       *grid.Grid[grid.Cell] // may be nil
	Dictionary    []word.Word
}

// Service runs solve requests and persists their outcome.
type Service struct {
	store  *db.Database
	config search.Config
}

// New builds a Service backed by store, using the default search
// splitting configuration.
func New(store *db.Database) *Service {
	return &Service{store: store, config: search.DefaultConfig()}
}

// NewWithConfig is New but lets the caller override the search's
// splitting heuristic.
func NewWithConfig(store *db.Database, cfg search.Config) *Service {
	return &Service{store: store, config: cfg}
}

// digest hashes a value deterministically enough to key the fill
// cache: it is not a security boundary, just a dedup key.
func digest(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func gridDigest(req Request) string {
	var sb []byte
	for y := 0; y < req.Height; y++ {
		for x := 0; x < req.Width; x++ {
			if req.White(x, y) {
				sb = append(sb, '1')
			} else {
				sb = append(sb, '0')
			}
			if req.Pregrid != nil {
				cell := req.Pregrid.At(x, y)
				if cell.Letter != nil {
					sb = append(sb, byte(*cell.Letter))
				}
			}
		}
	}
	return digest(fmt.Sprintf("%dx%d", req.Width, req.Height), string(sb))
}

func dictDigest(dict []word.Word) string {
	var sb []byte
	for _, w := range dict {
		sb = append(sb, []byte(w.String())...)
		sb = append(sb, ';')
	}
	return digest(string(sb))
}

// Submit runs req synchronously, recording a solve_jobs row for it
// and returning the first solution found (nil if none exists). It
// checks the Redis fill cache before searching and populates it after
// a successful search.
func (s *Service) Submit(ctx context.Context, req Request) (*models.SolveJob, *grid.Grid[grid.Cell], error) {
	gd := gridDigest(req)
	dd := dictDigest(req.Dictionary)

	job := &models.SolveJob{
		ID:         uuid.NewString(),
		GridDigest: gd,
		DictDigest: dd,
		Status:     models.JobQueued,
		GridWidth:  req.Width,
		GridHeight: req.Height,
		CreatedAt:  time.Now(),
	}
	if err := s.store.CreateSolveJob(ctx, job); err != nil {
		return nil, nil, fmt.Errorf("jobs: create job record: %w", err)
	}

	if cached, ok, err := s.store.GetCachedFillResult(ctx, gd, dd); err == nil && ok {
		finishedAt := time.Now()
		job.Status = models.JobSucceeded
		job.SolutionRaw = cached
		job.FinishedAt = &finishedAt
		_ = s.store.FinishSolveJob(ctx, job.ID, job.Status, job.SolutionRaw, "", finishedAt)
		return job, rawToGrid(cached, req.Width, req.Height), nil
	}

	result, err := s.run(req)
	finishedAt := time.Now()
	job.FinishedAt = &finishedAt

	if err != nil {
		job.Status = models.JobFailed
		job.Error = err.Error()
		_ = s.store.FinishSolveJob(ctx, job.ID, job.Status, "", job.Error, finishedAt)
		return job, nil, err
	}
	if result == nil {
		job.Status = models.JobFailed
		job.Error = "no solution found"
		_ = s.store.FinishSolveJob(ctx, job.ID, job.Status, "", job.Error, finishedAt)
		return job, nil, nil
	}

	raw := gridToRaw(result, req.Width, req.Height)
	job.Status = models.JobSucceeded
	job.SolutionRaw = raw
	if err := s.store.FinishSolveJob(ctx, job.ID, job.Status, raw, "", finishedAt); err != nil {
		return job, result, fmt.Errorf("jobs: persist job result: %w", err)
	}
	_ = s.store.CacheFillResult(ctx, gd, dd, raw)

	return job, result, nil
}

func (s *Service) run(req Request) (*grid.Grid[grid.Cell], error) {
	windows := window.FromWhiteMask(req.Width, req.Height, req.White)
	sr := search.NewWithConfig(windows, req.Dictionary, s.config)
	if req.Pregrid != nil {
		sr.Retain(req.Pregrid)
	}
	sr.RefineAll()

	var found *search.Search
	sr.Solve(search.TakeOne(&found))
	if found == nil {
		return nil, nil
	}
	return found.Finish(), nil
}

func gridToRaw(g *grid.Grid[grid.Cell], w, h int) string {
	buf := make([]byte, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := g.At(x, y)
			if cell.Black || cell.Letter == nil {
				buf = append(buf, '.')
			} else {
				buf = append(buf, byte(*cell.Letter))
			}
		}
	}
	return string(buf)
}

func rawToGrid(raw string, w, h int) *grid.Grid[grid.Cell] {
	return grid.New(w, h, func(x, y int) grid.Cell {
		b := raw[y*w+x]
		if b == '.' {
			return grid.BlackCell()
		}
		r := rune(b)
		return grid.WhiteCell(&r)
	})
}

// History returns the most recently submitted jobs, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*models.SolveJob, error) {
	return s.store.ListRecentSolveJobs(ctx, limit)
}

// Get fetches a single job by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.SolveJob, error) {
	return s.store.GetSolveJob(ctx, id)
}
