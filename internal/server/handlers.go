package server

import (
	"net/http"
	"strconv"

	"github.com/crossplay/fillengine/internal/jobs"
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/word"
	"github.com/gin-gonic/gin"
)

// SolveRequest is a grid plus the dictionary to fill it from. Rows use
// '#' for black cells, '.' for an unresolved white cell, and any other
// character as a pre-filled letter.
type SolveRequest struct {
	Rows  []string `json:"rows" binding:"required"`
	Words []string `json:"words" binding:"required"`
}

// SolveResponse reports a job's outcome.
type SolveResponse struct {
	JobID    string   `json:"jobId"`
	Status   string   `json:"status"`
	Solution []string `json:"solution,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func parseRows(rows []string) (width, height int, white func(x, y int) bool, pregrid *grid.Grid[grid.Cell], err error) {
	height = len(rows)
	if height == 0 {
		return 0, 0, nil, nil, errInvalidGrid("grid has no rows")
	}
	width = len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return 0, 0, nil, nil, errInvalidGrid("grid rows have inconsistent width")
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

func parseWords(raw []string) ([]word.Word, error) {
	words := make([]word.Word, 0, len(raw))
	for _, s := range raw {
		w, err := word.FromString(s)
		if err != nil {
			return nil, errInvalidGrid("word " + s + ": " + err.Error())
		}
		words = append(words, w)
	}
	return words, nil
}

func gridToRows(g *grid.Grid[grid.Cell], width, height int) []string {
	rows := make([]string, height)
	for y := 0; y < height; y++ {
		buf := make([]byte, width)
		for x := 0; x < width; x++ {
			cell := g.At(x, y)
			switch {
			case cell.Black:
				buf[x] = '#'
			case cell.Letter == nil:
				buf[x] = '.'
			default:
				buf[x] = byte(*cell.Letter)
			}
		}
		rows[y] = string(buf)
	}
	return rows
}

type errInvalidGrid string

func (e errInvalidGrid) Error() string { return string(e) }

// Solve runs a fill synchronously and returns the result inline.
func (s *Server) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	width, height, white, pregrid, err := parseRows(req.Rows)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dict, err := parseWords(req.Words)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, result, err := s.jobs.Submit(c.Request.Context(), jobs.Request{
		Width: width, Height: height, White: white, Pregrid: pregrid, Dictionary: dict,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := SolveResponse{JobID: job.ID, Status: string(job.Status)}
	if result != nil {
		resp.Solution = gridToRows(result, width, height)
	}
	if job.Error != "" {
		resp.Error = job.Error
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetJob fetches a previously submitted job by id.
func (s *Server) GetJob(c *gin.Context) {
	job, err := s.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobs returns the most recently submitted jobs.
func (s *Server) ListJobs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	history, err := s.jobs.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}

// IssueToken exchanges a shared API key for a bearer token scoped for
// solve access.
func (s *Server) IssueToken(c *gin.Context) {
	var req struct {
		APIKey string `json:"apiKey" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clientID, ok := s.auth.CheckAPIKey(req.APIKey)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	token, err := s.auth.GenerateToken(clientID, []string{ScopeSolve})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
