package server

import (
	"log"
	"net/http"

	"github.com/crossplay/fillengine/pkg/search"
	"github.com/crossplay/fillengine/pkg/window"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamProgress is one message sent over a /solve/stream connection:
// either a solution the search just found, or a terminal status once
// it stops looking.
type StreamProgress struct {
	Solution []string `json:"solution,omitempty"`
	Done     bool     `json:"done"`
	Error    string   `json:"error,omitempty"`
}

// StreamSolve upgrades to a WebSocket and streams every solution the
// search finds as it finds them, rather than waiting for the whole
// search to finish. The client sends one SolveRequest as its first
// text message; the connection closes once the search is exhausted or
// the client disconnects.
func (s *Server) StreamSolve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	claims, err := s.auth.ValidateToken(token)
	if err != nil || !claims.HasScope(ScopeSolve) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("solve stream: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req SolveRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(StreamProgress{Error: "invalid request: " + err.Error(), Done: true})
		return
	}

	width, height, white, pregrid, err := parseRows(req.Rows)
	if err != nil {
		conn.WriteJSON(StreamProgress{Error: err.Error(), Done: true})
		return
	}
	dict, err := parseWords(req.Words)
	if err != nil {
		conn.WriteJSON(StreamProgress{Error: err.Error(), Done: true})
		return
	}

	windows := window.FromWhiteMask(width, height, white)
	sr := search.New(windows, dict)
	sr.Retain(pregrid)
	sr.RefineAll()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sr.Solve(func(found *search.Search) search.Signal {
		select {
		case <-closed:
			return search.Cancel
		default:
		}
		rows := gridToRows(found.Finish(), width, height)
		if err := conn.WriteJSON(StreamProgress{Solution: rows}); err != nil {
			return search.Cancel
		}
		return search.Continue
	})

	conn.WriteJSON(StreamProgress{Done: true})
}
