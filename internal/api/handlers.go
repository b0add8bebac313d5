// Package api wires the generation engine to HTTP: it accepts session
// requests, runs them in the background, and reports status, rendered
// output, and live progress over a websocket.
package api

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wordsearch/solver/internal/dictionary"
	"github.com/wordsearch/solver/internal/fill"
	"github.com/wordsearch/solver/internal/grid"
	"github.com/wordsearch/solver/internal/realtime"
	"github.com/wordsearch/solver/internal/render"
	"github.com/wordsearch/solver/internal/session"
	"github.com/wordsearch/solver/internal/store"
)

// Handlers serves the generation API. store and hub are both optional: with
// neither configured the server runs in demo mode, keeping session state in
// memory only.
type Handlers struct {
	store *store.Store
	hub   *realtime.Hub

	mu       sync.RWMutex
	inMemory map[string]*sessionState
}

type sessionState struct {
	Status    store.Status
	Rows      int
	Cols      int
	Solution  string
	Attempts  int
	ElapsedMS int64
	Document  *render.Document
	Error     string
}

// NewHandlers builds a Handlers. store and hub may be nil.
func NewHandlers(st *store.Store, hub *realtime.Hub) *Handlers {
	return &Handlers{
		store:    st,
		hub:      hub,
		inMemory: make(map[string]*sessionState),
	}
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Solution       string `json:"solution" binding:"required"`
	Rows           int    `json:"rows" binding:"required,min=4"`
	Cols           int    `json:"cols" binding:"required,min=4"`
	DictionaryPath string `json:"dictionaryPath" binding:"required"`
	MaxAttempts    int    `json:"maxAttempts"`
}

// CreateSession handles POST /sessions: it validates the request, assigns a
// session ID, and runs the generation in a background goroutine.
func (h *Handlers) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	corpus, err := dictionary.Load(req.DictionaryPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to load dictionary: " + err.Error()})
		return
	}

	id := uuid.New().String()
	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	state := &sessionState{Status: store.StatusQueued, Rows: req.Rows, Cols: req.Cols, Solution: req.Solution}
	h.mu.Lock()
	h.inMemory[id] = state
	h.mu.Unlock()

	if h.store != nil {
		if err := h.store.CreateSession(id, req.Solution, req.Rows, req.Cols); err != nil {
			log.Printf("api: failed to persist session %s: %v", id, err)
		}
	}

	go h.runSession(id, session.Config{
		Solution:    req.Solution,
		Rows:        req.Rows,
		Cols:        req.Cols,
		Words:       corpus.Words(),
		MaxAttempts: maxAttempts,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	})

	c.JSON(http.StatusAccepted, gin.H{"id": id, "status": store.StatusQueued})
}

func (h *Handlers) runSession(id string, cfg session.Config) {
	h.setStatus(id, store.StatusRunning)
	if h.store != nil {
		if err := h.store.MarkRunning(id); err != nil {
			log.Printf("api: failed to mark session %s running: %v", id, err)
		}
	}

	cfg.Hooks = h.progressHooks(id)

	res, err := session.Run(cfg)
	if err != nil {
		h.failSession(id, err)
		return
	}

	doc := render.ToDocument(res)
	h.mu.Lock()
	if st, ok := h.inMemory[id]; ok {
		st.Status = store.StatusDone
		st.Attempts = res.Attempts
		st.ElapsedMS = res.ElapsedMS
		st.Document = &doc
	}
	h.mu.Unlock()

	if h.store != nil {
		gridJSON, gErr := json.Marshal(doc.Grid)
		solutionJSON, sErr := json.Marshal(doc.Solution)
		wordsJSON, wErr := json.Marshal(doc.Words)
		if gErr != nil || sErr != nil || wErr != nil {
			log.Printf("api: failed to marshal session %s result parts", id)
		} else if err := h.store.MarkDone(id, res.Attempts, res.ElapsedMS, gridJSON, solutionJSON, wordsJSON); err != nil {
			log.Printf("api: failed to persist session %s completion: %v", id, err)
		}

		if docJSON, err := render.JSON(res); err != nil {
			log.Printf("api: failed to render session %s: %v", id, err)
		} else if err := h.store.CacheResult(context.Background(), id, docJSON); err != nil {
			log.Printf("api: failed to cache session %s: %v", id, err)
		}
	}

	if h.hub != nil {
		h.hub.Broadcast(id, realtime.MsgSessionDone, realtime.SessionDonePayload{
			Attempts: res.Attempts, ElapsedMS: res.ElapsedMS,
		})
	}
}

func (h *Handlers) progressHooks(id string) fill.Hooks {
	if h.hub == nil {
		return fill.Hooks{}
	}
	return fill.Hooks{
		OnPlace: func(w grid.Word) {
			h.hub.Broadcast(id, realtime.MsgCellFilled, realtime.CellFilledPayload{
				Row: w.Row, Col: w.Col, Text: w.Text, Direction: w.Direction.String(),
			})
		},
		OnBacktrack: func(w grid.Word) {
			h.hub.Broadcast(id, realtime.MsgBacktrack, realtime.BacktrackPayload{
				Row: w.Row, Col: w.Col, Text: w.Text, Direction: w.Direction.String(),
			})
		},
		OnEntropy: func(row, col, candidates int) {
			h.hub.Broadcast(id, realtime.MsgEntropy, realtime.EntropyPayload{
				Row: row, Col: col, Candidates: candidates,
			})
		},
	}
}

func (h *Handlers) failSession(id string, cause error) {
	h.mu.Lock()
	if st, ok := h.inMemory[id]; ok {
		st.Status = store.StatusFailed
		st.Error = cause.Error()
	}
	h.mu.Unlock()

	if h.store != nil {
		if err := h.store.MarkFailed(id, cause); err != nil {
			log.Printf("api: failed to persist session %s failure: %v", id, err)
		}
	}

	if h.hub != nil {
		h.hub.Broadcast(id, realtime.MsgSessionFailed, realtime.SessionFailedPayload{Message: cause.Error()})
	}
}

func (h *Handlers) setStatus(id string, status store.Status) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if st, ok := h.inMemory[id]; ok {
		st.Status = status
	}
}

// GetSession handles GET /sessions/:id.
func (h *Handlers) GetSession(c *gin.Context) {
	id := c.Param("id")

	h.mu.RLock()
	st, ok := h.inMemory[id]
	h.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	resp := gin.H{
		"id":       id,
		"status":   st.Status,
		"solution": st.Solution,
		"rows":     st.Rows,
		"cols":     st.Cols,
	}
	switch st.Status {
	case store.StatusDone:
		resp["attempts"] = st.Attempts
		resp["elapsedMs"] = st.ElapsedMS
		resp["result"] = st.Document
	case store.StatusFailed:
		resp["error"] = st.Error
	}
	c.JSON(http.StatusOK, resp)
}

// ServeSessionWS handles GET /sessions/:id/ws, streaming progress events.
func (h *Handlers) ServeSessionWS(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "realtime progress not available in demo mode"})
		return
	}
	id := c.Param("id")
	if _, ok := h.inMemory[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err := realtime.ServeWs(h.hub, c.Writer, c.Request, id); err != nil {
		log.Printf("api: websocket upgrade failed for session %s: %v", id, err)
	}
}

// CreateBatchRequest is the body of POST /admin/batch.
type CreateBatchRequest struct {
	Solutions      []string `json:"solutions" binding:"required,min=1"`
	Rows           int      `json:"rows" binding:"required,min=4"`
	Cols           int      `json:"cols" binding:"required,min=4"`
	DictionaryPath string   `json:"dictionaryPath" binding:"required"`
	MaxAttempts    int      `json:"maxAttempts"`
}

// CreateBatch handles POST /admin/batch: it queues one session per solution
// phrase, sharing a single dictionary load across the whole batch.
func (h *Handlers) CreateBatch(c *gin.Context) {
	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	corpus, err := dictionary.Load(req.DictionaryPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to load dictionary: " + err.Error()})
		return
	}
	words := corpus.Words()

	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	ids := make([]string, 0, len(req.Solutions))
	for _, solution := range req.Solutions {
		id := uuid.New().String()
		ids = append(ids, id)

		state := &sessionState{Status: store.StatusQueued, Rows: req.Rows, Cols: req.Cols, Solution: solution}
		h.mu.Lock()
		h.inMemory[id] = state
		h.mu.Unlock()

		if h.store != nil {
			if err := h.store.CreateSession(id, solution, req.Rows, req.Cols); err != nil {
				log.Printf("api: failed to persist batch session %s: %v", id, err)
			}
		}

		go h.runSession(id, session.Config{
			Solution:    solution,
			Rows:        req.Rows,
			Cols:        req.Cols,
			Words:       words,
			MaxAttempts: maxAttempts,
			Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		})
	}

	c.JSON(http.StatusAccepted, gin.H{"ids": ids})
}

// AdminStats handles GET /admin/stats.
func (h *Handlers) AdminStats(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats unavailable without persistence"})
		return
	}
	stats, err := h.store.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
