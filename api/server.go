// Package api exposes the HTTP boundary: the chat endpoint, entity
// listings, index rebuild, and component health.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/campushq/campus-agent/agent"
	"github.com/campushq/campus-agent/config"
	"github.com/campushq/campus-agent/database"
)

// maxMessageLen bounds the chat message length in runes.
const maxMessageLen = 2000

// Runner answers a chat question. The concrete implementation is the
// agent; tests substitute a scripted one.
type Runner interface {
	Run(ctx context.Context, question string) agent.Result
}

// EntityReader serves the public entity listings.
type EntityReader interface {
	ListUpcomingEvents(ctx context.Context) ([]database.Event, error)
	ListFAQs(ctx context.Context, category string) ([]database.FAQEntry, error)
}

// IndexService reports index health and rebuilds it on demand.
type IndexService interface {
	Status() string
	Rebuild(ctx context.Context) (int, error)
}

// Pinger checks database liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes HTTP handlers over the chatbot services. A nil
// runner means the LLM never came up; chat requests then explain the
// missing credential instead of panicking.
type Server struct {
	cfg     config.Config
	runner  Runner
	store   EntityReader
	index   IndexService
	db      Pinger
	logger  *log.Logger
	handler http.Handler
}

type errorResponse struct {
	Error string `json:"error"`
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

type chatResponse struct {
	Answer       string   `json:"answer"`
	Sources      []string `json:"sources"`
	ToolsUsed    []string `json:"tools_used"`
	ResponseTime float64  `json:"response_time"`
}

type healthResponse struct {
	Status      string `json:"status"`
	LLMProvider string `json:"llm_provider"`
	VectorStore string `json:"vector_store"`
	Database    string `json:"database"`
}

type eventResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Venue       string `json:"venue"`
}

type faqResponse struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

type rebuildResponse struct {
	Status           string `json:"status"`
	DocumentsIndexed *int   `json:"documents_indexed,omitempty"`
	Message          string `json:"message,omitempty"`
}

// New constructs a Server over the given services.
func New(cfg config.Config, runner Runner, store EntityReader, index IndexService, db Pinger, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{cfg: cfg, runner: runner, store: store, index: index, db: db, logger: logger}
	s.handler = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/faqs", s.handleFAQs)
	mux.HandleFunc("/api/rebuild-index", s.handleRebuildIndex)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}

	dbStatus := "healthy"
	if err := s.db.Ping(r.Context()); err != nil {
		s.logger.Printf("health: database ping failed: %v", err)
		dbStatus = "unhealthy"
	}

	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:      "running",
		LLMProvider: s.cfg.LLM.Provider,
		VectorStore: s.index.Status(),
		Database:    dbStatus,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, http.MethodPost)
		return
	}

	start := time.Now()

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("message is required"))
		return
	}
	if utf8.RuneCountInString(req.Message) > maxMessageLen {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("message exceeds %d characters", maxMessageLen))
		return
	}

	if err := s.cfg.ValidateLLMCredentials(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if s.runner == nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("chat service is not available"))
		return
	}

	result := s.runner.Run(r.Context(), req.Message)

	s.writeJSON(w, http.StatusOK, chatResponse{
		Answer:       result.Answer,
		Sources:      result.Sources,
		ToolsUsed:    result.ToolsUsed,
		ResponseTime: math.Round(time.Since(start).Seconds()*100) / 100,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}

	events, err := s.store.ListUpcomingEvents(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("list events: %w", err))
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			ID:          e.ID,
			Name:        e.Name,
			Type:        e.Type,
			Description: e.Description,
			Date:        e.Date,
			Venue:       e.Venue,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFAQs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}

	faqs, err := s.store.ListFAQs(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("list faqs: %w", err))
		return
	}

	out := make([]faqResponse, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, faqResponse{
			ID:       f.ID,
			Question: f.Question,
			Answer:   f.Answer,
			Category: f.Category,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRebuildIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, http.MethodPost)
		return
	}

	count, err := s.index.Rebuild(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("rebuild index: %w", err))
		return
	}
	if count == 0 {
		s.writeJSON(w, http.StatusOK, rebuildResponse{Status: "failed", Message: "no documents available to index"})
		return
	}

	s.writeJSON(w, http.StatusOK, rebuildResponse{Status: "success", DocumentsIndexed: &count})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed, use %s", allowed))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Printf("api error (%d): %v", status, err)
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
