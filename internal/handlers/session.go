package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kmswanson/greenwood/internal/services"
	"github.com/kmswanson/greenwood/internal/session"
	"github.com/kmswanson/greenwood/pkg/game"
	"github.com/kmswanson/greenwood/pkg/world"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateSessionResponse carries the new session plus the opening room view.
type CreateSessionResponse struct {
	Session *session.Session `json:"session"`
	View    string           `json:"view"`
}

// SessionHandler serves the session resource.
// Routes:
// POST /v1/sessions                 - Create a new session
// GET /v1/sessions/{id}             - Read a session by ID
// DELETE /v1/sessions/{id}          - Delete a session by ID
// POST /v1/sessions/{id}/command    - Execute one command in a session
type SessionHandler struct {
	world    *world.World
	store    session.Store
	narrator services.NarrationService
	logger   *slog.Logger
}

func NewSessionHandler(w *world.World, store session.Store, narrator services.NarrationService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		world:    w,
		store:    store,
		narrator: narrator,
		logger:   logger,
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimPrefix(r.URL.Path, "/v1/sessions")
	path = strings.Trim(path, "/")

	if path == "" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported at /v1/sessions.")
			return
		}
		h.handleCreate(w, r)
		return
	}

	idStr, rest, _ := strings.Cut(path, "/")
	sessionID, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("invalid session ID", "id", idStr, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	if rest == "command" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported for commands.")
			return
		}
		h.handleCommand(w, r, sessionID)
		return
	}
	if rest != "" {
		writeError(w, h.logger, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleRead(w, r, sessionID)
	case http.MethodDelete:
		h.handleDelete(w, r, sessionID)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	s := session.New(h.world)
	if err := h.store.Save(r.Context(), s); err != nil {
		h.logger.Error("failed to save new session", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create session. Please try again.")
		return
	}

	// The opening view is the same render the player would get from a
	// bare look.
	eng := game.New(h.world, s.Player, s.Items, h.narrator, h.logger)
	view, _ := eng.Execute(r.Context(), "look")

	h.logger.Info("session created", "session_id", s.ID)
	writeJSON(w, h.logger, http.StatusCreated, CreateSessionResponse{Session: s, View: view})
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	s, err := h.store.Load(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load session", "session_id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session. Please try again.")
		return
	}
	if s == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, s)
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete session", "session_id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session. Please try again.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
