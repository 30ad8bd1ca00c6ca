package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/kmswanson/greenwood/pkg/game"
)

// CommandRequest is one line of raw player input for a session.
type CommandRequest struct {
	Input string `json:"input"`
}

// CommandResponse is the engine's reply. Quit reports that the session has
// ended; its state is already deleted when Quit is true.
type CommandResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Response  string    `json:"response"`
	Quit      bool      `json:"quit,omitempty"`
}

func (cr *CommandRequest) Validate() error {
	if cr.Input == "" {
		return fmt.Errorf("input cannot be empty")
	}
	return nil
}

func (h *SessionHandler) handleCommand(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'input' field.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

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

	eng := game.New(h.world, s.Player, s.Items, h.narrator, h.logger.With("session_id", id))
	response, quit := eng.Execute(r.Context(), req.Input)

	if quit {
		if err := h.store.Delete(r.Context(), id); err != nil {
			h.logger.Error("failed to delete finished session", "session_id", id, "error", err)
		}
	} else {
		if err := h.store.Save(r.Context(), s); err != nil {
			h.logger.Error("failed to save session", "session_id", id, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session. Please try again.")
			return
		}
	}

	writeJSON(w, h.logger, http.StatusOK, CommandResponse{
		SessionID: id,
		Response:  response,
		Quit:      quit,
	})
}
