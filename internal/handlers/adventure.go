package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Extra-Chill/extrachill-blocks/internal/turn"
	"github.com/Extra-Chill/extrachill-blocks/pkg/adventure"
)

// ErrorResponse is the JSON error envelope shared by all endpoints. Code is
// set only when clients are expected to branch on the failure.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AdventureHandler handles adventure turn requests
type AdventureHandler struct {
	processor *turn.Processor
	logger    *slog.Logger
}

// NewAdventureHandler creates a new adventure handler
func NewAdventureHandler(processor *turn.Processor, logger *slog.Logger) *AdventureHandler {
	return &AdventureHandler{
		processor: processor,
		logger:    logger,
	}
}

// ServeHTTP handles HTTP requests for adventure turns
func (h *AdventureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for adventure endpoint",
			"method", r.Method,
			"path", r.URL.Path)
		writeError(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		})
		return
	}

	var request adventure.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid adventure request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body. Expected an adventure turn payload.",
		})
		return
	}

	result, err := h.processor.ProcessTurn(r.Context(), &request)
	if err != nil {
		h.logger.Error("Adventure turn failed",
			"error", err,
			"adventure", request.AdventureTitle,
			"is_introduction", request.IsIntroduction)
		writeError(w, h.logger, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to generate a response. Please try again.",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("Error encoding adventure response", "error", err)
	}
}

// writeError writes the error envelope with the given status.
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, resp ErrorResponse) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}
