package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Extra-Chill/extrachill-blocks/pkg/trivia"
)

// AttemptEnqueuer is the queue surface the trivia endpoint needs.
type AttemptEnqueuer interface {
	Enqueue(ctx context.Context, attempt trivia.Attempt) error
}

// attemptSubmission is the client payload for one answered question.
type attemptSubmission struct {
	BlockID        string `json:"blockId"`
	SelectedOption int    `json:"selectedOption"`
	IsCorrect      bool   `json:"isCorrect"`
}

// attemptAccepted acknowledges a logged attempt.
type attemptAccepted struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TriviaHandler logs trivia attempts. The endpoint is fire-and-forget:
// attempts are stamped and enqueued for async aggregation, and a queue
// outage degrades to accept-and-log rather than failing the reader's
// submission.
type TriviaHandler struct {
	queue  AttemptEnqueuer
	logger *slog.Logger
}

// NewTriviaHandler creates a new trivia handler
func NewTriviaHandler(queue AttemptEnqueuer, logger *slog.Logger) *TriviaHandler {
	return &TriviaHandler{
		queue:  queue,
		logger: logger,
	}
}

func (h *TriviaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for trivia endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		})
		return
	}

	var submission attemptSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		h.logger.Warn("Invalid trivia request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body. Expected JSON with blockId, selectedOption and isCorrect.",
		})
		return
	}

	attempt := trivia.NewAttempt(submission.BlockID, submission.SelectedOption, submission.IsCorrect)
	if err := attempt.Validate(); err != nil {
		h.logger.Warn("Trivia attempt failed validation", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	if h.queue != nil {
		if err := h.queue.Enqueue(r.Context(), attempt); err != nil {
			// Degrade without failing the submission. The attempt is lost to
			// aggregation but the reader's experience is unaffected.
			h.logger.Error("Failed to enqueue trivia attempt",
				"error", err,
				"block_id", attempt.BlockID)
		}
	}

	w.WriteHeader(http.StatusAccepted)
	response := attemptAccepted{
		ID:     attempt.ID.String(),
		Status: "accepted",
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding trivia response", "error", err)
	}
}
