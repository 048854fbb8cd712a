package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Extra-Chill/extrachill-blocks/internal/services"
	"github.com/Extra-Chill/extrachill-blocks/pkg/voting"
)

// VoteHandler handles vote submissions and count reads for content-block
// instances.
// Routes:
// POST /extrachill-blocks/v1/vote                            - Record a vote
// GET  /extrachill-blocks/v1/vote-count/{postID}/{instanceID} - Read the count
type VoteHandler struct {
	storage services.Storage
	logger  *slog.Logger
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(storage services.Storage, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *VoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodPost:
		h.handleVote(w, r)
	case http.MethodGet:
		h.handleCount(w, r)
	default:
		h.logger.Warn("Method not allowed for vote endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Supported methods: GET, POST",
		})
	}
}

func (h *VoteHandler) handleVote(w http.ResponseWriter, r *http.Request) {
	var request voting.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid vote request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body. Expected JSON with postId, instanceId and email.",
		})
		return
	}

	if err := request.Validate(); err != nil {
		h.logger.Warn("Vote request failed validation", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	count, err := h.storage.RecordVote(r.Context(), request.PostID, request.InstanceID, request.Email)
	if err != nil {
		if errors.Is(err, voting.ErrAlreadyVoted) {
			writeError(w, h.logger, http.StatusConflict, ErrorResponse{
				Error: "This email has already voted for this item.",
				Code:  "already_voted",
			})
			return
		}
		h.logger.Error("Failed to record vote",
			"error", err,
			"post_id", request.PostID,
			"instance_id", request.InstanceID)
		writeError(w, h.logger, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to record vote.",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(voting.VoteResult{VoteCount: count}); err != nil {
		h.logger.Error("Error encoding vote response", "error", err)
	}
}

func (h *VoteHandler) handleCount(w http.ResponseWriter, r *http.Request) {
	postID, instanceID, ok := parseCountPath(r.URL.Path)
	if !ok {
		h.logger.Warn("Invalid vote-count path", "path", r.URL.Path)
		writeError(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Expected path /extrachill-blocks/v1/vote-count/{postID}/{instanceID}",
		})
		return
	}

	count, err := h.storage.VoteCount(r.Context(), postID, instanceID)
	if err != nil {
		h.logger.Error("Failed to read vote count",
			"error", err,
			"post_id", postID,
			"instance_id", instanceID)
		writeError(w, h.logger, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to read vote count.",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(voting.VoteResult{VoteCount: count}); err != nil {
		h.logger.Error("Error encoding vote count response", "error", err)
	}
}

// parseCountPath extracts postID and instanceID from a vote-count path.
// A count for an instance that never received a vote is 0, not an error.
func parseCountPath(path string) (int, string, bool) {
	rest := strings.TrimPrefix(path, "/extrachill-blocks/v1/vote-count/")
	if rest == path {
		return 0, "", false
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, "", false
	}
	postID, err := strconv.Atoi(parts[0])
	if err != nil || postID <= 0 {
		return 0, "", false
	}
	return postID, parts[1], true
}
