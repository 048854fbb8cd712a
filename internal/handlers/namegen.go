package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Extra-Chill/extrachill-blocks/pkg/namegen"
	"github.com/Extra-Chill/extrachill-blocks/pkg/sanitize"
	"github.com/Extra-Chill/extrachill-blocks/pkg/textfilter"
)

// Generated names embed the reader's word verbatim, so it is cleaned of
// markup and profanity before it reaches a word table.
var profanity = textfilter.NewProfanityFilter()

func cleanInput(input string) string {
	return profanity.FilterText(sanitize.Field(input))
}

type bandNameRequest struct {
	Input         string `json:"input"`
	Genre         string `json:"genre"`
	NumberOfWords int    `json:"numberOfWords"`
	FirstThe      bool   `json:"firstThe"`
	AndThe        bool   `json:"andThe"`
}

type rapperNameRequest struct {
	Input         string `json:"input"`
	Gender        string `json:"gender"`
	Style         string `json:"style"`
	NumberOfWords int    `json:"numberOfWords"`
}

type nameResponse struct {
	Name string `json:"name"`
}

// BandNameHandler handles band name generation requests
type BandNameHandler struct {
	logger *slog.Logger

	// newGenerator is swapped by tests for deterministic output.
	newGenerator func() *namegen.Generator
}

// NewBandNameHandler creates a new band name handler
func NewBandNameHandler(logger *slog.Logger) *BandNameHandler {
	return &BandNameHandler{
		logger:       logger,
		newGenerator: namegen.New,
	}
}

func (h *BandNameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for band name endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		})
		return
	}

	var request bandNameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid band name request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body. Expected JSON with an 'input' field.",
		})
		return
	}

	input := cleanInput(request.Input)
	if input == "" {
		writeError(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Input cannot be empty.",
		})
		return
	}

	name := h.newGenerator().BandName(namegen.BandOptions{
		Input:    input,
		Genre:    request.Genre,
		Words:    request.NumberOfWords,
		FirstThe: request.FirstThe,
		AndThe:   request.AndThe,
	})

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(nameResponse{Name: name}); err != nil {
		h.logger.Error("Error encoding band name response", "error", err)
	}
}

// RapperNameHandler handles rapper name generation requests
type RapperNameHandler struct {
	logger *slog.Logger

	newGenerator func() *namegen.Generator
}

// NewRapperNameHandler creates a new rapper name handler
func NewRapperNameHandler(logger *slog.Logger) *RapperNameHandler {
	return &RapperNameHandler{
		logger:       logger,
		newGenerator: namegen.New,
	}
}

func (h *RapperNameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for rapper name endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		})
		return
	}

	var request rapperNameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid rapper name request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body. Expected JSON with an 'input' field.",
		})
		return
	}

	input := cleanInput(request.Input)
	if input == "" {
		writeError(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Input cannot be empty.",
		})
		return
	}

	name := h.newGenerator().RapperName(namegen.RapperOptions{
		Input:  input,
		Gender: request.Gender,
		Style:  request.Style,
		Words:  request.NumberOfWords,
	})

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(nameResponse{Name: name}); err != nil {
		h.logger.Error("Error encoding rapper name response", "error", err)
	}
}
