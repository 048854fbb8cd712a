package trivia

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Attempt is one answered trivia question, logged fire-and-forget from the
// block frontend. Attempts are append-only; aggregation happens
// asynchronously in the worker.
type Attempt struct {
	ID             uuid.UUID `json:"id"`
	BlockID        string    `json:"blockId"`
	SelectedOption int       `json:"selectedOption"`
	IsCorrect      bool      `json:"isCorrect"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewAttempt stamps a client submission with an id and server time.
func NewAttempt(blockID string, selectedOption int, isCorrect bool) Attempt {
	return Attempt{
		ID:             uuid.New(),
		BlockID:        blockID,
		SelectedOption: selectedOption,
		IsCorrect:      isCorrect,
		Timestamp:      time.Now().UTC(),
	}
}

// Validate checks the submission shape.
func (a *Attempt) Validate() error {
	if a.BlockID == "" {
		return fmt.Errorf("blockId cannot be empty")
	}
	if a.SelectedOption < 0 {
		return fmt.Errorf("selectedOption cannot be negative")
	}
	return nil
}

// Aggregate is the per-block rollup the worker maintains.
type Aggregate struct {
	BlockID  string `json:"blockId"`
	Attempts int64  `json:"attempts"`
	Correct  int64  `json:"correct"`
}
