package trivia

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewAttempt(t *testing.T) {
	a := NewAttempt("block-7-abc", 2, true)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "block-7-abc", a.BlockID)
	assert.Equal(t, 2, a.SelectedOption)
	assert.True(t, a.IsCorrect)
	assert.False(t, a.Timestamp.IsZero())
}

func TestAttemptValidate(t *testing.T) {
	tests := []struct {
		name    string
		attempt Attempt
		wantErr string
	}{
		{name: "valid", attempt: Attempt{BlockID: "block-1-abc", SelectedOption: 0}},
		{name: "empty block id", attempt: Attempt{SelectedOption: 1}, wantErr: "blockId"},
		{name: "negative option", attempt: Attempt{BlockID: "b", SelectedOption: -1}, wantErr: "selectedOption"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.attempt.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
