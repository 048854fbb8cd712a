package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Extra-Chill/extrachill-blocks/internal/services"
	"github.com/Extra-Chill/extrachill-blocks/pkg/voting"
)

func postVote(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/extrachill-blocks/v1/vote", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestVoteHandler_RecordVote(t *testing.T) {
	h := NewVoteHandler(services.NewMockStorage(), testLogger())

	w := postVote(t, h, `{"postId": 42, "instanceId": "block-42-abc", "email": "Fan@Example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var result voting.VoteResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, int64(1), result.VoteCount)
}

func TestVoteHandler_DuplicateVoteConflicts(t *testing.T) {
	h := NewVoteHandler(services.NewMockStorage(), testLogger())

	w := postVote(t, h, `{"postId": 42, "instanceId": "block-42-abc", "email": "fan@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Same email differing only in case is the same voter.
	w = postVote(t, h, `{"postId": 42, "instanceId": "block-42-abc", "email": "FAN@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "already_voted", resp.Code)
}

func TestVoteHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{nope`},
		{"missing post id", `{"instanceId": "block-1-a", "email": "a@b.com"}`},
		{"negative post id", `{"postId": -1, "instanceId": "block-1-a", "email": "a@b.com"}`},
		{"missing instance id", `{"postId": 1, "email": "a@b.com"}`},
		{"instance id with invalid characters", `{"postId": 1, "instanceId": "block one", "email": "a@b.com"}`},
		{"missing email", `{"postId": 1, "instanceId": "block-1-a"}`},
		{"invalid email", `{"postId": 1, "instanceId": "block-1-a", "email": "not-an-email"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewVoteHandler(services.NewMockStorage(), testLogger())
			w := postVote(t, h, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestVoteHandler_VoteCount(t *testing.T) {
	storage := services.NewMockStorage()
	h := NewVoteHandler(storage, testLogger())

	w := postVote(t, h, `{"postId": 42, "instanceId": "block-42-abc", "email": "a@b.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = postVote(t, h, `{"postId": 42, "instanceId": "block-42-abc", "email": "c@d.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	r := httptest.NewRequest(http.MethodGet, "/extrachill-blocks/v1/vote-count/42/block-42-abc", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result voting.VoteResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, int64(2), result.VoteCount)
}

func TestVoteHandler_VoteCountUnknownInstanceIsZero(t *testing.T) {
	h := NewVoteHandler(services.NewMockStorage(), testLogger())

	r := httptest.NewRequest(http.MethodGet, "/extrachill-blocks/v1/vote-count/7/block-7-never", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result voting.VoteResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, int64(0), result.VoteCount)
}

func TestVoteHandler_VoteCountBadPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing instance id", "/extrachill-blocks/v1/vote-count/42"},
		{"non-numeric post id", "/extrachill-blocks/v1/vote-count/abc/block-1-a"},
		{"zero post id", "/extrachill-blocks/v1/vote-count/0/block-1-a"},
		{"extra segments", "/extrachill-blocks/v1/vote-count/42/block-1-a/extra"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewVoteHandler(services.NewMockStorage(), testLogger())
			r := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestVoteHandler_MethodNotAllowed(t *testing.T) {
	h := NewVoteHandler(services.NewMockStorage(), testLogger())

	r := httptest.NewRequest(http.MethodDelete, "/extrachill-blocks/v1/vote", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
