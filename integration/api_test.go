//go:build integration
// +build integration

// Package integration exercises a running extrachill-blocks API end to end.
// The adventure endpoint needs a live LLM provider, so these tests cover
// the deterministic surface: votes, trivia logging, name generation and
// health. Run with:
//
//	go test -tags=integration ./integration/ -v
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseURL string

func TestMain(m *testing.M) {
	baseURL = os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	fmt.Printf("Running extrachill-blocks integration tests against %s\n", baseURL)
	os.Exit(m.Run())
}

func client() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func postJSON(t *testing.T, path string, body any) (int, []byte) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := client().Post(baseURL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err, "POST %s failed", path)
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func getJSON(t *testing.T, path string) (int, []byte) {
	t.Helper()

	resp, err := client().Get(baseURL + path)
	require.NoError(t, err, "GET %s failed", path)
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHealth(t *testing.T) {
	status, body := getJSON(t, "/health")
	require.Equal(t, http.StatusOK, status, "health check failed: %s", body)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestVoteLifecycle(t *testing.T) {
	// Fresh instance per run so reruns don't collide.
	instanceID := "block-901-" + uuid.NewString()[:8]
	voter := fmt.Sprintf("voter-%s@example.com", uuid.NewString()[:8])

	status, body := getJSON(t, "/extrachill-blocks/v1/vote-count/901/"+instanceID)
	require.Equal(t, http.StatusOK, status)

	var count struct {
		VoteCount int64 `json:"voteCount"`
	}
	require.NoError(t, json.Unmarshal(body, &count))
	assert.Equal(t, int64(0), count.VoteCount)

	vote := map[string]any{"postId": 901, "instanceId": instanceID, "email": voter}
	status, body = postJSON(t, "/extrachill-blocks/v1/vote", vote)
	require.Equal(t, http.StatusOK, status, "vote failed: %s", body)
	require.NoError(t, json.Unmarshal(body, &count))
	assert.Equal(t, int64(1), count.VoteCount)

	// Duplicate is rejected and does not increment.
	status, body = postJSON(t, "/extrachill-blocks/v1/vote", vote)
	require.Equal(t, http.StatusConflict, status)

	var errResp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "already_voted", errResp.Code)

	status, body = getJSON(t, "/extrachill-blocks/v1/vote-count/901/"+instanceID)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &count))
	assert.Equal(t, int64(1), count.VoteCount)
}

func TestTriviaLogAttempt(t *testing.T) {
	attempt := map[string]any{
		"blockId":        "block-902-" + uuid.NewString()[:8],
		"selectedOption": 1,
		"isCorrect":      true,
	}

	status, body := postJSON(t, "/extrachill-blocks/v1/trivia/log-attempt", attempt)
	require.Equal(t, http.StatusAccepted, status, "log-attempt failed: %s", body)

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "accepted", resp.Status)
	_, err := uuid.Parse(resp.ID)
	assert.NoError(t, err)
}

func TestNameGenerators(t *testing.T) {
	status, body := postJSON(t, "/extrachill-blocks/v1/band-name", map[string]any{
		"input":         "chill",
		"genre":         "rock",
		"numberOfWords": 3,
		"firstThe":      true,
	})
	require.Equal(t, http.StatusOK, status, "band-name failed: %s", body)

	var name struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &name))
	assert.Contains(t, name.Name, "Chill")

	status, body = postJSON(t, "/extrachill-blocks/v1/rapper-name", map[string]any{
		"input":         "chill",
		"gender":        "non-binary",
		"style":         "conscious",
		"numberOfWords": 2,
	})
	require.Equal(t, http.StatusOK, status, "rapper-name failed: %s", body)
	require.NoError(t, json.Unmarshal(body, &name))
	assert.Contains(t, name.Name, "Chill")
}
