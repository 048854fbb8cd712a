package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Extra-Chill/extrachill-blocks/pkg/namegen"
)

func postName(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestBandNameHandler_GeneratesName(t *testing.T) {
	h := NewBandNameHandler(testLogger())
	h.newGenerator = func() *namegen.Generator {
		return namegen.NewWithSeed(1, 2)
	}

	w := postName(t, h, "/extrachill-blocks/v1/band-name",
		`{"input": "chill", "genre": "rock", "numberOfWords": 3, "firstThe": true}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp nameResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	words := strings.Fields(resp.Name)
	assert.Equal(t, "The", words[0])
	assert.Equal(t, "Chill", words[len(words)-1])
	assert.Len(t, words, 4) // "The" plus three name words
}

func TestBandNameHandler_SanitizesInput(t *testing.T) {
	h := NewBandNameHandler(testLogger())

	w := postName(t, h, "/extrachill-blocks/v1/band-name",
		`{"input": "<b>chill</b>", "numberOfWords": 2}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp nameResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, strings.HasSuffix(resp.Name, "Chill"))
	assert.NotContains(t, resp.Name, "<")
}

func TestBandNameHandler_FiltersProfanity(t *testing.T) {
	h := NewBandNameHandler(testLogger())

	w := postName(t, h, "/extrachill-blocks/v1/band-name",
		`{"input": "damn", "numberOfWords": 2}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp nameResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, strings.HasSuffix(resp.Name, "Dang"), "got %q", resp.Name)
}

func TestBandNameHandler_EmptyInput(t *testing.T) {
	h := NewBandNameHandler(testLogger())

	w := postName(t, h, "/extrachill-blocks/v1/band-name", `{"genre": "rock"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRapperNameHandler_GeneratesName(t *testing.T) {
	h := NewRapperNameHandler(testLogger())
	h.newGenerator = func() *namegen.Generator {
		return namegen.NewWithSeed(3, 4)
	}

	w := postName(t, h, "/extrachill-blocks/v1/rapper-name",
		`{"input": "chill", "gender": "female", "style": "trap", "numberOfWords": 3}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp nameResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	words := strings.Fields(resp.Name)
	assert.Len(t, words, 3)
	assert.Equal(t, "Chill", words[1])
}

func TestRapperNameHandler_EmptyInput(t *testing.T) {
	h := NewRapperNameHandler(testLogger())

	w := postName(t, h, "/extrachill-blocks/v1/rapper-name", `{"gender": "male"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNameHandlers_MethodNotAllowed(t *testing.T) {
	band := NewBandNameHandler(testLogger())
	rapper := NewRapperNameHandler(testLogger())

	for _, h := range []http.Handler{band, rapper} {
		r := httptest.NewRequest(http.MethodGet, "/extrachill-blocks/v1/band-name", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	}
}
