package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/siherrmann/mentioner"
	"github.com/siherrmann/mentioner/core/nlp"
	"github.com/siherrmann/mentioner/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler() *Handler {
	registry := nlp.NewRegistry(map[model.Language]nlp.Tagger{
		model.LanguageEnglish: nlp.TagFunc(func(string) ([]nlp.TaggedSpan, error) {
			return []nlp.TaggedSpan{
				{Text: "Alaric", Label: "PERSON", Start: 0, End: 6},
				{Text: "Great Hall", Label: "GPE", Start: 23, End: 33},
			}, nil
		}),
	})
	m := mentioner.NewMentioner(registry, model.DefaultAnalyzerConfig())
	return NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const analyzeBody = `{
	"text": "Alaric walked into the Great Hall.",
	"language": "en",
	"characters": [{"id": 1, "name": "Alaric Thorne"}],
	"locations": [{"id": 5, "title": "Great Hall"}]
}`

func TestHealth(t *testing.T) {
	rec := serve(t, testHandler(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","languages":["en"],"database":false}`, rec.Body.String())
}

func TestAnalyze(t *testing.T) {
	h := testHandler()

	t.Run("Returns entities and suggestions", func(t *testing.T) {
		rec := serve(t, h, http.MethodPost, "/api/analyze", analyzeBody)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{
			"entities": [
				{"text": "Alaric", "label": "PERSON", "start": 0, "end": 6},
				{"text": "Great Hall", "label": "LOC", "start": 23, "end": 33}
			],
			"suggestions": [
				{"mention_text": "Alaric", "match_name": "Alaric Thorne", "entity_id": 1, "entity_type": "PERSON", "score": 95, "start": 0, "end": 6},
				{"mention_text": "Great Hall", "match_name": "Great Hall", "entity_id": 5, "entity_type": "LOC", "score": 100, "start": 23, "end": 33}
			]
		}`, rec.Body.String())
	})

	t.Run("Ignored words are honored", func(t *testing.T) {
		body := `{"text": "Alaric walked into the Great Hall.", "language": "en", "ignored_words": ["alaric"]}`
		rec := serve(t, h, http.MethodPost, "/api/analyze", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var result model.AnalysisResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.Len(t, result.Entities, 1)
		assert.Equal(t, "Great Hall", result.Entities[0].Text)
		assert.Empty(t, result.Suggestions)
	})

	t.Run("Language without model gives empty lists", func(t *testing.T) {
		body := `{"text": "Alaric ging in die Halle.", "language": "de-DE"}`
		rec := serve(t, h, http.MethodPost, "/api/analyze", body)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"entities":[],"suggestions":[]}`, rec.Body.String())

		rec = serve(t, h, http.MethodPost, "/api/analyze", `{"text": "Alaric", "language": "fr"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"entities":[],"suggestions":[]}`, rec.Body.String())
	})

	t.Run("Missing language is rejected", func(t *testing.T) {
		rec := serve(t, h, http.MethodPost, "/api/analyze", `{"text": "Alaric"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "language is required")
	})

	t.Run("Malformed language is rejected", func(t *testing.T) {
		rec := serve(t, h, http.MethodPost, "/api/analyze", `{"text": "Alaric", "language": "e n!"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid JSON is rejected", func(t *testing.T) {
		rec := serve(t, h, http.MethodPost, "/api/analyze", `{"text": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "invalid JSON body")
	})

	t.Run("Wrong method is rejected", func(t *testing.T) {
		rec := serve(t, h, http.MethodGet, "/api/analyze", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestAnalyzeScene(t *testing.T) {
	h := testHandler()

	t.Run("Without database all entities are unlinked", func(t *testing.T) {
		rec := serve(t, h, http.MethodPost, "/api/scenes/7/analyze", analyzeBody)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var scene struct {
			Entities    []model.Entity          `json:"entities"`
			Suggestions []model.MatchSuggestion `json:"suggestions"`
			Linked      []model.LinkedEntity    `json:"linked"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scene))
		assert.Len(t, scene.Entities, 2)
		assert.Len(t, scene.Suggestions, 2)
		require.Len(t, scene.Linked, 2)
		assert.False(t, scene.Linked[0].IsLinked)
	})

	t.Run("Invalid scene id is rejected", func(t *testing.T) {
		rec := serve(t, h, http.MethodPost, "/api/scenes/abc/analyze", analyzeBody)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid sceneID")
	})
}

func TestStorageRoutesWithoutDatabase(t *testing.T) {
	h := testHandler()

	for _, tc := range []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPost, "/api/scenes/7/mentions", `{"mention_text": "Alaric", "entity_id": 1, "entity_type": "PERSON"}`},
		{http.MethodPost, "/api/projects/1/ignored-words", `{"word": "Alaric"}`},
		{http.MethodDelete, "/api/projects/1/ignored-words/Alaric", ""},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := serve(t, h, tc.method, tc.target, tc.body)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.JSONEq(t, `{"error":"no database configured"}`, rec.Body.String())
		})
	}
}

func TestParseLanguage(t *testing.T) {
	lang, err := parseLanguage("EN-us")
	require.NoError(t, err)
	assert.Equal(t, model.LanguageEnglish, lang)

	lang, err = parseLanguage(" FR ")
	require.NoError(t, err)
	assert.Equal(t, model.Language("fr"), lang)

	_, err = parseLanguage("")
	assert.Error(t, err)
}
