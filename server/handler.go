package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/siherrmann/mentioner"
	"github.com/siherrmann/mentioner/model"
)

const maxBodyBytes = 1 << 20

// Handler serves the analyzer over JSON HTTP
type Handler struct {
	mentioner *mentioner.Mentioner
	log       *slog.Logger
	mux       *http.ServeMux
}

// NewHandler creates the HTTP handler with all routes registered
func NewHandler(m *mentioner.Mentioner, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		mentioner: m,
		log:       logger,
		mux:       http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /healthz", h.handleHealth)
	h.mux.HandleFunc("POST /api/analyze", h.handleAnalyze)
	h.mux.HandleFunc("POST /api/scenes/{sceneID}/analyze", h.handleAnalyzeScene)
	h.mux.HandleFunc("POST /api/scenes/{sceneID}/mentions", h.handleAcceptSuggestion)
	h.mux.HandleFunc("POST /api/projects/{projectID}/ignored-words", h.handleIgnoreWord)
	h.mux.HandleFunc("DELETE /api/projects/{projectID}/ignored-words/{word}", h.handleUnignoreWord)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type healthResponse struct {
	Status    string           `json:"status"`
	Languages []model.Language `json:"languages"`
	Database  bool             `json:"database"`
}

type analyzeRequest struct {
	Text         string            `json:"text"`
	Language     string            `json:"language"`
	Characters   []model.Character `json:"characters"`
	Locations    []model.Location  `json:"locations"`
	IgnoredWords []string          `json:"ignored_words"`
}

type sceneAnalyzeRequest struct {
	ProjectID  int64             `json:"project_id"`
	Text       string            `json:"text"`
	Language   string            `json:"language"`
	Characters []model.Character `json:"characters"`
	Locations  []model.Location  `json:"locations"`
}

type ignoreWordRequest struct {
	Word string `json:"word"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Languages: h.mentioner.Languages(),
		Database:  h.mentioner.HasDatabase(),
	})
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	lang, err := parseLanguage(req.Language)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.mentioner.AnalyzeParagraph(req.Text, lang, req.Characters, req.Locations, req.IgnoredWords)
	if err != nil {
		h.internalError(w, "analyze paragraph", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAnalyzeScene(w http.ResponseWriter, r *http.Request) {
	sceneID, ok := pathID(w, r, "sceneID")
	if !ok {
		return
	}

	var req sceneAnalyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	lang, err := parseLanguage(req.Language)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	scene, err := h.mentioner.AnalyzeScene(r.Context(), req.ProjectID, sceneID, req.Text, lang, req.Characters, req.Locations)
	if err != nil {
		h.internalError(w, "analyze scene", err)
		return
	}

	writeJSON(w, http.StatusOK, scene)
}

func (h *Handler) handleAcceptSuggestion(w http.ResponseWriter, r *http.Request) {
	if !h.requireDatabase(w) {
		return
	}
	sceneID, ok := pathID(w, r, "sceneID")
	if !ok {
		return
	}

	var suggestion model.MatchSuggestion
	if !h.decode(w, r, &suggestion) {
		return
	}
	if suggestion.MatchedID == nil {
		writeJSONError(w, http.StatusBadRequest, "entity_id is required")
		return
	}
	if suggestion.EntityType != model.LabelPerson && suggestion.EntityType != model.LabelLocation {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown entity_type %q", suggestion.EntityType))
		return
	}

	mention, err := h.mentioner.AcceptSuggestion(r.Context(), sceneID, suggestion)
	if err != nil {
		h.internalError(w, "accept suggestion", err)
		return
	}

	writeJSON(w, http.StatusCreated, mention)
}

func (h *Handler) handleIgnoreWord(w http.ResponseWriter, r *http.Request) {
	if !h.requireDatabase(w) {
		return
	}
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}

	var req ignoreWordRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Word) == "" {
		writeJSONError(w, http.StatusBadRequest, "word is required")
		return
	}

	word, err := h.mentioner.IgnoreWord(r.Context(), projectID, req.Word)
	if err != nil {
		h.internalError(w, "ignore word", err)
		return
	}

	writeJSON(w, http.StatusCreated, word)
}

func (h *Handler) handleUnignoreWord(w http.ResponseWriter, r *http.Request) {
	if !h.requireDatabase(w) {
		return
	}
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}

	deleted, err := h.mentioner.UnignoreWord(r.Context(), projectID, r.PathValue("word"))
	if err != nil {
		h.internalError(w, "unignore word", err)
		return
	}
	if !deleted {
		writeJSONError(w, http.StatusNotFound, "word is not ignored")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := decoder.Decode(target)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) requireDatabase(w http.ResponseWriter) bool {
	if !h.mentioner.HasDatabase() {
		writeJSONError(w, http.StatusServiceUnavailable, "no database configured")
		return false
	}
	return true
}

func (h *Handler) internalError(w http.ResponseWriter, operation string, err error) {
	h.log.Error("Request failed", slog.String("operation", operation), slog.String("error", err.Error()))
	writeJSONError(w, http.StatusInternalServerError, "internal error")
}

// parseLanguage requires a language code. Well formed codes of languages
// without a model are passed on and analyze to an empty result.
func parseLanguage(code string) (model.Language, error) {
	if lang, ok := model.ParseLanguage(code); ok {
		return lang, nil
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", errors.New("language is required")
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && r != '-' && r != '_' {
			return "", fmt.Errorf("invalid language %q", code)
		}
	}
	return model.Language(code), nil
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}
