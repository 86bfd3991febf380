package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hifzlab/isnad/core/process"
	"github.com/hifzlab/isnad/core/quote"
)

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ValidateRequest is the request body for single-quote validation.
type ValidateRequest struct {
	Text        string `json:"text"`
	ExpectedRef string `json:"expected_ref,omitempty"`
}

// ProcessRequest is the request body for document processing.
type ProcessRequest struct {
	Text string `json:"text"`
	// TagFormat overrides the server default when non-empty.
	TagFormat string `json:"tag_format,omitempty"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Verses  int    `json:"verses"`
	Surahs  int    `json:"surahs"`
}

var startTime = time.Now()

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"name":    "isnad",
		"version": Version,
		"endpoints": []string{
			"/health", "/validate", "/process", "/verses/{surah}/{ayah}",
			"/surahs", "/search", "/prompt", "/jobs", "/ws",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	respond(w, http.StatusOK, HealthInfo{
		Status:  "healthy",
		Version: Version,
		Uptime:  time.Since(startTime).String(),
		Verses:  s.corpus.Len(),
		Surahs:  len(s.corpus.Surahs()),
	})
}

// handleValidate handles POST /validate - check one quote against the corpus.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMS", "text is required")
		return
	}

	result := s.engine.Validate(req.Text)
	if req.ExpectedRef != "" {
		check := s.processor.ValidateQuote(req.Text, req.ExpectedRef)
		result.IsValid = check.IsValid
	}

	respond(w, http.StatusOK, result)
}

// handleProcess handles POST /process - validate and correct a whole
// document synchronously. Large documents should go through /jobs instead.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMS", "text is required")
		return
	}

	processor := s.processor
	if req.TagFormat != "" {
		format := quote.TagFormat(req.TagFormat)
		if !format.Valid() {
			respondError(w, http.StatusBadRequest, "INVALID_FORMAT", "Unknown tag_format: "+req.TagFormat)
			return
		}
		opts := s.processor.Options()
		opts.TagFormat = format
		processor = process.New(s.engine, opts)
	}

	respond(w, http.StatusOK, processor.Process(req.Text))
}

// handleVerse handles GET /verses/{surah}/{ayah} and
// GET /verses/{surah}/{start}-{end}.
func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/verses/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		respondError(w, http.StatusBadRequest, "INVALID_PATH", "Expected /verses/{surah}/{ayah}")
		return
	}

	surah, err := strconv.Atoi(parts[0])
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PATH", "Surah must be a number")
		return
	}

	if start, end, ok := splitAyahRange(parts[1]); ok {
		vr, ok := s.corpus.Range(surah, start, end)
		if !ok {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Verse range not found")
			return
		}
		respond(w, http.StatusOK, vr)
		return
	}

	ayah, err := strconv.Atoi(parts[1])
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PATH", "Ayah must be a number or start-end range")
		return
	}

	verse, ok := s.corpus.Verse(surah, ayah)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Verse not found")
		return
	}
	respond(w, http.StatusOK, verse)
}

// splitAyahRange parses "3-5" into (3, 5, true).
func splitAyahRange(s string) (start, end int, ok bool) {
	first, rest, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	start, err := strconv.Atoi(first)
	if err != nil {
		return 0, 0, false
	}
	end, err = strconv.Atoi(rest)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// handleSurahs handles GET /surahs.
func (s *Server) handleSurahs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	surahs := s.corpus.Surahs()
	respondWithTotal(w, http.StatusOK, surahs, len(surahs))
}

// handleSearch handles GET /search?q=TEXT&limit=N.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMS", "q is required")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive number")
			return
		}
		limit = n
	}

	results := s.corpus.Search(q, limit)
	respondWithTotal(w, http.StatusOK, results, len(results))
}

// handlePrompt handles GET /prompt?format=xml - the generator instruction
// for a tag format.
func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	format := quote.FormatXML
	if raw := r.URL.Query().Get("format"); raw != "" {
		format = quote.TagFormat(raw)
		if !format.Valid() {
			respondError(w, http.StatusBadRequest, "INVALID_FORMAT", "Unknown format: "+raw)
			return
		}
	}

	respond(w, http.StatusOK, map[string]string{
		"format": string(format),
		"prompt": process.SystemPrompt(format),
	})
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondWithTotal(w http.ResponseWriter, status int, data interface{}, total int) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Total:     total,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
