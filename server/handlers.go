package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/poiesic/aiosion/core"
	"github.com/poiesic/aiosion/nlp"
)

// DefaultHistoryLimit is used when GET /history has no limit parameter.
const DefaultHistoryLimit = 10

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Request fields are pointers so an absent field can be told apart from an
// empty one.
type generateRequest struct {
	Prompt *string `json:"prompt"`
	Model  *string `json:"model"`
}

type textRequest struct {
	Text *string `json:"text"`
}

type summarizeRequest struct {
	Text  *string  `json:"text"`
	Ratio *float64 `json:"ratio"`
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /tokenize", s.handleTokenize)
	mux.HandleFunc("POST /pos-tag", s.handlePOSTag)
	mux.HandleFunc("POST /ner", s.handleNER)
	mux.HandleFunc("POST /sentiment", s.handleSentiment)
	mux.HandleFunc("POST /summarize", s.handleSummarize)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Prompt == nil {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	var (
		text string
		err  error
	)
	if req.Model == nil {
		text, err = s.gen.GeneratePrimary(r.Context(), *req.Prompt)
	} else {
		text, err = s.gen.Generate(r.Context(), *req.Prompt, *req.Model)
	}
	if err != nil {
		if errors.Is(err, core.ErrUnsupportedProvider) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("generate failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": text})
}

func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) || !requireText(w, req.Text) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tokens": s.analyzer.Tokenize(r.Context(), *req.Text)})
}

func (s *Server) handlePOSTag(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) || !requireText(w, req.Text) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": s.analyzer.POSTag(r.Context(), *req.Text)})
}

func (s *Server) handleNER(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) || !requireText(w, req.Text) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entities": s.analyzer.NamedEntities(r.Context(), *req.Text)})
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) || !requireText(w, req.Text) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sentiment": s.analyzer.SentimentAnalysis(r.Context(), *req.Text)})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if !decode(w, r, &req) || !requireText(w, req.Text) {
		return
	}
	ratio := nlp.DefaultSummaryRatio
	if req.Ratio != nil {
		ratio = *req.Ratio
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": s.analyzer.Summarize(r.Context(), *req.Text, ratio)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "journal is not configured")
		return
	}
	limit := DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.history.GetRecentGenerationRecords(r.Context(), limit)
	if err != nil {
		s.logger.Error("history query failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []*core.GenerationRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// decode reads a JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// requireText answers 400 when the text field was absent from the body.
func requireText(w http.ResponseWriter, text *string) bool {
	if text == nil {
		writeError(w, http.StatusBadRequest, "text is required")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
