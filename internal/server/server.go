// Package server exposes retrieved translation text over a small JSON API.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jadenzaleski/bible-translations/internal/bible"
	"github.com/jadenzaleski/bible-translations/internal/translation"
)

// Server serves verse lookups for a set of translation services.
type Server struct {
	services map[string]*translation.Service
}

// New creates a server over the given services, keyed by abbreviation.
func New(services []*translation.Service) *Server {
	m := make(map[string]*translation.Service, len(services))
	for _, svc := range services {
		m[strings.ToUpper(svc.Translation().Abbreviation)] = svc
	}
	return &Server{services: m}
}

// Muxer returns the route table.
func (s *Server) Muxer() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/translations", s.handleTranslations)
	mux.HandleFunc("GET /api/{version}/{book}", s.handleBook)
	mux.HandleFunc("GET /api/{version}/{book}/{chapter}", s.handleChapter)
	mux.HandleFunc("GET /api/{version}/{book}/{chapter}/{verse}", s.handleVerse)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTranslations(w http.ResponseWriter, r *http.Request) {
	out := make([]translation.Translation, 0, len(s.services))
	for _, tr := range translation.All() {
		if _, ok := s.services[tr.Abbreviation]; ok {
			out = append(out, tr)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}

	book, err := svc.Book(r.Context(), r.PathValue("book"))
	if err != nil {
		writeModelError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}
	chapter, ok := pathInt(w, r, "chapter")
	if !ok {
		return
	}

	ch, err := svc.Chapter(r.Context(), r.PathValue("book"), chapter)
	if err != nil {
		writeModelError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}
	chapter, ok := pathInt(w, r, "chapter")
	if !ok {
		return
	}
	verse, ok := pathInt(w, r, "verse")
	if !ok {
		return
	}

	v, err := svc.Verse(r.Context(), r.PathValue("book"), chapter, verse)
	if err != nil {
		writeModelError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// service resolves the {version} path segment, writing a 404 when the
// abbreviation is not served.
func (s *Server) service(w http.ResponseWriter, r *http.Request) (*translation.Service, bool) {
	version := r.PathValue("version")
	svc, ok := s.services[strings.ToUpper(version)]
	if !ok {
		writeJSONError(w, http.StatusNotFound, "unknown_translation", "Unknown translation: "+version)
		return nil, false
	}
	return svc, true
}

// pathInt parses a positive integer path segment, writing a 400 on failure.
func pathInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(key))
	if err != nil || n < 1 {
		writeJSONError(w, http.StatusBadRequest, "invalid_"+key, "Invalid "+key+" number: "+r.PathValue(key))
		return 0, false
	}
	return n, true
}

// writeModelError maps retrieval errors onto status codes: lookup misses are
// 404, bad input is 400, anything else counts as an upstream failure.
func writeModelError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case bible.NotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, bible.ErrInvalidSelection):
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		slog.Error("retrieval failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusBadGateway, "upstream_error", err.Error())
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: code, Message: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
