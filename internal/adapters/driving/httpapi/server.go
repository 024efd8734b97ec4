// Package httpapi exposes the document and comparison services over a
// REST API compatible with the original Contract Comparison AI routes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
	"github.com/clauseworks/pactdiff/internal/logger"
	"github.com/clauseworks/pactdiff/internal/report"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8000"

// maxUploadSize caps multipart uploads at 32 MiB.
const maxUploadSize = 32 << 20

// Server serves the REST API.
type Server struct {
	addr     string
	docs     driving.DocumentService
	cmps     driving.ComparisonService
	renderer *report.Renderer

	httpServer *http.Server
}

// New creates an API server. addr falls back to DefaultAddr when empty.
func New(addr string, docs driving.DocumentService, cmps driving.ComparisonService) (*Server, error) {
	if addr == "" {
		addr = DefaultAddr
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		addr:     addr,
		docs:     docs,
		cmps:     cmps,
		renderer: renderer,
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	return s, nil
}

// Handler builds the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleWelcome)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/v1/documents/upload", s.handleUpload)
	mux.HandleFunc("GET /api/v1/documents", s.handleListDocuments)
	mux.HandleFunc("GET /api/v1/documents/{id}", s.handleGetDocument)
	mux.HandleFunc("GET /api/v1/documents/{id}/content", s.handleGetContent)
	mux.HandleFunc("DELETE /api/v1/documents/{id}", s.handleDeleteDocument)

	mux.HandleFunc("POST /api/v1/comparison", s.handleCreateComparison)
	mux.HandleFunc("GET /api/v1/comparison", s.handleListComparisons)
	mux.HandleFunc("GET /api/v1/comparison/status/{id}", s.handleComparisonStatus)
	mux.HandleFunc("GET /api/v1/comparison/result/{id}", s.handleComparisonResult)
	mux.HandleFunc("GET /api/v1/comparison/report/{id}", s.handleComparisonReport)

	return corsMiddleware(mux)
}

// Start listens until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening on %s", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// corsMiddleware allows any origin, mirroring the original API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to Contract Comparison AI API",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload")
		return
	}

	doc, err := s.docs.Ingest(r.Context(), &domain.RawDocument{
		Filename: header.Filename,
		URI:      "/uploads/" + header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Content:  content,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		FileID:       doc.ID,
		Filename:     doc.Filename,
		DocumentType: string(doc.Type),
		UploadTime:   doc.CreatedAt,
		Status:       "uploaded",
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.docs.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]documentResponse, 0, len(docs))
	for i := range docs {
		resp = append(resp, toDocumentResponse(&docs[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.docs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.docs.GetContent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"file_id": r.PathValue("id"),
		"content": content,
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.docs.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateComparison(w http.ResponseWriter, r *http.Request) {
	var req comparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmp, err := s.cmps.Create(
		r.Context(),
		req.OriginalDocumentID,
		req.ModifiedDocumentID,
		domain.ComparisonLevel(req.ComparisonLevel),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, toStatusResponse(cmp))
}

func (s *Server) handleListComparisons(w http.ResponseWriter, r *http.Request) {
	cmps, err := s.cmps.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]comparisonStatusResponse, 0, len(cmps))
	for i := range cmps {
		resp = append(resp, toStatusResponse(&cmps[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleComparisonStatus(w http.ResponseWriter, r *http.Request) {
	cmp, err := s.cmps.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatusResponse(cmp))
}

func (s *Server) handleComparisonResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, err := s.cmps.Result(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResultResponse(id, result))
}

func (s *Server) handleComparisonReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	cmp, err := s.cmps.Status(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if cmp.Result == nil {
		writeServiceError(w, domain.ErrComparisonIncomplete)
		return
	}

	original, _ := s.docs.Get(r.Context(), cmp.OriginalDocumentID)
	modified, _ := s.docs.Get(r.Context(), cmp.ModifiedDocumentID)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, report.Data{
		Comparison: cmp,
		Original:   original,
		Modified:   modified,
	}); err != nil {
		logger.Warn("report render: %v", err)
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("encode response: %v", err)
	}
}

// writeError writes a FastAPI-style error body.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrExtractorUnavailable):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrComparisonIncomplete):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
	}
}
