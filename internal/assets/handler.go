package assets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/shellac-studio/shellac/pkg/handlers"
	"github.com/shellac-studio/shellac/pkg/pagination"
	"github.com/shellac-studio/shellac/pkg/routes"
)

// Handler provides HTTP endpoints for asset operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// ProcessResponse is the envelope returned by the process endpoint.
type ProcessResponse struct {
	Success bool   `json:"success"`
	Asset   *Asset `json:"asset"`
}

// NewHandler creates a Handler with the given system, logger, pagination
// config, and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "assets"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for asset endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/assets",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "POST", Pattern: "/{id}/archive", Handler: h.Archive},
		},
	}
}

// ProcessRoutes returns the route group definition for ingest endpoints.
func (h *Handler) ProcessRoutes() routes.Group {
	return routes.Group{
		Prefix: "/process",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Process},
			{Method: "POST", Pattern: "/batch", Handler: h.ProcessBatch},
		},
	}
}

// List returns a paginated list of assets with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single asset by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	a, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Search accepts a JSON body with pagination and filter criteria and
// returns matching assets.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Process accepts a multipart upload with a single "file" field, runs the
// full ingest workflow, and returns the analyzed asset.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	if err := h.parseUpload(w, r); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}
	defer file.Close()

	cmd, err := h.buildIngestCommand(file, header)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	a, err := h.sys.Ingest(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ProcessResponse{Success: true, Asset: a})
}

// ProcessBatch accepts a multipart upload with repeated "file" parts and
// ingests each one independently, reporting per-file outcomes.
func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	if err := h.parseUpload(w, r); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["file"]) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}

	headers := r.MultipartForm.File["file"]
	results := make([]BatchResult, 0, len(headers))
	cmds := make([]IngestCommand, 0, len(headers))

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			results = append(results, BatchResult{Filename: header.Filename, Error: err.Error()})
			continue
		}

		cmd, err := h.buildIngestCommand(file, header)
		file.Close()
		if err != nil {
			results = append(results, BatchResult{Filename: header.Filename, Error: err.Error()})
			continue
		}

		cmds = append(cmds, cmd)
	}

	results = append(results, h.sys.IngestBatch(r.Context(), cmds)...)
	handlers.RespondJSON(w, http.StatusOK, results)
}

// Archive transitions a reviewed asset to its terminal ARCHIVED status.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	a, err := h.sys.Archive(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// parseUpload enforces the upload size limit and parses the multipart
// body, returning ErrFileTooLarge for oversized requests and
// ErrMalformedUpload for bodies that fail multipart parsing.
func (h *Handler) parseUpload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || errors.Is(err, multipart.ErrMessageTooLarge) {
			return ErrFileTooLarge
		}
		return fmt.Errorf("%w: %v", ErrMalformedUpload, err)
	}

	return nil
}

func (h *Handler) buildIngestCommand(file multipart.File, header *multipart.FileHeader) (IngestCommand, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return IngestCommand{}, err
	}

	if len(data) == 0 {
		return IngestCommand{}, ErrEmptyFile
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)
	pageCount := extractPDFPageCount(h.logger, data, contentType)

	return IngestCommand{
		Data:        data,
		Filename:    header.Filename,
		ContentType: contentType,
		PageCount:   pageCount,
	}, nil
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPDFPageCount(logger *slog.Logger, data []byte, contentType string) *int {
	if contentType != "application/pdf" {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}
