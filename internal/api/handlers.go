package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/hirelens/internal/analysis"
	"github.com/starford/hirelens/internal/apperr"
	"github.com/starford/hirelens/internal/catalog"
	"github.com/starford/hirelens/internal/feedback"
	"github.com/starford/hirelens/internal/filter"
	"github.com/starford/hirelens/internal/intake"
	"github.com/starford/hirelens/internal/session"
)

// Handler holds API route handlers.
type Handler struct {
	catalog   *catalog.Catalog
	sessions  *session.Manager
	inspector *intake.Inspector
	feedback  *feedback.Service
	maxFiles  int
}

// NewHandler creates a new Handler. maxFiles bounds the multipart body of a
// batch analysis; values below 1 mean 1.
func NewHandler(c *catalog.Catalog, s *session.Manager, in *intake.Inspector, fb *feedback.Service, maxFiles int) *Handler {
	if maxFiles < 1 {
		maxFiles = 1
	}
	return &Handler{catalog: c, sessions: s, inspector: in, feedback: fb, maxFiles: maxFiles}
}

// writeError maps domain errors to HTTP statuses. Unexpected errors are
// logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrUnknownCollection):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrBusy):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, session.ErrClosed):
		writeJSON(w, http.StatusServiceUnavailable, errorBody("shutting down"))
	default:
		slog.ErrorContext(r.Context(), op+" failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListCollections handles GET /api/collections.
//
//	@Summary		List served collections and their facet parameters
//	@Tags			collections
//	@Produce		json
//	@Success		200	{object}	CollectionListResponse
//	@Security		BearerAuth
//	@Router			/collections [get]
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Collections()
	out := CollectionListResponse{Collections: make([]CollectionInfo, 0, len(names))}
	for _, name := range names {
		facets, err := h.catalog.FacetParams(name)
		if err != nil {
			writeError(w, r, "list collections", err)
			return
		}
		if facets == nil {
			facets = []string{}
		}
		out.Collections = append(out.Collections, CollectionInfo{Name: name, Facets: facets})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListCollection handles GET /api/collections/{name}.
//
//	@Summary		Fetch a collection with optional search and facet filters
//	@Tags			collections
//	@Produce		json
//	@Param			name	path		string	true	"Collection name"
//	@Param			q		query		string	false	"Case-insensitive search text"
//	@Success		200		{object}	Listing
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/collections/{name} [get]
func (h *Handler) ListCollection(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, chi.URLParam(r, "name"))
}

// ListSkillShares handles GET /api/skillshares.
//
//	@Summary		List peer skill sessions
//	@Tags			collections
//	@Produce		json
//	@Param			q		query		string	false	"Search text"
//	@Param			level	query		string	false	"Level facet"
//	@Success		200		{object}	Listing
//	@Security		BearerAuth
//	@Router			/skillshares [get]
func (h *Handler) ListSkillShares(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, catalog.SkillShares)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, name string) {
	params, err := h.catalog.FacetParams(name)
	if err != nil {
		writeError(w, r, "list collection", err)
		return
	}
	values := r.URL.Query()
	q := filter.Query{Search: values.Get("q"), Facets: make(map[string]string, len(params))}
	for _, p := range params {
		if v := values.Get(p); v != "" {
			q.Facets[p] = v
		}
	}

	listing, err := h.catalog.List(r.Context(), name, q)
	if err != nil {
		writeError(w, r, "list collection", err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// GetRecord handles GET /api/collections/{name}/{id}.
//
//	@Summary		Get one record by id
//	@Tags			collections
//	@Produce		json
//	@Param			name	path		string	true	"Collection name"
//	@Param			id		path		string	true	"Record id"
//	@Success		200		{object}	object
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/collections/{name}/{id} [get]
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.catalog.Get(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "get record", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// CreateSession handles POST /api/sessions.
//
//	@Summary		Open an analysis session
//	@Tags			sessions
//	@Produce		json
//	@Success		201	{object}	SessionResponse
//	@Security		BearerAuth
//	@Router			/sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Create()
	if err != nil {
		writeError(w, r, "create session", err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// GetSession handles GET /api/sessions/{id}.
//
//	@Summary		Get a session's state and result
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session id"
//	@Success		200	{object}	SessionResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "get session", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteSession handles DELETE /api/sessions/{id}.
//
//	@Summary		Close a session and cancel its pending analysis
//	@Tags			sessions
//	@Param			id	path	string	true	"Session id"
//	@Success		204
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id} [delete]
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetSession handles POST /api/sessions/{id}/reset.
//
//	@Summary		Cancel any pending analysis and clear inputs and result
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session id"
//	@Success		200	{object}	SessionResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/reset [post]
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Reset(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "reset session", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// StartAnalysis handles POST /api/sessions/{id}/analyses/{kind}
// (multipart/form-data: one or more "file" fields plus text fields).
//
//	@Summary		Schedule a mock analysis
//	@Tags			sessions
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id				path		string	true	"Session id"
//	@Param			kind			path		string	true	"Analysis kind"	Enums(resume, candidates, admin, transition, reskill)
//	@Param			file			formData	file	true	"Resume (PDF or Word document)"
//	@Param			jobDescription	formData	string	false	"Job description"
//	@Param			jobRole			formData	string	false	"Job role"
//	@Param			quitReason		formData	string	false	"Reason for leaving"
//	@Param			dreamCompany	formData	string	false	"Target company"
//	@Param			dreamRole		formData	string	false	"Target role"
//	@Success		202				{object}	SessionResponse
//	@Failure		400				{object}	errResponse
//	@Failure		404				{object}	errResponse
//	@Failure		409				{object}	errResponse
//	@Failure		413				{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/analyses/{kind} [post]
func (h *Handler) StartAnalysis(w http.ResponseWriter, r *http.Request) {
	kind, ok := analysis.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("unknown analysis kind %q", chi.URLParam(r, "kind"))))
		return
	}

	maxBytes := h.inspector.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes*int64(h.maxFiles)+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge,
				errorBody(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody("invalid multipart body"))
		return
	}

	in := analysis.Input{
		JobDescription: r.FormValue("jobDescription"),
		JobRole:        r.FormValue("jobRole"),
		QuitReason:     r.FormValue("quitReason"),
		DreamCompany:   r.FormValue("dreamCompany"),
		DreamRole:      r.FormValue("dreamRole"),
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
		for _, fh := range r.MultipartForm.File["file"] {
			doc, err := h.inspect(fh)
			if err != nil {
				writeError(w, r, "inspect upload", err)
				return
			}
			in.Files = append(in.Files, doc)
		}
	}

	snap, err := h.sessions.Start(chi.URLParam(r, "id"), kind, in)
	if err != nil {
		writeError(w, r, "start analysis", err)
		return
	}
	writeJSON(w, http.StatusAccepted, snap)
}

func (h *Handler) inspect(fh *multipart.FileHeader) (intake.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return intake.Document{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.inspector.MaxBytes()+1))
	if err != nil {
		return intake.Document{}, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	return h.inspector.Inspect(fh.Filename, fh.Header.Get("Content-Type"), data)
}

// SubmitFeedback handles POST /api/feedback.
//
//	@Summary		Submit a speak-up message
//	@Tags			feedback
//	@Accept			json
//	@Produce		json
//	@Param			body	body		FeedbackRequest	true	"Submission"
//	@Success		202		{object}	FeedbackReceipt
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/feedback [post]
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	receipt, err := h.feedback.Submit(r.Context(), req)
	if err != nil {
		writeError(w, r, "submit feedback", err)
		return
	}
	writeJSON(w, http.StatusAccepted, receipt)
}
