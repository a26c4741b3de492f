package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/job-analysis/internal/board"
	"github.com/jonathan/job-analysis/internal/filtering"
	"github.com/jonathan/job-analysis/internal/observability"
	"github.com/jonathan/job-analysis/internal/rendering"
	"github.com/jonathan/job-analysis/internal/server/middleware"
	"github.com/jonathan/job-analysis/internal/sorting"
	"github.com/sirupsen/logrus"
)

// multipartOverhead allows for multipart headers on top of the document limit
const multipartOverhead = 64 << 10

// FilterRequest is the body of POST /filters
type FilterRequest struct {
	Level string `json:"level" validate:"max=256"`
	Type  string `json:"type" validate:"max=256"`
	Skill string `json:"skill" validate:"max=256"`
}

// Selection converts the request into a filter selection
func (r FilterRequest) Selection() filtering.Selection {
	return filtering.Selection{Level: r.Level, Type: r.Type, Skill: r.Skill}
}

// handleIndex renders the page, optionally with one job's detail open
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := s.page()
	status := http.StatusOK

	if raw := r.URL.Query().Get("detail"); raw != "" {
		detail, err := s.detail(raw)
		if err != nil {
			status = HTTPStatus(err)
			page.Error = err.Error()
		} else {
			page.Detail = detail
		}
	}

	s.htmlResponse(w, status, page)
}

// handleUpload replaces the full set with an uploaded jobs document.
// The document is either the "file" part of a multipart form or the raw body.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverhead)

	body, source, err := s.uploadBody(r)
	if errors.Is(err, errNoFile) && wantsHTML(r) {
		// Submitting the form without choosing a file is a no-op
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.board.Upload(r.Context(), body, source)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondOK(w, r, result)
}

func (s *Server) uploadBody(r *http.Request) (io.Reader, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType != "multipart/form-data" {
		if r.ContentLength == 0 {
			return nil, "", errNoFile
		}
		source := r.URL.Query().Get("name")
		if source == "" {
			source = "upload"
		}
		return r.Body, source, nil
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", multipartError(err)
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", errNoFile
		}
		if err != nil {
			return nil, "", multipartError(err)
		}
		if part.FormName() != "file" {
			continue
		}
		if part.FileName() == "" {
			return nil, "", errNoFile
		}
		return part, part.FileName(), nil
	}
}

func multipartError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return &ErrValidation{Field: "file", Message: err.Error()}
}

// handleListJobs returns the working-set view
func (s *Server) handleListJobs(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.board.View())
}

// handleGetJob returns the detail of one row of the working set
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	detail, err := s.detail(r.PathValue("index"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, detail)
}

func (s *Server) detail(raw string) (*rendering.Detail, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ErrValidation{Field: "index", Message: "must be an integer"}
	}
	return s.board.Detail(index)
}

// handleGetFilters returns the filter options and the current selection
func (s *Server) handleGetFilters(w http.ResponseWriter, _ *http.Request) {
	snap := s.board.Snapshot()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"options":   filtering.PopulateFilters(snap.All),
		"selection": snap.Selection,
	})
}

// handleApplyFilters applies a selection given as JSON or as a form
func (s *Server) handleApplyFilters(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeFilterRequest(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	sel := req.Selection()
	view := s.board.ApplyFilters(sel)
	s.respondOK(w, r, map[string]any{
		"selection": sel,
		"view":      view,
	})
}

func (s *Server) decodeFilterRequest(r *http.Request) (FilterRequest, error) {
	var req FilterRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, &ErrValidation{Field: "body", Message: err.Error()}
		}
		req.Level = r.PostForm.Get("level")
		req.Type = r.PostForm.Get("type")
		req.Skill = r.PostForm.Get("skill")
	}

	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return req, &ErrValidation{Field: strings.ToLower(fieldErrs[0].Field()), Message: "failed " + fieldErrs[0].Tag() + " check"}
		}
		return req, &ErrValidation{Field: "body", Message: err.Error()}
	}

	return req, nil
}

// handleSort cycles the direction of a field and sorts the working set.
// An explicit "order" of asc or desc sorts without touching the toggle.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	field, err := sorting.ParseField(r.PathValue("field"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.sort(field, r.FormValue("order"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondOK(w, r, result)
}

func (s *Server) sort(field sorting.Field, order string) (board.SortResult, error) {
	if order == "" {
		return s.board.CycleSort(field)
	}
	dir, err := sorting.ParseDirection(order)
	if err != nil {
		return board.SortResult{}, err
	}
	return s.board.SortJobs(field, dir)
}

// page builds the HTML page for the current state
func (s *Server) page() rendering.Page {
	snap := s.board.Snapshot()

	page := rendering.Page{
		Total:   len(snap.All),
		View:    rendering.Project(snap.Working),
		Filters: rendering.NewFilterControls(filtering.PopulateFilters(snap.All), snap.Selection),
		Sorts: []rendering.SortControl{
			{Field: string(sorting.FieldTitle), Label: "Sort by title", Direction: string(snap.Sort.Title)},
			{Field: string(sorting.FieldPosted), Label: "Sort by posted time", Direction: string(snap.Sort.Posted)},
		},
	}
	if snap.Source != nil {
		page.Source = snap.Source.Source
	}
	return page
}

// htmlResponse renders the page fully before writing anything
func (s *Server) htmlResponse(w http.ResponseWriter, status int, page rendering.Page) {
	var buf bytes.Buffer
	if err := rendering.RenderHTML(&buf, page); err != nil {
		observability.Log.WithError(err).Error("Error rendering page")
		s.errorResponse(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// respondOK redirects browser form posts back to the page and returns JSON otherwise
func (s *Server) respondOK(w http.ResponseWriter, r *http.Request, data any) {
	if wantsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.jsonResponse(w, http.StatusOK, data)
}

// respondError shows the error on the page for browsers and as JSON otherwise
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)

	entry := observability.Log.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(r),
		"path":       r.URL.Path,
		"status":     status,
		"error":      err,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}

	if wantsHTML(r) {
		page := s.page()
		page.Error = err.Error()
		s.htmlResponse(w, status, page)
		return
	}
	s.errorResponse(w, status, err.Error())
}

// wantsHTML reports whether the request came from a browser page
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
