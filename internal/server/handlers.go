package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/render/nodelink"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// =============================================================================
// Page and state
// =============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st := s.shell.Snapshot()
	p := newPage(st, s.shell.Canvas(), s.shell.Exporting())

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", p); err != nil {
		s.logger.Error("template error", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, http.StatusOK)
}

func (s *Server) writeState(w http.ResponseWriter, status int) {
	writeJSON(w, status, newStateJSON(s.shell.Snapshot(), s.shell.Exporting()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// =============================================================================
// Generation and selection
// =============================================================================

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "malformed form")
		return
	}

	run, err := s.shell.Submit(r.PostFormValue("text"))
	if err != nil {
		s.writeError(w, r, statusFor(err), errors.UserMessage(err))
		return
	}

	// The model call outlives the request; only the configured timeout
	// bounds it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), s.cfg.Timeout)

	if wantsJSON(r) {
		defer cancel()
		if err := run(ctx); err != nil {
			s.writeState(w, http.StatusBadGateway)
			return
		}
		s.writeState(w, http.StatusOK)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		_ = run(ctx)
	}()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if err := errors.ValidateSheetID(id); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.UserMessage(err))
		return
	}
	st := s.shell.Select(id)
	if active, ok := st.ActiveSheetID(); !ok || active != id {
		s.writeError(w, r, http.StatusNotFound, "sheet not found")
		return
	}
	if wantsJSON(r) {
		s.writeState(w, http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// =============================================================================
// Artifacts
// =============================================================================

func (s *Server) handleCanvas(w http.ResponseWriter, r *http.Request) {
	surface := s.shell.Canvas()
	if surface == nil {
		http.Error(w, "no active sheet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(surface.SVG())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	img, err := s.shell.Export(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errors.ErrCodeBusy) {
			status = http.StatusConflict
		}
		s.writeError(w, r, status, errors.UserMessage(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img.PNG)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": img.Filename}))
	_, _ = w.Write(img.PNG)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if err := errors.ValidateSheetID(id); err != nil {
		http.Error(w, errors.UserMessage(err), http.StatusBadRequest)
		return
	}
	sh, ok := s.sheet(id)
	if !ok {
		http.Error(w, "sheet not found", http.StatusNotFound)
		return
	}
	detailed := r.URL.Query().Get("detailed") == "1"
	svg, err := nodelink.RenderSVG(r.Context(), nodelink.ToDOT(sh, nodelink.Options{Detailed: detailed}))
	if err != nil {
		s.logger.Error("graph render failed", "sheet", sh.ID, "error", err)
		http.Error(w, "graph render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleSuite(w http.ResponseWriter, r *http.Request) {
	st := s.shell.Snapshot()
	if st.Suite() == nil {
		http.Error(w, "no suite generated", http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := suite.WriteJSON(&buf, st.Suite()); err != nil {
		http.Error(w, "encode suite", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

// =============================================================================
// Helpers
// =============================================================================

// sheet looks up a sheet of the current suite.
func (s *Server) sheet(id string) (suite.Sheet, bool) {
	sh, ok := s.shell.Snapshot().Suite().Sheet(id)
	if !ok {
		return suite.Sheet{}, false
	}
	return *sh, true
}

// pathID returns the unescaped {id} route parameter.
func pathID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if u, err := url.PathUnescape(id); err == nil {
		return u
	}
	return id
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// statusFor maps submit errors to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports msg as JSON or plain text, depending on the request.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if wantsJSON(r) {
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
