// Package webui serves the scope window as a local web page.
package webui

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-modscope/dsp/modulation"
	"github.com/cwbudde/algo-modscope/internal/app"
	"github.com/cwbudde/algo-modscope/internal/compute"
	"github.com/cwbudde/algo-modscope/internal/render"
)

// Server exposes one app.Session over HTTP.
type Server struct {
	session *app.Session
	logger  *log.Logger

	mu       sync.Mutex // guards renderer
	renderer *render.Renderer
}

// New returns a server for session. A nil logger discards output.
func New(session *app.Session, renderer *render.Renderer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{session: session, renderer: renderer, logger: logger}
}

// Handler returns the routes of the scope window.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /update", s.handleUpdate)
	mux.HandleFunc("GET /plot.png", s.handlePlot)
	mux.HandleFunc("GET /figure.json", s.handleFigure)
	return s.logged(mux)
}

// NewHTTPServer wraps Handler with timeouts for addr.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.writePage(w, http.StatusOK, nil)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	scheme, err := modulation.ParseScheme(r.PostForm.Get("scheme"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	values := make(map[string]string, len(app.Fields()))
	for _, f := range app.Fields() {
		if _, ok := r.PostForm[f.Key]; ok {
			values[f.Key] = r.PostForm.Get(f.Key)
		}
	}

	err = s.session.Update(values, scheme)
	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, app.ErrInvalidInput):
		title, msg, _ := app.Dialog(err)
		s.writePage(w, http.StatusUnprocessableEntity, &pageDialog{Title: title, Message: msg})
	case errors.Is(err, modulation.ErrSampleRate), errors.Is(err, compute.ErrTooManySamples):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error("update", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handlePlot(w http.ResponseWriter, _ *http.Request) {
	fig := s.session.Figure()

	var buf bytes.Buffer
	s.mu.Lock()
	err := s.renderer.EncodePNG(&buf, fig)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("render", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleFigure(w http.ResponseWriter, _ *http.Request) {
	data, err := json.Marshal(s.session.Figure())
	if err != nil {
		s.logger.Error("encode figure", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (s *Server) writePage(w http.ResponseWriter, status int, dialog *pageDialog) {
	values := s.session.Values()
	current := s.session.Scheme()

	data := pageData{
		Title:  windowTitle,
		Plot:   "/plot.png",
		Dialog: dialog,
	}
	for _, f := range app.Fields() {
		data.Fields = append(data.Fields, pageField{Field: f, Value: values[f.Key]})
	}
	for _, sc := range modulation.Schemes() {
		data.Schemes = append(data.Schemes, pageOption{Name: sc.String(), Selected: sc == current})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("page", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"took", time.Since(start))
	})
}
