package app

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-modscope/dsp/modulation"
	"github.com/cwbudde/algo-modscope/internal/compute"
	"github.com/cwbudde/algo-modscope/internal/figure"
)

// Session is the state behind one scope window: the last submitted form,
// the selected scheme and the figure on display. It is safe for concurrent
// use; updates run synchronously under the session lock.
type Session struct {
	mu       sync.Mutex
	pipeline *compute.Pipeline
	logger   *log.Logger

	values  map[string]string
	scheme  modulation.Scheme
	fig     figure.Figure
	result  *compute.Result
	lastErr error
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPipeline sets the computation pipeline.
func WithPipeline(p *compute.Pipeline) SessionOption {
	return func(s *Session) {
		if p != nil {
			s.pipeline = p
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults sets the initial form contents and scheme.
func WithDefaults(p modulation.Params, scheme modulation.Scheme) SessionOption {
	return func(s *Session) {
		s.values = Values(p)
		if scheme.Valid() {
			s.scheme = scheme
		}
	}
}

// NewSession returns a session showing the blank figure.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		values: Values(modulation.DefaultParams()),
		scheme: modulation.SchemeDSB,
		fig:    figure.Blank(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.pipeline == nil {
		s.pipeline = compute.New()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Update parses values, recomputes every waveform for scheme and replaces
// the figure. On any error the figure and result stay as they were; the
// submitted text and scheme are kept so the form shows what was entered.
func (s *Session) Update(values map[string]string, scheme modulation.Scheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = maps.Clone(values)
	if s.values == nil {
		s.values = map[string]string{}
	}
	if scheme.Valid() {
		s.scheme = scheme
	}

	err := s.update(values, scheme)
	s.lastErr = err
	return err
}

func (s *Session) update(values map[string]string, scheme modulation.Scheme) error {
	params, err := ParseForm(values)
	if err != nil {
		var inErr *InputError
		if errors.As(err, &inErr) {
			s.logger.Warn("rejected input", "field", inErr.Field, "text", inErr.Text)
		}
		return err
	}

	res, err := s.pipeline.Run(params, scheme)
	if err != nil {
		s.logger.Error("update failed", "scheme", scheme, "err", err)
		return fmt.Errorf("app: update: %w", err)
	}

	s.fig = figure.FromResult(res)
	s.result = res
	s.logger.Debug("figure updated", "scheme", scheme, "samples", res.Signals.Len())
	return nil
}

// Figure returns the figure on display.
func (s *Session) Figure() figure.Figure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fig
}

// Result returns the result behind the figure, nil before the first
// successful update.
func (s *Session) Result() *compute.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Values returns a copy of the current form text.
func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.values)
}

// Scheme returns the selected scheme.
func (s *Session) Scheme() modulation.Scheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheme
}

// LastError returns the error of the most recent Update, nil after a
// successful one.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Dialog returns the title and message to show for err, and false when err
// is not a user input problem.
func Dialog(err error) (title, message string, ok bool) {
	var inErr *InputError
	if errors.As(err, &inErr) {
		return inErr.Title(), inErr.Message(), true
	}
	return "", "", false
}
