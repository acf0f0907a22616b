package predictor

import (
	"context"

	"github.com/google/uuid"

	"github.com/trknhr/cooktime/internal/catalog"
	"github.com/trknhr/cooktime/internal/estimator"
	"github.com/trknhr/cooktime/internal/feature"
)

// Session owns one user's recipe under construction. It is not safe for
// concurrent mutation; the estimator handle it references is shared and
// read-only.
type Session struct {
	ID string

	catalog   *catalog.Catalog
	handle    *estimator.Handle
	recorder  Recorder
	selection feature.Selection
}

type Option func(*Session)

func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

func NewSession(h *estimator.Handle, opts ...Option) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		catalog:   catalog.Default(),
		handle:    h,
		selection: feature.NewSelection(feature.Simmer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Session) Ready() bool {
	return s.handle.Ready()
}

// Add sets the quantity of an ingredient, resolving its name against the
// catalog case-insensitively. Unknown names are kept as typed and reported
// with known=false; they weigh nothing in the estimate.
func (s *Session) Add(name string, qty int) (canonical string, known bool, err error) {
	canonical = name
	if e, ok := s.catalog.Lookup(name); ok {
		canonical, known = e.Name, true
	}
	if err := s.selection.Add(canonical, qty); err != nil {
		return canonical, known, err
	}
	return canonical, known, nil
}

func (s *Session) Remove(name string) (string, bool) {
	canonical := name
	if e, ok := s.catalog.Lookup(name); ok {
		canonical = e.Name
	}
	return canonical, s.selection.Remove(canonical)
}

func (s *Session) Clear() {
	s.selection.Clear()
}

func (s *Session) SetMethod(m feature.Method) {
	s.selection.Method = m
}

func (s *Session) Method() feature.Method {
	return s.selection.Method
}

// Selection returns a copy of the current selection.
func (s *Session) Selection() feature.Selection {
	return s.selection.Clone()
}

// Predict estimates the current selection.
func (s *Session) Predict(ctx context.Context) (Result, error) {
	return s.PredictSelection(ctx, s.Selection())
}

// PredictSelection estimates sel without touching the session's own
// selection, so it may run off the goroutine that mutates the session.
func (s *Session) PredictSelection(ctx context.Context, sel feature.Selection) (Result, error) {
	res, err := Predict(ctx, s.handle, s.catalog, sel)
	if err != nil {
		return Result{}, err
	}
	res.SessionID = s.ID
	if s.recorder != nil {
		s.recorder.Record(res)
	}
	return res, nil
}

// Preview estimates sel like PredictSelection but does not record the
// result. Used for the running estimate shown while a recipe is edited.
func (s *Session) Preview(ctx context.Context, sel feature.Selection) (Result, error) {
	res, err := Predict(ctx, s.handle, s.catalog, sel)
	if err != nil {
		return Result{}, err
	}
	res.SessionID = s.ID
	return res, nil
}
