package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Session owns one puzzle being solved: the initial mesh, the live mesh and
// the undo history. It is not safe for concurrent use.
type Session struct {
	ID string

	puzzle    *Puzzle
	initial   *Mesh
	live      *Mesh
	history   *History
	eps       float64
	affineEps float64
	precision int
	undos     int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithEpsilon sets the fold side tolerance.
func WithEpsilon(eps float64) SessionOption {
	return func(s *Session) {
		if eps > 0 {
			s.eps = eps
		}
	}
}

// WithAffineEpsilon sets the determinant threshold for face transforms.
func WithAffineEpsilon(tol float64) SessionOption {
	return func(s *Session) {
		if tol > 0 {
			s.affineEps = tol
		}
	}
}

// WithPrecision overrides the decimals used to group positions.
func WithPrecision(decimals int) SessionOption {
	return func(s *Session) {
		if decimals > 0 {
			s.precision = decimals
		}
	}
}

// NewSession validates the puzzle and starts a session on its unfolded sheet.
func NewSession(p *Puzzle, opts ...SessionOption) (*Session, error) {
	if p == nil {
		return nil, ErrMissingCollaborator
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("puzzle %s: %w", p.ID, err)
	}

	s := &Session{
		ID:        uuid.Must(uuid.NewV7()).String(),
		puzzle:    p,
		eps:       DefaultEpsilon,
		affineEps: AffineEpsilon,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) ready() error {
	if s == nil || s.puzzle == nil || s.live == nil {
		return ErrMissingCollaborator
	}
	return nil
}

// Puzzle returns the puzzle definition, or nil.
func (s *Session) Puzzle() *Puzzle {
	if s == nil {
		return nil
	}
	return s.puzzle
}

// Fold applies a fold to the live mesh and records it in history.
func (s *Session) Fold(line CreaseLine, ft FoldType) (FoldResult, error) {
	if err := s.ready(); err != nil {
		return FoldResult{}, err
	}
	res, err := ApplyFold(s.live, line, ft, s.eps)
	if err != nil {
		return FoldResult{}, err
	}
	s.history.Push(s.live)
	return res, nil
}

// Undo restores the mesh before the last fold.
func (s *Session) Undo() error {
	if err := s.ready(); err != nil {
		return err
	}
	m, err := s.history.Undo()
	if err != nil {
		return err
	}
	s.live = m
	s.undos++
	return nil
}

// Reset rebuilds the initial and live meshes from the puzzle definition.
func (s *Session) Reset() error {
	if s == nil || s.puzzle == nil {
		return ErrMissingCollaborator
	}
	m, err := s.puzzle.Mesh()
	if err != nil {
		return err
	}
	s.initial = m
	s.live = m.Clone()
	if s.history == nil {
		s.history = NewHistory(m)
	} else {
		s.history.Reset(m)
	}
	return nil
}

// CanUndo reports whether a fold can be undone.
func (s *Session) CanUndo() bool {
	return s.ready() == nil && s.history.CanUndo()
}

// Depth returns the history depth, 0 without a puzzle.
func (s *Session) Depth() int {
	if s.ready() != nil {
		return 0
	}
	return s.history.Depth()
}

// Moves returns the number of folds currently applied.
func (s *Session) Moves() int {
	if s.ready() != nil {
		return 0
	}
	return s.live.Folds
}

// Undos returns how many folds were undone since the session started.
func (s *Session) Undos() int {
	if s == nil {
		return 0
	}
	return s.undos
}

// Mesh returns a copy of the live mesh.
func (s *Session) Mesh() (*Mesh, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.live.Clone(), nil
}

// Initial returns a copy of the unfolded mesh.
func (s *Session) Initial() (*Mesh, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.initial.Clone(), nil
}

// Validate checks the live mesh against the puzzle target.
func (s *Session) Validate() (Report, error) {
	if err := s.ready(); err != nil {
		return Report{}, err
	}
	t := s.puzzle.Target
	if s.precision > 0 {
		t.Precision = s.precision
	}
	return Validate(s.live, t), nil
}

// FaceTransforms returns, per face, the affine map from the unfolded sheet to
// the live mesh. Degenerate faces get the identity.
func (s *Session) FaceTransforms() ([]Matrix, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out := make([]Matrix, s.live.NumFaces())
	for i := range out {
		m, err := faceTransform(s.initial, s.live, i, s.affineEps)
		if err != nil && !errors.Is(err, ErrDegenerateAffineMapping) {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// Replay starts a session on p, applies steps in order and validates.
// It stops at the first rejected fold.
func Replay(p *Puzzle, steps []FoldStep, opts ...SessionOption) (*Session, Report, error) {
	s, err := NewSession(p, opts...)
	if err != nil {
		return nil, Report{}, err
	}
	for i, step := range steps {
		if _, err := s.Fold(step.Line, step.Type); err != nil {
			return s, Report{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	report, err := s.Validate()
	return s, report, err
}
