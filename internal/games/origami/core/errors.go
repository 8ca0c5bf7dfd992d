package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCreaseLine is returned for a zero-length fold line.
	// The mesh is left unchanged; the player should re-select points.
	ErrInvalidCreaseLine = errors.New("invalid crease line")

	// ErrNothingToUndo is returned when only the initial state is in history.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrDegenerateAffineMapping accompanies the identity matrix returned for a
	// collinear source triangle.
	ErrDegenerateAffineMapping = errors.New("degenerate affine mapping")

	// ErrMissingCollaborator is returned when an operation needs a puzzle or
	// source mesh that has not been loaded.
	ErrMissingCollaborator = errors.New("no puzzle loaded")

	// ErrCreaseCrossesFace is returned when the crease would cut through a face.
	ErrCreaseCrossesFace = errors.New("crease crosses the interior of a face")

	// ErrEmptyFold is returned when no vertex lies on the moving side of the crease.
	ErrEmptyFold = errors.New("nothing on the moving side of the crease")

	// ErrMalformedPuzzle is wrapped by every puzzle schema violation.
	ErrMalformedPuzzle = errors.New("malformed puzzle")

	// ErrFaceOutOfRange is returned for a face index outside the mesh.
	ErrFaceOutOfRange = errors.New("face index out of range")
)

// Validation error codes.
const (
	CodeLengthMismatch   = "LENGTH_MISMATCH"
	CodeIndexOutOfRange  = "INDEX_OUT_OF_RANGE"
	CodeDegenerateFace   = "DEGENERATE_FACE"
	CodeEmptyClass       = "EMPTY_CLASS"
	CodeBadEdge          = "BAD_EDGE"
	CodeBadTarget        = "BAD_TARGET"
	CodeUnsolvedSolution = "SOLUTION_DOES_NOT_SOLVE"
)

// ValidationError contains details about a rejected puzzle definition.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap lets errors.Is match ErrMalformedPuzzle.
func (e *ValidationError) Unwrap() error {
	return ErrMalformedPuzzle
}

func invalid(code, format string, args ...any) error {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// FoldError describes a rejected fold.
type FoldError struct {
	Err  error
	Line CreaseLine
	Face int // offending face for ErrCreaseCrossesFace, otherwise -1
}

func (e *FoldError) Error() string {
	if e.Face >= 0 {
		return fmt.Sprintf("fold %s: %v (face %d)", e.Line, e.Err, e.Face)
	}
	return fmt.Sprintf("fold %s: %v", e.Line, e.Err)
}

func (e *FoldError) Unwrap() error {
	return e.Err
}
