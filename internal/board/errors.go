package board

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every rejected input.
// Use these with errors.Is() to check the failure kind.
var (
	// ErrMalformedPosition indicates FEN text that does not describe a valid position.
	ErrMalformedPosition = errors.New("malformed position")

	// ErrSyntax indicates move text that matches no move grammar.
	ErrSyntax = errors.New("invalid move syntax")

	// ErrAmbiguousMove indicates move text matching more than one legal move.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrIllegalMove indicates well-formed move text matching no legal move.
	ErrIllegalMove = errors.New("illegal move")
)

// PositionError describes why a FEN string was rejected.
// It always unwraps to ErrMalformedPosition.
type PositionError struct {
	FEN    string
	Reason string
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%v: %s (%q)", ErrMalformedPosition, e.Reason, e.FEN)
}

func (e *PositionError) Unwrap() error {
	return ErrMalformedPosition
}

func malformed(fen, format string, args ...any) error {
	return &PositionError{FEN: fen, Reason: fmt.Sprintf(format, args...)}
}

// MoveError wraps a move rejection with the offending text and the position
// it was checked against. Kind is one of ErrSyntax, ErrAmbiguousMove or
// ErrIllegalMove.
type MoveError struct {
	Kind error
	Text string
	FEN  string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%v (%s)", e.Kind, e.Text)
}

func (e *MoveError) Unwrap() error {
	return e.Kind
}
