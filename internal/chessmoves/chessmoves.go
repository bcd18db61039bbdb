// Package chessmoves is the string boundary of the rules engine: FEN text
// in, move and FEN text out.
//
// Every function accepts shortened FEN with three to five fields; a missing
// en passant field defaults to "-" and missing move counters to "0 1".
package chessmoves

import (
	"fmt"
	"strings"

	"github.com/hailam/chessmoves/internal/board"
)

// parse reads FEN text, completing a missing en passant field and counters.
func parse(fen string) (board.Position, error) {
	fields := strings.Fields(fen)
	switch len(fields) {
	case 3:
		fields = append(fields, "-", "0", "1")
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	}
	pos, err := board.ParseFEN(strings.Join(fields, " "))
	if err != nil {
		return board.Position{}, err
	}
	return pos, nil
}

// Moves returns every legal move of the position, written in the named
// notation ("uci", "san" or "long"), mapped to the resulting FEN.
// An empty map means checkmate or stalemate.
func Moves(fen, notation string) (map[string]string, error) {
	n, err := board.ParseNotation(notation)
	if err != nil {
		return nil, err
	}
	pos, err := parse(fen)
	if err != nil {
		return nil, err
	}

	ms := board.Generate(pos, n)
	out := make(map[string]string, len(ms))
	for move, next := range ms {
		out[move] = next.FEN()
	}
	return out, nil
}

// Move resolves free-form move text in the position and returns the move in
// the named notation together with the resulting FEN.
func Move(fen, text, notation string) (move, newFEN string, err error) {
	n, err := board.ParseNotation(notation)
	if err != nil {
		return "", "", err
	}
	pos, err := parse(fen)
	if err != nil {
		return "", "", err
	}

	s, err := pos.Resolve(text)
	if err != nil {
		return "", "", fmt.Errorf("move %q: %w", text, err)
	}
	return pos.Encode(s.Move, n), s.Position.FEN(), nil
}

// Hash returns the Polyglot hash of the position.
func Hash(fen string) (uint64, error) {
	pos, err := parse(fen)
	if err != nil {
		return 0, err
	}
	return pos.PolyglotHash(), nil
}

// Position normalises FEN text: counters are completed, castling flags
// ordered and an unusable en passant square dropped.
func Position(fen string) (string, error) {
	pos, err := parse(fen)
	if err != nil {
		return "", err
	}
	return pos.FEN(), nil
}
