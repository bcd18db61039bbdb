package board

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Notation selects how moves are written.
type Notation int

const (
	UCI  Notation = iota // e2e4, e7e8q
	SAN                  // e4, Nbd7, exd8=Q+
	Long                 // e2-e4, Nb1-c3, e7xd8=Q+
)

var notationNames = [...]string{UCI: "uci", SAN: "san", Long: "long"}

func (n Notation) String() string {
	if n < 0 || int(n) >= len(notationNames) {
		return fmt.Sprintf("Notation(%d)", int(n))
	}
	return notationNames[n]
}

// ParseNotation returns the notation with the given name, ignoring case.
func ParseNotation(name string) (Notation, error) {
	for i, s := range notationNames {
		if strings.EqualFold(name, s) {
			return Notation(i), nil
		}
	}
	return UCI, fmt.Errorf("unknown notation %q", name)
}

// MoveSet maps each legal move, written in one notation, to the position it
// leads to. An empty MoveSet means checkmate or stalemate.
type MoveSet map[string]Position

// Keys returns the moves in lexical order.
func (ms MoveSet) Keys() []string {
	keys := maps.Keys(ms)
	slices.Sort(keys)
	return keys
}

// Generate returns the legal moves of the position in the given notation.
func Generate(p Position, n Notation) MoveSet {
	legal := p.Successors()
	ms := make(MoveSet, len(legal))
	for _, s := range legal {
		ms[p.encode(s, legal, n)] = s.Position
	}
	return ms
}

// Encode writes a legal move of the position in the given notation.
func (p Position) Encode(m Move, n Notation) string {
	switch n {
	case SAN:
		return p.SAN(m)
	case Long:
		return p.LongAlgebraic(m)
	default:
		return m.String()
	}
}

func (p Position) encode(s Successor, legal []Successor, n Notation) string {
	switch n {
	case SAN:
		return p.sanBody(s.Move, legal) + checkMark(s.Position)
	case Long:
		return p.longAlgebraic(s.Move) + checkMark(s.Position)
	default:
		return s.Move.String()
	}
}
