package board

import "strings"

// SAN converts a legal move of the position to Standard Algebraic Notation,
// including the check or mate mark.
func (p Position) SAN(m Move) string {
	return p.san(m, p.Successors())
}

// LongAlgebraic converts a legal move of the position to long algebraic
// notation ("Nb1-c3", "e7xd8=Q", "O-O"), including the check or mate mark.
func (p Position) LongAlgebraic(m Move) string {
	if m == NoMove {
		return "-"
	}
	next, _ := p.play(m)
	return p.longAlgebraic(m) + checkMark(next)
}

func (p Position) san(m Move, legal []Successor) string {
	if m == NoMove {
		return "-"
	}
	var next Position
	found := false
	for _, s := range legal {
		if s.Move == m {
			next, found = s.Position, true
			break
		}
	}
	if !found {
		next, _ = p.play(m)
	}
	return p.sanBody(m, legal) + checkMark(next)
}

// sanBody renders the move without its check mark.
func (p Position) sanBody(m Move, legal []Successor) string {
	if m.IsCastling() {
		return castlingSAN(m)
	}

	from, to := m.From(), m.To()
	pt := p.PieceAt(from).Type()

	var sb strings.Builder
	if pt == Pawn {
		if m.IsCapture(p) {
			sb.WriteByte(fileChar(from.File()))
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(m.Promotion().Letter())
		}
		return sb.String()
	}

	sb.WriteByte(pt.Letter())
	sb.WriteString(p.disambiguation(m, pt, legal))
	if m.IsCapture(p) {
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())
	return sb.String()
}

// disambiguation returns the origin qualifier needed to tell the move apart
// from other legal moves of the same piece type to the same square.
func (p Position) disambiguation(m Move, pt PieceType, legal []Successor) string {
	from, to := m.From(), m.To()
	pieces := p.pieces[p.side][pt]

	others, sameFile, sameRank := false, false, false
	for _, s := range legal {
		other := s.Move.From()
		if s.Move.To() != to || other == from || !pieces.IsSet(other) {
			continue
		}
		others = true
		if other.File() == from.File() {
			sameFile = true
		}
		if other.Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !others:
		return ""
	case !sameFile:
		return string(fileChar(from.File()))
	case !sameRank:
		return string(rankChar(from.Rank()))
	default:
		return from.String()
	}
}

func (p Position) longAlgebraic(m Move) string {
	if m.IsCastling() {
		return castlingSAN(m)
	}

	from, to := m.From(), m.To()
	pt := p.PieceAt(from).Type()

	var sb strings.Builder
	if pt != Pawn {
		sb.WriteByte(pt.Letter())
	}
	sb.WriteString(from.String())
	if m.IsCapture(p) {
		sb.WriteByte('x')
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(to.String())
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(m.Promotion().Letter())
	}
	return sb.String()
}

func castlingSAN(m Move) string {
	if m.IsKingSideCastling() {
		return "O-O"
	}
	return "O-O-O"
}

// checkMark returns "#" if the side to move is mated, "+" if it is in check.
func checkMark(p Position) string {
	if !p.InCheck() {
		return ""
	}
	if p.HasLegalMoves() {
		return "+"
	}
	return "#"
}
