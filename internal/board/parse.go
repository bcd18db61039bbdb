package board

import "strings"

// moveQuery holds the move elements recognised in user text. Zero bytes
// mean the element was not given.
type moveQuery struct {
	fromPiece byte
	fromFile  byte
	fromRank  byte
	toPiece   byte
	toFile    byte
	toRank    byte
	promotion byte
}

// Resolve matches free-form move text against the legal moves of the
// position and returns the single move it designates.
//
// Accepted forms include SAN ("Nf3", "exd5", "e8=Q+"), UCI ("g1f3",
// "e7e8q"), long algebraic ("Ng1-f3") and abbreviations such as "ed" or
// "RxB". Castling must be spelled "O-O" or "O-O-O". When several moves
// match, pawn moves win over piece moves and, without a promotion letter,
// queening wins over under-promotion.
//
// Errors are *MoveError values wrapping ErrSyntax, ErrAmbiguousMove or
// ErrIllegalMove.
func (p Position) Resolve(text string) (Successor, error) {
	fail := func(kind error) (Successor, error) {
		return Successor{}, &MoveError{Kind: kind, Text: text, FEN: p.FEN()}
	}

	q, ok := parseMoveText(text)
	if !ok {
		return fail(ErrSyntax)
	}

	var match Successor
	matches, precedence := 0, -1
	for _, s := range p.Successors() {
		if !q.matches(p, s.Move) {
			continue
		}
		prec := 0
		if p.PieceAt(s.Move.From()).Type() == Pawn {
			prec = 1
			if s.Move.Promotion() == Queen {
				prec = 2
			}
		}
		if prec > precedence {
			matches = 0
		}
		if prec >= precedence {
			match, precedence = s, prec
			matches++
		}
	}

	switch {
	case matches == 0:
		return fail(ErrIllegalMove)
	case matches > 1:
		return fail(ErrAmbiguousMove)
	}
	return match, nil
}

// parseMoveText extracts the move elements from text, reporting false when
// the text cannot be a move.
func parseMoveText(text string) (moveQuery, bool) {
	var q moveQuery
	s := strings.TrimSpace(text)
	s = strings.TrimRight(s, "+#!?")
	if s == "" {
		return q, false
	}

	switch s[0] {
	case 'O', 'o', '0':
		q.fromPiece, q.fromFile = 'K', 'e'
		switch s {
		case "O-O":
			q.toFile = 'g'
		case "O-O-O":
			q.toFile = 'c'
		default:
			return q, false
		}
		return q, true
	}

	ix := 0
	at := func() byte {
		if ix < len(s) {
			return s[ix]
		}
		return 0
	}

	if isPieceLetter(at()) {
		q.fromPiece = at()
		ix++
		if at() == '/' {
			ix++
		}
	}
	if isFileChar(at()) {
		q.toFile = at()
		ix++
	}
	if isRankChar(at()) {
		q.toRank = at()
		ix++
	}

	switch at() {
	case 'x', ':':
		ix++
		if isPieceLetter(at()) {
			q.toPiece = at()
			ix++
		}
	case '-':
		ix++
	}

	// A second square turns the first one into the origin.
	if isFileChar(at()) {
		q.fromFile, q.fromRank = q.toFile, q.toRank
		q.toFile, q.toRank = at(), 0
		ix++
	}
	if isRankChar(at()) {
		if q.toRank != 0 {
			q.fromRank = q.toRank
		}
		q.toRank = at()
		ix++
	}

	if at() == '=' {
		ix++
	}
	if c := upper(at()); isPieceLetter(c) {
		if !pieceTypeFromLetter(c).IsPromotable() {
			return q, false
		}
		q.promotion = c
		ix++
	}

	if ix != len(s) {
		return q, false
	}

	if q.fromPiece == 0 && q.toPiece == 0 && q.promotion == 0 {
		switch {
		case q.fromFile == 0 && q.toFile == 0: // "3", "34"
			return q, false
		case q.fromRank != 0 && q.toRank == 0: // "3a", "a3b"
			return q, false
		case q.toFile != 0 && q.toRank == 0 && q.fromFile == 0: // "a"
			return q, false
		}
	}
	return q, true
}

// matches reports whether every element given in the query agrees with m.
func (q moveQuery) matches(p Position, m Move) bool {
	from, to := m.From(), m.To()
	if q.fromPiece != 0 && q.fromPiece != p.PieceAt(from).Type().Letter() {
		return false
	}
	if q.fromFile != 0 && q.fromFile != fileChar(from.File()) {
		return false
	}
	if q.fromRank != 0 && q.fromRank != rankChar(from.Rank()) {
		return false
	}
	if q.toPiece != 0 && q.toPiece != p.PieceAt(to).Type().Letter() {
		return false
	}
	if q.toFile != 0 && q.toFile != fileChar(to.File()) {
		return false
	}
	if q.toRank != 0 && q.toRank != rankChar(to.Rank()) {
		return false
	}
	if q.promotion != 0 && (!m.IsPromotion() || q.promotion != m.Promotion().Letter()) {
		return false
	}
	return true
}

func isPieceLetter(c byte) bool {
	return c != 0 && strings.IndexByte(pieceLetters, c) >= 0
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
