package board

const (
	polyglotCastleOffset    = 768
	polyglotEnPassantOffset = 772
	polyglotTurnOffset      = 780
)

// PolyglotHash returns the Polyglot hash of the position, the key used by
// Polyglot opening books. The move counters do not take part, and the en
// passant file only counts when a legal en passant capture exists.
func (p Position) PolyglotHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= polyglotRandom[64*polyglotKind(pt, c)+int(sq)]
			}
		}
	}

	for i := 0; i < 4; i++ {
		if p.castling&(1<<i) != 0 {
			hash ^= polyglotRandom[polyglotCastleOffset+i]
		}
	}

	if p.EnPassantAvailable() {
		hash ^= polyglotRandom[polyglotEnPassantOffset+p.epSquare.File()]
	}

	if p.side == White {
		hash ^= polyglotRandom[polyglotTurnOffset]
	}
	return hash
}

// polyglotKind orders pieces black pawn, white pawn, black knight, ...
func polyglotKind(pt PieceType, c Color) int {
	kind := 2 * int(pt)
	if c == White {
		kind++
	}
	return kind
}
