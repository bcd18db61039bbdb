package board

// Successor pairs a legal move with the position it leads to.
type Successor struct {
	Move     Move
	Position Position
}

// Successors returns every legal move of the position together with the
// resulting position. The order is fixed for a given position: pawns,
// knights, bishops, rooks, queens, king, castling, each by origin square.
func (p Position) Successors() []Successor {
	var ml MoveList
	p.generatePseudoLegal(&ml)

	out := make([]Successor, 0, ml.Len())
	for _, m := range ml.Slice() {
		if next, ok := p.play(m); ok {
			out = append(out, Successor{Move: m, Position: next})
		}
	}
	return out
}

// LegalMoves returns the legal moves of the position.
func (p Position) LegalMoves() []Move {
	succ := p.Successors()
	moves := make([]Move, len(succ))
	for i, s := range succ {
		moves[i] = s.Move
	}
	return moves
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p Position) HasLegalMoves() bool {
	var ml MoveList
	p.generatePseudoLegal(&ml)
	for _, m := range ml.Slice() {
		if _, ok := p.play(m); ok {
			return true
		}
	}
	return false
}

// EnPassantAvailable reports whether the side to move has a legal en passant
// capture. A stored target square alone is not enough.
func (p Position) EnPassantAvailable() bool {
	if p.epSquare == NoSquare {
		return false
	}
	attackers := PawnAttacks(p.epSquare, p.side.Other()) & p.pieces[p.side][Pawn]
	for attackers != 0 {
		from := attackers.PopLSB()
		if _, ok := p.play(NewEnPassant(from, p.epSquare)); ok {
			return true
		}
	}
	return false
}

// generatePseudoLegal generates all moves obeying piece movement rules,
// without checking whether they leave the mover's king attacked.
func (p Position) generatePseudoLegal(ml *MoveList) {
	us := p.side
	own := p.occupied[us]
	occupied := p.occupancy()

	p.generatePawnMoves(ml)

	for pt := Knight; pt <= King; pt++ {
		pieces := p.pieces[us][pt]
		for pieces != 0 {
			from := pieces.PopLSB()
			var attacks Bitboard
			switch pt {
			case Knight:
				attacks = KnightAttacks(from)
			case Bishop:
				attacks = BishopAttacks(from, occupied)
			case Rook:
				attacks = RookAttacks(from, occupied)
			case Queen:
				attacks = QueenAttacks(from, occupied)
			case King:
				attacks = KingAttacks(from)
			}
			attacks &^= own
			for attacks != 0 {
				ml.Add(NewMove(from, attacks.PopLSB()))
			}
		}
	}

	p.generateCastlingMoves(ml)
}

// generatePawnMoves generates all pawn moves.
func (p Position) generatePawnMoves(ml *MoveList) {
	us := p.side
	pawns := p.pieces[us][Pawn]
	enemies := p.occupied[us.Other()]
	empty := ^p.occupancy()

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	addPawnMoves(ml, push1, pushDir, promotionRank)
	for push2 != 0 {
		to := push2.PopLSB()
		ml.Add(NewMove(Square(int(to)-2*pushDir), to))
	}
	addPawnMoves(ml, attackL, pushDir-1, promotionRank)
	addPawnMoves(ml, attackR, pushDir+1, promotionRank)

	if p.epSquare != NoSquare {
		attackers := pawnAttacks[us.Other()][p.epSquare] & pawns
		for attackers != 0 {
			ml.Add(NewEnPassant(attackers.PopLSB(), p.epSquare))
		}
	}
}

// addPawnMoves adds one move per target square, reached from the square
// delta below it; targets on the promotion rank expand into four promotions.
func addPawnMoves(ml *MoveList, targets Bitboard, delta int, promotionRank Bitboard) {
	for targets != 0 {
		to := targets.PopLSB()
		from := Square(int(to) - delta)
		if SquareBB(to)&promotionRank != 0 {
			ml.Add(NewPromotion(from, to, Queen))
			ml.Add(NewPromotion(from, to, Rook))
			ml.Add(NewPromotion(from, to, Bishop))
			ml.Add(NewPromotion(from, to, Knight))
			continue
		}
		ml.Add(NewMove(from, to))
	}
}

// castlingPaths lists, per flag, the squares that must be empty and the
// squares the king starts on, crosses and lands on.
var castlingPaths = [4]struct {
	empty    Bitboard
	kingPath [3]Square
	kingTo   Square
}{
	{SquareBB(F1) | SquareBB(G1), [3]Square{E1, F1, G1}, G1},
	{SquareBB(B1) | SquareBB(C1) | SquareBB(D1), [3]Square{E1, D1, C1}, C1},
	{SquareBB(F8) | SquareBB(G8), [3]Square{E8, F8, G8}, G8},
	{SquareBB(B8) | SquareBB(C8) | SquareBB(D8), [3]Square{E8, D8, C8}, C8},
}

// generateCastlingMoves generates castling moves.
func (p Position) generateCastlingMoves(ml *MoveList) {
	us := p.side
	them := us.Other()
	occupied := p.occupancy()

	for _, kingSide := range []bool{true, false} {
		flag := castlingFlag(us, kingSide)
		if p.castling&flag == 0 {
			continue
		}
		path := castlingPaths[flagIndex(flag)]
		if occupied&path.empty != 0 {
			continue
		}
		attacked := false
		for _, sq := range path.kingPath {
			if p.IsSquareAttacked(sq, them) {
				attacked = true
				break
			}
		}
		if !attacked {
			ml.Add(NewCastling(path.kingPath[0], path.kingTo))
		}
	}
}

func flagIndex(flag CastlingRights) int {
	for i := 0; i < 4; i++ {
		if flag == 1<<i {
			return i
		}
	}
	return -1
}

// play applies a pseudo-legal move and reports whether it is legal, that is
// whether the mover's king is safe afterwards.
func (p Position) play(m Move) (Position, bool) {
	next := p.apply(m)
	us := p.side
	return next, !next.IsSquareAttacked(next.KingSquare(us), us.Other())
}

// apply returns the position after the move. The receiver is not modified.
func (p Position) apply(m Move) Position {
	next := p
	us := p.side
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)
	pt := piece.Type()

	next.epSquare = NoSquare

	captured := NoPiece
	if m.IsEnPassant() {
		capturedSq := to - 8
		if us == Black {
			capturedSq = to + 8
		}
		captured = next.removePiece(capturedSq)
	} else if !m.IsCastling() {
		captured = next.removePiece(to)
	}

	next.movePiece(from, to)

	if m.IsPromotion() {
		next.removePiece(to)
		next.setPiece(NewPiece(m.Promotion(), us), to)
	}

	if m.IsCastling() {
		rookFrom, rookTo := NewSquare(7, from.Rank()), NewSquare(5, from.Rank())
		if to < from {
			rookFrom, rookTo = NewSquare(0, from.Rank()), NewSquare(3, from.Rank())
		}
		next.movePiece(rookFrom, rookTo)
	}

	next.castling &^= castlingClear[from] | castlingClear[to]

	if pt == Pawn || captured != NoPiece {
		next.halfMove = 0
	} else {
		next.halfMove++
	}
	if us == Black {
		next.fullMove++
	}
	next.side = us.Other()

	// The target square is kept only when the reply can actually use it.
	if m.IsDoublePush(p) {
		next.epSquare = Square((int(from) + int(to)) / 2)
		if !next.EnPassantAvailable() {
			next.epSquare = NoSquare
		}
	}

	return next
}
