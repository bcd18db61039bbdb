package board

// direction indexes the eight ray directions. The first four step toward
// higher square indexes, the last four toward lower ones.
type direction int

const (
	dirNorth direction = iota
	dirEast
	dirNorthEast
	dirNorthWest
	dirSouth
	dirWest
	dirSouthEast
	dirSouthWest
)

var directionSteps = [8][2]int{ // {file, rank}
	dirNorth:     {0, 1},
	dirEast:      {1, 0},
	dirNorthEast: {1, 1},
	dirNorthWest: {-1, 1},
	dirSouth:     {0, -1},
	dirWest:      {-1, 0},
	dirSouthEast: {1, -1},
	dirSouthWest: {-1, -1},
}

var (
	rookDirections   = []direction{dirNorth, dirEast, dirSouth, dirWest}
	bishopDirections = []direction{dirNorthEast, dirNorthWest, dirSouthEast, dirSouthWest}
)

// Pre-computed attack tables
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]

	// rays holds, per direction and square, every square reachable on an
	// empty board, excluding the origin.
	rays [8][64]Bitboard
)

func init() {
	initStepAttacks()
	initRays()
}

func initStepAttacks() {
	knightJumps := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}

	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		kingAttacks[sq] = bb.North() | bb.South() | bb.East() | bb.West() |
			bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()

		for _, j := range knightJumps {
			if to, ok := offset(sq, j[0], j[1]); ok {
				knightAttacks[sq] |= SquareBB(to)
			}
		}

		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

func initRays() {
	for d, step := range directionSteps {
		for sq := A1; sq <= H8; sq++ {
			var ray Bitboard
			for to, ok := offset(sq, step[0], step[1]); ok; to, ok = offset(to, step[0], step[1]) {
				ray |= SquareBB(to)
			}
			rays[d][sq] = ray
		}
	}
}

// offset returns the square df files and dr ranks away from sq, if on the board.
func offset(sq Square, df, dr int) (Square, bool) {
	f, r := sq.File()+df, sq.Rank()+dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}

// slide returns the attacks along the given directions, stopping at (and
// including) the first occupied square of each ray.
func slide(sq Square, occupied Bitboard, dirs []direction) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		ray := rays[d][sq]
		blockers := ray & occupied
		if blockers != 0 {
			var first Square
			if d < dirSouth {
				first = blockers.LSB()
			} else {
				first = blockers.MSB()
			}
			ray &^= rays[d][first]
		}
		attacks |= ray
	}
	return attacks
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the pawn attack bitboard for a square and color.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slide(sq, occupied, bishopDirections)
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slide(sq, occupied, rookDirections)
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// AttackersByColor returns a bitboard of pieces of the given color attacking a square.
func (p Position) AttackersByColor(sq Square, c Color) Bitboard {
	occupied := p.occupancy()
	return (pawnAttacks[c.Other()][sq] & p.pieces[c][Pawn]) |
		(knightAttacks[sq] & p.pieces[c][Knight]) |
		(kingAttacks[sq] & p.pieces[c][King]) |
		(BishopAttacks(sq, occupied) & (p.pieces[c][Bishop] | p.pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (p.pieces[c][Rook] | p.pieces[c][Queen]))
}

// IsSquareAttacked returns true if the square is attacked by the given color.
func (p Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor) != 0
}
