package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// castlingChars lists the FEN flag characters in bit order.
const castlingChars = "KQkq"

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		if cr&(1<<i) != 0 {
			sb.WriteByte(castlingChars[i])
		}
	}
	return sb.String()
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castlingFlag(c, kingSide) != 0
}

func castlingFlag(c Color, kingSide bool) CastlingRights {
	flag := WhiteKingSideCastle
	if !kingSide {
		flag = WhiteQueenSideCastle
	}
	if c == Black {
		flag <<= 2
	}
	return flag
}

// castlingHome holds the king and rook home squares behind each flag.
var castlingHome = [4]struct{ king, rook Square }{
	{E1, H1}, {E1, A1}, {E8, H8}, {E8, A8},
}

// castlingClear maps a square to the flags lost when a move starts or ends on it.
var castlingClear [64]CastlingRights

func init() {
	for i, home := range castlingHome {
		castlingClear[home.king] |= 1 << i
		castlingClear[home.rook] |= 1 << i
	}
}

// Position represents a complete chess position.
//
// A Position is an immutable value: it is never modified after construction,
// and every legal move yields a new Position. Two positions are equal (==)
// exactly when all board and state fields agree.
type Position struct {
	pieces   [2][6]Bitboard // [Color][PieceType]
	occupied [2]Bitboard    // all pieces of each color

	side     Color
	castling CastlingRights
	epSquare Square // target square for en passant, NoSquare if none
	halfMove int    // plies since last pawn move or capture
	fullMove int    // starts at 1, incremented after Black moves
}

// NewPosition returns the starting position.
func NewPosition() Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// SideToMove returns the color to move.
func (p Position) SideToMove() Color {
	return p.side
}

// CastlingRights returns the castling flags.
func (p Position) CastlingRights() CastlingRights {
	return p.castling
}

// EnPassant returns the en passant target square as stored, or NoSquare.
// Use EnPassantAvailable to learn whether a capture is actually possible.
func (p Position) EnPassant() Square {
	return p.epSquare
}

// HalfMoveClock returns the number of plies since the last pawn move or capture.
func (p Position) HalfMoveClock() int {
	return p.halfMove
}

// FullMoveNumber returns the full move counter.
func (p Position) FullMoveNumber() int {
	return p.fullMove
}

// Pieces returns the bitboard of the given color and piece type.
func (p Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.pieces[c][pt]
}

// Occupied returns the bitboard of all pieces of the given color.
func (p Position) Occupied(c Color) Bitboard {
	return p.occupied[c]
}

func (p Position) occupancy() Bitboard {
	return p.occupied[White] | p.occupied[Black]
}

// KingSquare returns the square of the king of the given color.
func (p Position) KingSquare(c Color) Square {
	return p.pieces[c][King].LSB()
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.occupancy()&bb == 0 {
		return NoPiece
	}

	c := White
	if p.occupied[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (p Position) IsEmpty(sq Square) bool {
	return p.occupancy()&SquareBB(sq) == 0
}

// InCheck returns true if the side to move is in check.
func (p Position) InCheck() bool {
	return p.IsSquareAttacked(p.KingSquare(p.side), p.side.Other())
}

// IsCheckmate returns true if the side to move is in check and has no legal move.
func (p Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check and has no legal move.
func (p Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// setPiece places a piece on an empty square.
func (p *Position) setPiece(piece Piece, sq Square) {
	c, pt := piece.Color(), piece.Type()
	bb := SquareBB(sq)
	p.pieces[c][pt] |= bb
	p.occupied[c] |= bb
}

// removePiece clears a square and returns what stood on it.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}
	bb := SquareBB(sq)
	p.pieces[piece.Color()][piece.Type()] &^= bb
	p.occupied[piece.Color()] &^= bb
	return piece
}

// movePiece moves a piece from one square to an empty square.
func (p *Position) movePiece(from, to Square) {
	piece := p.removePiece(from)
	if piece != NoPiece {
		p.setPiece(piece, to)
	}
}

// validate checks the invariants every Position must satisfy.
func (p Position) validate(fen string) error {
	if p.pieces[White][King].PopCount() != 1 {
		return malformed(fen, "white must have exactly one king")
	}
	if p.pieces[Black][King].PopCount() != 1 {
		return malformed(fen, "black must have exactly one king")
	}
	if (p.pieces[White][Pawn]|p.pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return malformed(fen, "pawns cannot be on rank 1 or 8")
	}
	for c := White; c <= Black; c++ {
		if err := p.validateMaterial(fen, c); err != nil {
			return err
		}
	}

	for i, home := range castlingHome {
		if p.castling&(1<<i) == 0 {
			continue
		}
		c := White
		if i >= 2 {
			c = Black
		}
		if p.PieceAt(home.king) != NewPiece(King, c) || p.PieceAt(home.rook) != NewPiece(Rook, c) {
			return malformed(fen, "castling flag %c without king and rook on their home squares", castlingChars[i])
		}
	}

	if p.epSquare != NoSquare {
		// The pawn that just moved belongs to the side not to move.
		them := p.side.Other()
		wantRank := 5
		if them == White {
			wantRank = 2
		}
		if p.epSquare.Rank() != wantRank {
			return malformed(fen, "en passant square %s on the wrong rank", p.epSquare)
		}
		forward := 8
		if them == Black {
			forward = -8
		}
		pawnSq := Square(int(p.epSquare) + forward)
		originSq := Square(int(p.epSquare) - forward)
		if p.PieceAt(pawnSq) != NewPiece(Pawn, them) {
			return malformed(fen, "en passant square %s without a pawn on %s", p.epSquare, pawnSq)
		}
		if !p.IsEmpty(p.epSquare) || !p.IsEmpty(originSq) {
			return malformed(fen, "en passant square %s with occupied path", p.epSquare)
		}
	}

	if p.IsSquareAttacked(p.KingSquare(p.side.Other()), p.side) {
		return malformed(fen, "side not to move is in check")
	}
	return nil
}

// validateMaterial checks that one side's army could arise from the
// starting set: at most 16 pieces and 8 pawns, and no more promoted pieces
// than missing pawns.
func (p Position) validateMaterial(fen string, c Color) error {
	if n := p.Occupied(c).PopCount(); n > 16 {
		return malformed(fen, "%s has %d pieces", c, n)
	}
	pawns := p.pieces[c][Pawn].PopCount()
	if pawns > 8 {
		return malformed(fen, "%s has %d pawns", c, pawns)
	}

	promoted := 0
	for pt, initial := range map[PieceType]int{Knight: 2, Bishop: 2, Rook: 2, Queen: 1} {
		if n := p.pieces[c][pt].PopCount(); n > initial {
			promoted += n - initial
		}
	}
	if promoted > 8-pawns {
		return malformed(fen, "%s has %d promoted pieces but only %d missing pawns", c, promoted, 8-pawns)
	}
	return nil
}

// String returns a visual representation of the position.
func (p Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.side)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castling)
	fmt.Fprintf(&sb, "En passant: %s\n", p.epSquare)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.halfMove)
	fmt.Fprintf(&sb, "Full move: %d\n", p.fullMove)
	fmt.Fprintf(&sb, "Polyglot hash: %016x\n", p.PolyglotHash())
	return sb.String()
}
