package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a six-field FEN string and returns a Position.
// The returned error is a *PositionError wrapping ErrMalformedPosition.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return Position{}, malformed(fen, "need 6 fields, got %d", len(parts))
	}

	pos := Position{epSquare: NoSquare}

	if err := parsePiecePlacement(&pos, fen, parts[0]); err != nil {
		return Position{}, err
	}

	switch parts[1] {
	case "w":
		pos.side = White
	case "b":
		pos.side = Black
	default:
		return Position{}, malformed(fen, "invalid side to move %q", parts[1])
	}

	cr, err := parseCastlingRights(fen, parts[2])
	if err != nil {
		return Position{}, err
	}
	pos.castling = cr

	if parts[3] != "-" {
		sq, ok := ParseSquare(parts[3])
		if !ok {
			return Position{}, malformed(fen, "invalid en passant square %q", parts[3])
		}
		pos.epSquare = sq
	}

	hmc, err := strconv.Atoi(parts[4])
	if err != nil || hmc < 0 {
		return Position{}, malformed(fen, "invalid half-move clock %q", parts[4])
	}
	pos.halfMove = hmc

	fmn, err := strconv.Atoi(parts[5])
	if err != nil || fmn < 1 {
		return Position{}, malformed(fen, "invalid full-move number %q", parts[5])
	}
	pos.fullMove = fmn

	if err := pos.validate(fen); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// parsePiecePlacement parses the piece placement field of a FEN string.
func parsePiecePlacement(pos *Position, fen, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return malformed(fen, "need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0
		lastDigit := false

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				if lastDigit {
					return malformed(fen, "adjacent digits in rank %d", rank+1)
				}
				file += int(c - '0')
				lastDigit = true
			} else {
				piece := PieceFromChar(c)
				if piece == NoPiece {
					return malformed(fen, "invalid piece character %q", c)
				}
				if file > 7 {
					return malformed(fen, "too many squares in rank %d", rank+1)
				}
				pos.setPiece(piece, NewSquare(file, rank))
				file++
				lastDigit = false
			}
			if file > 8 {
				return malformed(fen, "too many squares in rank %d", rank+1)
			}
		}

		if file != 8 {
			return malformed(fen, "rank %d has %d squares", rank+1, file)
		}
	}
	return nil
}

// parseCastlingRights parses the castling field. Flags may appear in any
// order but not twice.
func parseCastlingRights(fen, field string) (CastlingRights, error) {
	if field == "-" {
		return NoCastling, nil
	}

	var cr CastlingRights
	for i := 0; i < len(field); i++ {
		idx := strings.IndexByte(castlingChars, field[i])
		if idx < 0 {
			return NoCastling, malformed(fen, "invalid castling character %q", field[i])
		}
		flag := CastlingRights(1 << idx)
		if cr&flag != 0 {
			return NoCastling, malformed(fen, "duplicate castling character %q", field[i])
		}
		cr |= flag
	}
	return cr, nil
}

// FEN returns the FEN representation of the position.
// The en passant field names a square only when a legal capture onto it
// exists, so equal positions always print the same string.
func (p Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())

	sb.WriteByte(' ')
	if p.EnPassantAvailable() {
		sb.WriteString(p.epSquare.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMove))

	return sb.String()
}
