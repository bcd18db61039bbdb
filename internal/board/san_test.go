package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateStartKeys(t *testing.T) {
	pos := NewPosition()

	wantSAN := []string{
		"Na3", "Nc3", "Nf3", "Nh3",
		"a3", "a4", "b3", "b4", "c3", "c4", "d3", "d4",
		"e3", "e4", "f3", "f4", "g3", "g4", "h3", "h4",
	}
	if diff := cmp.Diff(wantSAN, Generate(pos, SAN).Keys()); diff != "" {
		t.Errorf("SAN keys mismatch (-want +got):\n%s", diff)
	}

	long := Generate(pos, Long).Keys()
	if len(long) != 20 || long[0] != "Nb1-a3" || long[len(long)-1] != "h2-h4" {
		t.Errorf("long keys = %v", long)
	}

	uci := Generate(pos, UCI)
	next, ok := uci["e2e4"]
	if !ok {
		t.Fatal("e2e4 missing from UCI move set")
	}
	if got, want := next.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"; got != want {
		t.Errorf("FEN after e2e4 = %q, want %q", got, want)
	}
}

func TestSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		uci  string
		san  string
		long string
	}{
		{"knight", StartFEN, "g1f3", "Nf3", "Ng1-f3"},
		{"file disambiguation", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "b1d2", "Nbd2", "Nb1-d2"},
		{"rank disambiguation", "4k3/8/8/8/R7/8/8/R3K3 w - - 0 1", "a1a3", "R1a3", "Ra1-a3"},
		{"square disambiguation", "8/7k/8/8/Q5Q1/8/8/Q3K3 w - - 0 1", "a4d1", "Qa4d1", "Qa4-d1"},
		{"pawn capture", resolveFEN, "e4d5", "exd5", "e4xd5"},
		{"en passant", resolveFEN, "e5d6", "exd6", "e5xd6"},
		{"promotion", resolveFEN, "b7b8q", "b8=Q+", "b7-b8=Q+"},
		{"under-promotion", resolveFEN, "b7b8n", "b8=N", "b7-b8=N"},
		{"castling", resolveFEN, "e1c1", "O-O-O", "O-O-O"},
		{"piece capture", resolveFEN, "a1a5", "Rxa5", "Ra1xa5"},
		{"mate", "6k1/5ppp/8/8/8/8/8/R3K3 w Q - 0 1", "a1a8", "Ra8#", "Ra1-a8#"},
		{"castling check", "5k2/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", "O-O+", "O-O+"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			var move Move
			for _, m := range pos.LegalMoves() {
				if m.String() == tc.uci {
					move = m
				}
			}
			if move == NoMove {
				t.Fatalf("%s is not legal", tc.uci)
			}
			if got := pos.SAN(move); got != tc.san {
				t.Errorf("SAN(%s) = %q, want %q", tc.uci, got, tc.san)
			}
			if got := pos.LongAlgebraic(move); got != tc.long {
				t.Errorf("LongAlgebraic(%s) = %q, want %q", tc.uci, got, tc.long)
			}
			if got := pos.Encode(move, UCI); got != tc.uci {
				t.Errorf("Encode(%s, UCI) = %q", tc.uci, got)
			}
			if _, ok := Generate(pos, SAN)[tc.san]; !ok {
				t.Errorf("Generate(SAN) lacks %q", tc.san)
			}
		})
	}
}

func TestParseNotation(t *testing.T) {
	for _, n := range []Notation{UCI, SAN, Long} {
		got, err := ParseNotation(n.String())
		if err != nil || got != n {
			t.Errorf("ParseNotation(%q) = %v, %v", n.String(), got, err)
		}
	}
	if got, err := ParseNotation("SAN"); err != nil || got != SAN {
		t.Errorf("ParseNotation(SAN) = %v, %v", got, err)
	}
	if _, err := ParseNotation("pgn"); err == nil {
		t.Error("ParseNotation(pgn) succeeded")
	}
}
