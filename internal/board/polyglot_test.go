package board

import "testing"

func TestPolyglotHash(t *testing.T) {
	tests := []struct {
		fen  string
		want uint64
	}{
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 0x463b96181691fc9c},
		{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", 0x823c9b50fd114196},
		{"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", 0x0756b94461c50fb0},
		{"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2", 0x662fafb965db29d4},
		{"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", 0x22a48b5a8e47ff78},
		{"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPPKPPP/RNBQ1BNR b kq - 0 3", 0x652a607ca3f242c1},
		{"rnbq1bnr/ppp1pkpp/8/3pPp2/8/8/PPPPKPPP/RNBQ1BNR w - - 0 4", 0x00fdd303c946bdd9},
		{"rnbqkbnr/p1pppppp/8/8/PpP4P/8/1P1PPPP1/RNBQKBNR b KQkq c3 0 3", 0x3c8123ea7b067637},
		{"rnbqkbnr/p1pppppp/8/8/P6P/R1p5/1P1PPPP1/1NBQKBNR b Kkq - 0 4", 0x5c3f9b829b279560},
	}

	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			if got := pos.PolyglotHash(); got != tc.want {
				t.Errorf("PolyglotHash() = %#016x, want %#016x", got, tc.want)
			}
		})
	}
}

func TestPolyglotHashAfterMoves(t *testing.T) {
	pos := NewPosition()
	want := []uint64{0x823c9b50fd114196, 0x0756b94461c50fb0, 0x662fafb965db29d4, 0x22a48b5a8e47ff78}
	for i, uci := range []string{"e2e4", "d7d5", "e4e5", "f7f5"} {
		s, err := pos.Resolve(uci)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", uci, err)
		}
		pos = s.Position
		if got := pos.PolyglotHash(); got != want[i] {
			t.Errorf("after %s: PolyglotHash() = %#016x, want %#016x", uci, got, want[i])
		}
	}
}

func TestPolyglotHashIgnoresClocksAndStaleEnPassant(t *testing.T) {
	base := mustParseFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	for _, fen := range []string{
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 12 30",
	} {
		if got, want := mustParseFEN(t, fen).PolyglotHash(), base.PolyglotHash(); got != want {
			t.Errorf("PolyglotHash(%q) = %#016x, want %#016x", fen, got, want)
		}
	}
}

func TestPolyglotHashEnPassantSensitivity(t *testing.T) {
	with := mustParseFEN(t, "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	without := mustParseFEN(t, "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3")
	if with.PolyglotHash() == without.PolyglotHash() {
		t.Error("available en passant capture does not change the hash")
	}
}
