package board

import (
	"errors"
	"testing"
)

// resolveFEN has a pinned knight, two en passant style pawn captures on the
// d-file, a promotion square and both castling rights.
const resolveFEN = "6k1/1P6/8/b1PpP3/4PN2/2N5/8/R3K2R w KQ d6 0 1"

func TestResolve(t *testing.T) {
	tests := []struct {
		text    string
		want    string // UCI of the resolved move
		wantErr error
	}{
		{"Ke2", "e1e2", nil},
		{"Ke", "e1e2", nil},
		{"cd", "c5d6", nil},
		{"exd5", "e4d5", nil},
		{"exd6", "e5d6", nil},
		{"RxB", "a1a5", nil},
		{"xB", "a1a5", nil},
		{"NxP", "f4d5", nil},
		{"Nxd5", "f4d5", nil},
		{"Nf4xd5", "f4d5", nil},
		{"Nf4-d5", "f4d5", nil},
		{"f4d5", "f4d5", nil},
		{"e4:d5", "e4d5", nil},
		{"  Ke2+  ", "e1e2", nil},
		{"Ke2!?", "e1e2", nil},
		{"cxd", "c5d6", nil},
		{"b8=Q", "b7b8q", nil},
		{"b8", "b7b8q", nil},
		{"b7b8", "b7b8q", nil},
		{"b8=N", "b7b8n", nil},
		{"b8=R", "b7b8r", nil},
		{"b8=B", "b7b8b", nil},
		{"b8N", "b7b8n", nil},
		{"b7b8q", "b7b8q", nil},
		{"b7b8r", "b7b8r", nil},
		{"b7b8b", "b7b8b", nil},
		{"b7b8n", "b7b8n", nil},
		{"O-O", "e1g1", nil},
		{"O-O-O", "e1c1", nil},
		{"O-O+", "e1g1", nil},

		{"exd", "", ErrAmbiguousMove},
		{"Nc3e2", "", ErrIllegalMove},
		{"Nb5", "", ErrIllegalMove},
		{"Kf2xB", "", ErrIllegalMove},
		{"e8", "", ErrIllegalMove},
		{"Qd1", "", ErrIllegalMove},

		{"", "", ErrSyntax},
		{"   ", "", ErrSyntax},
		{"foo", "", ErrSyntax},
		{"NP", "", ErrSyntax},
		{"123", "", ErrSyntax},
		{"abc", "", ErrSyntax},
		{"Ae2", "", ErrSyntax},
		{"b", "", ErrSyntax},
		{"78", "", ErrSyntax},
		{"8", "", ErrSyntax},
		{"7b", "", ErrSyntax},
		{"b8=A", "", ErrSyntax},
		{"b8=K", "", ErrSyntax},
		{"bKe", "", ErrSyntax},
		{"e4+x", "", ErrSyntax},
		{"OO", "", ErrSyntax},
		{"OOO", "", ErrSyntax},
		{"o-o", "", ErrSyntax},
		{"o-o-o", "", ErrSyntax},
		{"oo", "", ErrSyntax},
		{"ooo", "", ErrSyntax},
		{"0-0", "", ErrSyntax},
		{"0-0-0", "", ErrSyntax},
		{"00", "", ErrSyntax},
		{"000", "", ErrSyntax},
		{"O-O-0", "", ErrSyntax},
		{"o-o-o-o", "", ErrSyntax},
		{"o-oo", "", ErrSyntax},
		{"oo-o", "", ErrSyntax},
		{"O-O-", "", ErrSyntax},
		{"o", "", ErrSyntax},
		{"0", "", ErrSyntax},
		{"O", "", ErrSyntax},
		{"O--O", "", ErrSyntax},
	}

	pos := mustParseFEN(t, resolveFEN)
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			s, err := pos.Resolve(tc.text)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tc.text, err, tc.wantErr)
				}
				var me *MoveError
				if !errors.As(err, &me) || me.Text != tc.text {
					t.Errorf("error %v is not a *MoveError carrying %q", err, tc.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tc.text, err)
			}
			if got := s.Move.String(); got != tc.want {
				t.Errorf("Resolve(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestResolvePawnOutranksPiece(t *testing.T) {
	// Both the b2 pawn and the b1 knight can reach c3; "bxc3" must mean the pawn.
	pos := mustParseFEN(t, "4k3/8/8/8/8/2p5/1P6/1N2K3 w - - 0 1")
	s, err := pos.Resolve("bxc3")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := s.Move.String(); got != "b2c3" {
		t.Errorf("Resolve(bxc3) = %s, want b2c3", got)
	}
}

func TestResolveAmbiguousPieces(t *testing.T) {
	pos := mustParseFEN(t, "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1")
	if _, err := pos.Resolve("Nd2"); !errors.Is(err, ErrAmbiguousMove) {
		t.Errorf("Resolve(Nd2) error = %v, want %v", err, ErrAmbiguousMove)
	}
	for _, text := range []string{"Nbd2", "Nfd2", "Nb1d2"} {
		if _, err := pos.Resolve(text); err != nil {
			t.Errorf("Resolve(%q): %v", text, err)
		}
	}
}

func TestResolveAcceptsEveryEncoding(t *testing.T) {
	for _, fen := range []string{StartFEN, kiwipeteFEN, position4FEN, position5FEN, resolveFEN} {
		pos := mustParseFEN(t, fen)
		for _, n := range []Notation{UCI, SAN, Long} {
			for text, want := range Generate(pos, n) {
				s, err := pos.Resolve(text)
				if err != nil {
					t.Errorf("%s: Resolve(%q): %v", fen, text, err)
					continue
				}
				if s.Position != want {
					t.Errorf("%s: Resolve(%q) reached a different position", fen, text)
				}
			}
		}
	}
}
