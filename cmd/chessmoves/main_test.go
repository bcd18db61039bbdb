package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runTool(t *testing.T, input string, args ...string) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"-log", "disabled", "-nocache"}, args...)
	if err := run(context.Background(), args, strings.NewReader(input), &stdout, &stderr); err != nil {
		t.Fatalf("run(%v): %v\nstderr: %s", args, err, stderr.String())
	}
	return stdout.String()
}

func TestMovesMode(t *testing.T) {
	got := runTool(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3\n", "-mode", "moves")
	want := strings.Join([]string{
		"fen,8/8/8/8/k2Pp2R/8/8/4K3 b - - 0 1",
		"move,Ka3,8/8/8/8/3Pp2R/k7/8/4K3 w - - 1 2",
		"move,Ka5,8/8/8/k7/3Pp2R/8/8/4K3 w - - 1 2",
		"move,Kb3,8/8/8/8/3Pp2R/1k6/8/4K3 w - - 1 2",
		"move,Kb4,8/8/8/8/1k1Pp2R/8/8/4K3 w - - 1 2",
		"move,Kb5,8/8/8/1k6/3Pp2R/8/8/4K3 w - - 1 2",
		"move,e3,8/8/8/8/k2P3R/4p3/8/4K3 w - - 0 2",
		"end",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("moves output mismatch (-want +got):\n%s", diff)
	}
}

func TestLineModes(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{
			name:  "hash",
			args:  []string{"-mode", "hash"},
			input: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -\nnonsense\nrnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3\n",
			want:  "463b96181691fc9c\nerror,malformed position: need 6 fields, got 1 (\"nonsense\")\n823c9b50fd114196\n",
		},
		{
			name:  "move",
			args:  []string{"-mode", "move", "-notation", "uci"},
			input: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -;Nf3\nrnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -;O-O\n",
			want:  "g1f3,rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1\nerror,move \"O-O\": illegal move (O-O)\n",
		},
		{
			name:  "position",
			args:  []string{"-mode", "position"},
			input: "# comment\nrnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w qkKQ - 3\n",
			want:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 3 1\n",
		},
		{
			name:  "perft",
			args:  []string{"-mode", "perft", "-depth", "3"},
			input: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -\n8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -\n",
			want:  "8902\n2812\n",
		},
		{
			name:  "shell",
			args:  []string{"-mode", "shell"},
			input: "move e4\nhash\nquit\n",
			want:  "e4 rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1\n823c9b50fd114196\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := runTool(t, tc.input, tc.args...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	for _, args := range [][]string{
		{"-mode", "bogus"},
		{"-notation", "pgn"},
		{"-log", "loud"},
	} {
		if err := run(context.Background(), args, strings.NewReader(""), &stdout, &stderr); err == nil {
			t.Errorf("run(%v) succeeded", args)
		}
	}
}
