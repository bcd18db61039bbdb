package perft

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/hailam/chessmoves/internal/board"
	"github.com/hailam/chessmoves/internal/storage"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		nodes int64
	}{
		{"start", board.StartFEN, 3, 8902},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
		{"position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := board.ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			res, err := Run(context.Background(), pos, tc.depth, Options{Workers: 4, Logger: zerolog.Nop()})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.Nodes != tc.nodes {
				t.Errorf("Run(%d).Nodes = %d, want %d", tc.depth, res.Nodes, tc.nodes)
			}
			if got := Count(pos, tc.depth); got != tc.nodes {
				t.Errorf("Count(%d) = %d, want %d", tc.depth, got, tc.nodes)
			}
			var sum int64
			for _, n := range res.Divide {
				sum += n
			}
			if sum != res.Nodes {
				t.Errorf("divide sums to %d, want %d", sum, res.Nodes)
			}
		})
	}
}

func TestRunDivide(t *testing.T) {
	res, err := Run(context.Background(), board.NewPosition(), 2, Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	moves := res.Moves()
	if len(moves) != 20 || moves[0] != "a2a3" || moves[19] != "h2h4" {
		t.Errorf("Moves() = %v", moves)
	}
	for _, m := range moves {
		if res.Divide[m] != 20 {
			t.Errorf("divide[%s] = %d, want 20", m, res.Divide[m])
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, board.NewPosition(), 5, Options{Logger: zerolog.Nop()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestRunBadDepth(t *testing.T) {
	if _, err := Run(context.Background(), board.NewPosition(), 0, Options{}); err == nil {
		t.Error("Run accepted depth 0")
	}
}

func TestRunUsesCache(t *testing.T) {
	cache, err := storage.Open(storage.Options{InMemory: true, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer cache.Close()

	pos := board.NewPosition()
	o := Options{Cache: cache, Logger: zerolog.Nop()}

	first, err := Run(context.Background(), pos, 3, o)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if first.Cached {
		t.Error("first run reported a cache hit")
	}

	second, err := Run(context.Background(), pos, 3, o)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !second.Cached {
		t.Error("second run missed the cache")
	}
	if diff := cmp.Diff(first.Divide, second.Divide); diff != "" {
		t.Errorf("cached divide mismatch (-first +second):\n%s", diff)
	}
	if second.Nodes != 8902 {
		t.Errorf("cached nodes = %d, want 8902", second.Nodes)
	}
}

// fixedCache answers every lookup with the same record.
type fixedCache struct {
	rec  storage.Record
	puts []storage.Record
}

func (c *fixedCache) Get(uint64, int) (storage.Record, bool, error) {
	return c.rec, true, nil
}

func (c *fixedCache) Put(_ uint64, rec storage.Record) error {
	c.puts = append(c.puts, rec)
	return nil
}

func TestRunIgnoresRecordForOtherDepth(t *testing.T) {
	pos := board.NewPosition()
	cache := &fixedCache{rec: storage.Record{FEN: pos.FEN(), Depth: 1, Nodes: 20}}

	res, err := Run(context.Background(), pos, 2, Options{Cache: cache, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Cached {
		t.Error("depth 2 was served the depth 1 record")
	}
	if res.Nodes != 400 {
		t.Errorf("Nodes = %d, want 400", res.Nodes)
	}
	if len(cache.puts) != 1 || cache.puts[0].Depth != 2 {
		t.Errorf("stored %+v, want one depth 2 record", cache.puts)
	}
}
