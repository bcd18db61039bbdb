// Package perft counts the leaf nodes of the legal move tree, the standard
// check of a move generator.
package perft

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessmoves/internal/board"
	"github.com/hailam/chessmoves/internal/storage"
)

// Cache stores finished results. *storage.Cache implements it.
type Cache interface {
	Get(hash uint64, depth int) (storage.Record, bool, error)
	Put(hash uint64, rec storage.Record) error
}

// Options configures Run.
type Options struct {
	// Workers bounds the number of subtrees searched at once.
	// Zero means runtime.NumCPU().
	Workers int
	// Cache is optional.
	Cache  Cache
	Logger zerolog.Logger
}

// Result is the outcome of a perft run.
type Result struct {
	Depth int
	Nodes int64
	// Divide holds the node count below each root move, keyed by UCI.
	Divide  map[string]int64
	Elapsed time.Duration
	Cached  bool
}

// Moves returns the root moves in lexical order.
func (r Result) Moves() []string {
	keys := maps.Keys(r.Divide)
	slices.Sort(keys)
	return keys
}

// Count returns the number of leaf nodes depth plies below p.
func Count(p board.Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	succ := p.Successors()
	if depth == 1 {
		return int64(len(succ))
	}
	var nodes int64
	for _, s := range succ {
		nodes += Count(s.Position, depth-1)
	}
	return nodes
}

// Run counts the nodes depth plies below p, searching root moves in
// parallel. It stops early with ctx.Err() when ctx is cancelled.
func Run(ctx context.Context, p board.Position, depth int, o Options) (Result, error) {
	if depth < 1 {
		return Result{}, fmt.Errorf("perft depth %d: must be at least 1", depth)
	}
	start := time.Now()
	hash := p.PolyglotHash()

	if o.Cache != nil {
		rec, ok, err := o.Cache.Get(hash, depth)
		if err != nil {
			o.Logger.Warn().Err(err).Msg("perft cache read failed")
		} else if ok && rec.Depth == depth && sameBoard(rec.FEN, p.FEN()) {
			return Result{Depth: depth, Nodes: rec.Nodes, Divide: rec.Divide, Elapsed: time.Since(start), Cached: true}, nil
		}
	}

	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	succ := p.Successors()
	divide := make(map[string]int64, len(succ))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, s := range succ {
		s := s
		g.Go(func() error {
			nodes, err := count(ctx, s.Position, depth-1)
			if err != nil {
				return err
			}
			mu.Lock()
			divide[s.Move.String()] = nodes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total int64
	for _, n := range divide {
		total += n
	}
	res := Result{Depth: depth, Nodes: total, Divide: divide, Elapsed: time.Since(start)}

	o.Logger.Debug().Int("depth", depth).Int64("nodes", total).Dur("elapsed", res.Elapsed).Msg("perft finished")

	if o.Cache != nil {
		rec := storage.Record{FEN: p.FEN(), Depth: depth, Nodes: total, Divide: divide}
		if err := o.Cache.Put(hash, rec); err != nil {
			o.Logger.Warn().Err(err).Msg("perft cache write failed")
		}
	}
	return res, nil
}

// count is Count with cancellation checks above the last two plies.
func count(ctx context.Context, p board.Position, depth int) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if depth <= 2 {
		return Count(p, depth), nil
	}
	var nodes int64
	for _, s := range p.Successors() {
		n, err := count(ctx, s.Position, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// sameBoard compares two FEN strings ignoring the move counters.
func sameBoard(a, b string) bool {
	fa, fb := strings.Fields(a), strings.Fields(b)
	return len(fa) >= 4 && len(fb) >= 4 && slices.Equal(fa[:4], fb[:4])
}
