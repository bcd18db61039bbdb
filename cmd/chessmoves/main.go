// Command chessmoves reads chess positions from stdin, one per line, and
// prints their legal moves, hashes, normalised FEN or perft counts.
//
// Usage:
//
//	chessmoves [-mode moves|move|hash|position|perft|shell] [-notation san|uci|long] [-depth n] < input
//
// In move mode each line is "<fen>;<move>". A bad line prints an "error"
// line and processing continues with the next one.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hailam/chessmoves/internal/board"
	"github.com/hailam/chessmoves/internal/chessmoves"
	"github.com/hailam/chessmoves/internal/console"
	"github.com/hailam/chessmoves/internal/logx"
	"github.com/hailam/chessmoves/internal/perft"
	"github.com/hailam/chessmoves/internal/storage"
)

type config struct {
	mode       string
	notation   string
	depth      int
	workers    int
	cacheDir   string
	noCache    bool
	logLevel   string
	cpuprofile string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("chessmoves", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.mode, "mode", "moves", "moves, move, hash, position, perft or shell")
	fs.StringVar(&cfg.notation, "notation", "san", "move notation: san, uci or long")
	fs.IntVar(&cfg.depth, "depth", 1, "perft depth")
	fs.IntVar(&cfg.workers, "workers", 0, "perft workers (0 = number of CPUs)")
	fs.StringVar(&cfg.cacheDir, "cache", "", "perft cache directory (default $CHESSMOVES_CACHE or the user data dir)")
	fs.BoolVar(&cfg.noCache, "nocache", false, "disable the perft cache")
	fs.StringVar(&cfg.logLevel, "log", "warn", "log level")
	fs.StringVar(&cfg.cpuprofile, "cpuprofile", "", "write cpu profile to file")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.cacheDir == "" {
		cfg.cacheDir = os.Getenv("CHESSMOVES_CACHE")
	}
	if cfg.cpuprofile == "" {
		cfg.cpuprofile = os.Getenv("CPUPROFILE")
	}
	if _, err := board.ParseNotation(cfg.notation); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "chessmoves:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	log, err := logx.NewLogger(stderr, cfg.logLevel)
	if err != nil {
		return err
	}

	// Start CPU profiling if requested (via flag or environment variable)
	if cfg.cpuprofile != "" {
		f, err := os.Create(cfg.cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", cfg.cpuprofile).Msg("CPU profiling enabled")
	}

	log.Info().Str("mode", cfg.mode).Str("notation", cfg.notation).Int("depth", cfg.depth).Msg("starting")

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	switch cfg.mode {
	case "moves", "move", "hash", "position":
		return eachLine(stdin, func(line string) {
			handleLine(out, cfg, line)
		})
	case "perft", "shell":
		po := perft.Options{Workers: cfg.workers, Logger: log}
		if !cfg.noCache {
			cache, err := storage.Open(storage.Options{Dir: cfg.cacheDir, Logger: log})
			if err != nil {
				log.Warn().Err(err).Msg("perft cache unavailable")
			} else {
				defer cache.Close()
				po.Cache = cache
			}
		}
		if cfg.mode == "shell" {
			out.Flush()
			return console.New(stdout, po).Run(ctx, stdin)
		}
		return eachLine(stdin, func(line string) {
			handlePerft(ctx, out, po, cfg.depth, line)
		})
	default:
		return fmt.Errorf("unknown mode %q", cfg.mode)
	}
}

// eachLine calls fn for every non-empty input line.
func eachLine(in io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(line)
	}
	return scanner.Err()
}

func handleLine(out io.Writer, cfg config, line string) {
	switch cfg.mode {
	case "moves":
		fen, err := chessmoves.Position(line)
		if err != nil {
			fmt.Fprintf(out, "error,%v\n", err)
			return
		}
		moves, err := chessmoves.Moves(fen, cfg.notation)
		if err != nil {
			fmt.Fprintf(out, "error,%v\n", err)
			return
		}
		fmt.Fprintf(out, "fen,%s\n", fen)
		keys := maps.Keys(moves)
		slices.Sort(keys)
		for _, m := range keys {
			fmt.Fprintf(out, "move,%s,%s\n", m, moves[m])
		}
		fmt.Fprintln(out, "end")

	case "move":
		fen, text, ok := strings.Cut(line, ";")
		if !ok {
			fmt.Fprintf(out, "error,missing ';' between position and move\n")
			return
		}
		move, next, err := chessmoves.Move(fen, strings.TrimSpace(text), cfg.notation)
		if err != nil {
			fmt.Fprintf(out, "error,%v\n", err)
			return
		}
		fmt.Fprintf(out, "%s,%s\n", move, next)

	case "hash":
		h, err := chessmoves.Hash(line)
		if err != nil {
			fmt.Fprintf(out, "error,%v\n", err)
			return
		}
		fmt.Fprintf(out, "%016x\n", h)

	case "position":
		fen, err := chessmoves.Position(line)
		if err != nil {
			fmt.Fprintf(out, "error,%v\n", err)
			return
		}
		fmt.Fprintln(out, fen)
	}
}

func handlePerft(ctx context.Context, out io.Writer, po perft.Options, depth int, line string) {
	fen, err := chessmoves.Position(line)
	if err != nil {
		fmt.Fprintf(out, "error,%v\n", err)
		return
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		fmt.Fprintf(out, "error,%v\n", err)
		return
	}
	res, err := perft.Run(ctx, pos, depth, po)
	if err != nil {
		fmt.Fprintf(out, "error,%v\n", err)
		return
	}
	po.Logger.Info().Str("fen", fen).Int("depth", depth).Int64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).Bool("cached", res.Cached).Msg("perft")
	fmt.Fprintln(out, res.Nodes)
}
