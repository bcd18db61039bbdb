// Package console implements an interactive line protocol over the rules
// engine, in the spirit of an engine debug console.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/chessmoves/internal/board"
	"github.com/hailam/chessmoves/internal/perft"
)

// Console reads commands line by line and writes replies.
//
// Commands:
//
//	position startpos|fen <fen> [moves <move>...]
//	moves [uci|san|long]
//	move <move>
//	undo
//	fen
//	hash
//	d
//	perft <depth>
//	divide <depth>
//	quit
//
// A rejected command prints an "error:" line and leaves the state unchanged.
type Console struct {
	out      io.Writer
	position board.Position
	history  []board.Position
	perft    perft.Options
	log      zerolog.Logger
}

// New creates a console on the start position.
func New(out io.Writer, po perft.Options) *Console {
	return &Console{
		out:      out,
		position: board.NewPosition(),
		perft:    po,
		log:      po.Logger,
	}
}

// Position returns the current position.
func (c *Console) Position() board.Position {
	return c.position
}

// Run processes commands from in until "quit", end of input or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "position":
			err = c.handlePosition(args)
		case "moves":
			err = c.handleMoves(args)
		case "move":
			err = c.handleMove(args)
		case "undo":
			err = c.handleUndo()
		case "fen":
			fmt.Fprintln(c.out, c.position.FEN())
		case "hash":
			fmt.Fprintf(c.out, "%016x\n", c.position.PolyglotHash())
		case "d":
			fmt.Fprint(c.out, c.position.String())
		case "perft":
			err = c.handlePerft(ctx, args, false)
		case "divide":
			err = c.handlePerft(ctx, args, true)
		case "quit":
			return nil
		default:
			err = fmt.Errorf("unknown command %q", cmd)
		}
		if err != nil {
			c.log.Debug().Err(err).Str("line", line).Msg("command rejected")
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (c *Console) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("position: missing startpos or fen")
	}

	fenEnd, moveStart := len(args), len(args)
	for i, arg := range args {
		if arg == "moves" {
			fenEnd, moveStart = i, i+1
			break
		}
	}

	var pos board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		var err error
		if pos, err = board.ParseFEN(strings.Join(args[1:fenEnd], " ")); err != nil {
			return err
		}
	default:
		return fmt.Errorf("position: unknown argument %q", args[0])
	}

	var history []board.Position
	for _, text := range args[moveStart:] {
		s, err := pos.Resolve(text)
		if err != nil {
			return err
		}
		history = append(history, pos)
		pos = s.Position
	}

	c.position, c.history = pos, history
	return nil
}

func (c *Console) handleMoves(args []string) error {
	n := board.SAN
	if len(args) > 0 {
		var err error
		if n, err = board.ParseNotation(args[0]); err != nil {
			return err
		}
	}

	ms := board.Generate(c.position, n)
	for _, m := range ms.Keys() {
		fmt.Fprintf(c.out, "%s %s\n", m, ms[m].FEN())
	}
	fmt.Fprintf(c.out, "%d moves\n", len(ms))
	return nil
}

func (c *Console) handleMove(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("move: missing move")
	}
	s, err := c.position.Resolve(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s %s\n", c.position.SAN(s.Move), s.Position.FEN())
	c.history = append(c.history, c.position)
	c.position = s.Position
	return nil
}

func (c *Console) handleUndo() error {
	if len(c.history) == 0 {
		return fmt.Errorf("undo: no move to take back")
	}
	c.position = c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	fmt.Fprintln(c.out, c.position.FEN())
	return nil
}

func (c *Console) handlePerft(ctx context.Context, args []string, divide bool) error {
	depth := 1
	if len(args) > 0 {
		var err error
		if depth, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("perft: bad depth %q", args[0])
		}
	}

	res, err := perft.Run(ctx, c.position, depth, c.perft)
	if err != nil {
		return err
	}

	if divide {
		for _, m := range res.Moves() {
			fmt.Fprintf(c.out, "%s: %d\n", m, res.Divide[m])
		}
		fmt.Fprintln(c.out)
	}
	fmt.Fprintf(c.out, "Nodes: %d\n", res.Nodes)
	fmt.Fprintf(c.out, "Time: %v\n", res.Elapsed)
	if secs := res.Elapsed.Seconds(); secs > 0 && !res.Cached {
		fmt.Fprintf(c.out, "NPS: %.0f\n", float64(res.Nodes)/secs)
	}
	return nil
}
