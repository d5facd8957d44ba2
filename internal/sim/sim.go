// apps/go-solver/internal/sim/sim.go
//
// Self-play for the solver.
// Responsibilities:
//   - Play one game against a known answer, using game.Compute as the oracle
//     and the solver for every guess.
//   - Benchmark the solver over many answers in parallel.
//
// Notes:
//   - The candidate pool shrinks turn by turn; each turn filters the previous
//     pool into a new slice.
//   - The opening guess only depends on the dictionary and blocked set, so
//     Bench scores it once and reuses it for every game.
package sim

import (
	"context"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// DefaultMaxTurns is the classic six-row board.
const DefaultMaxTurns = 6

// Turn is one played guess.
type Turn struct {
	Guess    game.Word
	Mask     game.Mask
	PoolSize int // candidates left before this guess
}

// Game is the record of one simulated game.
type Game struct {
	Answer game.Word
	Turns  []Turn
	Solved bool
}

// History converts the played turns into a game.History.
func (g Game) History() game.History {
	h := make(game.History, len(g.Turns))
	for i, t := range g.Turns {
		h[i] = game.Guess{Word: t.Guess, Mask: t.Mask}
	}
	return h
}

// Player plays games with a fixed dictionary and blocked set.
type Player struct {
	Selector *solver.Selector
	Dict     []game.Word
	Blocked  *solver.BlockedSet
	MaxTurns int            // <= 0 means DefaultMaxTurns
	Opener   *solver.Result // precomputed first guess; nil scores it per game
}

func (p *Player) maxTurns() int {
	if p.MaxTurns <= 0 {
		return DefaultMaxTurns
	}
	return p.MaxTurns
}

// Play runs one game against answer. It stops when the answer is guessed or
// the turn limit is reached. An answer outside the dictionary ends with
// solver.ErrEmptyPool once every candidate is ruled out.
func (p *Player) Play(ctx context.Context, answer game.Word) (Game, error) {
	g := Game{Answer: answer}
	pool := p.Dict
	for len(g.Turns) < p.maxTurns() {
		var (
			res solver.Result
			err error
		)
		if len(g.Turns) == 0 && p.Opener != nil {
			res = *p.Opener
		} else {
			res, err = p.Selector.Select(ctx, pool, p.Dict, p.Blocked)
			if err != nil {
				return g, err
			}
		}

		m := game.Compute(answer, res.Word)
		g.Turns = append(g.Turns, Turn{Guess: res.Word, Mask: m, PoolSize: len(pool)})
		if m.Solved() {
			g.Solved = true
			return g, nil
		}
		pool = solver.Filter(pool, game.History{{Word: res.Word, Mask: m}})
	}
	return g, nil
}

// Summary aggregates a benchmark run.
type Summary struct {
	Games     int
	Solved    int
	Turns     int         // total turns over solved games
	Histogram map[int]int // turns taken → solved games
	Failed    []game.Word // unsolved answers, in input order
}

// MeanTurns is the average number of turns over solved games.
func (s Summary) MeanTurns() float64 {
	if s.Solved == 0 {
		return 0
	}
	return float64(s.Turns) / float64(s.Solved)
}

// Bench plays every answer, running up to workers games at once. Progress is
// drawn to progress when it is non-nil.
func (p *Player) Bench(ctx context.Context, answers []game.Word, workers int, progress io.Writer) (Summary, error) {
	sum := Summary{Histogram: make(map[int]int)}
	if len(answers) == 0 {
		return sum, nil
	}

	player := *p
	if player.Opener == nil {
		first, err := p.Selector.Select(ctx, p.Dict, p.Dict, p.Blocked)
		if err != nil {
			return sum, err
		}
		player.Opener = &first
	}

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(len(answers),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("simulating"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	games := make([]Game, len(answers))
	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, answer := range answers {
		g.Go(func() error {
			res, err := player.Play(gCtx, answer)
			if err != nil {
				return err
			}
			games[i] = res
			if bar != nil {
				mu.Lock()
				_ = bar.Add(1)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	for _, res := range games {
		sum.Games++
		if !res.Solved {
			sum.Failed = append(sum.Failed, res.Answer)
			continue
		}
		sum.Solved++
		sum.Turns += len(res.Turns)
		sum.Histogram[len(res.Turns)]++
	}
	return sum, nil
}
