// apps/go-solver/internal/solver/selector.go
//
// Next-guess selection.
//
// Every admissible dictionary word g is scored by how it splits the candidate
// pool: each candidate answer a falls into the bucket EnumerateMask(Compute(a, g)),
// and the score is the Shannon entropy (in bits) of the bucket sizes. The
// highest score wins; ties go to the lowest dictionary index.
//
// Scoring is split into contiguous dictionary ranges, one errgroup goroutine
// per range. Each goroutine reads the shared pool and keeps a private best, so
// no locking is needed; the per-range winners are merged in range order.

package solver

import (
	"context"
	"errors"
	"math"
	"runtime"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

var (
	// ErrEmptyPool means the history rules out every dictionary word.
	ErrEmptyPool = errors.New("no consistent candidate")
	// ErrNoAdmissibleGuess means every dictionary word is blocked.
	ErrNoAdmissibleGuess = errors.New("every dictionary word is blocked")
)

// Result is the outcome of a selection.
type Result struct {
	Word     game.Word
	PoolSize int     // candidates consistent with the history
	Score    float64 // expected information in bits; 0 when the pool has one word
}

// Selector picks the next guess.
type Selector struct {
	workers int
}

// Option configures a Selector.
type Option func(*Selector)

// WithWorkers bounds the number of scoring goroutines. n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Selector) { s.workers = n }
}

// NewSelector builds a Selector.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{}
	for _, o := range opts {
		o(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// pick is a scored dictionary entry.
type pick struct {
	index int
	score float64
}

// better orders picks by score descending, then dictionary index ascending.
func (p pick) better(o pick) bool {
	if p.index < 0 || o.index < 0 {
		return p.index >= 0
	}
	if p.score != o.score {
		return p.score > o.score
	}
	return p.index < o.index
}

// Select returns the best next guess for pool, drawn from dict minus blocked.
//
//   - Empty pool → ErrEmptyPool.
//   - One candidate → that word, without scoring.
//   - Otherwise the highest-entropy admissible word.
func (s *Selector) Select(ctx context.Context, pool, dict []game.Word, blocked *BlockedSet) (Result, error) {
	switch len(pool) {
	case 0:
		return Result{}, ErrEmptyPool
	case 1:
		return Result{Word: pool[0], PoolSize: 1}, nil
	}

	start := time.Now()
	workers := s.workers
	if workers > len(dict) {
		workers = len(dict)
	}
	if workers < 1 {
		return Result{}, ErrNoAdmissibleGuess
	}

	best := make([]pick, workers)
	chunk := (len(dict) + workers - 1) / workers

	g, gCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(dict))
		g.Go(func() error {
			p, err := scoreRange(gCtx, pool, dict, blocked, lo, hi)
			best[w] = p
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	winner := pick{index: -1}
	for _, p := range best {
		if p.better(winner) {
			winner = p
		}
	}
	if winner.index < 0 {
		return Result{}, ErrNoAdmissibleGuess
	}

	log.Debug().
		Int("pool", len(pool)).
		Int("dictionary", len(dict)).
		Int("blocked", blocked.Len()).
		Int("workers", workers).
		Str("guess", dict[winner.index].String()).
		Float64("bits", winner.score).
		Dur("took", time.Since(start)).
		Msg("scored guesses")

	return Result{Word: dict[winner.index], PoolSize: len(pool), Score: winner.score}, nil
}

// scoreRange scores dict[lo:hi] and returns the best admissible entry, or an
// entry with index -1 if all are blocked.
func scoreRange(ctx context.Context, pool, dict []game.Word, blocked *BlockedSet, lo, hi int) (pick, error) {
	best := pick{index: -1}
	var buckets [game.MaxMaskEnum]int
	for i := lo; i < hi; i++ {
		if blocked.Has(i) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return best, err
		}
		p := pick{index: i, score: Entropy(pool, dict[i], &buckets)}
		if p.better(best) {
			best = p
		}
	}
	return best, nil
}

// Entropy returns the expected information, in bits, revealed by playing guess
// when the answer is uniformly drawn from pool. buckets is scratch space and is
// cleared before use.
//
// The sum runs over bucket sizes in ascending order, so guesses that split the
// pool into the same sizes score bit-identically whatever masks they produce.
func Entropy(pool []game.Word, guess game.Word, buckets *[game.MaxMaskEnum]int) float64 {
	clear(buckets[:])
	for _, answer := range pool {
		buckets[game.EnumerateMask(game.Compute(answer, guess))]++
	}
	sizes := buckets[:0]
	for _, c := range buckets {
		if c > 0 {
			sizes = append(sizes, c)
		}
	}
	slices.Sort(sizes)

	// H = log2(n) - Σ c·log2(c) / n
	n := float64(len(pool))
	sum := 0.0
	for _, c := range sizes {
		sum += float64(c) * math.Log2(float64(c))
	}
	if len(sizes) <= 1 {
		return 0
	}
	return math.Log2(n) - sum/n
}
