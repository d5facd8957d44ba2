package sim

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

var dict = words(
	"arose", "amend", "crane", "slate", "trace", "caret", "react", "cater",
	"batch", "catch", "hatch", "latch", "match", "patch", "watch", "chomp",
	"abbey", "alley", "agent", "ahead", "ample", "angle", "algae", "equal",
)

func words(ss ...string) []game.Word {
	out := make([]game.Word, len(ss))
	for i, s := range ss {
		out[i] = game.MustWord(s)
	}
	return out
}

func newPlayer() *Player {
	return &Player{Selector: solver.NewSelector(solver.WithWorkers(2)), Dict: dict}
}

func TestPlaySolves(t *testing.T) {
	p := newPlayer()
	for _, answer := range dict {
		g, err := p.Play(context.Background(), answer)
		require.NoError(t, err)
		require.True(t, g.Solved, "answer %s", answer)
		last := g.Turns[len(g.Turns)-1]
		assert.Equal(t, answer, last.Guess)
		assert.True(t, last.Mask.Solved())
		assert.Equal(t, len(dict), g.Turns[0].PoolSize)

		// Every recorded turn is consistent with the answer.
		assert.True(t, g.History().MatchesAll(answer))
	}
}

func TestPlayHistoryReplays(t *testing.T) {
	p := newPlayer()
	g, err := p.Play(context.Background(), game.MustWord("watch"))
	require.NoError(t, err)

	// Replaying the history through the wire format reproduces each pool size.
	for i := 1; i < len(g.Turns); i++ {
		h, err := game.ParseHistory(game.FormatHistory(g.History()[:i]))
		require.NoError(t, err)
		assert.Len(t, solver.Filter(dict, h), g.Turns[i].PoolSize)
	}
}

func TestPlayTurnLimit(t *testing.T) {
	p := newPlayer()
	p.MaxTurns = 1
	opener := solver.Result{Word: game.MustWord("chomp")}
	p.Opener = &opener

	g, err := p.Play(context.Background(), game.MustWord("watch"))
	require.NoError(t, err)
	assert.False(t, g.Solved)
	require.Len(t, g.Turns, 1)
	assert.Equal(t, "chomp", g.Turns[0].Guess.String())
}

func TestPlayUnknownAnswer(t *testing.T) {
	_, err := newPlayer().Play(context.Background(), game.MustWord("zzzzz"))
	assert.ErrorIs(t, err, solver.ErrEmptyPool)
}

func TestBench(t *testing.T) {
	var out bytes.Buffer
	sum, err := newPlayer().Bench(context.Background(), dict, 4, &out)
	require.NoError(t, err)
	assert.Equal(t, len(dict), sum.Games)
	assert.Equal(t, len(dict), sum.Solved)
	assert.Empty(t, sum.Failed)
	assert.GreaterOrEqual(t, sum.MeanTurns(), 1.0)

	total := 0
	for _, n := range sum.Histogram {
		total += n
	}
	assert.Equal(t, sum.Solved, total)
}

func TestBenchMatchesSequentialPlay(t *testing.T) {
	p := newPlayer()
	sum, err := p.Bench(context.Background(), dict, 3, nil)
	require.NoError(t, err)

	turns := 0
	for _, answer := range dict {
		g, err := p.Play(context.Background(), answer)
		require.NoError(t, err)
		turns += len(g.Turns)
	}
	assert.Equal(t, turns, sum.Turns)
}
