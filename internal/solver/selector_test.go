package solver

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

var testDict = words(
	"arose", "amend", "crane", "slate", "trace", "caret", "react", "cater",
	"batch", "catch", "hatch", "latch", "match", "patch", "watch", "chomp",
	"abbey", "alley", "agent", "ahead", "ample", "angle", "algae", "equal",
	"speed", "geese", "eerie", "level", "llama", "sassy", "mamma", "robot",
)

func words(ss ...string) []game.Word {
	out := make([]game.Word, len(ss))
	for i, s := range ss {
		out[i] = game.MustWord(s)
	}
	return out
}

// naiveBest scores every admissible word sequentially, first-seen wins.
func naiveBest(pool, dict []game.Word, blocked *BlockedSet) (game.Word, float64) {
	var buckets [game.MaxMaskEnum]int
	bestIdx, bestScore := -1, math.Inf(-1)
	for i, g := range dict {
		if blocked.Has(i) {
			continue
		}
		if s := Entropy(pool, g, &buckets); s > bestScore {
			bestIdx, bestScore = i, s
		}
	}
	return dict[bestIdx], bestScore
}

func TestFilter(t *testing.T) {
	h, err := game.ParseHistory("arose:31112,amend:31211")
	require.NoError(t, err)

	pool := Filter(testDict, h)
	assert.Equal(t, words("abbey", "alley"), pool)

	empty, err := game.ParseHistory(game.EmptyHistory)
	require.NoError(t, err)
	all := Filter(testDict, empty)
	assert.Equal(t, testDict, all)
	all[0] = game.MustWord("zzzzz")
	assert.Equal(t, "arose", testDict[0].String(), "filter must not alias the dictionary")
}

func TestSelectEmptyPool(t *testing.T) {
	_, err := NewSelector().Select(context.Background(), nil, testDict, nil)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestSelectSingleCandidate(t *testing.T) {
	pool := words("robot")
	// Everything blocked: scoring would fail, so a result proves it was skipped.
	blocked := NewBlockedSet(testDict, testDict)

	res, err := NewSelector().Select(context.Background(), pool, testDict, blocked)
	require.NoError(t, err)
	assert.Equal(t, "robot", res.Word.String())
	assert.Equal(t, 1, res.PoolSize)
	assert.Zero(t, res.Score)
}

func TestSelectMatchesNaiveScoring(t *testing.T) {
	pool := words("batch", "catch", "hatch", "latch", "match", "patch", "watch")
	want, wantScore := naiveBest(pool, testDict, nil)

	res, err := NewSelector().Select(context.Background(), pool, testDict, nil)
	require.NoError(t, err)
	assert.Equal(t, want, res.Word)
	assert.Equal(t, len(pool), res.PoolSize)
	assert.InDelta(t, wantScore, res.Score, 1e-12)
	assert.LessOrEqual(t, res.Score, math.Log2(float64(len(pool)))+1e-12)
}

func TestSelectDeterministicAcrossWorkers(t *testing.T) {
	pool := Filter(testDict, nil)
	first, err := NewSelector(WithWorkers(1)).Select(context.Background(), pool, testDict, nil)
	require.NoError(t, err)

	for _, n := range []int{2, 3, 5, 8, 64} {
		for run := 0; run < 3; run++ {
			res, err := NewSelector(WithWorkers(n)).Select(context.Background(), pool, testDict, nil)
			require.NoError(t, err)
			assert.Equal(t, first, res, "workers=%d run=%d", n, run)
		}
	}
}

func TestSelectTieGoesToFirstInDictionary(t *testing.T) {
	// "aaaaa" and "bbbbb" both split this pool in half.
	dict := words("aaaaa", "bbbbb", "ccccc", "ddddd")
	pool := words("aaaaa", "bbbbb")
	res, err := NewSelector(WithWorkers(4)).Select(context.Background(), pool, dict, nil)
	require.NoError(t, err)
	assert.Equal(t, "aaaaa", res.Word.String())
	assert.InDelta(t, 1.0, res.Score, 1e-12)
}

func TestSelectNeverReturnsBlocked(t *testing.T) {
	pool := words("batch", "catch", "hatch", "latch", "match", "patch", "watch")
	sel := NewSelector(WithWorkers(3))

	top, err := sel.Select(context.Background(), pool, testDict, nil)
	require.NoError(t, err)

	blocked := NewBlockedSet(testDict, []game.Word{top.Word})
	assert.Equal(t, 1, blocked.Len())

	res, err := sel.Select(context.Background(), pool, testDict, blocked)
	require.NoError(t, err)
	assert.NotEqual(t, top.Word, res.Word)
	assert.Equal(t, len(pool), res.PoolSize, "blocking must not shrink the pool")

	want, _ := naiveBest(pool, testDict, blocked)
	assert.Equal(t, want, res.Word)
}

func TestSelectAllBlocked(t *testing.T) {
	pool := words("batch", "catch")
	_, err := NewSelector().Select(context.Background(), pool, testDict, NewBlockedSet(testDict, testDict))
	assert.ErrorIs(t, err, ErrNoAdmissibleGuess)
}

func TestSelectCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSelector().Select(ctx, words("batch", "catch"), testDict, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEntropy(t *testing.T) {
	var buckets [game.MaxMaskEnum]int
	pool := words("batch", "catch")
	// "zzzzz" cannot tell the two apart.
	assert.Zero(t, Entropy(pool, game.MustWord("zzzzz"), &buckets))
	// "batch" separates them into two equal buckets.
	assert.InDelta(t, 1.0, Entropy(pool, game.MustWord("batch"), &buckets), 1e-12)
}

func TestEntropyDependsOnlyOnBucketSizes(t *testing.T) {
	var buckets [game.MaxMaskEnum]int
	pool := words("crane", "slate", "trace", "caret", "react", "cater", "agent", "ahead")

	// Six singletons and a pair each, under different masks.
	assert.Equal(t, 2.75, Entropy(pool, game.MustWord("crane"), &buckets))
	assert.Equal(t, 2.75, Entropy(pool, game.MustWord("trace"), &buckets))
	assert.Equal(t, 2.75, Entropy(pool, game.MustWord("latch"), &buckets))

	// Every candidate alone in its bucket.
	assert.Equal(t, 3.0, Entropy(pool, game.MustWord("caret"), &buckets))
}

func TestSelectTieOnLargePartition(t *testing.T) {
	raw, err := assets.DefaultWords()
	require.NoError(t, err)
	dict := words(raw...)
	pool := words(
		"heath", "quilt", "false", "steam", "break", "party", "women", "trend",
		"house", "trace", "seedy", "feign", "laser", "viral", "grant", "frank",
		"jones", "clean", "vital", "print", "tried", "array", "taste", "whole",
		"frame", "minus", "draft", "broad", "sixty", "rough", "truly", "latch",
		"stool", "algae", "sleep", "ample", "dealt", "aware", "pilot", "glory",
	)

	// "slate" and the later "least" split the pool into the same bucket sizes
	// (25 singletons, six pairs, one triple) under different masks.
	var buckets [game.MaxMaskEnum]int
	assert.Equal(t,
		Entropy(pool, game.MustWord("slate"), &buckets),
		Entropy(pool, game.MustWord("least"), &buckets))

	for _, w := range []int{1, 4, 16} {
		res, err := NewSelector(WithWorkers(w)).Select(context.Background(), pool, dict, nil)
		require.NoError(t, err)
		assert.Equal(t, "slate", res.Word.String(), "workers=%d", w)
	}
}
