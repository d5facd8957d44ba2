package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

func openTemp(t *testing.T) *WordStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewWordStore(db)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.db")
	for i := 0; i < 2; i++ {
		db, err := Open(path)
		require.NoError(t, err)

		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
		assert.Equal(t, 1, n)
		require.NoError(t, db.Close())
	}
}

func TestWordStoreKeepsOrder(t *testing.T) {
	ctx := context.Background()
	ws := openTemp(t)

	n, err := ws.Replace(ctx, []string{"slate", "crane", "slate", "arose"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := ws.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"slate", "crane", "arose"}, got)

	_, err = ws.Replace(ctx, []string{"amend"})
	require.NoError(t, err)
	got, err = ws.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"amend"}, got)
}

func TestCaches(t *testing.T) {
	ctx := context.Background()
	ws := openTemp(t)

	caches := map[string]OpenerCache{
		"memory": NewMemoryCache(),
		"sqlite": NewSQLCache(ws.db),
	}
	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			_, ok, err := c.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			o := Opener{Word: game.MustWord("soare"), PoolSize: 2315, Bits: 5.885}
			require.NoError(t, c.Put(ctx, "k", o))
			got, ok, err := c.Get(ctx, "k")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, o, got)

			o.Word = game.MustWord("roate")
			require.NoError(t, c.Put(ctx, "k", o))
			got, _, err = c.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "roate", got.Word.String())
		})
	}
}

func TestFingerprint(t *testing.T) {
	dict := []game.Word{game.MustWord("crane"), game.MustWord("slate")}
	swapped := []game.Word{dict[1], dict[0]}
	a, b := game.MustWord("arose"), game.MustWord("amend")

	base := Fingerprint(dict, nil)
	assert.Len(t, base, 64)
	assert.Equal(t, base, Fingerprint(dict, []game.Word{}))
	assert.NotEqual(t, base, Fingerprint(swapped, nil), "dictionary order matters")
	assert.Equal(t, Fingerprint(dict, []game.Word{a, b}), Fingerprint(dict, []game.Word{b, a}), "blocked order does not")
	assert.NotEqual(t, base, Fingerprint(dict, []game.Word{a}))
}
