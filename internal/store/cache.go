// apps/go-solver/internal/store/cache.go
//
// Opener cache.
// The first guess of a game is scored against the whole dictionary, which is
// the most expensive call the solver makes. Its answer depends only on the
// dictionary and the blocked set, so it is memoized under a fingerprint of the
// two. Implementations: in-memory (memory.go) and SQLite (this file).

package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Opener is a cached first guess.
type Opener struct {
	Word     game.Word
	PoolSize int
	Bits     float64
}

// OpenerCache persists Opener values keyed by Fingerprint.
type OpenerCache interface {
	// Get returns the cached opener for key; ok is false on a miss.
	Get(ctx context.Context, key string) (o Opener, ok bool, err error)

	// Put stores or replaces the opener for key.
	Put(ctx context.Context, key string, o Opener) error
}

// Fingerprint hashes the dictionary (order matters) and the blocked words
// (order does not) into a cache key.
func Fingerprint(dict []game.Word, blocked []game.Word) string {
	h, _ := blake2b.New256(nil)
	for _, w := range dict {
		h.Write(w[:])
	}
	h.Write([]byte{'|'})

	b := make([]string, len(blocked))
	for i, w := range blocked {
		b[i] = w.String()
	}
	sort.Strings(b)
	for _, w := range b {
		h.Write([]byte(w))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// sqlCache is the SQLite-backed OpenerCache.
type sqlCache struct{ db *sql.DB }

// NewSQLCache returns an OpenerCache over the openers table of db.
func NewSQLCache(db *sql.DB) OpenerCache { return &sqlCache{db: db} }

func (c *sqlCache) Get(ctx context.Context, key string) (Opener, bool, error) {
	var (
		o    Opener
		word string
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT word, pool_size, bits FROM openers WHERE key=?`, key,
	).Scan(&word, &o.PoolSize, &o.Bits)
	if errors.Is(err, sql.ErrNoRows) {
		return Opener{}, false, nil
	}
	if err != nil {
		return Opener{}, false, err
	}
	w, err := game.ParseWord(word)
	if err != nil {
		// A corrupt row is treated as a miss and overwritten on the next Put.
		return Opener{}, false, nil
	}
	o.Word = w
	return o, true, nil
}

func (c *sqlCache) Put(ctx context.Context, key string, o Opener) error {
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO openers (key, word, pool_size, bits) VALUES (?, ?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET word=excluded.word, pool_size=excluded.pool_size, bits=excluded.bits`,
		key, o.Word.String(), o.PoolSize, o.Bits,
	)
	return err
}
