// apps/go-solver/internal/words/words.go
//
// Provides the dictionary the solver works over.
//
// Responsibilities:
//   - Load an ordered word list from a SQLite dictionary, a text file, or the
//     embedded default, in that priority.
//   - Normalize entries (trim, lowercase) and keep only 5-letter a–z words.
//   - Drop duplicates, keeping the first occurrence, since dictionary order
//     decides ties between equally good guesses.
//
// Configuration (see Config):
//   DBPath:   SQLite file previously filled by the import command.
//   FilePath: text file, one word per line; blank lines and "#" comments skipped.
//
// A loaded Dictionary is read-only and safe to share between goroutines.

package words

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

// ErrEmptyDictionary is returned when a source yields no valid words.
var ErrEmptyDictionary = errors.New("words: dictionary is empty")

// Config selects the dictionary source. Empty fields are skipped.
type Config struct {
	DBPath   string
	FilePath string
}

// Dictionary is an ordered, duplicate-free list of words.
type Dictionary struct {
	words []game.Word
	index map[game.Word]int
}

// New builds a Dictionary from raw entries. Invalid entries are skipped.
func New(list []string) *Dictionary {
	d := &Dictionary{
		words: make([]game.Word, 0, len(list)),
		index: make(map[game.Word]int, len(list)),
	}
	for _, s := range list {
		w, err := game.ParseWord(s)
		if err != nil {
			continue
		}
		if _, dup := d.index[w]; dup {
			continue
		}
		d.index[w] = len(d.words)
		d.words = append(d.words, w)
	}
	return d
}

// Load reads the dictionary from the first configured source.
func Load(ctx context.Context, cfg Config) (*Dictionary, error) {
	var (
		list   []string
		source string
		err    error
	)
	switch {
	case cfg.DBPath != "":
		source = "sqlite:" + cfg.DBPath
		list, err = readDB(ctx, cfg.DBPath)
	case cfg.FilePath != "":
		source = "file:" + cfg.FilePath
		list, err = ReadFile(cfg.FilePath)
	default:
		source = "embedded"
		list, err = assets.DefaultWords()
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	d := New(list)
	if d.Len() == 0 {
		return nil, fmt.Errorf("load %s: %w", source, ErrEmptyDictionary)
	}
	log.Debug().Str("source", source).Int("words", d.Len()).Int("skipped", len(list)-d.Len()).Msg("dictionary loaded")
	return d, nil
}

func readDB(ctx context.Context, path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return store.NewWordStore(db).List(ctx)
}

// ReadFile loads one entry per line from a file, trimmed and lowercased.
// Blank lines and "#" comments are skipped; validation is left to New.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// Words returns the dictionary in order. Callers must not modify it.
func (d *Dictionary) Words() []game.Word { return d.words }

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// Contains reports whether w is in the dictionary.
func (d *Dictionary) Contains(w game.Word) bool {
	_, ok := d.index[w]
	return ok
}

// Strings returns the dictionary as plain strings, in order.
func (d *Dictionary) Strings() []string {
	out := make([]string, len(d.words))
	for i, w := range d.words {
		out[i] = w.String()
	}
	return out
}

// Resolve parses raw words, returning the valid ones and the entries that are
// not 5-letter words. Valid words need not be in the dictionary.
func Resolve(raw []string) (valid []game.Word, invalid []string) {
	for _, s := range raw {
		w, err := game.ParseWord(s)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}
		valid = append(valid, w)
	}
	return valid, invalid
}
