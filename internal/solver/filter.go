// apps/go-solver/internal/solver/filter.go
//
// Candidate filtering and blocked-word handling.
// Responsibilities:
//   - Narrow a dictionary to the words consistent with every played turn.
//   - Resolve a list of blocked words against the dictionary as a bitset.

package solver

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Filter returns the words of dict that match every guess in h, in dictionary
// order. dict is not modified; the result is always a fresh slice.
func Filter(dict []game.Word, h game.History) []game.Word {
	out := make([]game.Word, 0, len(dict))
	for _, w := range dict {
		if h.MatchesAll(w) {
			out = append(out, w)
		}
	}
	return out
}

// BlockedSet marks dictionary positions that must never be proposed as a guess.
// It does not affect which words count as candidates.
type BlockedSet struct {
	bits *bitset.BitSet
}

// NewBlockedSet resolves words against dict. Words not in dict are ignored
// since they could never be proposed anyway.
func NewBlockedSet(dict []game.Word, words []game.Word) *BlockedSet {
	b := &BlockedSet{bits: bitset.New(uint(len(dict)))}
	if len(words) == 0 {
		return b
	}
	want := make(map[game.Word]struct{}, len(words))
	for _, w := range words {
		want[w] = struct{}{}
	}
	for i, w := range dict {
		if _, ok := want[w]; ok {
			b.bits.Set(uint(i))
		}
	}
	return b
}

// Has reports whether dictionary index i is blocked. A nil set blocks nothing.
func (b *BlockedSet) Has(i int) bool {
	if b == nil {
		return false
	}
	return b.bits.Test(uint(i))
}

// Len returns the number of blocked dictionary entries.
func (b *BlockedSet) Len() int {
	if b == nil {
		return 0
	}
	return int(b.bits.Count())
}
