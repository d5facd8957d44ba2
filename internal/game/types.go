// apps/go-solver/internal/game/types.go
//
// Core type definitions for the solver.
// Defines:
//   - Word: a fixed 5-letter lowercase word.
//   - Correctness: per-letter feedback (correct/misplaced/wrong).
//   - Mask: the 5 feedback values for one guess.
//   - Guess / History: one played turn and the ordered list of turns.

package game

import (
	"errors"
	"strings"
)

// WordLen is the number of letters in every word and mask.
const WordLen = 5

// MaxMaskEnum is the number of distinct masks (3^WordLen).
const MaxMaskEnum = 3 * 3 * 3 * 3 * 3

// Word is a 5-letter lowercase ASCII word.
// Length is enforced by ParseWord at the boundary and not re-checked internally.
type Word [WordLen]byte

// ErrInvalidWord is returned by ParseWord for anything other than 5 letters a–z.
var ErrInvalidWord = errors.New("word must be 5 letters a-z")

// ParseWord lowercases and trims s and validates it as a Word.
func ParseWord(s string) (Word, error) {
	var w Word
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != WordLen {
		return w, ErrInvalidWord
	}
	for i := 0; i < WordLen; i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return w, ErrInvalidWord
		}
		w[i] = s[i]
	}
	return w, nil
}

// MustWord is ParseWord for literals known to be valid. It panics otherwise.
func MustWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err.Error() + ": " + s)
	}
	return w
}

func (w Word) String() string { return string(w[:]) }

// Correctness represents the feedback for a single letter in a guess.
//   - Correct:   letter is in the answer at this position (green).
//   - Misplaced: letter is in the answer at another position (yellow).
//   - Wrong:     letter has no unmatched occurrence in the answer (grey).
//
// The numeric values double as base-3 digits in EnumerateMask.
type Correctness uint8

const (
	Correct Correctness = iota
	Misplaced
	Wrong
)

func (c Correctness) String() string {
	switch c {
	case Correct:
		return "correct"
	case Misplaced:
		return "misplaced"
	case Wrong:
		return "wrong"
	}
	return "unknown"
}

// Mask holds one Correctness per letter position.
type Mask [WordLen]Correctness

// Solved reports whether every position is Correct.
func (m Mask) Solved() bool {
	return m == Mask{}
}

// Guess is one historical turn: the word played and the feedback received.
type Guess struct {
	Word Word
	Mask Mask
}

// History is the ordered list of turns played so far.
type History []Guess
