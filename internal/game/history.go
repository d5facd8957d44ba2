// apps/go-solver/internal/game/history.go
//
// Wire format for play history.
//
// A history is a comma-separated list of "word:mask" tokens, e.g.
//
//	arose:31112,amend:31211
//
// Mask digits: 1 = wrong (grey), 2 = misplaced (yellow), 3 = correct (green).
// The literal token "-----:00000" stands for "no guesses yet" and is dropped.
package game

import (
	"errors"
	"fmt"
	"strings"
)

// EmptyHistory is the sentinel token for a history with no guesses.
const EmptyHistory = "-----:00000"

var (
	// ErrMalformedHistoryEntry is returned for a token missing its word or
	// mask segment, or whose segments are not 5 characters.
	ErrMalformedHistoryEntry = errors.New("malformed history entry")
	// ErrInvalidMaskCharacter is returned for a mask digit outside 1–3.
	ErrInvalidMaskCharacter = errors.New("invalid mask character")
)

// ParseHistory parses a serialized history into turns, in order of appearance.
// Any bad token fails the whole parse; the error names the token.
func ParseHistory(state string) (History, error) {
	tokens := strings.Split(state, ",")
	out := make(History, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == EmptyHistory {
			continue
		}
		g, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func parseToken(tok string) (Guess, error) {
	var g Guess
	rawWord, rawMask, ok := strings.Cut(tok, ":")
	if !ok || rawWord == "" || rawMask == "" {
		return g, fmt.Errorf("%w: %q", ErrMalformedHistoryEntry, tok)
	}
	for i := 0; i < len(rawMask); i++ {
		c, err := parseDigit(rawMask[i])
		if err != nil {
			return g, fmt.Errorf("%w %q in %q", err, rawMask[i], tok)
		}
		if i < WordLen {
			g.Mask[i] = c
		}
	}
	if len(rawMask) != WordLen {
		return g, fmt.Errorf("%w: %q: mask must have %d digits", ErrMalformedHistoryEntry, tok, WordLen)
	}

	w, err := ParseWord(rawWord)
	if err != nil {
		return g, fmt.Errorf("%w: %q: %v", ErrMalformedHistoryEntry, tok, err)
	}
	g.Word = w
	return g, nil
}

// parseDigit maps one mask digit to its Correctness. '0' is only valid inside
// the EmptyHistory sentinel, which never reaches here.
func parseDigit(b byte) (Correctness, error) {
	switch b {
	case '1':
		return Wrong, nil
	case '2':
		return Misplaced, nil
	case '3':
		return Correct, nil
	}
	return Wrong, ErrInvalidMaskCharacter
}

// String renders m in the history digit alphabet, e.g. "31112".
func (m Mask) String() string {
	var b [WordLen]byte
	for i, c := range m {
		switch c {
		case Correct:
			b[i] = '3'
		case Misplaced:
			b[i] = '2'
		default:
			b[i] = '1'
		}
	}
	return string(b[:])
}

func (g Guess) String() string { return g.Word.String() + ":" + g.Mask.String() }

// FormatHistory is the inverse of ParseHistory. An empty history renders as
// EmptyHistory.
func FormatHistory(h History) string {
	if len(h) == 0 {
		return EmptyHistory
	}
	parts := make([]string, len(h))
	for i, g := range h {
		parts[i] = g.String()
	}
	return strings.Join(parts, ",")
}
