// apps/go-solver/internal/game/engine.go
//
// Feedback engine.
// Responsibilities:
//   - Score a guess against an answer using the classic two‑pass Wordle algorithm.
//   - Enumerate every possible mask in a fixed order.
//   - Encode masks as integers in [0, MaxMaskEnum) and back.
//
// Notes:
//   - Letters are assumed validated to a–z (see ParseWord).
//   - EnumerateMask and Patterns share one bijection: the n-th mask yielded by
//     Patterns encodes to n.
package game

import "iter"

// Compute implements the standard Wordle two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non‑correct) answer letters by letter index.
//
// Pass 2:
//   - For each non‑correct guess letter: if there is remaining count for that
//     letter, mark Misplaced and decrement the count; otherwise leave Wrong.
//
// A repeated guess letter is never marked Misplaced more times than it has
// unmatched occurrences in the answer.
func Compute(answer, guess Word) Mask {
	var res Mask
	var counts [26]uint8

	// First pass: mark hits and collect counts for remaining answer letters.
	for i := 0; i < WordLen; i++ {
		if answer[i] == guess[i] {
			res[i] = Correct
		} else {
			res[i] = Wrong
			counts[idx(answer[i])]++
		}
	}

	// Second pass: resolve misplaced letters for non‑correct tiles.
	for i := 0; i < WordLen; i++ {
		if res[i] == Correct {
			continue
		}
		j := idx(guess[i])
		if counts[j] > 0 {
			res[i] = Misplaced
			counts[j]--
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(b byte) int { return int(b - 'a') }

// Patterns yields every Mask exactly once, position 0 most significant,
// values ordered Correct, Misplaced, Wrong. The sequence can be ranged over
// any number of times.
func Patterns() iter.Seq[Mask] {
	values := [...]Correctness{Correct, Misplaced, Wrong}
	return func(yield func(Mask) bool) {
		for _, a := range values {
			for _, b := range values {
				for _, c := range values {
					for _, d := range values {
						for _, e := range values {
							if !yield(Mask{a, b, c, d, e}) {
								return
							}
						}
					}
				}
			}
		}
	}
}

// EnumerateMask encodes m as a base‑3 number: Correct=0, Misplaced=1, Wrong=2,
// position 0 most significant.
func EnumerateMask(m Mask) int {
	n := 0
	for _, c := range m {
		n = n*3 + int(c)
	}
	return n
}

// DecodeMask is the inverse of EnumerateMask. n must be in [0, MaxMaskEnum).
func DecodeMask(n int) Mask {
	var m Mask
	for i := WordLen - 1; i >= 0; i-- {
		m[i] = Correctness(n % 3)
		n /= 3
	}
	return m
}
