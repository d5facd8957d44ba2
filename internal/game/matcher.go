package game

// Matches reports whether candidate could be the answer given this turn's
// feedback, i.e. whether Compute(candidate, g.Word) == g.Mask. It checks the
// constraints directly instead of building the full mask and stops at the
// first contradiction.
func (g Guess) Matches(candidate Word) bool {
	// used marks candidate positions already accounted for by a Correct or
	// Misplaced letter.
	var used [WordLen]bool

	for i := 0; i < WordLen; i++ {
		if candidate[i] == g.Word[i] {
			if g.Mask[i] != Correct {
				return false
			}
			used[i] = true
		} else if g.Mask[i] == Correct {
			return false
		}
	}

	for i := 0; i < WordLen; i++ {
		if g.Mask[i] == Correct {
			continue
		}
		if consume(g.Word[i], candidate, &used) != (g.Mask[i] == Misplaced) {
			return false
		}
	}
	return true
}

// consume marks the first unused occurrence of letter in w as used.
// It reports whether one was found.
func consume(letter byte, w Word, used *[WordLen]bool) bool {
	for i := 0; i < WordLen; i++ {
		if w[i] == letter && !used[i] {
			used[i] = true
			return true
		}
	}
	return false
}

// MatchesAll reports whether candidate is consistent with every turn in h.
// An empty history matches everything.
func (h History) MatchesAll(candidate Word) bool {
	for _, g := range h {
		if !g.Matches(candidate) {
			return false
		}
	}
	return true
}
