package deckvault

import (
	"time"

	"github.com/open-spaced-repetition/go-fsrs/v3"
)

// schedulerParams returns the FSRS parameters used for every review. Fuzz is
// off: two reviews with identical inputs must schedule identically.
func schedulerParams() fsrs.Parameters {
	params := fsrs.DefaultParam()
	params.EnableShortTerm = false
	params.EnableFuzz = false
	params.MaximumInterval = 365 * 5 // Default is 100 years, which is a bit optimistic
	return params
}

// parseRating maps a wire rating to the FSRS enum. Anything outside the four
// known names is an error; it must never fall through to a default rating.
func parseRating(rating string) (fsrs.Rating, error) {
	switch rating {
	case "Again":
		return fsrs.Again, nil
	case "Hard":
		return fsrs.Hard, nil
	case "Good":
		return fsrs.Good, nil
	case "Easy":
		return fsrs.Easy, nil
	}
	return 0, invalidArgError("invalid rating: " + rating)
}

// reviewCard runs a single scheduling pass and returns the updated card and
// its review log. It never touches card content.
func reviewCard(f *fsrs.FSRS, card fsrs.Card, rating fsrs.Rating, now time.Time) (fsrs.Card, fsrs.ReviewLog) {
	info := f.Repeat(card, now)[rating]
	return info.Card, info.ReviewLog
}

// newPrimedCard creates a brand-new card and immediately runs it through one
// Again pass, so that every stored card has real memory state and a
// last-review time instead of raw unscheduled state. The due date is pulled
// back to now: a card you just wrote should be studyable right away.
func newPrimedCard(f *fsrs.FSRS, now time.Time) fsrs.Card {
	card := fsrs.NewCard()
	card.Due = now
	primed, _ := reviewCard(f, card, fsrs.Again, now)
	primed.Due = now
	return primed
}
