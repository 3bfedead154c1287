package rating

import (
	"movierec/errs"
)

const (
	MinValue = 0.5
	MaxValue = 5.0

	// LikedThreshold is the lowest value that counts as liking a movie.
	LikedThreshold = 4.0
)

var (
	ErrInvalidRating = errs.Errorf(errs.EINVALID, "rating: value must be between 0.5 and 5.0")
	ErrInvalidUser   = errs.Errorf(errs.EINVALID, "rating: user id must be a positive number")
)

// Entry is a single (movie, value) pair held in a user's rating set.
type Entry struct {
	MovieID int
	Value   float64
}

// Liked reports whether the entry counts towards the user's liked set.
func (e Entry) Liked() bool {
	return e.Value >= LikedThreshold
}

// Record is a raw rating row as read from a source table.
type Record struct {
	UserID  int
	MovieID int
	Value   float64
}

// ValidateValue checks the rating scale bounds, rejecting NaN. Half-point steps
// are not enforced.
func ValidateValue(v float64) error {
	if !(v >= MinValue && v <= MaxValue) {
		return ErrInvalidRating
	}
	return nil
}

// Seen returns the ids of every movie present in entries, whatever the value.
func Seen(entries []Entry) map[int]struct{} {
	seen := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		seen[e.MovieID] = struct{}{}
	}
	return seen
}

// Liked returns the ids of the movies rated at or above LikedThreshold.
func Liked(entries []Entry) map[int]struct{} {
	liked := make(map[int]struct{})
	for _, e := range entries {
		if e.Liked() {
			liked[e.MovieID] = struct{}{}
		}
	}
	return liked
}
