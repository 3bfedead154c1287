// Package recommend implements the genre-affinity and user-similarity
// recommenders over a dataset.Dataset.
//
// Recommenders never fail: a user without enough signal simply gets an
// empty result.
package recommend

import (
	"movierec/movie"
)

// DefaultLimit is used when a caller passes a non-positive limit.
const DefaultLimit = 10

type Recommender interface {
	Name() string
	Recommend(userID, limit int) []movie.Movie
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b map[int]struct{}) float64 {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	intersection := 0
	for id := range small {
		if _, ok := large[id]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
