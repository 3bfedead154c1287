package movie

import (
	"fmt"
	"strings"

	"movierec/errs"
)

// GenreSeparator splits the raw genre column into individual genres.
const GenreSeparator = "|"

var (
	ErrInvalidQuery  = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "movie not found")
)

type Movie struct {
	MovieID       int      `json:"movie_id"`
	Title         string   `json:"title"`
	Genres        []string `json:"genres"`
	AverageRating float64  `json:"average_rating"`
}

// GenresString joins the genres back into their raw form.
func (m Movie) GenresString() string {
	return strings.Join(m.Genres, GenreSeparator)
}

func (m Movie) String() string {
	return fmt.Sprintf("%s (%s) - Avg Rating: %.2f", m.Title, m.GenresString(), m.AverageRating)
}

// Record is a raw movie row as read from a source table.
type Record struct {
	MovieID int
	Title   string
	Genres  string
}

// SplitGenres splits a raw genre column, dropping empty tokens.
func SplitGenres(raw string) []string {
	parts := strings.Split(raw, GenreSeparator)
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}
