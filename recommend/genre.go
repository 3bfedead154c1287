package recommend

import (
	"sort"

	"movierec/dataset"
	"movierec/movie"
	"movierec/rating"
)

// TopGenres is how many of the user's best-scored genres feed the candidates.
const TopGenres = 3

// GenreRecommender suggests the best-rated unseen movies from the genres the
// user rates highest.
type GenreRecommender struct {
	ds *dataset.Dataset
}

func NewGenreRecommender(ds *dataset.Dataset) *GenreRecommender {
	return &GenreRecommender{ds: ds}
}

func (r *GenreRecommender) Name() string {
	return "genre"
}

func (r *GenreRecommender) Recommend(userID, limit int) []movie.Movie {
	limit = limitOrDefault(limit)

	entries := r.ds.Ratings.Entries(userID)
	if len(entries) == 0 {
		return nil
	}

	top := r.topGenres(entries)
	if len(top) == 0 {
		return nil
	}

	seen := rating.Seen(entries)
	candidates := make(map[int]struct{})
	for _, g := range top {
		for _, id := range r.ds.Catalog.MovieIDsByGenre(g) {
			if _, ok := seen[id]; ok {
				continue
			}
			candidates[id] = struct{}{}
		}
	}

	ids := make([]int, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	movies := make([]movie.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := r.ds.Catalog.ByID(id); ok {
			movies = append(movies, m)
		}
	}
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].AverageRating > movies[j].AverageRating
	})

	if len(movies) > limit {
		movies = movies[:limit]
	}
	return movies
}

type genreScore struct {
	genre string
	sum   float64
	count int
}

func (g genreScore) mean() float64 {
	return g.sum / float64(g.count)
}

// topGenres scores genres by the mean of the user's liked ratings and returns
// the best TopGenres, ties kept in first-accumulated order.
func (r *GenreRecommender) topGenres(entries []rating.Entry) []string {
	var scores []*genreScore
	byGenre := make(map[string]*genreScore)

	for _, e := range entries {
		if !e.Liked() {
			continue
		}
		m, ok := r.ds.Catalog.ByID(e.MovieID)
		if !ok {
			continue
		}
		for _, g := range m.Genres {
			s, ok := byGenre[g]
			if !ok {
				s = &genreScore{genre: g}
				byGenre[g] = s
				scores = append(scores, s)
			}
			s.sum += e.Value
			s.count++
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].mean() > scores[j].mean()
	})
	if len(scores) > TopGenres {
		scores = scores[:TopGenres]
	}

	genres := make([]string, len(scores))
	for i, s := range scores {
		genres[i] = s.genre
	}
	return genres
}
