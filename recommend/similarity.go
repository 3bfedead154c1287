package recommend

import (
	"sort"

	"movierec/dataset"
	"movierec/movie"
	"movierec/rating"
)

// SimilarityConfig tunes the user-similarity recommender.
type SimilarityConfig struct {
	// MinSimilarity is the Jaccard score a neighbour must exceed.
	MinSimilarity float64
	// MaxNeighbors caps how many neighbours contribute candidates.
	MaxNeighbors int
	// DiscoveryThreshold is the Jaccard score SimilarUsers requires at each hop.
	DiscoveryThreshold float64
	// DiscoveryDepth is the default number of hops for SimilarUsers.
	DiscoveryDepth int
}

func DefaultSimilarityConfig() SimilarityConfig {
	return SimilarityConfig{
		MinSimilarity:      0.1,
		MaxNeighbors:       10,
		DiscoveryThreshold: 0.3,
		DiscoveryDepth:     2,
	}
}

// SimilarityRecommender suggests movies liked by the users whose liked sets
// overlap most with the target user's.
type SimilarityRecommender struct {
	ds  *dataset.Dataset
	cfg SimilarityConfig
}

func NewSimilarityRecommender(ds *dataset.Dataset, cfg SimilarityConfig) *SimilarityRecommender {
	return &SimilarityRecommender{ds: ds, cfg: cfg}
}

func (r *SimilarityRecommender) Name() string {
	return "similarity"
}

func (r *SimilarityRecommender) Config() SimilarityConfig {
	return r.cfg
}

type neighbor struct {
	userID     int
	similarity float64
}

func (r *SimilarityRecommender) Recommend(userID, limit int) []movie.Movie {
	limit = limitOrDefault(limit)
	snap := r.ds.Ratings.Snapshot()

	target := snap.Entries(userID)
	liked := rating.Liked(target)
	if len(liked) == 0 {
		return nil
	}

	neighbors := r.neighbors(snap, userID, liked)
	if len(neighbors) == 0 {
		return nil
	}

	seen := rating.Seen(target)
	contributions := make(map[int][]float64)
	for _, n := range neighbors {
		for _, e := range snap.Entries(n.userID) {
			if !e.Liked() {
				continue
			}
			if _, ok := seen[e.MovieID]; ok {
				continue
			}
			contributions[e.MovieID] = append(contributions[e.MovieID], n.similarity*e.Value)
		}
	}

	type scored struct {
		movie movie.Movie
		score float64
	}
	ids := make([]int, 0, len(contributions))
	for id := range contributions {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	candidates := make([]scored, 0, len(ids))
	for _, id := range ids {
		m, ok := r.ds.Catalog.ByID(id)
		if !ok {
			continue
		}
		candidates = append(candidates, scored{movie: m, score: mean(contributions[id])})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	movies := make([]movie.Movie, len(candidates))
	for i, c := range candidates {
		movies[i] = c.movie
	}
	return movies
}

// neighbors returns the most similar other users, best first, ties in store order.
func (r *SimilarityRecommender) neighbors(snap *rating.Snapshot, userID int, liked map[int]struct{}) []neighbor {
	var out []neighbor
	for _, other := range snap.Users() {
		if other == userID {
			continue
		}
		sim := Jaccard(liked, rating.Liked(snap.Entries(other)))
		if sim > r.cfg.MinSimilarity {
			out = append(out, neighbor{userID: other, similarity: sim})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].similarity > out[j].similarity
	})
	if len(out) > r.cfg.MaxNeighbors {
		out = out[:r.cfg.MaxNeighbors]
	}
	return out
}

// SimilarUsers walks the similar-user graph from userID for at most depth hops
// and returns every user reached, in ascending order. The origin is never
// included and no user is expanded twice. A non-positive depth finds nobody.
func (r *SimilarityRecommender) SimilarUsers(userID, depth int) []int {
	snap := r.ds.Ratings.Snapshot()
	visited := make(map[int]struct{})

	found := r.discover(snap, userID, depth, visited)

	out := make([]int, 0, len(found))
	for id := range found {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func (r *SimilarityRecommender) discover(snap *rating.Snapshot, userID, depth int, visited map[int]struct{}) map[int]struct{} {
	found := make(map[int]struct{})
	if depth <= 0 {
		return found
	}
	visited[userID] = struct{}{}

	liked := rating.Liked(snap.Entries(userID))
	var similar []int
	for _, other := range snap.Users() {
		if other == userID {
			continue
		}
		if _, ok := visited[other]; ok {
			continue
		}
		otherLiked := rating.Liked(snap.Entries(other))
		if len(liked) == 0 || len(otherLiked) == 0 {
			continue
		}
		if Jaccard(liked, otherLiked) >= r.cfg.DiscoveryThreshold {
			similar = append(similar, other)
			found[other] = struct{}{}
		}
	}

	for _, friend := range similar {
		for id := range r.discover(snap, friend, depth-1, visited) {
			found[id] = struct{}{}
		}
	}
	return found
}

func mean(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
