package movie

import (
	"context"
	"strings"
)

type Service interface {
	Search(ctx context.Context, query string, limit int) ([]Movie, error)
	TopInGenre(ctx context.Context, genre string, limit int) ([]Movie, error)
	FindByTitle(ctx context.Context, title string) (Movie, error)
}

type Repository interface {
	SearchTitle(ctx context.Context, query string) ([]Movie, error)
	TopInGenre(ctx context.Context, genre string) ([]Movie, error)
	FindTitle(ctx context.Context, title string) (Movie, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// Search matches titles by substring. A non-positive limit returns every match.
func (uc *Usecase) Search(ctx context.Context, query string, limit int) ([]Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	movies, err := uc.r.SearchTitle(ctx, query)
	if err != nil {
		return nil, err
	}
	return truncate(movies, limit), nil
}

func (uc *Usecase) TopInGenre(ctx context.Context, genre string, limit int) ([]Movie, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return nil, ErrInvalidQuery
	}

	movies, err := uc.r.TopInGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	return truncate(movies, limit), nil
}

func (uc *Usecase) FindByTitle(ctx context.Context, title string) (Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Movie{}, ErrInvalidQuery
	}
	return uc.r.FindTitle(ctx, title)
}

func truncate(movies []Movie, limit int) []Movie {
	if limit > 0 && len(movies) > limit {
		return movies[:limit]
	}
	return movies
}
