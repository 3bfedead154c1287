package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"movierec/errs"
	"movierec/movie"
)

func (s *Shell) searchMenu(ctx context.Context) error {
	s.println()
	s.println("--- Search Menu ---")
	s.println("t. Search by Title")
	s.println("g. Search by Genre")

	line, err := s.readLine("Enter choice (t/g): ")
	if err != nil {
		return err
	}

	req := searchRequest{Mode: strings.ToLower(strings.TrimSpace(line))}
	if err := s.validator.Validate(req); err != nil {
		s.println("Invalid choice.")
		return nil
	}

	if req.Mode == "t" {
		return s.searchByTitle(ctx)
	}
	return s.searchByGenre(ctx)
}

func (s *Shell) searchByTitle(ctx context.Context) error {
	query, err := s.readLine("Enter movie title to search for: ")
	if err != nil {
		return err
	}

	results, err := s.movies.Search(ctx, query, s.displayLimit)
	if errs.ErrorCode(err) == errs.EINVALID {
		return nil
	}
	if err != nil {
		return err
	}

	s.printMovies(results, "Search Results")
	return nil
}

func (s *Shell) searchByGenre(ctx context.Context) error {
	query, err := s.readLine("Enter genre to search for: ")
	if err != nil {
		return err
	}
	query = strings.TrimSpace(query)

	results, err := s.movies.TopInGenre(ctx, query, s.displayLimit)
	if err != nil && errs.ErrorCode(err) != errs.EINVALID {
		return err
	}
	if len(results) == 0 {
		s.println("--- No Results ---")
		s.printf("No movies found for genre: '%s'\n", query)
		return nil
	}

	s.printMovies(results, fmt.Sprintf("Top-Rated Movies in '%s'", canonicalGenre(results[0], query)))
	return nil
}

// canonicalGenre returns the catalog spelling of query as found on m.
func canonicalGenre(m movie.Movie, query string) string {
	for _, g := range m.Genres {
		if strings.EqualFold(g, query) {
			return g
		}
	}
	return query
}

func (s *Shell) rateMovie(ctx context.Context) error {
	title, err := s.readLine("Enter the EXACT movie title you want to rate: ")
	if err != nil {
		return err
	}

	m, err := s.movies.FindByTitle(ctx, title)
	if errors.Is(err, movie.ErrMovieNotFound) || errs.ErrorCode(err) == errs.EINVALID {
		s.println("--- ERROR: Movie Not Found ---")
		s.printf("No movie found with the exact title: '%s'\n", strings.ToLower(strings.TrimSpace(title)))
		return nil
	}
	if err != nil {
		return err
	}

	for {
		line, err := s.readLine(fmt.Sprintf("Enter your rating for %s (0.5 - 5.0): ", m.Title))
		if err != nil {
			return err
		}

		value, err := parseFloat(line)
		if err != nil {
			s.println("--- ERROR: Invalid Input ---")
			s.println("Please enter a number (e.g., 3.5 or 4).")
			continue
		}
		if err := s.validator.Validate(rateRequest{Value: value}); err != nil {
			s.println("Invalid rating. Please enter a number between 0.5 and 5.0.")
			continue
		}

		if err := s.ratings.Rate(s.userID, m.MovieID, value); err != nil {
			return err
		}
		s.printf("Rating for %s saved as %s!\n", m.Title, formatRating(value))
		return nil
	}
}

func formatRating(v float64) string {
	if v == float64(int(v)) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *Shell) recommendMenu() error {
	s.println()
	s.println("--- Get Recommendations ---")
	s.println("g. By your favorite genres")
	s.println("u. Based on users similar to you")
	s.println("s. Show users with similar taste")

	line, err := s.readLine("Enter choice (g/u/s): ")
	if err != nil {
		return err
	}

	req := recommendRequest{Mode: strings.ToLower(strings.TrimSpace(line))}
	if err := s.validator.Validate(req); err != nil {
		s.println("Invalid choice.")
		return nil
	}

	switch req.Mode {
	case "g":
		s.printMovies(s.byGenre.Recommend(s.userID, s.recommendLimit), "Your Recommendations")
	case "u":
		s.printMovies(s.bySimilar.Recommend(s.userID, s.recommendLimit), "Your Recommendations")
	default:
		s.printSimilarUsers(s.bySimilar.SimilarUsers(s.userID, s.similarDepth))
	}
	return nil
}

func (s *Shell) printMovies(movies []movie.Movie, title string) {
	s.println()
	s.printf("--- %s ---\n", title)
	if len(movies) == 0 {
		s.println("Sorry, no movies found for your request.")
		s.println("Try rating more movies (especially 4.0+) to improve results.")
		return
	}

	if len(movies) > s.displayLimit {
		movies = movies[:s.displayLimit]
	}
	for i, m := range movies {
		s.printf("%d. %s\n", i+1, m)
	}
}

func (s *Shell) printSimilarUsers(ids []int) {
	s.println()
	s.println("--- Users With Similar Taste ---")
	if len(ids) == 0 {
		s.println("No users with similar taste found yet.")
		s.println("Try rating more movies (especially 4.0+) to improve results.")
		return
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	s.printf("Found %d user(s): %s\n", len(ids), strings.Join(parts, ", "))
}
