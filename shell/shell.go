// Package shell is the interactive terminal front end: it identifies the user
// and then loops over the main menu until the user exits or input ends.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"movierec/dataset"
	"movierec/movie"
	"movierec/rating"
	"movierec/recommend"
)

const (
	DefaultDisplayLimit   = 20
	DefaultRecommendLimit = recommend.DefaultLimit
	DefaultSimilarDepth   = 2
)

type Option func(s *Shell)

func WithDisplayLimit(n int) Option {
	return func(s *Shell) { s.displayLimit = n }
}

func WithRecommendLimit(n int) Option {
	return func(s *Shell) { s.recommendLimit = n }
}

func WithSimilarDepth(n int) Option {
	return func(s *Shell) { s.similarDepth = n }
}

type Shell struct {
	in  *bufio.Scanner
	out io.Writer

	movies    movie.Service
	ratings   *rating.Store
	byGenre   recommend.Recommender
	bySimilar *recommend.SimilarityRecommender
	validator *CustomValidator

	displayLimit   int
	recommendLimit int
	similarDepth   int

	userID int
}

func New(in io.Reader, out io.Writer, ds *dataset.Dataset, opts ...Option) *Shell {
	s := &Shell{
		in:             bufio.NewScanner(in),
		out:            out,
		movies:         movie.NewUsecase(ds.Catalog),
		ratings:        ds.Ratings,
		byGenre:        recommend.NewGenreRecommender(ds),
		bySimilar:      recommend.NewSimilarityRecommender(ds, recommend.DefaultSimilarityConfig()),
		validator:      NewValidator(),
		displayLimit:   DefaultDisplayLimit,
		recommendLimit: DefaultRecommendLimit,
		similarDepth:   DefaultSimilarDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserID is the identified user, 0 before identification.
func (s *Shell) UserID() int {
	return s.userID
}

// Run identifies the user and serves the main menu. End of input ends the
// session without error.
func (s *Shell) Run(ctx context.Context) error {
	err := s.run(ctx)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		return nil
	}
	return err
}

func (s *Shell) run(ctx context.Context) error {
	userID, err := s.identify()
	if err != nil {
		return err
	}
	s.userID = userID
	slog.Debug("session started", "user_id", userID)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		done, err := s.mainMenu(ctx)
		if err != nil || done {
			return err
		}
	}
}

// readLine prompts and returns the next input line, or io.EOF.
func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

func (s *Shell) println(a ...interface{}) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...interface{}) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Shell) identify() (int, error) {
	prompt := "Enter your user ID, or a new ID to create a profile: "
	if highest := s.ratings.MaxUserID(); highest > 0 {
		prompt = fmt.Sprintf("Enter your user ID (1-%d), or a new ID to create a profile: ", highest)
	}

	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}

		id, err := parseInt(line)
		if err != nil {
			s.println("--- ERROR: Invalid Input ---")
			s.println("Please enter a whole number.")
			continue
		}
		if err := s.validator.Validate(userRequest{UserID: id}); err != nil {
			s.println("User ID must be a positive number.")
			continue
		}

		created, err := s.ratings.EnsureUser(id)
		if err != nil {
			return 0, err
		}
		if created {
			s.printf("Welcome, new User %d! Your profile has been created.\n", id)
		} else {
			s.printf("Welcome back, User %d!\n", id)
		}
		return id, nil
	}
}

func (s *Shell) mainMenu(ctx context.Context) (bool, error) {
	s.println()
	s.println("--- Main Menu ---")
	s.println("1. Search for a movie")
	s.println("2. Rate a movie")
	s.println("3. Get movie recommendations")
	s.println("4. Exit")

	line, err := s.readLine("Enter your choice (1-4): ")
	if err != nil {
		return false, err
	}

	req := menuRequest{Choice: strings.TrimSpace(line)}
	if err := s.validator.Validate(req); err != nil {
		s.println("Invalid choice. Please enter a number between 1 and 4.")
		return false, nil
	}

	switch req.Choice {
	case "1":
		return false, s.searchMenu(ctx)
	case "2":
		return false, s.rateMovie(ctx)
	case "3":
		return false, s.recommendMenu()
	default:
		s.println("Thank you for using the movie recommender. Goodbye!")
		return true, nil
	}
}
