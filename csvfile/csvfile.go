// Package csvfile reads the MovieLens movies.csv and ratings.csv files.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"movierec/errs"
	"movierec/movie"
	"movierec/rating"
)

// Source loads records from a pair of CSV files on disk.
type Source struct {
	MoviesPath  string
	RatingsPath string
}

func (s Source) MovieRecords(ctx context.Context) ([]movie.Record, error) {
	var records []movie.Record
	err := readFile(ctx, s.MoviesPath, func(r io.Reader) error {
		var err error
		records, err = ReadMovies(r)
		return err
	})
	return records, err
}

func (s Source) RatingRecords(ctx context.Context) ([]rating.Record, error) {
	var records []rating.Record
	err := readFile(ctx, s.RatingsPath, func(r io.Reader) error {
		var err error
		records, err = ReadRatings(r)
		return err
	})
	return records, err
}

func readFile(ctx context.Context, path string, read func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return errs.Unavailable(path, err)
	}
	defer file.Close()

	if err := read(file); err != nil {
		return errs.Unavailable(path, err)
	}
	return nil
}

var movieColumns = []string{"movieId", "title", "genres"}

// ReadMovies parses a movies CSV with a movieId,title,genres header.
// Rows with a non-numeric id or missing columns are skipped.
func ReadMovies(r io.Reader) ([]movie.Record, error) {
	reader := newReader(r)

	idx, err := parseHeader(reader, movieColumns)
	if err != nil {
		return nil, err
	}

	var (
		records []movie.Record
		skipped int
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, ok := parseMovieRecord(row, idx)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		slog.Warn("skipped malformed movie rows", "count", skipped)
	}
	return records, nil
}

var ratingColumns = []string{"userId", "movieId", "rating"}

// ReadRatings parses a ratings CSV with a userId,movieId,rating header. Extra
// columns such as timestamp are ignored. Values off the rating scale, NaN
// included, count as malformed.
func ReadRatings(r io.Reader) ([]rating.Record, error) {
	reader := newReader(r)

	idx, err := parseHeader(reader, ratingColumns)
	if err != nil {
		return nil, err
	}

	var (
		records []rating.Record
		skipped int
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, ok := parseRatingRecord(row, idx)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		slog.Warn("skipped malformed rating rows", "count", skipped)
	}
	return records, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true
	return reader
}

// parseHeader returns the position of each required column, in order.
func parseHeader(reader *csv.Reader, required []string) ([]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}

	idx := make([]int, len(required))
	for i, name := range required {
		pos, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("missing required column %q in csv header", name)
		}
		idx[i] = pos
	}
	return idx, nil
}

func field(row []string, i int) (string, bool) {
	if i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

func parseMovieRecord(row []string, idx []int) (movie.Record, bool) {
	rawID, ok1 := field(row, idx[0])
	title, ok2 := field(row, idx[1])
	genres, ok3 := field(row, idx[2])
	if !ok1 || !ok2 || !ok3 {
		return movie.Record{}, false
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return movie.Record{}, false
	}
	return movie.Record{MovieID: id, Title: title, Genres: genres}, true
}

func parseRatingRecord(row []string, idx []int) (rating.Record, bool) {
	rawUser, ok1 := field(row, idx[0])
	rawMovie, ok2 := field(row, idx[1])
	rawValue, ok3 := field(row, idx[2])
	if !ok1 || !ok2 || !ok3 {
		return rating.Record{}, false
	}

	userID, err := strconv.Atoi(rawUser)
	if err != nil {
		return rating.Record{}, false
	}
	movieID, err := strconv.Atoi(rawMovie)
	if err != nil {
		return rating.Record{}, false
	}
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil || rating.ValidateValue(value) != nil {
		return rating.Record{}, false
	}
	return rating.Record{UserID: userID, MovieID: movieID, Value: value}, true
}
