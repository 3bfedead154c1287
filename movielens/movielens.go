// Package movielens fetches the MovieLens "latest small" archive and extracts
// the movies and ratings files from it.
package movielens

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"
)

const (
	DefaultURL  = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"
	MoviesFile  = "movies.csv"
	RatingsFile = "ratings.csv"
)

var ErrMissingFile = errors.New("movielens: file not found in archive")

// Files holds the paths of the extracted CSV files.
type Files struct {
	Movies  string
	Ratings string
}

// Client downloads archives over HTTP.
type Client struct {
	HTTP *http.Client
}

func NewClient() *Client {
	return &Client{HTTP: &http.Client{Timeout: 60 * time.Second}}
}

// Download fetches the archive at url into dir and extracts movies.csv and
// ratings.csv next to it.
func Download(ctx context.Context, url, dir string) (Files, error) {
	return NewClient().Download(ctx, url, dir)
}

func (c *Client) Download(ctx context.Context, url, dir string) (Files, error) {
	if url == "" {
		return Files{}, errors.New("dataset url is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Files{}, err
	}

	zipPath := filepath.Join(dir, "dataset.zip")
	if err := c.downloadFile(ctx, url, zipPath); err != nil {
		return Files{}, err
	}
	defer os.Remove(zipPath)

	extracted, err := extract(zipPath, dir, MoviesFile, RatingsFile)
	if err != nil {
		return Files{}, err
	}

	slog.Info("movielens dataset downloaded", "url", url, "dir", dir)
	return Files{Movies: extracted[MoviesFile], Ratings: extracted[RatingsFile]}, nil
}

func (c *Client) downloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

// extract copies the named archive members, matched by base name, into destDir.
func extract(zipPath, destDir string, names ...string) (map[string]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	found := make(map[string]string, len(names))
	for _, file := range r.File {
		base := path.Base(file.Name)
		if !wanted[base] || found[base] != "" {
			continue
		}

		destPath := filepath.Join(destDir, base)
		if err := copyMember(file, destPath); err != nil {
			return nil, err
		}
		found[base] = destPath
	}

	for _, n := range names {
		if found[n] == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, n)
		}
	}
	return found, nil
}

func copyMember(file *zip.File, destPath string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
