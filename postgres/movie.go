package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"movierec/movie"
)

// MovieModel represents the database model for movies.
type MovieModel struct {
	MovieID int    `gorm:"column:movie_id;primaryKey;autoIncrement:false"`
	Title   string `gorm:"not null"`
	Genres  string `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// All returns every movie row ordered by movie id.
func (r *MovieRepository) All(ctx context.Context) ([]movie.Record, error) {
	var models []MovieModel
	if err := r.db.WithContext(ctx).Order("movie_id").Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]movie.Record, len(models))
	for i, m := range models {
		records[i] = movie.Record{MovieID: m.MovieID, Title: m.Title, Genres: m.Genres}
	}
	return records, nil
}

// Import upserts records by movie id and returns the number of rows written.
func (r *MovieRepository) Import(ctx context.Context, records []movie.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	models := make([]MovieModel, len(records))
	for i, rec := range records {
		models[i] = MovieModel{MovieID: rec.MovieID, Title: rec.Title, Genres: rec.Genres}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "genres"}),
		}).CreateInBatches(models, BatchSize).Error
	})
	if err != nil {
		return 0, err
	}
	return len(models), nil
}
