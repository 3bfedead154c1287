package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"movierec/rating"
)

// RatingModel represents the database model for ratings. A user holds at
// most one row per movie.
type RatingModel struct {
	UserID  int     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	MovieID int     `gorm:"column:movie_id;primaryKey;autoIncrement:false;index"`
	Rating  float64 `gorm:"column:rating;not null"`
}

// TableName specifies the table name for GORM
func (RatingModel) TableName() string {
	return "ratings"
}

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// All returns every rating row ordered by user then movie, matching the
// layout of the MovieLens ratings file.
func (r *RatingRepository) All(ctx context.Context) ([]rating.Record, error) {
	var models []RatingModel
	if err := r.db.WithContext(ctx).Order("user_id").Order("movie_id").Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]rating.Record, len(models))
	for i, m := range models {
		records[i] = rating.Record{UserID: m.UserID, MovieID: m.MovieID, Value: m.Rating}
	}
	return records, nil
}

// Import upserts records by (user id, movie id). A later record for the same
// pair overwrites an earlier one.
func (r *RatingRepository) Import(ctx context.Context, records []rating.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	type key struct{ user, movie int }
	pos := make(map[key]int, len(records))
	models := make([]RatingModel, 0, len(records))
	for _, rec := range records {
		k := key{rec.UserID, rec.MovieID}
		if i, ok := pos[k]; ok {
			models[i].Rating = rec.Value
			continue
		}
		pos[k] = len(models)
		models = append(models, RatingModel{UserID: rec.UserID, MovieID: rec.MovieID, Rating: rec.Value})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating"}),
		}).CreateInBatches(models, BatchSize).Error
	})
	if err != nil {
		return 0, err
	}
	return len(models), nil
}
