package ratings

import (
	"context"
	"fmt"
	"math"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

const ratingColumns = `id, swap_request_id, rater_id, rated_user_id, rating, comment, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create fails with common.ErrorAlreadyExists when the rater already rated
// this swap.
func (p *PostgresRepository) Create(ctx context.Context, r *models.Rating) (*models.Rating, error) {
	query :=
		`INSERT INTO ratings (id, swap_request_id, rater_id, rated_user_id, rating, comment)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`

	err := p.db.QueryRowContext(ctx, query,
		r.ID, r.SwapRequestID, r.RaterID, r.RatedUserID, r.Value, r.Comment).Scan(&r.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r, nil
}

func (p *PostgresRepository) ListByRater(ctx context.Context, raterID string) ([]*models.Rating, error) {
	return p.list(ctx, `SELECT `+ratingColumns+` FROM ratings WHERE rater_id = $1 ORDER BY created_at DESC`, raterID)
}

func (p *PostgresRepository) ListByRated(ctx context.Context, ratedUserID string) ([]*models.Rating, error) {
	return p.list(ctx, `SELECT `+ratingColumns+` FROM ratings WHERE rated_user_id = $1 ORDER BY created_at DESC`, ratedUserID)
}

func (p *PostgresRepository) list(ctx context.Context, query, arg string) ([]*models.Rating, error) {
	rows, err := p.db.QueryContext(ctx, query, arg)
	if err != nil {
		if dbx.IsInvalidText(err) {
			return []*models.Rating{}, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Rating, 0)
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.SwapRequestID, &r.RaterID, &r.RatedUserID, &r.Value,
			&r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Summary averages every rating the user received, rounded to one decimal.
func (p *PostgresRepository) Summary(ctx context.Context, ratedUserID string) (models.RatingSummary, error) {
	var (
		avg   float64
		count int
	)
	err := p.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*) FROM ratings WHERE rated_user_id = $1`,
		ratedUserID).Scan(&avg, &count)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("db error: %w", err)
	}
	return models.RatingSummary{Average: math.Round(avg*10) / 10, Count: count}, nil
}
