package ratings

import (
	"context"

	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.Rating) (*models.Rating, error)
	ListByRater(ctx context.Context, raterID string) ([]*models.Rating, error)
	ListByRated(ctx context.Context, ratedUserID string) ([]*models.Rating, error)
	Summary(ctx context.Context, ratedUserID string) (models.RatingSummary, error)
}
