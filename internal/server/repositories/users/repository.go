package users

import (
	"context"

	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Lock holds the user's row until the surrounding transaction ends.
	Lock(ctx context.Context, id string) error
	Search(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	SetRating(ctx context.Context, id string, summary models.RatingSummary) error
	SearchSkills(ctx context.Context, query string) ([]string, error)
}
