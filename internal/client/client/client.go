package client

import (
	"context"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/swap"
)

// UserQuery filters the user directory. Empty fields match everything.
type UserQuery struct {
	Skill      string
	Location   string
	PublicOnly bool
}

type Client interface {
	CreateUser(ctx context.Context, in api.UserCreate) (api.User, error)
	SearchUsers(ctx context.Context, q UserQuery) ([]api.User, error)
	GetUser(ctx context.Context, id string) (api.User, error)
	UpdateUser(ctx context.Context, id string, in api.UserUpdate) (api.User, error)

	CreateSwapRequest(ctx context.Context, requesterID string, in api.SwapRequestCreate) (swap.Request, error)
	UpdateSwapRequest(ctx context.Context, id string, status swap.Status, actorID string) (swap.Request, error)
	DeleteSwapRequest(ctx context.Context, id, actorID string) error
	ListSwapRequests(ctx context.Context, userID string) ([]swap.Request, error)

	Dashboard(ctx context.Context, userID string) (api.Dashboard, error)
	CreateRating(ctx context.Context, raterID string, in api.RatingCreate) (api.Rating, error)
	SearchSkills(ctx context.Context, query string) ([]string, error)

	PhotoUploadURL(ctx context.Context, userID string) (api.PhotoUpload, error)
	UploadPhoto(ctx context.Context, url, contentType string, data []byte) error

	Ping(ctx context.Context) error
	Close() error
}
