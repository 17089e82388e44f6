package swaprequests

import (
	"context"

	"github.com/dmitrijs2005/skillswap/internal/swap"
)

type Repository interface {
	Create(ctx context.Context, r *swap.Request) (*swap.Request, error)
	GetByID(ctx context.Context, id string) (*swap.Request, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (*swap.Request, error)
	ListByUser(ctx context.Context, userID string) ([]swap.Request, error)
	UpdateStatus(ctx context.Context, r *swap.Request) error
	Delete(ctx context.Context, id string) error
}
