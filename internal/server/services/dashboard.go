package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/skillswap/internal/swap"
	"golang.org/x/sync/errgroup"
)

// Dashboard is one user's requests, split by role, and their ratings.
type Dashboard struct {
	User            *models.User
	Requests        swap.Partition
	RatingsGiven    []*models.Rating
	RatingsReceived []*models.Rating
}

type DashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDashboardService(db *sql.DB, m repomanager.RepositoryManager) *DashboardService {
	return &DashboardService{db: db, repomanager: m}
}

// Get loads the four parts concurrently. The first failure cancels the rest.
func (s *DashboardService) Get(ctx context.Context, userID string) (*Dashboard, error) {
	var (
		d        Dashboard
		requests []swap.Request
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
		if err != nil {
			return userLookupError(err)
		}
		d.User = u
		return nil
	})
	g.Go(func() error {
		var err error
		requests, err = s.repomanager.SwapRequests(s.db).ListByUser(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		d.RatingsGiven, err = s.repomanager.Ratings(s.db).ListByRater(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		d.RatingsReceived, err = s.repomanager.Ratings(s.db).ListByRated(ctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.Requests = swap.ListFor(userID, requests)
	return &d, nil
}
