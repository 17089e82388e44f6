package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/skillswap/internal/swap"
)

type RatingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRatingService(db *sql.DB, m repomanager.RepositoryManager) *RatingService {
	return &RatingService{db: db, repomanager: m}
}

// Create records raterID's rating of the other participant of an accepted
// swap and refreshes the rated user's average and count in the same
// transaction.
func (s *RatingService) Create(ctx context.Context, raterID string, in models.Rating) (*models.Rating, error) {
	in.ID = newID()
	in.RaterID = raterID

	var created *models.Rating
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r, err := s.repomanager.SwapRequests(tx).GetByID(ctx, in.SwapRequestID)
		if err != nil {
			return requestLookupError(err)
		}

		if r.Status != swap.StatusAccepted {
			return common.WithDetail(common.ErrorInvalidArgument, "Only accepted swaps can be rated")
		}

		var other string
		switch raterID {
		case r.RequesterID:
			other = r.ReceiverID
		case r.ReceiverID:
			other = r.RequesterID
		default:
			return common.WithDetail(swap.ErrForbidden, "Only participants can rate a swap")
		}
		if in.RatedUserID != other {
			return common.WithDetail(common.ErrorInvalidArgument, "Rated user must be the other participant")
		}

		// Ratings of the same user are serialized on the user's row so each
		// summary includes every committed rating.
		users := s.repomanager.Users(tx)
		if err := users.Lock(ctx, in.RatedUserID); err != nil {
			return err
		}

		ratings := s.repomanager.Ratings(tx)
		created, err = ratings.Create(ctx, &in)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.WithDetail(err, "You have already rated this swap")
			}
			return err
		}

		summary, err := ratings.Summary(ctx, in.RatedUserID)
		if err != nil {
			return err
		}
		return users.SetRating(ctx, in.RatedUserID, summary)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
