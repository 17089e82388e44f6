package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/skillswap/internal/swap"
)

// SwapService is the swap request store.
type SwapService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSwapService(db *sql.DB, m repomanager.RepositoryManager) *SwapService {
	return &SwapService{db: db, repomanager: m}
}

// SwapDraft is what a requester submits.
type SwapDraft struct {
	ReceiverID     string
	RequesterSkill string
	ReceiverSkill  string
	Message        string
}

// Create stores a new pending request from requesterID. Both users must
// exist and differ.
func (s *SwapService) Create(ctx context.Context, requesterID string, d SwapDraft) (*swap.Request, error) {
	if requesterID == d.ReceiverID {
		return nil, common.WithDetail(common.ErrorInvalidArgument, "Cannot send swap request to yourself")
	}

	users := s.repomanager.Users(s.db)
	if _, err := users.GetByID(ctx, requesterID); err != nil {
		return nil, participantError(err, "Requester not found")
	}
	if _, err := users.GetByID(ctx, d.ReceiverID); err != nil {
		return nil, participantError(err, "Receiver not found")
	}

	r := swap.New(requesterID, d.ReceiverID, d.RequesterSkill, d.ReceiverSkill, d.Message)
	r.ID = newID()

	created, err := s.repomanager.SwapRequests(s.db).Create(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("error creating swap request: %w", err)
	}
	return created, nil
}

// ListByUser returns the requests the user sent or received, newest first.
func (s *SwapService) ListByUser(ctx context.Context, userID string) ([]swap.Request, error) {
	return s.repomanager.SwapRequests(s.db).ListByUser(ctx, userID)
}

// UpdateStatus applies the receiver's decision. The row stays locked between
// the read and the write so two concurrent decisions cannot both succeed.
func (s *SwapService) UpdateStatus(ctx context.Context, id string, decision swap.Status, actorID string) (*swap.Request, error) {
	var result *swap.Request
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.SwapRequests(tx)

		r, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return requestLookupError(err)
		}
		if err := swap.Respond(r, decision, actorID); err != nil {
			return err
		}
		if err := repo.UpdateStatus(ctx, r); err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete withdraws a pending request.
func (s *SwapService) Delete(ctx context.Context, id, actorID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.SwapRequests(tx)

		r, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return requestLookupError(err)
		}
		if err := swap.CanWithdraw(*r, actorID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func participantError(err error, detail string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.WithDetail(err, detail)
	}
	return err
}

func requestLookupError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.WithDetail(err, "Swap request not found")
	}
	return err
}
