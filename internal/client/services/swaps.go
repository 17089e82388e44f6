package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/client/client"
	"github.com/dmitrijs2005/skillswap/internal/client/models"
	"github.com/dmitrijs2005/skillswap/internal/client/session"
	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/swap"
)

// Board is the dashboard as the CLI shows it.
type Board struct {
	User            api.User
	Requests        swap.Partition
	RatingsGiven    []api.Rating
	RatingsReceived []api.Rating
}

// Find looks a request up in either list.
func (b Board) Find(id string) (swap.Request, bool) {
	for _, list := range [][]swap.Request{b.Requests.Received, b.Requests.Sent} {
		for _, r := range list {
			if r.ID == id {
				return r, true
			}
		}
	}
	return swap.Request{}, false
}

// Rated reports whether the board's user has already rated request id.
func (b Board) Rated(id string) bool {
	for _, rt := range b.RatingsGiven {
		if rt.SwapRequestID == id {
			return true
		}
	}
	return false
}

// SwapService sends and resolves swap requests for the session user.
//
// Every mutation is followed by a dashboard reload; the returned Board is
// the reloaded one. If only the reload fails the error wraps ErrRefresh and
// the previous Board is returned.
type SwapService interface {
	Send(ctx context.Context, draft models.DraftRequest) (swap.Request, Board, error)
	Respond(ctx context.Context, requestID string, decision swap.Status) (Board, error)
	Withdraw(ctx context.Context, requestID string) (Board, error)
	Rate(ctx context.Context, requestID string, score int, comment string) (Board, error)
	Dashboard(ctx context.Context, userID string) (Board, error)
}

type swapService struct {
	client  client.Client
	session *session.Session

	mu   sync.Mutex
	last Board
}

func NewSwapService(c client.Client, s *session.Session) SwapService {
	return &swapService{client: c, session: s}
}

func (s *swapService) Dashboard(ctx context.Context, userID string) (Board, error) {
	d, err := s.client.Dashboard(ctx, userID)
	if err != nil {
		return Board{}, err
	}

	b := Board{
		User: d.User,
		Requests: swap.Partition{
			Received: nonNil(d.ReceivedRequests),
			Sent:     nonNil(d.SentRequests),
		},
		RatingsGiven:    d.RatingsGiven,
		RatingsReceived: d.RatingsReceived,
	}

	s.mu.Lock()
	s.last = b
	s.mu.Unlock()
	return b, nil
}

func (s *swapService) Send(ctx context.Context, draft models.DraftRequest) (swap.Request, Board, error) {
	me := s.session.UserID()
	if me == "" {
		return swap.Request{}, Board{}, ErrNotLoggedIn
	}

	payload, err := draft.Payload()
	if err != nil {
		return swap.Request{}, Board{}, err
	}
	if payload.ReceiverID == me {
		return swap.Request{}, Board{}, common.WithDetail(common.ErrorInvalidArgument, "Cannot send swap request to yourself")
	}

	r, err := s.client.CreateSwapRequest(ctx, me, payload)
	if err != nil {
		return swap.Request{}, Board{}, err
	}

	b, err := s.refresh(ctx, me)
	return r, b, err
}

func (s *swapService) Respond(ctx context.Context, requestID string, decision swap.Status) (Board, error) {
	me := s.session.UserID()
	if me == "" {
		return Board{}, ErrNotLoggedIn
	}

	r, err := s.known(ctx, me, requestID)
	if err != nil {
		return Board{}, err
	}
	if err := swap.Respond(&r, decision, me); err != nil {
		return Board{}, err
	}

	if _, err := s.client.UpdateSwapRequest(ctx, requestID, decision, me); err != nil {
		return Board{}, err
	}
	return s.refresh(ctx, me)
}

func (s *swapService) Withdraw(ctx context.Context, requestID string) (Board, error) {
	me := s.session.UserID()
	if me == "" {
		return Board{}, ErrNotLoggedIn
	}

	r, err := s.known(ctx, me, requestID)
	if err != nil {
		return Board{}, err
	}
	if err := swap.CanWithdraw(r, me); err != nil {
		return Board{}, err
	}

	if err := s.client.DeleteSwapRequest(ctx, requestID, me); err != nil {
		return Board{}, err
	}
	return s.refresh(ctx, me)
}

// Rate leaves feedback for the other participant of an accepted swap.
func (s *swapService) Rate(ctx context.Context, requestID string, score int, comment string) (Board, error) {
	me := s.session.UserID()
	if me == "" {
		return Board{}, ErrNotLoggedIn
	}
	if score < 1 || score > 5 {
		return Board{}, common.WithDetail(common.ErrorInvalidArgument, "Rating must be between 1 and 5")
	}

	r, err := s.known(ctx, me, requestID)
	if err != nil {
		return Board{}, err
	}
	if r.Status != swap.StatusAccepted {
		return Board{}, common.WithDetail(swap.ErrInvalidStateTransition, "Only accepted swaps can be rated")
	}

	rated := r.ReceiverID
	if rated == me {
		rated = r.RequesterID
	}

	_, err = s.client.CreateRating(ctx, me, api.RatingCreate{
		SwapRequestID: r.ID,
		RatedUserID:   rated,
		Rating:        score,
		Comment:       comment,
	})
	if err != nil {
		return Board{}, err
	}
	return s.refresh(ctx, me)
}

// known returns the request as last seen on the dashboard, loading the
// dashboard once if the request is not there.
func (s *swapService) known(ctx context.Context, me, requestID string) (swap.Request, error) {
	s.mu.Lock()
	b := s.last
	s.mu.Unlock()

	if b.User.ID == me {
		if r, ok := b.Find(requestID); ok {
			return r, nil
		}
	}

	b, err := s.Dashboard(ctx, me)
	if err != nil {
		return swap.Request{}, err
	}
	if r, ok := b.Find(requestID); ok {
		return r, nil
	}
	return swap.Request{}, ErrUnknownRequest
}

func (s *swapService) refresh(ctx context.Context, me string) (Board, error) {
	b, err := s.Dashboard(ctx, me)
	if err != nil {
		s.mu.Lock()
		prev := s.last
		s.mu.Unlock()
		return prev, fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return b, nil
}

func nonNil(rs []swap.Request) []swap.Request {
	if rs == nil {
		return []swap.Request{}
	}
	return rs
}
