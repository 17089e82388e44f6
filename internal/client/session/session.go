// Package session keeps track of who is using the CLI. The current user is
// persisted in the local metadata store so a restart resumes the session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/skillswap/internal/common"
)

const currentUserKey = "current_user"

// ErrCorrupt is returned by Restore when the stored user could not be
// decoded. The stored value has been removed by then.
var ErrCorrupt = errors.New("stored session is corrupt")

type Session struct {
	store metadata.Repository
	user  *api.User
}

func New(store metadata.Repository) *Session {
	return &Session{store: store}
}

// Restore loads the persisted user, if any.
func (s *Session) Restore(ctx context.Context) error {
	b, err := s.store.Get(ctx, currentUserKey)
	if errors.Is(err, common.ErrorNotFound) {
		s.user = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	var u api.User
	if err := json.Unmarshal(b, &u); err != nil || u.ID == "" {
		s.user = nil
		if delErr := s.store.Delete(ctx, currentUserKey); delErr != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, delErr)
		}
		return ErrCorrupt
	}

	s.user = &u
	return nil
}

// Persist makes u the current user and stores it.
func (s *Session) Persist(ctx context.Context, u api.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Set(ctx, currentUserKey, b); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.user = &u
	return nil
}

// Clear logs out. The in-memory user is dropped even if the store fails.
func (s *Session) Clear(ctx context.Context) error {
	s.user = nil
	if err := s.store.Delete(ctx, currentUserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Session) Current() (api.User, bool) {
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

func (s *Session) LoggedIn() bool {
	return s.user != nil
}

// UserID is the current user's id, or "" when logged out.
func (s *Session) UserID() string {
	if s.user == nil {
		return ""
	}
	return s.user.ID
}
