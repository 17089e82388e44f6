// Package services contains the server-side business logic: the user
// directory, the swap request store, ratings, the dashboard and profile
// photo storage. Services compose repositories obtained from a
// repomanager.RepositoryManager, inside dbx.WithTx where several writes must
// agree.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// newID is replaced in tests.
var newID = uuid.NewString

// UserService is the user directory.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Create registers a new active user. Emails are unique regardless of case.
func (s *UserService) Create(ctx context.Context, u models.User) (*models.User, error) {
	u.ID = newID()
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.SkillsOffered = common.NormalizeSkills(u.SkillsOffered)
	u.SkillsWanted = common.NormalizeSkills(u.SkillsWanted)
	u.Status = models.UserStatusActive

	created, err := s.repomanager.Users(s.db).Create(ctx, &u)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.WithDetail(err, "Email already registered")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}
	return u, nil
}

func (s *UserService) Search(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	filter.Skill = strings.TrimSpace(filter.Skill)
	filter.Location = strings.TrimSpace(filter.Location)
	return s.repomanager.Users(s.db).Search(ctx, filter)
}

// Update changes only the fields set in patch.
func (s *UserService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	u, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}

	patch.Apply(u)
	u.SkillsOffered = common.NormalizeSkills(u.SkillsOffered)
	u.SkillsWanted = common.NormalizeSkills(u.SkillsWanted)

	updated, err := repo.Update(ctx, u)
	if err != nil {
		return nil, userLookupError(err)
	}
	return updated, nil
}

// SearchSkills lists distinct offered skills containing query.
func (s *UserService) SearchSkills(ctx context.Context, query string) ([]string, error) {
	return s.repomanager.Users(s.db).SearchSkills(ctx, strings.TrimSpace(query))
}

func userLookupError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.WithDetail(err, "User not found")
	}
	return err
}
