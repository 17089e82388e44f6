package services

import (
	"context"
	"database/sql"
	"math"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/ratings"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/swaprequests"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/users"
	"github.com/dmitrijs2005/skillswap/internal/swap"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func fixedIDs(t *testing.T, ids ...string) {
	t.Helper()
	orig := newID
	i := 0
	newID = func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
	t.Cleanup(func() { newID = orig })
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- fake repositories ---

type fakeUsersRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	err     error
	created *models.User
	rated   map[string]models.RatingSummary
	filter  models.UserFilter
	locked  []string
}

func newFakeUsers(us ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byID: map[string]*models.User{}, rated: map[string]models.RatingSummary{}}
	for _, u := range us {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.created = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) Lock(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	f.locked = append(f.locked, id)
	return nil
}

func (f *fakeUsersRepo) Search(_ context.Context, filter models.UserFilter) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter = filter
	out := make([]*models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, f.err
}

func (f *fakeUsersRepo) Update(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) SetRating(_ context.Context, id string, s models.RatingSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rated[id] = s
	return nil
}

func (f *fakeUsersRepo) SearchSkills(_ context.Context, q string) ([]string, error) {
	return []string{"q=" + q}, nil
}

type fakeSwapRepo struct {
	mu      sync.Mutex
	byID    map[string]*swap.Request
	listErr error
	updated *swap.Request
	deleted string
	locked  string
}

func newFakeSwaps(rs ...swap.Request) *fakeSwapRepo {
	f := &fakeSwapRepo{byID: map[string]*swap.Request{}}
	for i := range rs {
		r := rs[i]
		f.byID[r.ID] = &r
	}
	return f
}

func (f *fakeSwapRepo) Create(_ context.Context, r *swap.Request) (*swap.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeSwapRepo) GetByID(_ context.Context, id string) (*swap.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeSwapRepo) GetForUpdate(ctx context.Context, id string) (*swap.Request, error) {
	f.locked = id
	return f.GetByID(ctx, id)
}

func (f *fakeSwapRepo) ListByUser(_ context.Context, userID string) ([]swap.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []swap.Request{}
	for _, r := range f.byID {
		if r.RequesterID == userID || r.ReceiverID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSwapRepo) UpdateStatus(_ context.Context, r *swap.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = r
	f.byID[r.ID] = r
	return nil
}

func (f *fakeSwapRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = id
	delete(f.byID, id)
	return nil
}

type fakeRatingsRepo struct {
	mu   sync.Mutex
	all  []*models.Rating
	seen map[string]bool
}

func newFakeRatings() *fakeRatingsRepo {
	return &fakeRatingsRepo{seen: map[string]bool{}}
}

func (f *fakeRatingsRepo) Create(_ context.Context, r *models.Rating) (*models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := r.SwapRequestID + "/" + r.RaterID
	if f.seen[key] {
		return nil, common.ErrorAlreadyExists
	}
	f.seen[key] = true
	f.all = append(f.all, r)
	return r, nil
}

func (f *fakeRatingsRepo) list(match func(*models.Rating) bool) []*models.Rating {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Rating{}
	for _, r := range f.all {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeRatingsRepo) ListByRater(_ context.Context, id string) ([]*models.Rating, error) {
	return f.list(func(r *models.Rating) bool { return r.RaterID == id }), nil
}

func (f *fakeRatingsRepo) ListByRated(_ context.Context, id string) ([]*models.Rating, error) {
	return f.list(func(r *models.Rating) bool { return r.RatedUserID == id }), nil
}

func (f *fakeRatingsRepo) Summary(_ context.Context, id string) (models.RatingSummary, error) {
	rs := f.list(func(r *models.Rating) bool { return r.RatedUserID == id })
	if len(rs) == 0 {
		return models.RatingSummary{}, nil
	}
	sum := 0
	for _, r := range rs {
		sum += r.Value
	}
	avg := float64(sum) / float64(len(rs))
	return models.RatingSummary{Average: math.Round(avg*10) / 10, Count: len(rs)}, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSwapRepo
	r *fakeRatingsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository               { return m.u }
func (m *fakeRepoManager) SwapRequests(dbx.DBTX) swaprequests.Repository { return m.s }
func (m *fakeRepoManager) Ratings(dbx.DBTX) ratings.Repository           { return m.r }
