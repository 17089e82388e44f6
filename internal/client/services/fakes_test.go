package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/client/client"
	"github.com/dmitrijs2005/skillswap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/skillswap/internal/client/session"
	"github.com/dmitrijs2005/skillswap/internal/swap"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`)
	require.NoError(t, err)
	return session.New(metadata.NewSQLiteRepository(db))
}

func loggedIn(t *testing.T, u api.User) *session.Session {
	t.Helper()
	s := newSession(t)
	require.NoError(t, s.Persist(context.Background(), u))
	return s
}

var (
	alice = api.User{ID: "u-1", Name: "Alice", Email: "alice@example.com", SkillsOffered: []string{"Python"}, IsPublic: true}
	bob   = api.User{ID: "u-2", Name: "Bob", Email: "Bob@Example.com", SkillsOffered: []string{"Guitar"}, IsPublic: true}
)

// fakeClient implements client.Client with canned results and captured
// arguments.
type fakeClient struct {
	users     []api.User
	searchErr error
	lastQuery client.UserQuery

	createUserRet api.User
	createUserErr error
	lastCreate    api.UserCreate

	getUserErr error

	updateUserRet api.User
	updateUserErr error
	lastUpdateID  string
	lastUpdate    api.UserUpdate

	createSwapRet   swap.Request
	createSwapErr   error
	lastRequesterID string
	lastSwapCreate  api.SwapRequestCreate

	updateSwapErr  error
	lastUpdateSwap struct {
		id      string
		status  swap.Status
		actorID string
	}
	updateSwapCalls int

	deleteSwapErr  error
	lastDelete     [2]string
	deleteCalls    int
	ratingErr      error
	lastRaterID    string
	lastRating     api.RatingCreate
	dashboards     []api.Dashboard
	dashboardErr   error
	dashboardCalls int

	skills        []string
	lastSkillsQ   string
	photoTarget   api.PhotoUpload
	photoURLErr   error
	uploadErr     error
	uploadedCT    string
	uploadedBytes []byte
	uploadedURL   string
	pingErr       error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) CreateUser(_ context.Context, in api.UserCreate) (api.User, error) {
	f.lastCreate = in
	return f.createUserRet, f.createUserErr
}

func (f *fakeClient) SearchUsers(_ context.Context, q client.UserQuery) ([]api.User, error) {
	f.lastQuery = q
	return f.users, f.searchErr
}

func (f *fakeClient) GetUser(_ context.Context, id string) (api.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	if f.getUserErr != nil {
		return api.User{}, f.getUserErr
	}
	return api.User{}, &client.APIError{Status: 404, Detail: "User not found"}
}

func (f *fakeClient) UpdateUser(_ context.Context, id string, in api.UserUpdate) (api.User, error) {
	f.lastUpdateID = id
	f.lastUpdate = in
	return f.updateUserRet, f.updateUserErr
}

func (f *fakeClient) CreateSwapRequest(_ context.Context, requesterID string, in api.SwapRequestCreate) (swap.Request, error) {
	f.lastRequesterID = requesterID
	f.lastSwapCreate = in
	return f.createSwapRet, f.createSwapErr
}

func (f *fakeClient) UpdateSwapRequest(_ context.Context, id string, st swap.Status, actorID string) (swap.Request, error) {
	f.updateSwapCalls++
	f.lastUpdateSwap.id, f.lastUpdateSwap.status, f.lastUpdateSwap.actorID = id, st, actorID
	return swap.Request{ID: id, Status: st}, f.updateSwapErr
}

func (f *fakeClient) DeleteSwapRequest(_ context.Context, id, actorID string) error {
	f.deleteCalls++
	f.lastDelete = [2]string{id, actorID}
	return f.deleteSwapErr
}

func (f *fakeClient) ListSwapRequests(context.Context, string) ([]swap.Request, error) {
	return nil, nil
}

// Dashboard returns the queued dashboards in order, repeating the last one.
func (f *fakeClient) Dashboard(_ context.Context, userID string) (api.Dashboard, error) {
	f.dashboardCalls++
	if f.dashboardErr != nil {
		return api.Dashboard{}, f.dashboardErr
	}
	if len(f.dashboards) == 0 {
		return api.Dashboard{User: api.User{ID: userID}}, nil
	}
	d := f.dashboards[0]
	if len(f.dashboards) > 1 {
		f.dashboards = f.dashboards[1:]
	}
	return d, nil
}

func (f *fakeClient) CreateRating(_ context.Context, raterID string, in api.RatingCreate) (api.Rating, error) {
	f.lastRaterID = raterID
	f.lastRating = in
	return api.Rating{ID: "rt-1", RaterID: raterID, Rating: in.Rating}, f.ratingErr
}

func (f *fakeClient) SearchSkills(_ context.Context, q string) ([]string, error) {
	f.lastSkillsQ = q
	return f.skills, nil
}

func (f *fakeClient) PhotoUploadURL(context.Context, string) (api.PhotoUpload, error) {
	return f.photoTarget, f.photoURLErr
}

func (f *fakeClient) UploadPhoto(_ context.Context, url, contentType string, data []byte) error {
	f.uploadedURL, f.uploadedCT, f.uploadedBytes = url, contentType, data
	return f.uploadErr
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
func (f *fakeClient) Close() error               { return nil }
