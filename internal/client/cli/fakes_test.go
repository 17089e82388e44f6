package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/client/config"
	"github.com/dmitrijs2005/skillswap/internal/client/models"
	"github.com/dmitrijs2005/skillswap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/skillswap/internal/client/services"
	"github.com/dmitrijs2005/skillswap/internal/client/session"
	"github.com/dmitrijs2005/skillswap/internal/logging"
	"github.com/dmitrijs2005/skillswap/internal/swap"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var (
	alice = api.User{ID: "u-1", Name: "Alice", Email: "alice@example.com", SkillsOffered: []string{"Python"}, SkillsWanted: []string{"Guitar"}, IsPublic: true}
	bob   = api.User{ID: "u-2", Name: "Bob", Email: "bob@example.com", Location: "Riga", SkillsOffered: []string{"Guitar", "Piano"}, IsPublic: true}
)

func newStore(t *testing.T) metadata.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`)
	require.NoError(t, err)
	return metadata.NewSQLiteRepository(db)
}

type testApp struct {
	*App
	out   *bytes.Buffer
	dir   *fakeDirectory
	swaps *fakeSwaps
}

// newTestApp builds an App reading input from the given lines. A non-nil
// user is logged in before the App is returned.
func newTestApp(t *testing.T, user *api.User, lines ...string) *testApp {
	t.Helper()
	s := session.New(newStore(t))
	if user != nil {
		require.NoError(t, s.Persist(context.Background(), *user))
	}

	dir := &fakeDirectory{session: s, users: []api.User{alice, bob}}
	sw := &fakeSwaps{}
	out := &bytes.Buffer{}

	in := strings.Join(lines, "\n")
	if in != "" {
		in += "\n"
	}
	cfg := &config.Config{}
	a := newApp(cfg, logging.NewConsoleLogger(io.Discard, logging.LevelWarn), s, dir, sw, strings.NewReader(in), out)
	return &testApp{App: a, out: out, dir: dir, swaps: sw}
}

func (ta *testApp) run(t *testing.T, line string) {
	t.Helper()
	fields := strings.Fields(line)
	require.NoError(t, ta.Dispatch(context.Background(), fields[0], fields[1:]))
}

// output returns what was printed since the last call.
func (ta *testApp) output() string {
	s := ta.out.String()
	ta.out.Reset()
	return s
}

// fakeDirectory keeps the session in step the way the real service does.
type fakeDirectory struct {
	session *session.Session
	users   []api.User

	registerErr  error
	lastRegister *api.UserCreate
	loginErr     error

	searchRet  []api.User
	searchErr  error
	lastSearch [3]string

	updateErr  error
	lastUpdate *api.UserUpdate

	photoErr  error
	lastPhoto string

	skills []string

	pingMu  sync.Mutex
	pingErr error
}

var _ services.DirectoryService = (*fakeDirectory)(nil)

func (f *fakeDirectory) Register(ctx context.Context, in api.UserCreate) (api.User, error) {
	f.lastRegister = &in
	if f.registerErr != nil {
		return api.User{}, f.registerErr
	}
	u := api.User{ID: "u-new", Name: in.Name, Email: in.Email, SkillsOffered: in.SkillsOffered, SkillsWanted: in.SkillsWanted, IsPublic: *in.IsPublic}
	return u, f.session.Persist(ctx, u)
}

func (f *fakeDirectory) Login(ctx context.Context, email string) (api.User, error) {
	if f.loginErr != nil {
		return api.User{}, f.loginErr
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, f.session.Persist(ctx, u)
		}
	}
	return api.User{}, services.ErrUserNotFound
}

func (f *fakeDirectory) Logout(ctx context.Context) error {
	return f.session.Clear(ctx)
}

func (f *fakeDirectory) Search(_ context.Context, skill, location, excludeID string) ([]api.User, error) {
	f.lastSearch = [3]string{skill, location, excludeID}
	return f.searchRet, f.searchErr
}

func (f *fakeDirectory) Get(_ context.Context, id string) (api.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return api.User{}, services.ErrUserNotFound
}

func (f *fakeDirectory) UpdateProfile(ctx context.Context, in api.UserUpdate) (api.User, error) {
	f.lastUpdate = &in
	if f.updateErr != nil {
		return api.User{}, f.updateErr
	}
	u, _ := f.session.Current()
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Location != nil {
		u.Location = *in.Location
	}
	if in.SkillsOffered != nil {
		u.SkillsOffered = *in.SkillsOffered
	}
	return u, f.session.Persist(ctx, u)
}

func (f *fakeDirectory) SearchSkills(context.Context, string) ([]string, error) {
	return f.skills, nil
}

func (f *fakeDirectory) UploadPhoto(_ context.Context, path string) (api.User, error) {
	f.lastPhoto = path
	u, _ := f.session.Current()
	return u, f.photoErr
}

func (f *fakeDirectory) Ping(context.Context) error {
	f.pingMu.Lock()
	defer f.pingMu.Unlock()
	return f.pingErr
}

func (f *fakeDirectory) setPingErr(err error) {
	f.pingMu.Lock()
	f.pingErr = err
	f.pingMu.Unlock()
}

type fakeSwaps struct {
	board        services.Board
	dashboardErr error

	sent    []models.DraftRequest
	sendErr error

	responded  []string
	respondErr error

	withdrawn   []string
	withdrawErr error

	rated   []string
	rateErr error
}

var _ services.SwapService = (*fakeSwaps)(nil)

func (f *fakeSwaps) Send(_ context.Context, d models.DraftRequest) (swap.Request, services.Board, error) {
	if f.sendErr != nil {
		return swap.Request{}, f.board, f.sendErr
	}
	f.sent = append(f.sent, d)
	return swap.Request{ID: "r-new", Status: swap.StatusPending}, f.board, nil
}

func (f *fakeSwaps) Respond(_ context.Context, id string, decision swap.Status) (services.Board, error) {
	if f.respondErr != nil {
		return f.board, f.respondErr
	}
	f.responded = append(f.responded, id+":"+string(decision))
	return f.board, nil
}

func (f *fakeSwaps) Withdraw(_ context.Context, id string) (services.Board, error) {
	if f.withdrawErr != nil {
		return f.board, f.withdrawErr
	}
	f.withdrawn = append(f.withdrawn, id)
	return f.board, nil
}

func (f *fakeSwaps) Rate(_ context.Context, id string, score int, comment string) (services.Board, error) {
	if f.rateErr != nil {
		return f.board, f.rateErr
	}
	f.rated = append(f.rated, strings.TrimSpace(id+" "+string(rune('0'+score))+" "+comment))
	return f.board, nil
}

func (f *fakeSwaps) Dashboard(_ context.Context, userID string) (services.Board, error) {
	if f.dashboardErr != nil {
		return services.Board{}, f.dashboardErr
	}
	b := f.board
	if b.User.ID == "" {
		b.User = api.User{ID: userID, Name: "Alice"}
	}
	return b, nil
}
