package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/client/client"
	"github.com/dmitrijs2005/skillswap/internal/client/config"
	"github.com/dmitrijs2005/skillswap/internal/client/models"
	"github.com/dmitrijs2005/skillswap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/skillswap/internal/client/services"
	"github.com/dmitrijs2005/skillswap/internal/client/session"
	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/logging"
	"github.com/dmitrijs2005/skillswap/internal/swap"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// state is what the current view shows. It changes only in response to
// user commands.
type state struct {
	view    models.View
	listing []api.User
	draft   models.DraftRequest
	board   *services.Board
	names   map[string]string
}

type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Session
	dir     services.DirectoryService
	swaps   services.SwapService
	reader  *bufio.Reader
	out     io.Writer
	closers []io.Closer

	state state

	modeMu sync.Mutex
	mode   Mode
}

// NewApp opens the local store and the API client described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logging.NewConsoleLogger(os.Stderr, level)

	db, err := client.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.HealthAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sess := session.New(metadata.NewSQLiteRepository(db))
	a := newApp(c, log, sess,
		services.NewDirectoryService(apiClient, sess),
		services.NewSwapService(apiClient, sess),
		os.Stdin, os.Stdout)
	a.closers = []io.Closer{apiClient, db}
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, s *session.Session,
	dir services.DirectoryService, swaps services.SwapService, in io.Reader, out io.Writer) *App {
	return &App{
		config:  c,
		log:     log,
		session: s,
		dir:     dir,
		swaps:   swaps,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run restores the session, shows the starting view and serves commands
// until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.say("Welcome to SkillSwap (type 'help' for commands)")
	a.start(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// start restores the session and renders dashboard or home.
func (a *App) start(ctx context.Context) {
	if err := a.session.Restore(ctx); err != nil {
		if errors.Is(err, session.ErrCorrupt) {
			a.say("Your saved session could not be read and has been cleared.")
		} else {
			a.notify("Could not restore session", err)
		}
	}

	if a.session.LoggedIn() {
		a.enter(ctx, models.ViewDashboard)
		return
	}
	a.enter(ctx, models.ViewHome)
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// StartOnlineStatusWatcher probes the server right away and then every
// interval until ctx is done. The result only feeds the prompt indicator.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	probe := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := a.dir.Ping(pctx); err != nil {
			a.setMode(ctx, ModeOffline)
			return
		}
		a.setMode(ctx, ModeOnline)
	}

	probe()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probe()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := "[" + a.state.view.String() + "]"
	who := ""
	if u, ok := a.session.Current(); ok {
		who = u.Name
	}
	if m := a.getMode(); m != ModeUnknown {
		if who != "" {
			who += " "
		}
		who += string(m)
	}
	if who != "" {
		s += " (" + who + ")"
	}
	return s
}

func (a *App) say(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// notify prints a failure as a user-facing message.
func (a *App) notify(action string, err error) {
	a.log.Debug(context.Background(), "command failed", "action", action, "error", err)
	a.say("%s: %s", action, describe(err))
}

// describe turns an error into the text shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return "server is unavailable, please try again later"
	case errors.Is(err, services.ErrNotLoggedIn):
		return "please log in first"
	}

	var detailed *common.DetailedError
	if errors.As(err, &detailed) {
		return detailed.Detail
	}

	switch {
	case errors.Is(err, swap.ErrInvalidStateTransition):
		return "this request is no longer pending"
	case errors.Is(err, swap.ErrForbidden):
		return "you are not allowed to change this request"
	case errors.Is(err, services.ErrUnknownRequest):
		return "the request is no longer on your dashboard"
	case errors.Is(err, services.ErrNotImage):
		return "the file is not an image"
	}
	return client.Detail(err)
}
