package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/skillswap/internal/client/client"
	"github.com/dmitrijs2005/skillswap/internal/client/models"
	"github.com/dmitrijs2005/skillswap/internal/client/services"
	"github.com/dmitrijs2005/skillswap/internal/client/session"
	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/swap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_GuestSeesHome(t *testing.T) {
	a := newTestApp(t, nil)
	a.start(context.Background())

	assert.Equal(t, models.ViewHome, a.state.view)
	assert.Contains(t, a.output(), "Use 'register' to create a profile")
}

func TestStart_RestoredSessionOpensDashboard(t *testing.T) {
	a := newTestApp(t, &alice)
	a.start(context.Background())

	assert.Equal(t, models.ViewDashboard, a.state.view)
	require.NotNil(t, a.state.board)
	assert.Contains(t, a.output(), "== Dashboard: Alice ==")
}

func TestStart_CorruptSessionIsCleared(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set(context.Background(), "current_user", []byte("{not json")))

	a := newTestApp(t, nil)
	a.session = session.New(store)
	a.start(context.Background())

	out := a.output()
	assert.Contains(t, out, "could not be read and has been cleared")
	assert.Equal(t, models.ViewHome, a.state.view)
	assert.False(t, a.session.LoggedIn())
}

func TestStart_DashboardUnavailable(t *testing.T) {
	a := newTestApp(t, &alice)
	a.swaps.dashboardErr = client.ErrUnavailable
	a.start(context.Background())

	assert.Contains(t, a.output(), "Could not load dashboard: server is unavailable, please try again later")
	assert.Nil(t, a.state.board)
}

func TestGetStatus(t *testing.T) {
	a := newTestApp(t, nil)
	assert.Equal(t, "[home]", a.getStatus())

	a.setMode(context.Background(), ModeOffline)
	assert.Equal(t, "[home] (offline)", a.getStatus())

	require.NoError(t, a.session.Persist(context.Background(), alice))
	a.state.view = models.ViewBrowse
	assert.Equal(t, "[browse] (Alice offline)", a.getStatus())
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	a := newTestApp(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
	require.Eventually(t, func() bool { return a.getMode() == ModeOnline }, time.Second, 5*time.Millisecond)

	a.dir.setPingErr(client.ErrUnavailable)
	require.Eventually(t, func() bool { return a.getMode() == ModeOffline }, time.Second, 5*time.Millisecond)
}

func TestStartOnlineStatusWatcher_DisabledInterval(t *testing.T) {
	a := newTestApp(t, nil)
	a.StartOnlineStatusWatcher(context.Background(), 0)
	assert.Equal(t, ModeUnknown, a.getMode())
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unavailable", fmt.Errorf("%w: dial", client.ErrUnavailable), "server is unavailable, please try again later"},
		{"deadline", context.DeadlineExceeded, "server is unavailable, please try again later"},
		{"not logged in", services.ErrNotLoggedIn, "please log in first"},
		{"detailed", common.WithDetail(common.ErrorInvalidArgument, "Rating must be between 1 and 5"), "Rating must be between 1 and 5"},
		{"state", fmt.Errorf("%w: request is accepted", swap.ErrInvalidStateTransition), "this request is no longer pending"},
		{"forbidden", fmt.Errorf("%w: only the receiver may respond", swap.ErrForbidden), "you are not allowed to change this request"},
		{"api", &client.APIError{Status: 409, Detail: "Email already registered"}, "Email already registered"},
		{"plain", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.err))
		})
	}
}
