package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/skillswap/internal/client/models"
	"github.com/dmitrijs2005/skillswap/internal/client/services"
	"github.com/dmitrijs2005/skillswap/internal/swap"
)

// Dispatch runs one command. Failures are reported to the user here; only
// an unknown command is returned as an error.
func (a *App) Dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help", "?":
		a.help()
	case "go":
		a.goTo(ctx, args)
	case "home":
		a.enter(ctx, models.ViewHome)
	case "login":
		a.enter(ctx, models.ViewLogin)
	case "register":
		a.enter(ctx, models.ViewRegister)
	case "profile":
		a.enter(ctx, models.ViewProfile)
	case "dashboard":
		a.enter(ctx, models.ViewDashboard)
	case "browse":
		a.browse(ctx, args)
	case "logout":
		a.logout(ctx)
	case "edit":
		a.editProfile(ctx)
	case "photo":
		a.uploadPhoto(ctx, args)
	case "select":
		a.selectReceiver(args)
	case "offer":
		a.offer(args)
	case "want":
		a.want(args)
	case "message":
		a.message(args)
	case "send":
		a.send(ctx)
	case "cancel":
		a.cancelDraft()
	case "accept":
		a.respond(ctx, args, swap.StatusAccepted)
	case "reject":
		a.respond(ctx, args, swap.StatusRejected)
	case "withdraw":
		a.withdraw(ctx, args)
	case "rate":
		a.rate(ctx, args)
	case "skills":
		a.skills(ctx, args)
	default:
		return errUnknownCommand
	}
	return nil
}

func (a *App) help() {
	a.say("Views: %s", strings.Join(a.availableViews(), ", "))
	if !a.session.LoggedIn() {
		a.say("Commands: register, login, skills <query>, help, exit")
		return
	}
	a.say("Profile:   profile, edit, photo <path>")
	a.say("Browse:    browse [skill=...] [location=...], select <n>, offer <skill>, want <skill>,")
	a.say("           message <text>, send, cancel, skills <query>")
	a.say("Dashboard: dashboard, accept <n>, reject <n>, withdraw <n>, rate <n> <1-5> [comment]")
	a.say("Other:     go <view>, logout, help, exit")
}

func (a *App) availableViews() []string {
	loggedIn := a.session.LoggedIn()
	var out []string
	for _, v := range models.Views {
		if v.Available(loggedIn) {
			out = append(out, v.String())
		}
	}
	return out
}

func (a *App) goTo(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.say("Usage: go <view>")
		return
	}
	v, err := models.ParseView(args[0])
	if err != nil {
		a.say("Unknown view %q. Available: %s", args[0], strings.Join(a.availableViews(), ", "))
		return
	}
	if v == models.ViewBrowse {
		a.browse(ctx, nil)
		return
	}
	a.enter(ctx, v)
}

// browse searches the directory and shows the browse view. A failed search
// leaves the current view and listing as they were.
func (a *App) browse(ctx context.Context, args []string) {
	if !models.ViewBrowse.Available(a.session.LoggedIn()) {
		a.enter(ctx, models.ViewBrowse)
		return
	}

	f, err := parseFilters(args, "skill", "location")
	if err != nil {
		a.say("Usage: browse [skill=...] [location=...] (%v)", err)
		return
	}

	users, err := a.dir.Search(ctx, f["skill"], f["location"], a.session.UserID())
	if err != nil {
		a.notify("Search failed", err)
		return
	}

	a.state.listing = users
	a.enter(ctx, models.ViewBrowse)
}

func (a *App) selectReceiver(args []string) {
	if _, ok := a.requireUser(); !ok {
		return
	}
	if len(args) != 1 {
		a.say("Usage: select <n>")
		return
	}
	i, err := parseIndex(args[0], len(a.state.listing))
	if err != nil {
		a.say("Cannot select: %v. Use 'browse' to list members.", err)
		return
	}

	u := a.state.listing[i]
	a.state.draft = a.state.draft.WithReceiver(u)
	a.say("Selected %s, who offers: %s", u.Name, joinOrDash(u.SkillsOffered))
	a.printDraft()
}

func (a *App) offer(args []string) {
	me, ok := a.requireUser()
	if !ok {
		return
	}
	d, err := a.state.draft.WithRequesterSkill(strings.Join(args, " "), me.SkillsOffered)
	if err != nil {
		a.say("Cannot offer that: %v. Your skills: %s", err, joinOrDash(me.SkillsOffered))
		return
	}
	a.state.draft = d
	a.printDraft()
}

func (a *App) want(args []string) {
	if _, ok := a.requireUser(); !ok {
		return
	}
	d, err := a.state.draft.WithReceiverSkill(strings.Join(args, " "))
	if err != nil {
		if errors.Is(err, models.ErrNoReceiver) {
			a.say("Select a member first with 'select <n>'.")
			return
		}
		a.say("Cannot want that: %v. They offer: %s", err, joinOrDash(a.state.draft.Receiver.SkillsOffered))
		return
	}
	a.state.draft = d
	a.printDraft()
}

func (a *App) message(args []string) {
	if _, ok := a.requireUser(); !ok {
		return
	}
	a.state.draft = a.state.draft.WithMessage(strings.Join(args, " "))
	a.printDraft()
}

func (a *App) cancelDraft() {
	if a.state.draft.Empty() {
		a.say("There is no draft request.")
		return
	}
	a.state.draft = models.DraftRequest{}
	a.say("Draft request discarded.")
}

func (a *App) send(ctx context.Context) {
	if _, ok := a.requireUser(); !ok {
		return
	}
	d := a.state.draft
	if !d.Complete() {
		a.say("The request is not ready, still needed: %s.", strings.Join(d.Missing(), ", "))
		return
	}

	_, b, err := a.swaps.Send(ctx, d)
	if err != nil && !errors.Is(err, services.ErrRefresh) {
		a.notify("Could not send request", err)
		return
	}

	a.state.draft = models.DraftRequest{}
	a.say("Swap request sent to %s!", d.Receiver.Name)
	a.afterMutation(b, err)
}

func (a *App) respond(ctx context.Context, args []string, decision swap.Status) {
	e, ok := a.pickRequest(args, "accept|reject <n>")
	if !ok {
		return
	}
	if !e.received {
		a.say("Request %s is one you sent; only its receiver can respond.", args[0])
		return
	}

	b, err := a.swaps.Respond(ctx, e.req.ID, decision)
	if err != nil && !errors.Is(err, services.ErrRefresh) {
		a.notify("Could not update request", err)
		return
	}
	a.say("Request %s.", decision)
	a.afterMutation(b, err)
}

func (a *App) withdraw(ctx context.Context, args []string) {
	e, ok := a.pickRequest(args, "withdraw <n>")
	if !ok {
		return
	}
	if e.received {
		a.say("Request %s was sent to you; use 'reject' instead.", args[0])
		return
	}

	b, err := a.swaps.Withdraw(ctx, e.req.ID)
	if err != nil && !errors.Is(err, services.ErrRefresh) {
		a.notify("Could not withdraw request", err)
		return
	}
	a.say("Request withdrawn.")
	a.afterMutation(b, err)
}

func (a *App) rate(ctx context.Context, args []string) {
	if len(args) < 2 {
		a.say("Usage: rate <n> <1-5> [comment]")
		return
	}
	e, ok := a.pickRequest(args[:1], "rate <n> <1-5> [comment]")
	if !ok {
		return
	}
	score, err := strconv.Atoi(args[1])
	if err != nil || score < 1 || score > 5 {
		a.say("Rating must be a number from 1 to 5.")
		return
	}
	if a.state.board.Rated(e.req.ID) {
		a.say("You have already rated this swap.")
		return
	}

	b, err := a.swaps.Rate(ctx, e.req.ID, score, strings.Join(args[2:], " "))
	if err != nil && !errors.Is(err, services.ErrRefresh) {
		a.notify("Could not rate swap", err)
		return
	}
	a.say("Thanks for your feedback!")
	a.afterMutation(b, err)
}

// pickRequest resolves a dashboard number to a request.
func (a *App) pickRequest(args []string, usage string) (dashboardEntry, bool) {
	if _, ok := a.requireUser(); !ok {
		return dashboardEntry{}, false
	}
	if len(args) < 1 {
		a.say("Usage: %s", usage)
		return dashboardEntry{}, false
	}
	if a.state.board == nil {
		a.say("Open your dashboard first with 'dashboard'.")
		return dashboardEntry{}, false
	}

	entries := numbered(*a.state.board)
	i, err := parseIndex(args[0], len(entries))
	if err != nil {
		a.say("No such request: %v.", err)
		return dashboardEntry{}, false
	}
	return entries[i], true
}

// afterMutation shows the reloaded dashboard. refreshErr is non-nil when the
// change went through but the reload did not; the old board is then dropped
// so its numbering cannot be used for further changes.
func (a *App) afterMutation(b services.Board, refreshErr error) {
	if refreshErr != nil {
		a.state.board = nil
		a.notify("Could not refresh dashboard", refreshErr)
		return
	}
	a.state.board = &b
	if a.state.view == models.ViewDashboard {
		a.renderDashboard(b)
	}
}

func (a *App) skills(ctx context.Context, args []string) {
	q := strings.Join(args, " ")
	if q == "" {
		a.say("Usage: skills <query>")
		return
	}
	list, err := a.dir.SearchSkills(ctx, q)
	if err != nil {
		a.notify("Skill search failed", err)
		return
	}
	if len(list) == 0 {
		a.say("No skills match %q.", q)
		return
	}
	a.say("Skills matching %q: %s", q, strings.Join(list, ", "))
}
