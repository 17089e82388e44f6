package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/client/models"
	"github.com/dmitrijs2005/skillswap/internal/client/services"
	"github.com/dmitrijs2005/skillswap/internal/swap"
	"golang.org/x/term"
)

// getSize is a test seam for term.GetSize.
var getSize = term.GetSize

const defaultWidth = 80

func termWidth() int {
	w, _, err := getSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// enter switches to v if it is available and renders it. An unavailable
// view prints a notice and leaves the current view unchanged.
func (a *App) enter(ctx context.Context, v models.View) bool {
	loggedIn := a.session.LoggedIn()
	if !v.Available(loggedIn) {
		if v.RequiresUser() {
			a.say("The %s view needs a logged in user. Use 'login' or 'register' first.", v)
		} else {
			a.say("You are already logged in. Use 'logout' to switch accounts.")
		}
		return false
	}

	a.state.view = v
	a.render(ctx, v)
	return true
}

// render is the single place a view is drawn.
func (a *App) render(ctx context.Context, v models.View) {
	switch v {
	case models.ViewHome:
		a.renderHome()
	case models.ViewLogin:
		a.loginForm(ctx)
	case models.ViewRegister:
		a.registerForm(ctx)
	case models.ViewProfile:
		a.renderProfile()
	case models.ViewBrowse:
		a.renderBrowse()
	case models.ViewDashboard:
		a.loadDashboard(ctx)
	}
}

func (a *App) renderHome() {
	a.say("== SkillSwap ==")
	a.say("Trade what you know for what you want to learn.")
	if u, ok := a.session.Current(); ok {
		a.say("Logged in as %s. Try 'browse', 'dashboard' or 'profile'.", u.Name)
		return
	}
	a.say("Use 'register' to create a profile or 'login' to continue.")
}

func (a *App) renderProfile() {
	u, _ := a.session.Current()
	a.say("== Profile ==")
	a.printUser(u, true)
	a.say("Use 'edit' to change your profile or 'photo <path>' to upload a picture.")
}

func (a *App) printUser(u api.User, full bool) {
	width := termWidth()
	a.say("%s", truncate(fmt.Sprintf("Name:      %s", u.Name), width))
	if full {
		a.say("Email:     %s", u.Email)
	}
	if u.Location != "" {
		a.say("%s", truncate("Location:  "+u.Location, width))
	}
	a.say("%s", truncate("Offers:    "+joinOrDash(u.SkillsOffered), width))
	a.say("%s", truncate("Wants:     "+joinOrDash(u.SkillsWanted), width))
	if u.Availability != "" {
		a.say("%s", truncate("Available: "+u.Availability, width))
	}
	a.say("Rating:    %s", ratingText(u))
	if full {
		visibility := "public"
		if !u.IsPublic {
			visibility = "private"
		}
		a.say("Profile:   %s", visibility)
		if u.ProfilePhoto != "" {
			a.say("Photo:     %s", u.ProfilePhoto)
		}
	}
}

func (a *App) renderBrowse() {
	a.say("== Browse ==")
	if len(a.state.listing) == 0 {
		a.say("No members listed. Use 'browse [skill=...] [location=...]' to search.")
	} else {
		a.printListing()
	}
	a.printDraft()
}

func (a *App) printListing() {
	width := termWidth()
	for i, u := range a.state.listing {
		line := fmt.Sprintf("%2d. %s", i+1, u.Name)
		if u.Location != "" {
			line += " (" + u.Location + ")"
		}
		line += fmt.Sprintf(" | offers: %s | wants: %s | %s",
			joinOrDash(u.SkillsOffered), joinOrDash(u.SkillsWanted), ratingText(u))
		a.say("%s", truncate(line, width))
	}
}

func (a *App) printDraft() {
	d := a.state.draft
	if d.Empty() {
		a.say("Pick a member with 'select <n>' to start a swap request.")
		return
	}

	to := "-"
	if d.Receiver != nil {
		to = d.Receiver.Name
	}
	a.say("Draft request: to %s | you offer: %s | you want: %s", to, orDash(d.RequesterSkill), orDash(d.ReceiverSkill))
	if d.Message != "" {
		a.say("Message: %s", truncate(d.Message, termWidth()-9))
	}
	if missing := d.Missing(); len(missing) > 0 {
		a.say("Still needed: %s.", strings.Join(missing, ", "))
		return
	}
	a.say("Ready. Type 'send' to submit or 'cancel' to discard.")
}

func (a *App) loadDashboard(ctx context.Context) {
	b, err := a.swaps.Dashboard(ctx, a.session.UserID())
	if err != nil {
		a.notify("Could not load dashboard", err)
		if a.state.board != nil {
			a.renderDashboard(*a.state.board)
		}
		return
	}
	a.state.board = &b
	a.resolveNames(ctx, b)
	a.renderDashboard(b)
}

// resolveNames looks up the other participant of every request once per
// session. Lookups that fail fall back to the id.
func (a *App) resolveNames(ctx context.Context, b services.Board) {
	if a.state.names == nil {
		a.state.names = map[string]string{}
	}
	for _, e := range numbered(b) {
		id := e.req.ReceiverID
		if e.received {
			id = e.req.RequesterID
		}
		if _, ok := a.state.names[id]; ok || id == b.User.ID {
			continue
		}
		u, err := a.dir.Get(ctx, id)
		if err != nil {
			a.log.Debug(ctx, "user lookup failed", "id", id, "error", err)
			continue
		}
		a.state.names[id] = u.Name
	}
}

// dashboardEntry is a numbered line of the dashboard. Received requests are
// numbered first, then sent ones.
type dashboardEntry struct {
	req      swap.Request
	received bool
}

func numbered(b services.Board) []dashboardEntry {
	out := make([]dashboardEntry, 0, len(b.Requests.Received)+len(b.Requests.Sent))
	for _, r := range b.Requests.Received {
		out = append(out, dashboardEntry{req: r, received: true})
	}
	for _, r := range b.Requests.Sent {
		out = append(out, dashboardEntry{req: r})
	}
	return out
}

func (a *App) renderDashboard(b services.Board) {
	width := termWidth()
	entries := numbered(b)

	a.say("== Dashboard: %s ==", b.User.Name)
	a.say("Rating: %s", ratingText(b.User))

	a.say("Received requests (%d):", len(b.Requests.Received))
	if len(b.Requests.Received) == 0 {
		a.say("   none")
	}
	for i, e := range entries {
		if !e.received {
			continue
		}
		a.say("%s", truncate(fmt.Sprintf("%2d. [%s] %s offers %s for your %s: %q",
			i+1, e.req.Status, a.nameOf(b, e.req.RequesterID), e.req.RequesterSkill, e.req.ReceiverSkill, e.req.Message), width))
	}

	a.say("Sent requests (%d):", len(b.Requests.Sent))
	if len(b.Requests.Sent) == 0 {
		a.say("   none")
	}
	for i, e := range entries {
		if e.received {
			continue
		}
		rated := ""
		if e.req.Status == swap.StatusAccepted && b.Rated(e.req.ID) {
			rated = " (rated)"
		}
		a.say("%s", truncate(fmt.Sprintf("%2d. [%s] your %s for %s's %s%s",
			i+1, e.req.Status, e.req.RequesterSkill, a.nameOf(b, e.req.ReceiverID), e.req.ReceiverSkill, rated), width))
	}

	if len(b.RatingsReceived) > 0 {
		a.say("Feedback received (%d):", len(b.RatingsReceived))
		for _, rt := range b.RatingsReceived {
			line := fmt.Sprintf("   %s", stars(rt.Rating))
			if rt.Comment != "" {
				line += " " + rt.Comment
			}
			a.say("%s", truncate(line, width))
		}
	}

	a.say("Commands: accept <n>, reject <n>, withdraw <n>, rate <n> <1-5> [comment]")
}

// nameOf resolves a user id to a display name using what the CLI already
// knows.
func (a *App) nameOf(b services.Board, id string) string {
	if id == b.User.ID {
		return "you"
	}
	if name, ok := a.state.names[id]; ok {
		return name
	}
	for _, u := range a.state.listing {
		if u.ID == id {
			return u.Name
		}
	}
	return "user " + id
}

func ratingText(u api.User) string {
	if u.TotalRatings == 0 {
		return "no ratings yet"
	}
	return fmt.Sprintf("%.1f/5 (%d)", u.Rating, u.TotalRatings)
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("*", n) + strings.Repeat(".", 5-n)
}

func joinOrDash(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
