package cli

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/client/models"
	"github.com/dmitrijs2005/skillswap/internal/client/services"
	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/go-playground/validator/v10"
)

const userNotFoundMessage = "User not found. Please check your email or create an account."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// formErrors renders validation failures as one readable line.
func formErrors(err error) string {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return err.Error()
	}
	parts := make([]string, 0, len(verr))
	for _, fe := range verr {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email address"
		case "max":
			msg = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "min":
			msg = fmt.Sprintf("must be at least %s characters", fe.Param())
		default:
			msg = "is invalid"
		}
		parts = append(parts, strings.ReplaceAll(fe.Field(), "_", " ")+" "+msg)
	}
	return strings.Join(parts, "; ")
}

// loginForm asks for an email and logs in on a match.
func (a *App) loginForm(ctx context.Context) {
	a.say("== Login ==")
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return
	}

	u, err := a.dir.Login(ctx, email)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		a.say(userNotFoundMessage)
		return
	case err != nil:
		a.say("Login failed: %s", describe(err))
		return
	}

	a.resetState()
	a.say("Welcome back, %s!", u.Name)
	a.enter(ctx, models.ViewDashboard)
}

func (a *App) registerForm(ctx context.Context) {
	a.say("== Register ==")

	var in api.UserCreate
	var err error
	ask := func(dst *string, prompt string) {
		if err == nil {
			*dst, err = GetSimpleText(a.reader, prompt, a.out)
		}
	}
	var offered, wanted string
	ask(&in.Name, "Name")
	ask(&in.Email, "Email")
	ask(&in.Location, "Location (optional)")
	ask(&offered, "Skills you offer (comma separated)")
	ask(&wanted, "Skills you want to learn (comma separated)")
	ask(&in.Availability, "Availability, e.g. weekends (optional)")
	if err != nil {
		return
	}
	public, err := GetYesNo(a.reader, "Show your profile in search results?", true, a.out)
	if err != nil {
		return
	}
	in.IsPublic = &public
	in.SkillsOffered = common.SplitList(offered)
	in.SkillsWanted = common.SplitList(wanted)

	if err := validate.Struct(in); err != nil {
		a.say("Registration failed: %s", formErrors(err))
		return
	}

	u, err := a.dir.Register(ctx, in)
	if err != nil {
		a.notify("Registration failed", err)
		return
	}

	a.resetState()
	a.say("Welcome to SkillSwap, %s!", u.Name)
	a.enter(ctx, models.ViewProfile)
}

func (a *App) editProfile(ctx context.Context) {
	cur, ok := a.requireUser()
	if !ok {
		return
	}

	a.say("Press Enter to keep a value, '-' to clear it.")
	var in api.UserUpdate
	var err error
	edit := func(dst **string, prompt, current string) {
		if err == nil {
			*dst, err = GetEdit(a.reader, prompt, current, a.out)
		}
	}
	var offered, wanted *string
	edit(&in.Name, "Name", cur.Name)
	edit(&in.Location, "Location", cur.Location)
	edit(&offered, "Skills you offer", strings.Join(cur.SkillsOffered, ", "))
	edit(&wanted, "Skills you want", strings.Join(cur.SkillsWanted, ", "))
	edit(&in.Availability, "Availability", cur.Availability)
	if err != nil {
		return
	}
	public, err := GetYesNo(a.reader, "Public profile?", cur.IsPublic, a.out)
	if err != nil {
		return
	}

	if offered != nil {
		list := common.SplitList(*offered)
		in.SkillsOffered = &list
	}
	if wanted != nil {
		list := common.SplitList(*wanted)
		in.SkillsWanted = &list
	}
	if public != cur.IsPublic {
		in.IsPublic = &public
	}

	if in == (api.UserUpdate{}) {
		a.say("Nothing to update.")
		return
	}
	if err := validate.Struct(in); err != nil {
		a.say("Profile update failed: %s", formErrors(err))
		return
	}

	if _, err := a.dir.UpdateProfile(ctx, in); err != nil {
		a.notify("Profile update failed", err)
		return
	}
	a.say("Profile updated.")
	a.enter(ctx, models.ViewProfile)
}

func (a *App) uploadPhoto(ctx context.Context, args []string) {
	if _, ok := a.requireUser(); !ok {
		return
	}
	path := strings.Join(args, " ")
	if path == "" {
		a.say("Usage: photo <path to image>")
		return
	}

	if _, err := a.dir.UploadPhoto(ctx, path); err != nil {
		a.notify("Photo upload failed", err)
		return
	}
	a.say("Profile photo updated.")
}

func (a *App) logout(ctx context.Context) {
	if !a.session.LoggedIn() {
		a.say("You are not logged in.")
		return
	}
	if err := a.dir.Logout(ctx); err != nil {
		a.notify("Logout", err)
	}
	a.resetState()
	a.say("Logged out.")
	a.enter(ctx, models.ViewHome)
}

// requireUser returns the current user or prints a notice.
func (a *App) requireUser() (api.User, bool) {
	u, ok := a.session.Current()
	if !ok {
		a.say("Please log in first.")
	}
	return u, ok
}

// resetState drops everything tied to the previous user.
func (a *App) resetState() {
	a.state = state{view: a.state.view}
}
