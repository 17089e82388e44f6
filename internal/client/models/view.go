// Package models holds client-side state types for the CLI: the closed set of
// views and the draft swap request built up in the browse view.
package models

import (
	"fmt"
	"strings"
)

type View int

const (
	ViewHome View = iota
	ViewLogin
	ViewRegister
	ViewProfile
	ViewBrowse
	ViewDashboard
)

// Views lists every view in menu order.
var Views = []View{ViewHome, ViewLogin, ViewRegister, ViewProfile, ViewBrowse, ViewDashboard}

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewProfile:
		return "profile"
	case ViewBrowse:
		return "browse"
	case ViewDashboard:
		return "dashboard"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// ParseView accepts a view name, case-insensitively.
func ParseView(s string) (View, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, v := range Views {
		if v.String() == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown view %q", s)
}

// RequiresUser reports whether v is only reachable with a current user.
func (v View) RequiresUser() bool {
	switch v {
	case ViewProfile, ViewBrowse, ViewDashboard:
		return true
	default:
		return false
	}
}

// GuestOnly reports whether v is only offered without a current user.
func (v View) GuestOnly() bool {
	return v == ViewLogin || v == ViewRegister
}

// Available reports whether v can be entered given the login state.
func (v View) Available(loggedIn bool) bool {
	if v.RequiresUser() {
		return loggedIn
	}
	if v.GuestOnly() {
		return !loggedIn
	}
	return true
}
