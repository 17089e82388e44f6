package models

import "time"

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)

// User is a row of the users table.
type User struct {
	ID            string
	Name          string
	Email         string
	Location      string
	ProfilePhoto  string
	SkillsOffered []string
	SkillsWanted  []string
	Availability  string
	IsPublic      bool
	Rating        float64
	TotalRatings  int
	Status        UserStatus
	CreatedAt     time.Time
}

// UserFilter narrows a directory search. Empty strings match everything.
type UserFilter struct {
	Skill      string
	Location   string
	PublicOnly bool
}

// UserPatch lists the profile fields to change; nil means unchanged.
type UserPatch struct {
	Name          *string
	Location      *string
	ProfilePhoto  *string
	SkillsOffered *[]string
	SkillsWanted  *[]string
	Availability  *string
	IsPublic      *bool
}

// Apply copies the non-nil fields of p onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.ProfilePhoto != nil {
		u.ProfilePhoto = *p.ProfilePhoto
	}
	if p.SkillsOffered != nil {
		u.SkillsOffered = *p.SkillsOffered
	}
	if p.SkillsWanted != nil {
		u.SkillsWanted = *p.SkillsWanted
	}
	if p.Availability != nil {
		u.Availability = *p.Availability
	}
	if p.IsPublic != nil {
		u.IsPublic = *p.IsPublic
	}
}
