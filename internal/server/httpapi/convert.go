package httpapi

import (
	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Location:      u.Location,
		ProfilePhoto:  u.ProfilePhoto,
		SkillsOffered: nonNil(u.SkillsOffered),
		SkillsWanted:  nonNil(u.SkillsWanted),
		Availability:  u.Availability,
		IsPublic:      u.IsPublic,
		Rating:        u.Rating,
		TotalRatings:  u.TotalRatings,
		Status:        string(u.Status),
		CreatedAt:     u.CreatedAt,
	}
}

func toAPIUsers(us []*models.User) []api.User {
	out := make([]api.User, 0, len(us))
	for _, u := range us {
		out = append(out, toAPIUser(u))
	}
	return out
}

func toAPIRating(r *models.Rating) api.Rating {
	return api.Rating{
		ID:            r.ID,
		SwapRequestID: r.SwapRequestID,
		RaterID:       r.RaterID,
		RatedUserID:   r.RatedUserID,
		Rating:        r.Value,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

func toAPIRatings(rs []*models.Rating) []api.Rating {
	out := make([]api.Rating, 0, len(rs))
	for _, r := range rs {
		out = append(out, toAPIRating(r))
	}
	return out
}

func fromUserCreate(in api.UserCreate) models.User {
	u := models.User{
		Name:          in.Name,
		Email:         in.Email,
		Location:      in.Location,
		ProfilePhoto:  in.ProfilePhoto,
		SkillsOffered: in.SkillsOffered,
		SkillsWanted:  in.SkillsWanted,
		Availability:  in.Availability,
		IsPublic:      true,
	}
	if in.IsPublic != nil {
		u.IsPublic = *in.IsPublic
	}
	return u
}

func fromUserUpdate(in api.UserUpdate) models.UserPatch {
	return models.UserPatch{
		Name:          in.Name,
		Location:      in.Location,
		ProfilePhoto:  in.ProfilePhoto,
		SkillsOffered: in.SkillsOffered,
		SkillsWanted:  in.SkillsWanted,
		Availability:  in.Availability,
		IsPublic:      in.IsPublic,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
