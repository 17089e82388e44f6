// Package api defines the JSON payloads exchanged between the SkillSwap
// server and its clients.
package api

import (
	"time"

	"github.com/dmitrijs2005/skillswap/internal/swap"
)

// HealthService is the grpc.health.v1 service name of the SkillSwap API.
const HealthService = "skillswap.api"

// User is a directory entry as served to clients.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Location      string    `json:"location,omitempty"`
	ProfilePhoto  string    `json:"profile_photo,omitempty"`
	SkillsOffered []string  `json:"skills_offered"`
	SkillsWanted  []string  `json:"skills_wanted"`
	Availability  string    `json:"availability,omitempty"`
	IsPublic      bool      `json:"is_public"`
	Rating        float64   `json:"rating"`
	TotalRatings  int       `json:"total_ratings"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserCreate is the registration payload. IsPublic defaults to true.
type UserCreate struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Email         string   `json:"email" validate:"required,email"`
	Location      string   `json:"location,omitempty" validate:"max=200"`
	ProfilePhoto  string   `json:"profile_photo,omitempty"`
	SkillsOffered []string `json:"skills_offered,omitempty" validate:"dive,max=100"`
	SkillsWanted  []string `json:"skills_wanted,omitempty" validate:"dive,max=100"`
	Availability  string   `json:"availability,omitempty" validate:"max=200"`
	IsPublic      *bool    `json:"is_public,omitempty"`
}

// UserUpdate is a partial profile; nil fields are left unchanged.
type UserUpdate struct {
	Name          *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Location      *string   `json:"location,omitempty" validate:"omitempty,max=200"`
	ProfilePhoto  *string   `json:"profile_photo,omitempty"`
	SkillsOffered *[]string `json:"skills_offered,omitempty" validate:"omitempty,dive,max=100"`
	SkillsWanted  *[]string `json:"skills_wanted,omitempty" validate:"omitempty,dive,max=100"`
	Availability  *string   `json:"availability,omitempty" validate:"omitempty,max=200"`
	IsPublic      *bool     `json:"is_public,omitempty"`
}

// SwapRequestCreate is sent by the requester; the requester id travels in
// the query string.
type SwapRequestCreate struct {
	ReceiverID     string `json:"receiver_id" validate:"required"`
	ReceiverSkill  string `json:"receiver_skill" validate:"required,max=100"`
	RequesterSkill string `json:"requester_skill" validate:"required,max=100"`
	Message        string `json:"message,omitempty" validate:"max=1000"`
}

// SwapRequestUpdate carries the receiver's decision.
type SwapRequestUpdate struct {
	Status swap.Status `json:"status" validate:"required,oneof=accepted rejected"`
}

// Rating is feedback left by one participant of an accepted swap.
type Rating struct {
	ID            string    `json:"id"`
	SwapRequestID string    `json:"swap_request_id"`
	RaterID       string    `json:"rater_id"`
	RatedUserID   string    `json:"rated_user_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RatingCreate is sent by the rater; the rater id travels in the query string.
type RatingCreate struct {
	SwapRequestID string `json:"swap_request_id" validate:"required"`
	RatedUserID   string `json:"rated_user_id" validate:"required"`
	Rating        int    `json:"rating" validate:"min=1,max=5"`
	Comment       string `json:"comment,omitempty" validate:"max=1000"`
}

// Dashboard aggregates everything the dashboard view shows for one user.
type Dashboard struct {
	User             User           `json:"user"`
	ReceivedRequests []swap.Request `json:"received_requests"`
	SentRequests     []swap.Request `json:"sent_requests"`
	RatingsGiven     []Rating       `json:"ratings_given"`
	RatingsReceived  []Rating       `json:"ratings_received"`
}

// PhotoUpload is a presigned upload target for a profile photo.
type PhotoUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

type SkillList struct {
	Skills []string `json:"skills"`
}

type Message struct {
	Message string `json:"message"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Detail string `json:"detail"`
}

type Health struct {
	Status string `json:"status"`
}
