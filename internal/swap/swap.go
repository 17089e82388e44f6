// Package swap holds the swap request lifecycle shared by the server store
// and the CLI.
//
// A request is created pending. Only its receiver may move it to accepted or
// rejected, and both are terminal. While pending, its requester may withdraw
// it, which deletes the record instead of changing its status.
package swap

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidDecision        = errors.New("invalid decision")
	ErrForbidden              = errors.New("forbidden")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ParseStatus accepts only the three known statuses.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusAccepted, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidDecision, s)
	}
}

// IsTerminal reports whether no further transition is possible from st.
func IsTerminal(st Status) bool {
	return st == StatusAccepted || st == StatusRejected
}

// Request is a proposal to exchange RequesterSkill for ReceiverSkill.
type Request struct {
	ID             string    `json:"id"`
	RequesterID    string    `json:"requester_id"`
	ReceiverID     string    `json:"receiver_id"`
	RequesterSkill string    `json:"requester_skill"`
	ReceiverSkill  string    `json:"receiver_skill"`
	Message        string    `json:"message"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultMessage is used when a request is sent without a message.
func DefaultMessage(requesterSkill, receiverSkill string) string {
	return fmt.Sprintf("Hi! I'd like to swap my %s skills for your %s expertise.", requesterSkill, receiverSkill)
}

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

// New builds a pending request. The skills are not checked against either
// user's profile.
func New(requesterID, receiverID, requesterSkill, receiverSkill, message string) Request {
	if message == "" {
		message = DefaultMessage(requesterSkill, receiverSkill)
	}
	t := now()
	return Request{
		RequesterID:    requesterID,
		ReceiverID:     receiverID,
		RequesterSkill: requesterSkill,
		ReceiverSkill:  receiverSkill,
		Message:        message,
		Status:         StatusPending,
		CreatedAt:      t,
		UpdatedAt:      t,
	}
}

// Respond applies the receiver's decision to a pending request.
// An empty actorID skips the receiver check.
func Respond(r *Request, decision Status, actorID string) error {
	if decision != StatusAccepted && decision != StatusRejected {
		return fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}
	if r.Status != StatusPending {
		return fmt.Errorf("%w: request is %s", ErrInvalidStateTransition, r.Status)
	}
	if actorID != "" && actorID != r.ReceiverID {
		return fmt.Errorf("%w: only the receiver may respond", ErrForbidden)
	}
	r.Status = decision
	r.UpdatedAt = now()
	return nil
}

// CanWithdraw checks that r may be deleted by actorID.
// An empty actorID skips the requester check.
func CanWithdraw(r Request, actorID string) error {
	if r.Status != StatusPending {
		return fmt.Errorf("%w: request is %s", ErrInvalidStateTransition, r.Status)
	}
	if actorID != "" && actorID != r.RequesterID {
		return fmt.Errorf("%w: only the requester may withdraw", ErrForbidden)
	}
	return nil
}

// Partition is a user's view of requests: those addressed to them and those
// they sent.
type Partition struct {
	Received []Request `json:"received_requests"`
	Sent     []Request `json:"sent_requests"`
}

// ListFor splits requests by the user's role. A request the user sent to
// themselves lands in both lists.
func ListFor(userID string, requests []Request) Partition {
	p := Partition{Received: []Request{}, Sent: []Request{}}
	for _, r := range requests {
		if r.ReceiverID == userID {
			p.Received = append(p.Received, r)
		}
		if r.RequesterID == userID {
			p.Sent = append(p.Sent, r)
		}
	}
	return p
}
