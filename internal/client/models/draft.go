package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/swap"
)

var (
	ErrNoReceiver      = errors.New("no receiver selected")
	ErrSkillNotOffered = errors.New("skill not offered")
	ErrDraftIncomplete = errors.New("draft request is incomplete")
)

// DraftRequest is a swap request being assembled before it is sent. Every
// method returns a new value; the zero value is an empty draft.
type DraftRequest struct {
	Receiver       *api.User
	RequesterSkill string
	ReceiverSkill  string
	Message        string
}

func (d DraftRequest) Empty() bool {
	return d.Receiver == nil && d.RequesterSkill == "" && d.ReceiverSkill == "" && d.Message == ""
}

// WithReceiver targets u. A previously chosen receiver skill is dropped
// unless u offers it too.
func (d DraftRequest) WithReceiver(u api.User) DraftRequest {
	d.Receiver = &u
	if d.ReceiverSkill != "" {
		if s, ok := findSkill(u.SkillsOffered, d.ReceiverSkill); ok {
			d.ReceiverSkill = s
		} else {
			d.ReceiverSkill = ""
		}
	}
	return d
}

// WithRequesterSkill picks the skill offered in exchange; it must be one of
// offered (the requester's own list).
func (d DraftRequest) WithRequesterSkill(skill string, offered []string) (DraftRequest, error) {
	s, ok := findSkill(offered, skill)
	if !ok {
		return d, fmt.Errorf("%w: you do not offer %q", ErrSkillNotOffered, strings.TrimSpace(skill))
	}
	d.RequesterSkill = s
	return d, nil
}

// WithReceiverSkill picks the skill wanted from the receiver.
func (d DraftRequest) WithReceiverSkill(skill string) (DraftRequest, error) {
	if d.Receiver == nil {
		return d, ErrNoReceiver
	}
	s, ok := findSkill(d.Receiver.SkillsOffered, skill)
	if !ok {
		return d, fmt.Errorf("%w: %s does not offer %q", ErrSkillNotOffered, d.Receiver.Name, strings.TrimSpace(skill))
	}
	d.ReceiverSkill = s
	return d, nil
}

func (d DraftRequest) WithMessage(text string) DraftRequest {
	d.Message = strings.TrimSpace(text)
	return d
}

// Missing names the parts still needed before the draft can be sent.
func (d DraftRequest) Missing() []string {
	var out []string
	if d.Receiver == nil {
		out = append(out, "receiver")
	}
	if d.RequesterSkill == "" {
		out = append(out, "offered skill")
	}
	if d.ReceiverSkill == "" {
		out = append(out, "wanted skill")
	}
	return out
}

func (d DraftRequest) Complete() bool {
	return len(d.Missing()) == 0
}

// Payload converts a complete draft into the create request body. An empty
// message gets the default greeting.
func (d DraftRequest) Payload() (api.SwapRequestCreate, error) {
	if missing := d.Missing(); len(missing) > 0 {
		return api.SwapRequestCreate{}, fmt.Errorf("%w: missing %s", ErrDraftIncomplete, strings.Join(missing, ", "))
	}
	msg := d.Message
	if msg == "" {
		msg = swap.DefaultMessage(d.RequesterSkill, d.ReceiverSkill)
	}
	return api.SwapRequestCreate{
		ReceiverID:     d.Receiver.ID,
		RequesterSkill: d.RequesterSkill,
		ReceiverSkill:  d.ReceiverSkill,
		Message:        msg,
	}, nil
}

// findSkill matches case-insensitively and returns the listed spelling.
func findSkill(list []string, skill string) (string, bool) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return "", false
	}
	for _, s := range list {
		if strings.EqualFold(s, skill) {
			return s, true
		}
	}
	return "", false
}
