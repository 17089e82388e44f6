package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateSwapRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, err := requiredQuery(r, "requester_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var in api.SwapRequestCreate
	if err := decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	req, err := h.deps.Swaps.Create(r.Context(), requesterID, services.SwapDraft{
		ReceiverID:     in.ReceiverID,
		RequesterSkill: in.RequesterSkill,
		ReceiverSkill:  in.ReceiverSkill,
		Message:        in.Message,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.log.Info(r.Context(), "swap request created", "id", req.ID, "requester_id", req.RequesterID, "receiver_id", req.ReceiverID)
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) ListSwapRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	reqs, err := h.deps.Swaps.ListByUser(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

// UpdateSwapRequest records the receiver's decision. actor_id is optional;
// when present only the receiver may respond.
func (h *Handler) UpdateSwapRequest(w http.ResponseWriter, r *http.Request) {
	var in api.SwapRequestUpdate
	if err := decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	req, err := h.deps.Swaps.UpdateStatus(r.Context(), id, in.Status, r.URL.Query().Get("actor_id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.log.Info(r.Context(), "swap request updated", "id", id, "status", req.Status)
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) DeleteSwapRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.deps.Swaps.Delete(r.Context(), id, r.URL.Query().Get("actor_id")); err != nil {
		h.fail(w, r, err)
		return
	}

	h.log.Info(r.Context(), "swap request withdrawn", "id", id)
	writeJSON(w, http.StatusOK, api.Message{Message: "Swap request deleted"})
}

func (h *Handler) CreateRating(w http.ResponseWriter, r *http.Request) {
	raterID, err := requiredQuery(r, "rater_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var in api.RatingCreate
	if err := decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	rt, err := h.deps.Ratings.Create(r.Context(), raterID, models.Rating{
		SwapRequestID: in.SwapRequestID,
		RatedUserID:   in.RatedUserID,
		Value:         in.Rating,
		Comment:       in.Comment,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAPIRating(rt))
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.deps.Dashboard.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.Dashboard{
		User:             toAPIUser(d.User),
		ReceivedRequests: d.Requests.Received,
		SentRequests:     d.Requests.Sent,
		RatingsGiven:     toAPIRatings(d.RatingsGiven),
		RatingsReceived:  toAPIRatings(d.RatingsReceived),
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.deps.DB != nil {
		if err := h.deps.DB.PingContext(r.Context()); err != nil {
			h.log.Warn(r.Context(), "database ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, api.Health{Status: "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, api.Health{Status: "ok"})
}
