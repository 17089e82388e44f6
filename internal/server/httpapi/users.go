package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in api.UserCreate
	if err := decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.deps.Users.Create(r.Context(), fromUserCreate(in))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.log.Info(r.Context(), "user created", "id", u.ID)
	writeJSON(w, http.StatusCreated, toAPIUser(u))
}

// ListUsers searches the directory. public_only defaults to true.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.UserFilter{
		Skill:      q.Get("skill"),
		Location:   q.Get("location"),
		PublicOnly: true,
	}
	if v := q.Get("public_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.fail(w, r, common.WithDetail(common.ErrorInvalidArgument, "public_only must be a boolean"))
			return
		}
		filter.PublicOnly = b
	}

	us, err := h.deps.Users.Search(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIUsers(us))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.deps.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIUser(u))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var in api.UserUpdate
	if err := decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.deps.Users.Update(r.Context(), chi.URLParam(r, "id"), fromUserUpdate(in))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIUser(u))
}

func (h *Handler) PhotoUploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := h.deps.Photos.UploadURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.PhotoUpload{Key: key, UploadURL: url})
}

// Photo redirects to a short-lived download URL.
func (h *Handler) Photo(w http.ResponseWriter, r *http.Request) {
	url, err := h.deps.Photos.DownloadURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *Handler) SearchSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.deps.Users.SearchSkills(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.SkillList{Skills: skills})
}
