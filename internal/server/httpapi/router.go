// Package httpapi exposes the SkillSwap services over JSON/HTTP.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/skillswap/internal/logging"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/services"
	"github.com/dmitrijs2005/skillswap/internal/swap"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type UserDirectory interface {
	Create(ctx context.Context, u models.User) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Search(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	SearchSkills(ctx context.Context, query string) ([]string, error)
}

type SwapStore interface {
	Create(ctx context.Context, requesterID string, d services.SwapDraft) (*swap.Request, error)
	ListByUser(ctx context.Context, userID string) ([]swap.Request, error)
	UpdateStatus(ctx context.Context, id string, decision swap.Status, actorID string) (*swap.Request, error)
	Delete(ctx context.Context, id, actorID string) error
}

type RatingStore interface {
	Create(ctx context.Context, raterID string, in models.Rating) (*models.Rating, error)
}

type DashboardSource interface {
	Get(ctx context.Context, userID string) (*services.Dashboard, error)
}

type PhotoStore interface {
	UploadURL(ctx context.Context, userID string) (key, url string, err error)
	DownloadURL(ctx context.Context, userID string) (string, error)
}

// Pinger reports database reachability for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators behind the routes.
type Deps struct {
	Users     UserDirectory
	Swaps     SwapStore
	Ratings   RatingStore
	Dashboard DashboardSource
	Photos    PhotoStore
	DB        Pinger
}

type Options struct {
	BasePath    string
	CORSOrigins []string
}

type Handler struct {
	deps Deps
	log  logging.Logger
}

// NewRouter mounts every route under opts.BasePath.
func NewRouter(deps Deps, opts Options, log logging.Logger) http.Handler {
	h := &Handler{deps: deps, log: log}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	routes := func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Put("/", h.UpdateUser)
				r.Post("/photo", h.PhotoUploadURL)
				r.Get("/photo", h.Photo)
			})
		})

		r.Route("/swap-requests", func(r chi.Router) {
			r.Get("/", h.ListSwapRequests)
			r.Post("/", h.CreateSwapRequest)
			r.Put("/{id}", h.UpdateSwapRequest)
			r.Delete("/{id}", h.DeleteSwapRequest)
		})

		r.Post("/ratings", h.CreateRating)
		r.Get("/search/skills", h.SearchSkills)
		r.Get("/dashboard/{userID}", h.Dashboard)
	}

	if base := strings.TrimRight(opts.BasePath, "/"); base != "" {
		r.Route(base, routes)
	} else {
		routes(r)
	}

	return r
}
