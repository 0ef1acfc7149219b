// Package handler implements the local wizard API: JSON over HTTP on a chi
// router. All handlers are methods on Server. They translate requests into
// wizard and service calls and map domain errors onto status codes; no
// business rule lives here.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// TripSubmitter creates the trip described by a completed wizard.
// Satisfied by *service.TripCreator.
type TripSubmitter interface {
	Submit(ctx context.Context, w *service.Wizard, nav service.Navigator) (string, error)
}

// TripDetailer serves the screens shown once a trip exists.
// Satisfied by *service.TripDetails.
type TripDetailer interface {
	CurrentTrip(ctx context.Context) (string, error)
	ForgetTrip(ctx context.Context) error
	Trip(ctx context.Context, tripID string) (domain.TripDetails, error)
	Links(ctx context.Context, tripID string) ([]domain.Link, error)
	CreateLink(ctx context.Context, tripID, title, linkURL string) (string, error)
	Participants(ctx context.Context, tripID string) ([]domain.Participant, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	sessions *Sessions
	creator  TripSubmitter
	details  TripDetailer
	metrics  http.Handler
	log      *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics exposes h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithLogger sets the logger used for unexpected errors.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer constructs the Server with all its dependencies.
func NewServer(sessions *Sessions, creator TripSubmitter, details TripDetailer, opts ...Option) *Server {
	s := &Server{
		sessions: sessions,
		creator:  creator,
		details:  details,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/wizards", func(r chi.Router) {
		r.Post("/", s.CreateWizard)
		r.Route("/{wizardID}", func(r chi.Router) {
			r.Get("/", s.GetWizard)
			r.Delete("/", s.DeleteWizard)
			r.Put("/destination", s.SetDestination)
			r.Post("/days", s.SelectDay)
			r.Post("/emails", s.AddEmail)
			r.Delete("/emails/{email}", s.RemoveEmail)
			r.Post("/advance", s.Advance)
			r.Post("/retreat", s.Retreat)
			r.Post("/submit", s.Submit)
		})
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/current", s.GetCurrentTrip)
		r.Delete("/current", s.ForgetCurrentTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Get("/links", s.ListLinks)
			r.Post("/links", s.CreateLink)
			r.Get("/participants", s.ListParticipants)
		})
	})
}

// Handler returns a chi router with every endpoint registered and no
// middleware. main.go layers middleware on its own router and calls Routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}
