// Package handler implements the HTTP handlers for the Tripfolio API.
// All handlers are methods on Server and are split into resource-specific
// files (destination.go, attraction.go, plan.go, file.go) that share the same
// struct. Handlers decode requests, call the service, and map domain errors
// to HTTP status codes — no business logic lives here.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// DestinationServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the storage provider.
type DestinationServicer interface {
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
	GetDestination(ctx context.Context, id string) (domain.Destination, error)
	CreateDestination(ctx context.Context, name string) (domain.Destination, error)
	UpdateMetadata(ctx context.Context, id string, patch domain.MetadataPatch) error
	AddCategory(ctx context.Context, destID, name string) (domain.Category, error)
	AddAttraction(ctx context.Context, destID, name string) (domain.Attraction, error)
	RemoveAttraction(ctx context.Context, destID, attractionID string) error
	UpdatePlan(ctx context.Context, destID string, plan []domain.PlanEntry) error
	UpsertPlanEntry(ctx context.Context, destID string, entry domain.PlanEntry) (domain.PlanEntry, error)
	UploadFile(ctx context.Context, destID, categoryID, name, mimeType string, content []byte) (domain.DriveFile, error)
	DeleteFile(ctx context.Context, destID, categoryID, fileID string) error
	RenameFile(ctx context.Context, destID, categoryID, fileID, newName string) error
}

// Server holds the handlers' dependencies. Wire it in main.go via Routes().
type Server struct {
	destinations DestinationServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(destinations DestinationServicer) *Server {
	return &Server{destinations: destinations}
}

// Routes returns the chi router for the full REST surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.ListDestinations)
		r.Post("/", s.CreateDestination)

		r.Route("/{destID}", func(r chi.Router) {
			r.Get("/", s.GetDestination)
			r.Patch("/", s.UpdateDestinationMetadata)

			r.Post("/categories", s.AddCategory)
			r.Post("/attractions", s.AddAttraction)
			r.Delete("/attractions/{attractionID}", s.RemoveAttraction)

			r.Put("/plan", s.UpdatePlan)
			r.Put("/plan/{entryID}", s.UpsertPlanEntry)

			r.Route("/categories/{categoryID}/files", func(r chi.Router) {
				r.Post("/", s.UploadFile)
				r.Delete("/{fileID}", s.DeleteFile)
				r.Patch("/{fileID}", s.RenameFile)
			})
		})
	})

	return r
}
