package ports

import (
	"context"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// BootcampInput carries the writable fields of a bootcamp.
type BootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	Housing       bool
	JobAssistance bool
}

type BootcampService interface {
	List(ctx context.Context) ([]*domain.Bootcamp, error)
	Get(ctx context.Context, id string) (*domain.Bootcamp, error)
	Create(ctx context.Context, ownerID string, input BootcampInput) (*domain.Bootcamp, error)
	// Update and Delete enforce ownership: only the owning publisher or an
	// admin may modify a bootcamp.
	Update(ctx context.Context, id, actorID, actorRole string, input BootcampInput) (*domain.Bootcamp, error)
	Delete(ctx context.Context, id, actorID, actorRole string) error
}
