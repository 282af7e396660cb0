package ports

import (
	"context"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// BootcampRepository defines persistence operations for bootcamps.
type BootcampRepository interface {
	Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error)
	FindByID(ctx context.Context, id string) (*domain.Bootcamp, error)
	List(ctx context.Context) ([]*domain.Bootcamp, error)
	Update(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error)
	Delete(ctx context.Context, id string) error
}
