package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

// BootcampService implements bootcamp CRUD with ownership checks.
type BootcampService struct {
	repo   ports.BootcampRepository
	logger zerolog.Logger
}

func NewBootcampService(repo ports.BootcampRepository, logger zerolog.Logger) *BootcampService {
	return &BootcampService{repo: repo, logger: logger}
}

func (s *BootcampService) List(ctx context.Context) ([]*domain.Bootcamp, error) {
	return s.repo.List(ctx)
}

func (s *BootcampService) Get(ctx context.Context, id string) (*domain.Bootcamp, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BootcampService) Create(ctx context.Context, ownerID string, input ports.BootcampInput) (*domain.Bootcamp, error) {
	if input.Name == "" || input.Description == "" || input.Address == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	bootcamp := &domain.Bootcamp{
		Name:          input.Name,
		Slug:          slugify(input.Name),
		Description:   input.Description,
		Website:       input.Website,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		Careers:       input.Careers,
		Housing:       input.Housing,
		JobAssistance: input.JobAssistance,
		OwnerID:       ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, bootcamp)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create bootcamp")
		return nil, err
	}

	s.logger.Info().Str("bootcamp_id", created.ID).Str("owner_id", ownerID).Msg("bootcamp created")
	return created, nil
}

func (s *BootcampService) Update(ctx context.Context, id, actorID, actorRole string, input ports.BootcampInput) (*domain.Bootcamp, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeWrite(existing, actorID, actorRole); err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Slug = slugify(input.Name)
	existing.Description = input.Description
	existing.Website = input.Website
	existing.Phone = input.Phone
	existing.Email = input.Email
	existing.Address = input.Address
	existing.Careers = input.Careers
	existing.Housing = input.Housing
	existing.JobAssistance = input.JobAssistance
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, existing)
}

func (s *BootcampService) Delete(ctx context.Context, id, actorID, actorRole string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeWrite(existing, actorID, actorRole); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("bootcamp_id", id).Str("actor_id", actorID).Msg("bootcamp deleted")
	return nil
}

// authorizeWrite allows the owning publisher or any admin.
func authorizeWrite(b *domain.Bootcamp, actorID, actorRole string) error {
	if actorRole == domain.RoleAdmin || b.OwnerID == actorID {
		return nil
	}
	return domain.ErrForbidden
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL-safe slug from a bootcamp name.
func slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
