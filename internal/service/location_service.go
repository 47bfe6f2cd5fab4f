package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pinecrest/camp-roster-api/internal/dto"
	"github.com/pinecrest/camp-roster-api/internal/models"
	appErrors "github.com/pinecrest/camp-roster-api/pkg/errors"
)

type locationRepository interface {
	List(ctx context.Context, search string) ([]models.Location, error)
	FindByID(ctx context.Context, id string) (*models.Location, error)
	Create(ctx context.Context, location *models.Location) error
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id string) error
}

// LocationService handles workshop location workflows.
type LocationService struct {
	repo      locationRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLocationService creates a new location service.
func NewLocationService(repo locationRepository, validate *validator.Validate, logger *zap.Logger) *LocationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationService{repo: repo, validator: validate, logger: logger}
}

// List returns locations, optionally filtered by a name search.
func (s *LocationService) List(ctx context.Context, search string) ([]models.Location, error) {
	locations, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list locations")
	}
	return locations, nil
}

// Get returns a location by identifier.
func (s *LocationService) Get(ctx context.Context, id string) (*models.Location, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "location not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load location")
	}
	return location, nil
}

// Create adds a new location.
func (s *LocationService) Create(ctx context.Context, req dto.CreateLocationRequest) (*models.Location, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid location payload")
	}
	location := &models.Location{
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Capacity,
		Notes:    req.Notes,
	}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create location")
	}
	return location, nil
}

// Update modifies an existing location. Nil fields are left unchanged.
func (s *LocationService) Update(ctx context.Context, id string, req dto.UpdateLocationRequest) (*models.Location, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid location payload")
	}
	location, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		location.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		location.Capacity = *req.Capacity
	}
	if req.Notes != nil {
		location.Notes = *req.Notes
	}
	if err := s.repo.Update(ctx, location); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update location")
	}
	return location, nil
}

// Delete removes a location.
func (s *LocationService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete location")
	}
	return nil
}
