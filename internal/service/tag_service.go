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

type tagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	FindByID(ctx context.Context, id string) (*models.Tag, error)
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id string) error
}

// TagService handles workshop tag workflows.
type TagService struct {
	repo      tagRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTagService creates a new tag service.
func NewTagService(repo tagRepository, validate *validator.Validate, logger *zap.Logger) *TagService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagService{repo: repo, validator: validate, logger: logger}
}

// List returns all tags.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tags")
	}
	return tags, nil
}

// Get returns a tag by identifier.
func (s *TagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "tag not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tag")
	}
	return tag, nil
}

// Create adds a new tag ensuring name uniqueness.
func (s *TagService) Create(ctx context.Context, req dto.CreateTagRequest) (*models.Tag, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tag payload")
	}
	name := strings.TrimSpace(req.Name)
	exists, err := s.repo.ExistsByName(ctx, name, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check tag name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "tag name already exists")
	}
	tag := &models.Tag{Name: name, Color: req.Color}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create tag")
	}
	return tag, nil
}

// Update modifies an existing tag. Nil fields are left unchanged.
func (s *TagService) Update(ctx context.Context, id string, req dto.UpdateTagRequest) (*models.Tag, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tag payload")
	}
	tag, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		exists, err := s.repo.ExistsByName(ctx, name, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check tag name")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "tag name already exists")
		}
		tag.Name = name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update tag")
	}
	return tag, nil
}

// Delete removes a tag.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete tag")
	}
	return nil
}
