package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pinecrest/camp-roster-api/internal/models"
)

// TagRepository manages persistence for workshop tags.
type TagRepository struct {
	db *sqlx.DB
}

// NewTagRepository constructs a TagRepository.
func NewTagRepository(db *sqlx.DB) *TagRepository {
	return &TagRepository{db: db}
}

// List returns all tags ordered by name.
func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	const query = `SELECT id, name, color, created_at, updated_at FROM tags ORDER BY name ASC`
	var tags []models.Tag
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// FindByID fetches a tag by ID.
func (r *TagRepository) FindByID(ctx context.Context, id string) (*models.Tag, error) {
	const query = `SELECT id, name, color, created_at, updated_at FROM tags WHERE id = $1`
	var tag models.Tag
	if err := r.db.GetContext(ctx, &tag, query, id); err != nil {
		return nil, err
	}
	return &tag, nil
}

// ExistsByName checks for a duplicate tag name.
func (r *TagRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM tags WHERE LOWER(name) = LOWER($1)"
	args := []interface{}{name}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check tag name: %w", err)
	}
	return true, nil
}

// Create inserts a new tag record.
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	tag.CreatedAt = now
	tag.UpdatedAt = now

	const query = `INSERT INTO tags (id, name, color, created_at, updated_at)
		VALUES (:id, :name, :color, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tag); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// Update modifies an existing tag record.
func (r *TagRepository) Update(ctx context.Context, tag *models.Tag) error {
	tag.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tags SET name = :name, color = :color, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, tag); err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	return nil
}

// Delete removes a tag record.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
