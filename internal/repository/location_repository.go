package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pinecrest/camp-roster-api/internal/models"
)

// LocationRepository manages persistence for workshop locations.
type LocationRepository struct {
	db *sqlx.DB
}

// NewLocationRepository constructs a LocationRepository.
func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// List returns locations, optionally filtered by a name search.
func (r *LocationRepository) List(ctx context.Context, search string) ([]models.Location, error) {
	query := "SELECT id, name, capacity, notes, created_at, updated_at FROM locations"
	var args []interface{}
	if search != "" {
		query += " WHERE LOWER(name) LIKE $1"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	query += " ORDER BY name ASC"

	var locations []models.Location
	if err := r.db.SelectContext(ctx, &locations, query, args...); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

// FindByID fetches a location by ID.
func (r *LocationRepository) FindByID(ctx context.Context, id string) (*models.Location, error) {
	const query = `SELECT id, name, capacity, notes, created_at, updated_at FROM locations WHERE id = $1`
	var location models.Location
	if err := r.db.GetContext(ctx, &location, query, id); err != nil {
		return nil, err
	}
	return &location, nil
}

// Create inserts a new location record.
func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	if location.ID == "" {
		location.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	location.CreatedAt = now
	location.UpdatedAt = now

	const query = `INSERT INTO locations (id, name, capacity, notes, created_at, updated_at)
		VALUES (:id, :name, :capacity, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, location); err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// Update modifies an existing location record.
func (r *LocationRepository) Update(ctx context.Context, location *models.Location) error {
	location.UpdatedAt = time.Now().UTC()
	const query = `UPDATE locations SET name = :name, capacity = :capacity, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, location); err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// Delete removes a location record.
func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
