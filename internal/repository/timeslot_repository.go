package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pinecrest/camp-roster-api/internal/models"
)

// TimeSlotRepository manages persistence for schedule time slots.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository constructs a TimeSlotRepository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// timeSlotRow is the storage shape; times are nullable "15:04" strings.
type timeSlotRow struct {
	ID        string         `db:"id"`
	Label     string         `db:"label"`
	StartTime sql.NullString `db:"start_time"`
	EndTime   sql.NullString `db:"end_time"`
	IsPeriod  bool           `db:"is_period"`
	Position  int            `db:"position"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r timeSlotRow) toModel() (models.TimeSlot, error) {
	slot := models.TimeSlot{
		ID:       r.ID,
		Label:    r.Label,
		IsPeriod: r.IsPeriod,
		Position: r.Position,
	}
	if r.StartTime.Valid && r.StartTime.String != "" {
		t, err := models.ParseTimeOfDay(r.StartTime.String)
		if err != nil {
			return models.TimeSlot{}, err
		}
		slot.StartTime = &t
	}
	if r.EndTime.Valid && r.EndTime.String != "" {
		t, err := models.ParseTimeOfDay(r.EndTime.String)
		if err != nil {
			return models.TimeSlot{}, err
		}
		slot.EndTime = &t
	}
	return slot, nil
}

func nullTime(t *models.TimeOfDay) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.String(), Valid: true}
}

// List returns all slots ordered by position, then label.
func (r *TimeSlotRepository) List(ctx context.Context) ([]models.TimeSlot, error) {
	const query = `SELECT id, label, start_time, end_time, is_period, position, created_at, updated_at FROM time_slots ORDER BY position ASC, label ASC`
	var rows []timeSlotRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	slots := make([]models.TimeSlot, 0, len(rows))
	for _, row := range rows {
		slot, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("decode time slot %s: %w", row.ID, err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// FindByID fetches one slot by ID.
func (r *TimeSlotRepository) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	const query = `SELECT id, label, start_time, end_time, is_period, position, created_at, updated_at FROM time_slots WHERE id = $1`
	var row timeSlotRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	slot, err := row.toModel()
	if err != nil {
		return nil, fmt.Errorf("decode time slot %s: %w", id, err)
	}
	return &slot, nil
}

// Create inserts a new slot record.
func (r *TimeSlotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	const query = `INSERT INTO time_slots (id, label, start_time, end_time, is_period, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	if _, err := r.db.ExecContext(ctx, query, slot.ID, slot.Label, nullTime(slot.StartTime), nullTime(slot.EndTime), slot.IsPeriod, slot.Position, now); err != nil {
		return fmt.Errorf("create time slot: %w", err)
	}
	return nil
}

// Update modifies an existing slot record.
func (r *TimeSlotRepository) Update(ctx context.Context, slot *models.TimeSlot) error {
	const query = `UPDATE time_slots SET label = $2, start_time = $3, end_time = $4, is_period = $5, position = $6, updated_at = $7 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, slot.ID, slot.Label, nullTime(slot.StartTime), nullTime(slot.EndTime), slot.IsPeriod, slot.Position, time.Now().UTC()); err != nil {
		return fmt.Errorf("update time slot: %w", err)
	}
	return nil
}

// Delete removes a slot record.
func (r *TimeSlotRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete time slot: %w", err)
	}
	return nil
}
