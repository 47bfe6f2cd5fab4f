package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinecrest/camp-roster-api/internal/dto"
	"github.com/pinecrest/camp-roster-api/internal/models"
	appErrors "github.com/pinecrest/camp-roster-api/pkg/errors"
)

func tod(t *testing.T, value string) *models.TimeOfDay {
	t.Helper()
	parsed, err := models.ParseTimeOfDay(value)
	require.NoError(t, err)
	return &parsed
}

func periodSlot(t *testing.T, start, end string) models.TimeSlot {
	t.Helper()
	slot := models.TimeSlot{IsPeriod: true}
	if start != "" {
		slot.StartTime = tod(t, start)
	}
	if end != "" {
		slot.EndTime = tod(t, end)
	}
	return slot
}

func TestValidateSlotsEmpty(t *testing.T) {
	verdict := ValidateSlots(nil)
	assert.True(t, verdict.IsValid)
	assert.False(t, verdict.HasOverlappingTimeslots)
	assert.False(t, verdict.HasUnconfiguredTimeslots)
}

func TestValidateSlotsOverlap(t *testing.T) {
	verdict := ValidateSlots([]models.TimeSlot{
		periodSlot(t, "09:00", "10:30"),
		periodSlot(t, "10:00", "11:30"),
	})
	assert.True(t, verdict.HasOverlappingTimeslots)
	assert.False(t, verdict.IsValid)
}

func TestValidateSlotsTouchingIsAllowed(t *testing.T) {
	verdict := ValidateSlots([]models.TimeSlot{
		periodSlot(t, "10:30", "12:00"),
		periodSlot(t, "09:00", "10:30"),
	})
	assert.False(t, verdict.HasOverlappingTimeslots)
	assert.True(t, verdict.IsValid)
}

func TestValidateSlotsUnconfiguredPeriod(t *testing.T) {
	verdict := ValidateSlots([]models.TimeSlot{
		periodSlot(t, "", "10:30"),
		periodSlot(t, "11:00", "12:00"),
	})
	assert.True(t, verdict.HasUnconfiguredTimeslots)
	assert.False(t, verdict.IsValid)
}

func TestValidateSlotsNonPeriodWithoutTimesIsExempt(t *testing.T) {
	verdict := ValidateSlots([]models.TimeSlot{
		{Label: "Free time"},
		periodSlot(t, "09:00", "10:00"),
	})
	assert.True(t, verdict.IsValid)
}

func TestValidateSlotsEqualStartsAlwaysOverlap(t *testing.T) {
	// Two non-period slots with the same start and no end still conflict.
	verdict := ValidateSlots([]models.TimeSlot{
		{Label: "Campfire", StartTime: tod(t, "21:15")},
		{Label: "Stargazing", StartTime: tod(t, "21:15")},
	})
	assert.True(t, verdict.HasOverlappingTimeslots)
	assert.False(t, verdict.HasUnconfiguredTimeslots)
}

func TestValidateSlotsZeroWidth(t *testing.T) {
	// A zero-width slot alone is valid.
	verdict := ValidateSlots([]models.TimeSlot{periodSlot(t, "10:00", "10:00")})
	assert.True(t, verdict.IsValid)

	// It conflicts with an interval crossing it.
	verdict = ValidateSlots([]models.TimeSlot{
		periodSlot(t, "10:00", "10:00"),
		periodSlot(t, "09:00", "11:00"),
	})
	assert.True(t, verdict.HasOverlappingTimeslots)

	// Touching its boundary is fine.
	verdict = ValidateSlots([]models.TimeSlot{
		periodSlot(t, "10:00", "10:00"),
		periodSlot(t, "09:00", "10:00"),
	})
	assert.False(t, verdict.HasOverlappingTimeslots)
}

type timeSlotRepoStub struct {
	slots []models.TimeSlot
	err   error
}

func (s *timeSlotRepoStub) List(ctx context.Context) ([]models.TimeSlot, error) {
	return s.slots, s.err
}

func (s *timeSlotRepoStub) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	for i := range s.slots {
		if s.slots[i].ID == id {
			slot := s.slots[i]
			return &slot, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *timeSlotRepoStub) Create(ctx context.Context, slot *models.TimeSlot) error {
	s.slots = append(s.slots, *slot)
	return s.err
}

func (s *timeSlotRepoStub) Update(ctx context.Context, slot *models.TimeSlot) error {
	for i := range s.slots {
		if s.slots[i].ID == slot.ID {
			s.slots[i] = *slot
		}
	}
	return s.err
}

func (s *timeSlotRepoStub) Delete(ctx context.Context, id string) error {
	return s.err
}

type verdictCacheStub struct {
	values  map[string]string
	deletes int
}

func (c *verdictCacheStub) Get(ctx context.Context, key string) (string, error) {
	return c.values[key], nil
}

func (c *verdictCacheStub) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.values == nil {
		c.values = make(map[string]string)
	}
	c.values[key] = value
	return nil
}

func (c *verdictCacheStub) Delete(ctx context.Context, keys ...string) error {
	c.deletes++
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}

func TestTimeSlotServiceCreateAndValidate(t *testing.T) {
	repo := &timeSlotRepoStub{}
	cache := &verdictCacheStub{}
	svc := NewTimeSlotService(repo, cache, time.Minute, nil, zap.NewNop())

	start := "09:00"
	end := "10:30"
	slot, err := svc.Create(context.Background(), dto.CreateTimeSlotRequest{
		Label:     "First Period",
		StartTime: &start,
		EndTime:   &end,
		IsPeriod:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, slot.ID)
	assert.Equal(t, "09:00", slot.StartTime.String())
	assert.Equal(t, 1, cache.deletes, "writes invalidate the cached verdict")

	verdict, err := svc.Validate(context.Background())
	require.NoError(t, err)
	assert.True(t, verdict.IsValid)

	// Second call is served from cache.
	repo.err = sql.ErrConnDone
	verdict, err = svc.Validate(context.Background())
	require.NoError(t, err)
	assert.True(t, verdict.IsValid)
}

func TestTimeSlotServiceCreateRejectsBadTime(t *testing.T) {
	svc := NewTimeSlotService(&timeSlotRepoStub{}, nil, 0, nil, zap.NewNop())

	bad := "25:99"
	_, err := svc.Create(context.Background(), dto.CreateTimeSlotRequest{Label: "x", StartTime: &bad})
	require.Error(t, err)
}

func TestTimeSlotServiceCreateRequiresLabel(t *testing.T) {
	repo := &timeSlotRepoStub{}
	svc := NewTimeSlotService(repo, nil, 0, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), dto.CreateTimeSlotRequest{})
	require.Error(t, err, "label is required")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.slots, "rejected payloads are never persisted")
}

func TestTimeSlotServiceUpdateNotFound(t *testing.T) {
	svc := NewTimeSlotService(&timeSlotRepoStub{}, nil, 0, nil, zap.NewNop())
	_, err := svc.Update(context.Background(), "missing", dto.UpdateTimeSlotRequest{})
	require.Error(t, err)
}

func TestTimeSlotServiceValidateDraft(t *testing.T) {
	svc := NewTimeSlotService(&timeSlotRepoStub{}, nil, 0, nil, zap.NewNop())

	start1, end1 := "09:00", "10:30"
	start2, end2 := "10:00", "11:30"
	verdict, err := svc.ValidateDraft(dto.ValidateDraftRequest{Slots: []dto.DraftTimeSlot{
		{Label: "A", StartTime: &start1, EndTime: &end1, IsPeriod: true},
		{Label: "B", StartTime: &start2, EndTime: &end2, IsPeriod: true},
	}})
	require.NoError(t, err)
	assert.True(t, verdict.HasOverlappingTimeslots)
}
