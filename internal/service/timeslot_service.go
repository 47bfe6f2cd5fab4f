package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinecrest/camp-roster-api/internal/dto"
	"github.com/pinecrest/camp-roster-api/internal/models"
	appErrors "github.com/pinecrest/camp-roster-api/pkg/errors"
)

const validationCacheKey = "timeslots:validation"

type timeSlotRepository interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
	FindByID(ctx context.Context, id string) (*models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
	Update(ctx context.Context, slot *models.TimeSlot) error
	Delete(ctx context.Context, id string) error
}

type verdictCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TimeSlotService manages the user-edited event schedule and its
// consistency verdict. Validation is re-run on every edit, so the verdict
// over persisted slots is cached until the next write.
type TimeSlotService struct {
	repo      timeSlotRepository
	cache     verdictCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimeSlotService constructs a TimeSlotService. The cache is optional.
func NewTimeSlotService(repo timeSlotRepository, cache verdictCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *TimeSlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &TimeSlotService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns all slots ordered by position.
func (s *TimeSlotService) List(ctx context.Context) ([]models.TimeSlot, error) {
	slots, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}
	return slots, nil
}

// Create persists a new slot and drops the cached verdict.
func (s *TimeSlotService) Create(ctx context.Context, req dto.CreateTimeSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}

	start, err := parseOptionalTime(req.StartTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start time")
	}
	end, err := parseOptionalTime(req.EndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end time")
	}

	slot := &models.TimeSlot{
		ID:        uuid.NewString(),
		Label:     req.Label,
		StartTime: start,
		EndTime:   end,
		IsPeriod:  req.IsPeriod,
		Position:  req.Position,
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create time slot")
	}
	s.dropVerdict(ctx)
	return slot, nil
}

// Update mutates an existing slot and drops the cached verdict.
func (s *TimeSlotService) Update(ctx context.Context, id string, req dto.UpdateTimeSlotRequest) (*models.TimeSlot, error) {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch time slot")
	}

	if req.Label != nil {
		slot.Label = *req.Label
	}
	if req.StartTime != nil {
		start, err := parseOptionalTime(req.StartTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start time")
		}
		slot.StartTime = start
	}
	if req.EndTime != nil {
		end, err := parseOptionalTime(req.EndTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end time")
		}
		slot.EndTime = end
	}
	if req.IsPeriod != nil {
		slot.IsPeriod = *req.IsPeriod
	}
	if req.Position != nil {
		slot.Position = *req.Position
	}

	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update time slot")
	}
	s.dropVerdict(ctx)
	return slot, nil
}

// Delete removes a slot and drops the cached verdict.
func (s *TimeSlotService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete time slot")
	}
	s.dropVerdict(ctx)
	return nil
}

// Validate runs the schedule validator over the persisted slots, serving the
// cached verdict when the slots have not changed since the last write.
func (s *TimeSlotService) Validate(ctx context.Context) (models.ScheduleValidation, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, validationCacheKey); err == nil && raw != "" {
			var cached models.ScheduleValidation
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	slots, err := s.repo.List(ctx)
	if err != nil {
		return models.ScheduleValidation{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}
	verdict := ValidateSlots(slots)

	if s.cache != nil {
		if raw, err := json.Marshal(verdict); err == nil {
			if err := s.cache.Set(ctx, validationCacheKey, string(raw), s.cacheTTL); err != nil {
				s.logger.Warn("failed to cache validation verdict", zap.Error(err))
			}
		}
	}
	return verdict, nil
}

// ValidateDraft validates unsaved slot edits without touching storage.
func (s *TimeSlotService) ValidateDraft(req dto.ValidateDraftRequest) (models.ScheduleValidation, error) {
	slots := make([]models.TimeSlot, 0, len(req.Slots))
	for _, draft := range req.Slots {
		start, err := parseOptionalTime(draft.StartTime)
		if err != nil {
			return models.ScheduleValidation{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start time")
		}
		end, err := parseOptionalTime(draft.EndTime)
		if err != nil {
			return models.ScheduleValidation{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end time")
		}
		slots = append(slots, models.TimeSlot{
			Label:     draft.Label,
			StartTime: start,
			EndTime:   end,
			IsPeriod:  draft.IsPeriod,
		})
	}
	return ValidateSlots(slots), nil
}

func (s *TimeSlotService) dropVerdict(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, validationCacheKey); err != nil {
		s.logger.Warn("failed to invalidate validation cache", zap.Error(err))
	}
}

// ValidateSlots is the schedule consistency check. It is a pure function of
// its input and holds no state between calls.
//
// Unconfigured pass: a period slot missing either time flags the schedule.
// Overlap pass: slots carrying a start time are stable-sorted by start;
// equal start times always conflict, and a slot whose end runs past the next
// start conflicts. Touching boundaries (end == next start) are allowed.
func ValidateSlots(slots []models.TimeSlot) models.ScheduleValidation {
	var verdict models.ScheduleValidation

	for _, slot := range slots {
		if slot.IsPeriod && (slot.StartTime == nil || slot.EndTime == nil) {
			verdict.HasUnconfiguredTimeslots = true
			break
		}
	}

	timed := make([]models.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.StartTime != nil {
			timed = append(timed, slot)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return *timed[i].StartTime < *timed[j].StartTime
	})

	for i := 0; i+1 < len(timed); i++ {
		current, next := timed[i], timed[i+1]
		if *current.StartTime == *next.StartTime {
			verdict.HasOverlappingTimeslots = true
			break
		}
		if current.EndTime != nil && *current.EndTime > *next.StartTime {
			verdict.HasOverlappingTimeslots = true
			break
		}
	}

	verdict.IsValid = !verdict.HasOverlappingTimeslots && !verdict.HasUnconfiguredTimeslots
	return verdict
}

func parseOptionalTime(raw *string) (*models.TimeOfDay, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := models.ParseTimeOfDay(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
