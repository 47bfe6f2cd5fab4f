package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pinecrest/camp-roster-api/internal/models"
)

const importResultKeyPrefix = "imports:result:"

// ImportResultRepository keeps completed import results in Redis so the
// report layer can render rosters after the upload request has finished.
// Results expire after the configured TTL; an import is rebuilt fresh from
// the workbook anyway.
type ImportResultRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewImportResultRepository constructs the repository.
func NewImportResultRepository(client *redis.Client, ttl time.Duration) *ImportResultRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ImportResultRepository{client: client, ttl: ttl}
}

// Save serialises the result under its import ID.
func (r *ImportResultRepository) Save(ctx context.Context, result *models.ImportResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode import result: %w", err)
	}
	if err := r.client.Set(ctx, importResultKeyPrefix+result.ID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("store import result: %w", err)
	}
	return nil
}

// Get fetches a stored result by import ID.
func (r *ImportResultRepository) Get(ctx context.Context, id string) (*models.ImportResult, error) {
	raw, err := r.client.Get(ctx, importResultKeyPrefix+id).Bytes()
	if err != nil {
		return nil, fmt.Errorf("fetch import result %s: %w", id, err)
	}
	var result models.ImportResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode import result %s: %w", id, err)
	}
	return &result, nil
}
