package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CaseCacheTTL is the time-to-live for cached cases.
	CaseCacheTTL = 24 * time.Hour

	caseCacheKeyPrefix = "case"
)

// CachedCase is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash. Additional fields from related records
// can be added here for read optimization without touching the domain model.
type CachedCase struct {
	ID           uuid.UUID `json:"id"`
	OrgID        uuid.UUID `json:"org_id"`
	CustomerKind string    `json:"customer_kind"`
	CustomerID   uuid.UUID `json:"customer_id"`
	Subject      string    `json:"subject"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// CaseCache provides structured read/write operations for case cache entries.
// Keys are scoped by orgID to prevent cross-tenant data leakage.
// Key format: "case:{orgID}:{caseID}"
type CaseCache struct {
	client *RedisClient
}

// NewCaseCache creates a new CaseCache backed by the given RedisClient.
func NewCaseCache(r *RedisClient) *CaseCache {
	return &CaseCache{client: r}
}

// Get retrieves a cached case by org + case ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *CaseCache) Get(ctx context.Context, orgID, caseID uuid.UUID) (*CachedCase, error) {
	key := c.key(orgID, caseID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	oid, err := uuid.Parse(vals["org_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse org_id: %w", err)
	}
	customerID, err := uuid.Parse(vals["customer_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse customer_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedCase{
		ID:           id,
		OrgID:        oid,
		CustomerKind: vals["customer_kind"],
		CustomerID:   customerID,
		Subject:      vals["subject"],
		Status:       vals["status"],
		CreatedAt:    createdAt,
	}, nil
}

// Set writes a cached case as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *CaseCache) Set(ctx context.Context, cc *CachedCase) error {
	key := c.key(cc.OrgID, cc.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", cc.ID.String(),
		"org_id", cc.OrgID.String(),
		"customer_kind", cc.CustomerKind,
		"customer_id", cc.CustomerID.String(),
		"subject", cc.Subject,
		"status", cc.Status,
		"created_at", cc.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, CaseCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached case. Called on every status transition so a stale
// active status never survives a lifecycle change.
func (c *CaseCache) Delete(ctx context.Context, orgID, caseID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(orgID, caseID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "case:{orgID}:{caseID}"
func (c *CaseCache) key(orgID, caseID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", caseCacheKeyPrefix, orgID, caseID)
}
