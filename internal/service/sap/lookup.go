package sap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mailtriage/internal/model"
	"mailtriage/internal/repository"
)

// Lookup answers the sap_exists predicate: is a normalized SAP ID a known
// account. A Redis cache (positive and negative results) sits in front of
// the sap_customers reference table; a cache outage degrades to plain table
// lookups.
type Lookup struct {
	repo   *repository.SAPCustomerRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewLookup(repo *repository.SAPCustomerRepository, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Lookup {
	return &Lookup{
		repo:   repo,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// Exists reports whether the SAP ID is a known account. Callers pass only
// already-normalized, format-valid IDs.
func (l *Lookup) Exists(ctx context.Context, sapID string) (bool, error) {
	key := "sap:exists:" + sapID

	if val, err := l.rdb.Get(ctx, key).Result(); err == nil {
		return val == "1", nil
	} else if err != redis.Nil {
		l.logger.Warn("SAP existence cache read failed, falling back to table lookup",
			zap.String("sap_id", sapID),
			zap.Error(err),
		)
	}

	exists, err := l.repo.Exists(ctx, sapID)
	if err != nil {
		return false, fmt.Errorf("sap existence lookup: %w", err)
	}

	val := "0"
	if exists {
		val = "1"
	}
	if err := l.rdb.Set(ctx, key, val, l.ttl).Err(); err != nil {
		l.logger.Warn("SAP existence cache write failed",
			zap.String("sap_id", sapID),
			zap.Error(err),
		)
	}

	return exists, nil
}

// Seed loads mock reference accounts, upserting each as ACTIVE.
func (l *Lookup) Seed(ctx context.Context, sapIDs []string) (int, error) {
	for _, id := range sapIDs {
		c := &model.SAPCustomer{SAPID: id, AccountStatus: "ACTIVE"}
		if err := l.repo.Upsert(ctx, c); err != nil {
			return 0, fmt.Errorf("seed sap customer %s: %w", id, err)
		}
	}
	return l.repo.Count(ctx)
}
