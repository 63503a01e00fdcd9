package usecase

import (
	"context"
	"time"

	"matchmakr-backend/pkg/redis"
)

// Pinger is satisfied by the database pool
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	db    Pinger
	cache *redis.Client
}

func NewHealthUsecase(db Pinger, cache *redis.Client) HealthUsecase {
	return &healthUsecase{db: db, cache: cache}
}

// Check returns component statuses and whether the service can serve traffic. The cache is optional.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok", "cache": "disabled"}
	healthy := true

	if err := u.db.Ping(ctx); err != nil {
		status["database"] = "unavailable"
		status["status"] = "degraded"
		healthy = false
	}
	if u.cache.Available() {
		status["cache"] = "ok"
		if err := u.cache.HealthCheck(ctx); err != nil {
			status["cache"] = "unavailable"
		}
	}
	return status, healthy
}
