package usecase

import (
	"context"
	"time"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// HealthChecker verifies store connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthUseCase reports store connectivity and process uptime.
type HealthUseCase struct {
	checker HealthChecker
	started time.Time
	now     func() time.Time
}

// NewHealthUseCase constructs HealthUseCase started at the current time.
func NewHealthUseCase(checker HealthChecker) *HealthUseCase {
	return &HealthUseCase{checker: checker, started: time.Now(), now: time.Now}
}

// Check pings the store. The report timestamp is set even when the check fails.
func (u *HealthUseCase) Check(ctx context.Context) (model.HealthReport, error) {
	now := u.now()
	report := model.HealthReport{Timestamp: now, Uptime: now.Sub(u.started)}
	if err := u.checker.HealthCheck(ctx); err != nil {
		return report, err
	}
	return report, nil
}
