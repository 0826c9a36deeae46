package model

import "time"

// HealthReport describes service liveness.
type HealthReport struct {
	Timestamp time.Time
	Uptime    time.Duration
}
