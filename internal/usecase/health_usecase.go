package usecase

import (
	"context"
	"time"
)

const (
	HealthOK       = "ok"
	HealthDown     = "down"
	HealthDisabled = "disabled"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// HealthCheck probes one optional dependency. A nil check reports "disabled".
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

// Check reports "status": "ok" whenever the process is serving, plus one entry per dependency
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	result := map[string]string{
		"status": HealthOK,
	}
	for name, check := range u.checks {
		if check == nil {
			result[name] = HealthDisabled
			continue
		}
		cctx, cancel := context.WithTimeout(ctx, u.timeout)
		if err := check(cctx); err != nil {
			result[name] = HealthDown
		} else {
			result[name] = HealthOK
		}
		cancel()
	}
	return result
}
