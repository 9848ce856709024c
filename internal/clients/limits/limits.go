package limits

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter holds optional per-minute and per-day request quotas of a generative api.
type Limiter struct {
	minute *rate.Limiter
	day    *rate.Limiter
}

func (l *Limiter) SetMinuteRateLimit(maxRequestsPerMinute float32) {
	if maxRequestsPerMinute <= 0 {
		l.minute = nil
		return
	}
	l.minute = rate.NewLimiter(rate.Limit(maxRequestsPerMinute/60), 1)
}

func (l *Limiter) SetDayRateLimit(maxRequestsPerDay float32) {
	if maxRequestsPerDay <= 0 {
		l.day = nil
		return
	}
	l.day = rate.NewLimiter(rate.Limit(maxRequestsPerDay/86400), int(maxRequestsPerDay))
}

func (l *Limiter) Wait(ctx context.Context) error {
	for _, limiter := range []*rate.Limiter{l.minute, l.day} {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
