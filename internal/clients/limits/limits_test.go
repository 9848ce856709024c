package limits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Limiter_UnlimitedByDefault(t *testing.T) {
	var l Limiter
	for i := 0; i < 100; i++ {
		assert.NoError(t, l.Wait(context.Background()))
	}
}

func Test_Limiter_MinuteLimitBlocksSecondRequest(t *testing.T) {
	var l Limiter
	l.SetMinuteRateLimit(1)

	assert.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx))
}

func Test_Limiter_DayLimitAllowsBurst(t *testing.T) {
	var l Limiter
	l.SetDayRateLimit(5)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	for i := 0; i < 5; i++ {
		assert.NoError(t, l.Wait(ctx))
	}
}
