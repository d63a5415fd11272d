package clock_test

import (
	"testing"
	"time"

	"marketplace/internal/adapters/out/clock"

	"github.com/stretchr/testify/assert"
)

func TestSystem_Now(t *testing.T) {
	assert.Equal(t, time.UTC, clock.System{}.Now().Location())
}

func TestManual(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewManual(start)

	c.Advance(time.Hour)
	assert.Equal(t, start.Add(time.Hour), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
