package clock_test

import (
	"testing"
	"time"

	"github.com/robalyx/headline/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestMock(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewMock(start)
	assert.Equal(t, start, c.Now())

	assert.Equal(t, start.Add(time.Hour), c.Advance(time.Hour))
	assert.Equal(t, start.Add(time.Hour), c.Now())

	later := start.Add(48 * time.Hour)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestSystemIsUTC(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.UTC, clock.System{}.Now().Location())
}
