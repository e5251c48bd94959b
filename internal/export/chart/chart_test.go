package chart_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/robalyx/headline/internal/export/chart"
	"github.com/robalyx/headline/internal/export/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n")

func TestBuckets(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 2, 12, 30, 0, 0, time.UTC)
	activity := []*types.HourlyActivity{
		{Hour: time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC), Submitted: 3},
		{Hour: time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC), Published: 1},
		{Hour: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), Spam: 9}, // outside the window
	}

	buckets := chart.Buckets(activity, now)
	require.Len(t, buckets, chart.HoursToShow)

	assert.Equal(t, time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC), buckets[0].Hour)
	assert.Equal(t, 1, buckets[0].Published)
	assert.Equal(t, time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC), buckets[chart.HoursToShow-1].Hour)
	assert.Equal(t, 3, buckets[chart.HoursToShow-1].Submitted)

	var spam int
	for _, b := range buckets {
		spam += b.Spam
	}
	assert.Zero(t, spam)
}

func TestExport(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	err := chart.New(dir, now).Export([]*types.HourlyActivity{
		{Hour: now, Submitted: 4, Published: 2},
		{Hour: now.Add(-time.Hour), Spam: 1, Deleted: 1},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, chart.FileName))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngHeader))

	thumb, err := os.ReadFile(filepath.Join(dir, chart.ThumbnailFile))
	require.NoError(t, err)
	require.Greater(t, len(thumb), 12)
	assert.Equal(t, "RIFF", string(thumb[:4]))
	assert.Equal(t, "WEBP", string(thumb[8:12]))
}

func TestThumbnailKeepsAspectRatio(t *testing.T) {
	t.Parallel()

	buf, err := chart.New(t.TempDir(), time.Now()).Render(nil)
	require.NoError(t, err)
	full, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	thumb, err := chart.Thumbnail(buf.Bytes())
	require.NoError(t, err)
	img, err := nativewebp.Decode(bytes.NewReader(thumb.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, chart.ThumbnailWidth, img.Bounds().Dx())
	assert.Equal(t, full.Height*chart.ThumbnailWidth/full.Width, img.Bounds().Dy())
}

func TestRenderIdleDay(t *testing.T) {
	t.Parallel()

	buf, err := chart.New(t.TempDir(), time.Now()).Render(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngHeader))
}
