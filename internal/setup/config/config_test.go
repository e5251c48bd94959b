package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalyx/headline/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
version = 1

[engine]
promotion_threshold = 4
min_age = "1h"
max_age = "48h"

[scoring]
promote = 3
demote = -2

[debug]
log_level = "debug"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	rules := cfg.Rules()
	assert.Equal(t, 4, rules.PromotionThreshold)
	assert.Equal(t, 5, rules.SpamThreshold)
	assert.Equal(t, time.Hour, rules.MinAge)
	assert.Equal(t, 48*time.Hour, rules.MaxAge)
	assert.Equal(t, 10, rules.PopularStoryVotes)

	weights := cfg.Weights()
	assert.InDelta(t, 3.0, weights.Promote, 1e-9)
	assert.InDelta(t, -2.0, weights.Demote, 1e-9)
	assert.InDelta(t, 5.0, weights.Post, 1e-9)

	assert.Equal(t, "debug", cfg.Debug.LogLevel)
	assert.Equal(t, 5432, cfg.PostgreSQL.Port)
	assert.False(t, cfg.PostgreSQL.Enabled)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "missing version",
			content: "[engine]\npromotion_threshold = 3\n",
			wantErr: config.ErrConfigVersionMissing,
		},
		{
			name:    "version mismatch",
			content: "version = 2\n",
			wantErr: config.ErrConfigVersionMismatch,
		},
		{
			name:    "inverted age window",
			content: "version = 1\n[engine]\nmin_age = \"10h\"\nmax_age = \"1h\"\n",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "zero threshold",
			content: "version = 1\n[engine]\npromotion_threshold = 0\n",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "unknown log level",
			content: "version = 1\n[debug]\nlog_level = \"chatty\"\n",
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, cfg.Validate())
}
