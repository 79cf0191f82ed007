package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("DATA_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, 120, cfg.ChunkSeconds)
	assert.Equal(t, 2500*time.Millisecond, cfg.ChunkDelay)
	assert.Equal(t, 5*time.Second, cfg.TranscribeBackoff)
	assert.Equal(t, 3, cfg.QueueAttempts)
	assert.Equal(t, 2*time.Second, cfg.TranscriptionQueueBackoff)
	assert.Equal(t, 5*time.Second, cfg.ClipsQueueBackoff)
	assert.Equal(t, 30*time.Minute, cfg.JobLease)
	assert.Equal(t, "/data/clips", cfg.ClipsDir())
	assert.Error(t, cfg.RequireGroq())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/clipper")
	t.Setenv("GROQ_API_KEY", "gsk-1")
	t.Setenv("CHUNK_SECONDS", "60")
	t.Setenv("HIGHLIGHT_DELAY_MS", "0")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.ChunkSeconds)
	assert.Zero(t, cfg.HighlightDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/clipper/uploads", cfg.UploadDir())
	assert.NoError(t, cfg.RequireGroq())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"CHUNK_SECONDS", "abc"},
		{"CHUNK_SECONDS", "0"},
		{"QUEUE_ATTEMPTS", "0"},
		{"CHUNK_DELAY_MS", "-5"},
		{"JOB_LEASE_MINUTES", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
