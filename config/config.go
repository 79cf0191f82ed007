package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir  string
	LogLevel string

	GroqAPIKey            string
	GroqBaseURL           string
	GroqChatModel         string
	GroqWhisperModel      string
	GroqRequestsPerMinute int

	FFmpegPath  string
	FFprobePath string

	ChunkSeconds       int
	ChunkDelay         time.Duration
	TranscribeAttempts int
	TranscribeBackoff  time.Duration

	HighlightDelay    time.Duration
	HighlightAttempts int
	HighlightBackoff  time.Duration

	QueueAttempts             int
	TranscriptionQueueBackoff time.Duration
	ClipsQueueBackoff         time.Duration
	JobLease                  time.Duration
}

// Load reads the environment, after applying an optional .env file from the
// working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:          getEnv("DATA_DIR", "/data"),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:      getEnv("GROQ_BASE_URL", "https://api.groq.com"),
		GroqChatModel:    getEnv("GROQ_CHAT_MODEL", "llama-3.3-70b-versatile"),
		GroqWhisperModel: getEnv("GROQ_WHISPER_MODEL", "whisper-large-v3-turbo"),
		FFmpegPath:       getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:      getEnv("FFPROBE_PATH", "ffprobe"),
	}

	ints := []struct {
		key  string
		def  string
		dst  *int
		min  int
		desc string
	}{
		{"GROQ_REQUESTS_PER_MINUTE", "20", &cfg.GroqRequestsPerMinute, 0, "requests per minute"},
		{"CHUNK_SECONDS", "120", &cfg.ChunkSeconds, 1, "chunk window"},
		{"TRANSCRIBE_ATTEMPTS", "3", &cfg.TranscribeAttempts, 1, "attempt count"},
		{"HIGHLIGHT_ATTEMPTS", "3", &cfg.HighlightAttempts, 1, "attempt count"},
		{"QUEUE_ATTEMPTS", "3", &cfg.QueueAttempts, 1, "attempt count"},
	}
	for _, v := range ints {
		n, err := strconv.Atoi(getEnv(v.key, v.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", v.key, err)
		}
		if n < v.min {
			return nil, fmt.Errorf("invalid %s: %s must be at least %d", v.key, v.desc, v.min)
		}
		*v.dst = n
	}

	durations := []struct {
		key  string
		def  string
		unit time.Duration
		dst  *time.Duration
	}{
		{"CHUNK_DELAY_MS", "2500", time.Millisecond, &cfg.ChunkDelay},
		{"TRANSCRIBE_BACKOFF_MS", "5000", time.Millisecond, &cfg.TranscribeBackoff},
		{"HIGHLIGHT_DELAY_MS", "1000", time.Millisecond, &cfg.HighlightDelay},
		{"HIGHLIGHT_BACKOFF_MS", "2000", time.Millisecond, &cfg.HighlightBackoff},
		{"TRANSCRIPTION_QUEUE_BACKOFF_MS", "2000", time.Millisecond, &cfg.TranscriptionQueueBackoff},
		{"CLIPS_QUEUE_BACKOFF_MS", "5000", time.Millisecond, &cfg.ClipsQueueBackoff},
		{"JOB_LEASE_MINUTES", "30", time.Minute, &cfg.JobLease},
	}
	for _, v := range durations {
		n, err := strconv.Atoi(getEnv(v.key, v.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", v.key, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid %s: must not be negative", v.key)
		}
		*v.dst = time.Duration(n) * v.unit
	}
	if cfg.JobLease <= 0 {
		return nil, errors.New("invalid JOB_LEASE_MINUTES: lease must be positive")
	}

	return cfg, nil
}

// RequireGroq fails when the commands that call the Groq API cannot run.
func (c *Config) RequireGroq() error {
	if c.GroqAPIKey == "" {
		return errors.New("GROQ_API_KEY is required (set it in .env)")
	}
	return nil
}

func (c *Config) UploadDir() string {
	return filepath.Join(c.DataDir, "uploads")
}

func (c *Config) AudioDir() string {
	return filepath.Join(c.DataDir, "audio")
}

func (c *Config) ClipsDir() string {
	return filepath.Join(c.DataDir, "clips")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
