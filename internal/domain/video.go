package domain

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type VideoStatus string

const (
	VideoStatusUploaded   VideoStatus = "uploaded"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusReady      VideoStatus = "ready"
	VideoStatusFailed     VideoStatus = "failed"
)

type Video struct {
	ID        string      `json:"id"`
	Filename  string      `json:"filename"`
	FilePath  string      `json:"file_path"`
	Duration  float64     `json:"duration"`
	Status    VideoStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func NewVideo(filename, filePath string) *Video {
	now := time.Now().UTC()
	return &Video{
		ID:        uuid.NewString(),
		Filename:  filename,
		FilePath:  filePath,
		Status:    VideoStatusUploaded,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasDuration reports whether the video has been probed.
func (v *Video) HasDuration() bool {
	return v.Duration > 0
}

// ChunkCount returns how many windows of windowSeconds cover the video.
func (v *Video) ChunkCount(windowSeconds int) int {
	if windowSeconds <= 0 || !v.HasDuration() {
		return 0
	}
	return int(math.Ceil(v.Duration / float64(windowSeconds)))
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".mkv": true, ".webm": true,
	".avi": true, ".m4v": true,
}

// ValidateUploadName rejects names that cannot be stored as an upload.
func ValidateUploadName(filename string) error {
	name := strings.TrimSpace(filename)
	if name == "" {
		return fmt.Errorf("%w: filename is empty", ErrValidation)
	}
	if strings.ContainsRune(name, '\x00') || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: filename %q is not a plain file name", ErrValidation, filename)
	}
	if !videoExts[strings.ToLower(filepath.Ext(name))] {
		return fmt.Errorf("%w: unsupported video extension %q", ErrValidation, filepath.Ext(name))
	}
	return nil
}

// ParseDuration converts an ffprobe duration string into whole seconds.
// Fractions are dropped, matching how durations are stored.
func ParseDuration(durationStr string) (float64, error) {
	s := strings.TrimSpace(durationStr)
	if s == "" || s == "N/A" {
		return 0, fmt.Errorf("%w: empty duration", ErrMalformedPayload)
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse duration %q: %v", ErrMalformedPayload, s, err)
	}
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 1 {
		return 0, fmt.Errorf("%w: duration %q below one second", ErrMalformedPayload, s)
	}
	return math.Floor(d), nil
}

func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "00:00"
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
