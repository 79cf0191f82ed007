package domain

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
)

type ClipFormat string

const (
	ClipFormatWide ClipFormat = "horizontal_16_9"
	ClipFormatTall ClipFormat = "vertical_9_16"
)

// ClipFormats is the render order for every highlight.
var ClipFormats = []ClipFormat{ClipFormatWide, ClipFormatTall}

func (f ClipFormat) Valid() bool {
	return f == ClipFormatWide || f == ClipFormatTall
}

// Clip is one rendered output. (VideoID, StartTime, EndTime, Format) is unique.
type Clip struct {
	ID        string     `json:"id"`
	VideoID   string     `json:"video_id"`
	Title     string     `json:"title"`
	StartTime float64    `json:"start_time"`
	EndTime   float64    `json:"end_time"`
	Format    ClipFormat `json:"format"`
	FilePath  string     `json:"file_path"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewClip(videoID string, h Highlight, format ClipFormat, filePath string) *Clip {
	return &Clip{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		Title:     h.Title,
		StartTime: h.StartTime,
		EndTime:   h.EndTime,
		Format:    format,
		FilePath:  filePath,
		CreatedAt: time.Now().UTC(),
	}
}

var unsafeTitleChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SafeTitle keeps ASCII letters and digits, replaces everything else with
// underscores and cuts the result to 50 bytes.
func SafeTitle(title string) string {
	safe := unsafeTitleChars.ReplaceAllString(title, "_")
	if len(safe) > 50 {
		safe = safe[:50]
	}
	return safe
}

// ClipFileName is <format>_<floor start>_<floor end>_<safe title>.mp4.
func ClipFileName(h Highlight, format ClipFormat) string {
	return fmt.Sprintf("%s_%d_%d_%s.mp4",
		format,
		int64(math.Floor(h.StartTime)),
		int64(math.Floor(h.EndTime)),
		SafeTitle(h.Title),
	)
}

// ClipPath places a clip under <clipsDir>/<videoID>/.
func ClipPath(clipsDir, videoID string, h Highlight, format ClipFormat) string {
	return filepath.Join(clipsDir, videoID, ClipFileName(h, format))
}
