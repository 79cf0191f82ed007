package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/port"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains invalid characters")
)

const chunkPattern = "chunk_%03d.mp3"

// Transcoder drives the ffmpeg and ffprobe binaries with argument lists; no
// shell is involved.
type Transcoder struct {
	ffmpegPath  string
	ffprobePath string
}

func NewTranscoder(ffmpegPath, ffprobePath string) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Transcoder{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	return nil
}

func validatePaths(paths ...string) error {
	for _, p := range paths {
		if err := validatePath(p); err != nil {
			return fmt.Errorf("%w: %q", err, p)
		}
	}
	return nil
}

func (t *Transcoder) ProbeDuration(ctx context.Context, inputPath string) (float64, error) {
	if err := validatePaths(inputPath); err != nil {
		return 0, err
	}
	out, err := t.run(ctx, t.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return domain.ParseDuration(string(out))
}

func (t *Transcoder) ExtractAudio(ctx context.Context, videoPath, outputPath string) (string, error) {
	if err := validatePaths(videoPath, outputPath); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create audio directory: %w", err)
	}
	if _, err := t.run(ctx, t.ffmpegPath,
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "mp3",
		outputPath,
	); err != nil {
		return "", fmt.Errorf("extract audio: %w", err)
	}
	if err := checkOutput(outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// SplitAudio writes mono 16kHz mp3 windows named chunk_000.mp3, chunk_001.mp3…
// into outputDir. Stale chunks from an earlier run are removed first.
func (t *Transcoder) SplitAudio(ctx context.Context, audioPath, outputDir string, windowSeconds int) ([]string, error) {
	if err := validatePaths(audioPath, outputDir); err != nil {
		return nil, err
	}
	if windowSeconds <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", domain.ErrValidation, windowSeconds)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create chunk directory: %w", err)
	}
	stale, _ := filepath.Glob(filepath.Join(outputDir, "chunk_*.mp3"))
	for _, p := range stale {
		_ = os.Remove(p)
	}

	if _, err := t.run(ctx, t.ffmpegPath,
		"-y",
		"-i", audioPath,
		"-f", "segment",
		"-segment_time", strconv.Itoa(windowSeconds),
		"-reset_timestamps", "1",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "libmp3lame",
		filepath.Join(outputDir, chunkPattern),
	); err != nil {
		return nil, fmt.Errorf("split audio: %w", err)
	}

	chunks, err := filepath.Glob(filepath.Join(outputDir, "chunk_*.mp3"))
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("split audio: %w", domain.ErrOutputMissing)
	}
	sort.Strings(chunks)
	return chunks, nil
}

func (t *Transcoder) RenderClip(ctx context.Context, videoPath string, start, end float64, format domain.ClipFormat, outputPath string) (string, error) {
	if err := validatePaths(videoPath, outputPath); err != nil {
		return "", err
	}
	if math.IsNaN(start) || math.IsNaN(end) || start < 0 || end <= start {
		return "", fmt.Errorf("%w: invalid time range %v-%v", domain.ErrValidation, start, end)
	}
	filter, err := videoFilter(format)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(videoPath); err != nil {
		return "", fmt.Errorf("%w: source video: %v", domain.ErrNotFound, err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create clip directory: %w", err)
	}

	if _, err := t.run(ctx, t.ffmpegPath,
		"-y",
		"-loglevel", "error",
		"-ss", formatSeconds(start),
		"-i", videoPath,
		"-t", formatSeconds(end-start),
		"-vf", filter,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		outputPath,
	); err != nil {
		return "", fmt.Errorf("render %s clip: %w", format, err)
	}
	if err := checkOutput(outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

func videoFilter(format domain.ClipFormat) (string, error) {
	switch format {
	case domain.ClipFormatTall:
		return "crop=ih*9/16:ih:(iw-ih*9/16)/2:0,scale=1080:1920", nil
	case domain.ClipFormatWide:
		return "scale=1920:1080:force_original_aspect_ratio=decrease,pad=1920:1080:(ow-iw)/2:(oh-ih)/2", nil
	default:
		return "", fmt.Errorf("%w: unsupported clip format %q", domain.ErrValidation, format)
	}
}

func checkOutput(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrOutputMissing, path)
	}
	return nil
}

// run executes bin and returns stdout. A failure carries the tail of stderr.
func (t *Transcoder) run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := lastLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

var _ port.Transcoder = (*Transcoder)(nil)
