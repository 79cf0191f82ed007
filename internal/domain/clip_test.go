package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeTitle(t *testing.T) {
	assert.Equal(t, "Why_you_re_wrong_", SafeTitle("Why you're wrong!"))
	assert.Equal(t, "caf_", SafeTitle("café"))
	assert.Len(t, SafeTitle(string(make([]byte, 80))), 50)
}

func TestClipFileName(t *testing.T) {
	h := Highlight{StartTime: 12.7, EndTime: 45.2, Title: "Big reveal"}

	assert.Equal(t, "horizontal_16_9_12_45_Big_reveal.mp4", ClipFileName(h, ClipFormatWide))
	assert.Equal(t, "vertical_9_16_12_45_Big_reveal.mp4", ClipFileName(h, ClipFormatTall))
	assert.Equal(t,
		filepath.Join("/data/clips", "vid-1", "vertical_9_16_12_45_Big_reveal.mp4"),
		ClipPath("/data/clips", "vid-1", h, ClipFormatTall))
}

func TestClipFormat_Valid(t *testing.T) {
	assert.True(t, ClipFormatWide.Valid())
	assert.True(t, ClipFormatTall.Valid())
	assert.False(t, ClipFormat("square").Valid())
	assert.Equal(t, []ClipFormat{ClipFormatWide, ClipFormatTall}, ClipFormats)
}
