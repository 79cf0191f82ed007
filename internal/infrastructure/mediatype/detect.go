// Package mediatype recognises video containers from their leading bytes.
package mediatype

import (
	"errors"
	"io"
	"net/http"
)

// sniffLen is the number of bytes read for content type detection.
const sniffLen = 512

var videoTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
	"video/webm":      true,
	"video/avi":       true,
}

// DetectVideo reads the head of r, reports its MIME type and whether that type
// is an accepted video container, then rewinds r.
func DetectVideo(r io.ReadSeeker) (mime string, ok bool, err error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", false, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", false, err
	}
	if n == 0 {
		return "application/octet-stream", false, nil
	}
	buf = buf[:n]

	mime = sniffContainer(buf)
	if mime == "" {
		mime = http.DetectContentType(buf)
	}
	return mime, videoTypes[mime], nil
}

// sniffContainer covers containers that http.DetectContentType misses or
// reports too broadly.
func sniffContainer(buf []byte) string {
	if len(buf) < 4 {
		return ""
	}

	// EBML header, shared by WebM and Matroska.
	if buf[0] == 0x1A && buf[1] == 0x45 && buf[2] == 0xDF && buf[3] == 0xA3 {
		return "video/webm"
	}

	if len(buf) < 12 {
		return ""
	}

	// RIFF....AVI
	if string(buf[0:4]) == "RIFF" && string(buf[8:12]) == "AVI " {
		return "video/avi"
	}

	// ISO base media: [size]["ftyp"][brand]
	if string(buf[4:8]) == "ftyp" {
		switch string(buf[8:12]) {
		case "qt  ":
			return "video/quicktime"
		case "M4A ", "M4B ":
			return "audio/mp4"
		default:
			return "video/mp4"
		}
	}

	return ""
}
