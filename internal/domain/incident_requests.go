package domain

import (
	"regexp"
	"strings"
)

const (
	MaxDescriptionLen = 500
	MaxImageBytes     = 5 << 20
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type CreateIncidentRequest struct {
	Latitude    float64     `json:"latitude" validate:"lat"`
	Longitude   float64     `json:"longitude" validate:"lng"`
	Description string      `json:"description" validate:"description"`
	Image       ImageUpload `json:"-"`
}

type ImageUpload struct {
	Data     []byte
	MimeType string
	// Filename is the client-supplied name; optional.
	Filename string
}

func ImageExtension(mime string) (string, bool) {
	ext, ok := allowedImageTypes[normalizeMime(mime)]
	return ext, ok
}

func normalizeMime(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// SanitizeFilename collapses whitespace to underscores and strips anything
// that could escape the evidence root.
func SanitizeFilename(name, mime string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		ext, _ := ImageExtension(mime)
		return "image" + ext
	}
	return name
}
