// Package gallery keeps the uploaded wallpaper images and which one is
// selected, and persists both to a local store.
package gallery

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotImage is returned when an uploaded file is not a supported image
var ErrNotImage = errors.New("not an image")

// maxImageBytes bounds a single upload
const maxImageBytes = 16 << 20

// Image is one stored wallpaper
type Image struct {
	ID        string    `json:"id"`
	Data      string    `json:"imageData"` // data URI
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// New wraps raw image bytes as a stored image with a fresh id
func New(name string, data []byte) (Image, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return Image{}, fmt.Errorf("%w: %s", ErrNotImage, mimeType)
	}
	return Image{
		ID:        uuid.NewString(),
		Data:      DataURI(mimeType, data),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// FromFile reads an image from a file path
func FromFile(path string) (Image, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Image{}, fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return Image{}, fmt.Errorf("failed to read file: %w", err)
	}
	if info.Size() > maxImageBytes {
		return Image{}, fmt.Errorf("%s is %d bytes, limit is %d", filepath.Base(absPath), info.Size(), maxImageBytes)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return Image{}, fmt.Errorf("failed to read file: %w", err)
	}
	return New(filepath.Base(absPath), data)
}

// DataURI returns the image as a data URI
func DataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// MimeType is the media type recorded in the data URI
func (i Image) MimeType() string {
	rest, ok := strings.CutPrefix(i.Data, "data:")
	if !ok {
		return ""
	}
	mimeType, _, _ := strings.Cut(rest, ";")
	return mimeType
}

// Bytes decodes the data URI back into the encoded bitmap
func (i Image) Bytes() ([]byte, error) {
	rest, ok := strings.CutPrefix(i.Data, "data:")
	if !ok {
		return nil, fmt.Errorf("image %s: not a data URI", i.ID)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("image %s: not a base64 data URI", i.ID)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", i.ID, err)
	}
	return data, nil
}

// Label is a short name for lists
func (i Image) Label() string {
	if i.Name != "" {
		return i.Name
	}
	if len(i.ID) > 8 {
		return i.ID[:8]
	}
	return i.ID
}
