// Package upload stores product and banner images and turns stored references
// into URIs a browser can fetch.
package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPath is the URL prefix uploaded files are served under
const PublicPath = "/uploads"

// DefaultMaxSize is the largest accepted image
const DefaultMaxSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("only image files (jpeg, jpg, png, gif, webp) are allowed")
	ErrTooLarge        = errors.New("image exceeds the maximum upload size")
)

var allowedExtensions = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var allowedSubtypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// ImageStore saves uploaded images and resolves stored references
type ImageStore interface {
	// Save stores the image and returns the reference to persist with the entity
	Save(fh *multipart.FileHeader) (string, error)
	// Remove deletes a previously saved image. References it does not own are ignored.
	Remove(ref string) error
	// Resolve maps a stored reference to a fetchable URI
	Resolve(ref string) string
	// Owns reports whether ref was produced by Save
	Owns(ref string) bool
}

func validate(fh *multipart.FileHeader, maxSize int64) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mimeType, ok := allowedExtensions[ext]
	if !ok {
		return "", "", ErrUnsupportedType
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		subtype, ok := strings.CutPrefix(strings.ToLower(ct), "image/")
		if !ok || !allowedSubtypes[subtype] {
			return "", "", ErrUnsupportedType
		}
	}
	if fh.Size > maxSize {
		return "", "", fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxSize)
	}
	return ext, mimeType, nil
}

// DiskStore writes images into a local directory served at PublicPath
type DiskStore struct {
	dir     string
	baseURL string
	maxSize int64
}

// NewDiskStore creates dir if needed. baseURL prefixes resolved references and may be empty.
func NewDiskStore(dir, baseURL string, maxSize int64) (*DiskStore, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), maxSize: maxSize}, nil
}

// Dir returns the directory files are written to
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the file under a generated name
func (s *DiskStore) Save(fh *multipart.FileHeader) (string, error) {
	ext, _, err := validate(fh, s.maxSize)
	if err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	// Size in the header comes from the client; enforce the limit on the bytes too.
	n, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > s.maxSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return path.Join(PublicPath, name), nil
}

// Owns reports whether ref names a single file directly under the uploads directory
func (s *DiskStore) Owns(ref string) bool {
	name, ok := strings.CutPrefix(ref, PublicPath+"/")
	return ok && name != "" && !strings.Contains(name, "/")
}

// Remove deletes the file behind ref. A file that is already gone is not an error.
func (s *DiskStore) Remove(ref string) error {
	if !s.Owns(ref) {
		return nil
	}
	name := path.Base(path.Clean(ref))
	if name == "." || name == "/" || name == ".." {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}

// Resolve prefixes uploaded references with the public base URL
func (s *DiskStore) Resolve(ref string) string {
	if s.Owns(ref) {
		return s.baseURL + ref
	}
	return ref
}

// InlineStore keeps images inside the entity as data URIs, for deployments
// without a writable disk.
type InlineStore struct {
	maxSize int64
}

// NewInlineStore creates an InlineStore
func NewInlineStore(maxSize int64) *InlineStore {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &InlineStore{maxSize: maxSize}
}

// Save returns the image as a base64 data URI
func (s *InlineStore) Save(fh *multipart.FileHeader) (string, error) {
	_, mimeType, err := validate(fh, s.maxSize)
	if err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrTooLarge
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Owns reports whether ref is a data URI
func (s *InlineStore) Owns(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// Remove is a no-op; the data goes away with the entity
func (s *InlineStore) Remove(string) error { return nil }

// Resolve returns ref unchanged
func (s *InlineStore) Resolve(ref string) string { return ref }

var (
	_ ImageStore = (*DiskStore)(nil)
	_ ImageStore = (*InlineStore)(nil)
)
