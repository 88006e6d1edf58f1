// Package storage keeps uploaded point images in a blob store and hands back
// the filename that is persisted with the point.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"ecoleta/internal/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Upload validation errors
var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrFileTooLarge    = errors.New("file size exceeds maximum allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// AllowedImageTypes are the MIME types accepted for point photos. SVG is not
// accepted: uploads are served from the API origin and SVG can carry script.
var AllowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// Store is an opaque blob store addressed by filename.
type Store interface {
	Save(ctx context.Context, filename, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, filename string) error
}

// Upload is a file received from a client.
type Upload struct {
	Name string
	Size int64
	Body io.ReadSeeker
}

// Uploader validates uploads and writes them to a Store.
type Uploader struct {
	store    Store
	maxBytes int64
}

func NewUploader(store Store, maxBytes int64) *Uploader {
	return &Uploader{store: store, maxBytes: maxBytes}
}

// New builds the store selected by cfg.UploadBackend.
func New(cfg *config.Config) (Store, error) {
	switch cfg.UploadBackend {
	case config.UploadBackendDisk:
		return NewDiskStore(cfg.UploadDir)
	case config.UploadBackendS3:
		return NewS3Store(S3Config{
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}

// Put checks size and content type, then stores the upload under a fresh
// filename which it returns.
func (u *Uploader) Put(ctx context.Context, up Upload) (string, error) {
	if up.Size <= 0 {
		return "", ErrEmptyFile
	}
	if up.Size > u.maxBytes {
		return "", ErrFileTooLarge
	}

	mtype, err := mimetype.DetectReader(up.Body)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), AllowedImageTypes...) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}
	if _, err := up.Body.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	filename := FilenameFor(up.Name, mtype.Extension())
	if err := u.store.Save(ctx, filename, mtype.String(), up.Body, up.Size); err != nil {
		return "", fmt.Errorf("save %s: %w", filename, err)
	}

	return filename, nil
}

// Remove deletes a previously stored file.
func (u *Uploader) Remove(ctx context.Context, filename string) error {
	return u.store.Delete(ctx, filename)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FilenameFor prefixes the sanitized client filename with a random hex tag.
// The client's extension is replaced by ext, the one of the detected type.
func FilenameFor(original, ext string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		base = "image"
	}
	base += ext

	tag := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return tag + "-" + base
}
