// Package storage keeps uploaded files on local disk and hands back the
// relative path that is persisted on ImageLine rows.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsafeName = errors.New("unsafe file name")
	ErrTooLarge   = errors.New("file too large")
	ErrBadPath    = errors.New("path outside upload root")
)

var allowedExtensions = []string{"jpg", "jpe", "jpeg", "png", "gif", "svg", "bmp", "webp"}

var safeName = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_()\-.]*\.(?i:` + strings.Join(allowedExtensions, "|") + `)$`)

// Storage is the file storage boundary.
type Storage interface {
	// Save stores r under folder and returns the stored reference.
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	// Remove deletes a stored reference. Missing files are not an error.
	Remove(ctx context.Context, ref string) error
}

// IsSafeName reports whether filename is acceptable for upload.
func IsSafeName(filename string) bool {
	return safeName.MatchString(filename)
}

type Disk struct {
	root     string
	maxBytes int64
}

func NewDisk(root string, maxBytes int64) *Disk {
	return &Disk{root: filepath.Clean(root), maxBytes: maxBytes}
}

func (d *Disk) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	base := filepath.Base(filename)
	if !IsSafeName(base) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeName, filename)
	}

	rel, err := cleanRef(path.Join(folder, uuid.NewString()+strings.ToLower(filepath.Ext(base))))
	if err != nil {
		return "", err
	}
	dir := filepath.Join(d.root, filepath.FromSlash(path.Dir(rel)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	full := filepath.Join(d.root, filepath.FromSlash(rel))
	out, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	src := r
	if d.maxBytes > 0 {
		src = io.LimitReader(r, d.maxBytes+1)
	}
	n, copyErr := io.Copy(out, src)
	closeErr := out.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("write upload: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("close upload: %w", closeErr)
	case d.maxBytes > 0 && n > d.maxBytes:
		_ = os.Remove(full)
		return "", fmt.Errorf("%w (max %d bytes)", ErrTooLarge, d.maxBytes)
	}
	return rel, nil
}

func (d *Disk) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := cleanRef(ref)
	if err != nil {
		return err
	}
	if rel == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(d.root, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// cleanRef normalizes a stored reference and refuses anything that would
// resolve outside the upload root.
func cleanRef(ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", nil
	}
	if strings.Contains(trimmed, "..") || strings.HasPrefix(trimmed, "/") {
		return "", fmt.Errorf("%w: %s", ErrBadPath, ref)
	}
	return strings.TrimPrefix(path.Clean("/"+trimmed), "/"), nil
}
