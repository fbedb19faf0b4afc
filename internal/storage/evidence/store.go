// Package evidence keeps uploaded incident images on the local filesystem.
package evidence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

var ErrUnsafePath = errors.New("unsafe evidence path")

type Store struct {
	root   string
	logger *slog.Logger
}

type FileInfo struct {
	Path    string
	ModTime time.Time
}

func NewStore(root string, logger *slog.Logger) (*Store, error) {
	const op = "evidence.NewStore"

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, e.Wrap(op, err)
	}
	return &Store{root: abs, logger: logger}, nil
}

func (s *Store) Root() string { return s.root }

// Write stores data under "<uuid>_<sanitized name>" and returns the
// forward-slash path relative to the root.
func (s *Store) Write(ctx context.Context, data []byte, suggestedName string) (string, error) {
	const op = "evidence.Store.Write"

	if err := ctx.Err(); err != nil {
		return "", e.WrapError(ctx, op, err)
	}

	name := uuid.NewString() + "_" + domain.SanitizeFilename(suggestedName, "")
	final := filepath.Join(s.root, name)

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, e.ErrStorage, err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return "", fmt.Errorf("%s: %w: %v", op, e.ErrStorage, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return "", fmt.Errorf("%s: %w: %v", op, e.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("%s: %w: %v", op, e.ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		cleanup()
		return "", fmt.Errorf("%s: %w: %v", op, e.ErrStorage, err)
	}

	s.logger.Debug("evidence stored", slog.String("path", name), slog.Int("bytes", len(data)))
	return name, nil
}

func (s *Store) Remove(_ context.Context, rel string) error {
	const op = "evidence.Store.Remove"

	full, err := s.resolve(rel)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w: %v", op, e.ErrStorage, err)
	}
	return nil
}

// Open returns the file behind a stored relative path. Paths that are
// absolute or climb out of the root are rejected.
func (s *Store) Open(rel string) (*os.File, error) {
	const op = "evidence.Store.Open"

	full, err := s.resolve(rel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w: %v", op, e.ErrStorage, err)
	}
	return f, nil
}

// Walk lists regular files under the root, skipping in-flight temp files.
func (s *Store) Walk(fn func(FileInfo) error) error {
	return filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".upload-") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		return fn(FileInfo{Path: filepath.ToSlash(rel), ModTime: info.ModTime()})
	})
}

func (s *Store) resolve(rel string) (string, error) {
	rel = strings.ReplaceAll(rel, "\\", "/")
	if rel == "" || path.IsAbs(rel) || filepath.IsAbs(rel) {
		return "", ErrUnsafePath
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", ErrUnsafePath
		}
	}
	clean := path.Clean(rel)
	if clean == "." {
		return "", ErrUnsafePath
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
