package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound         = errors.New("stored file not found")
	ErrInvalidReference = errors.New("invalid file reference")
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type FileStore interface {
	// Save persists r and returns a stable reference to it.
	Save(ctx context.Context, kind, originalName string, r io.Reader) (string, error)
	Size(ctx context.Context, ref string) (int64, error)
	Delete(ctx context.Context, ref string) error
}

type localStore struct {
	root   string
	logger *zap.Logger
}

func NewLocalStore(root string, logger ...*zap.Logger) (FileStore, error) {
	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.local")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localStore{root: root, logger: l}, nil
}

func (s *localStore) Save(ctx context.Context, kind, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	ref := fmt.Sprintf("%s-%s%s", kind, uuid.NewString(), ext)

	path, err := s.resolve(ref)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: r})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}

	s.logger.Info("file stored", zap.String("ref", ref), zap.Int64("bytes", n))
	return ref, nil
}

func (s *localStore) Size(ctx context.Context, ref string) (int64, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *localStore) Delete(ctx context.Context, ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// resolve maps a reference to a path inside root. References are flat file
// names; anything with a directory component is refused.
func (s *localStore) resolve(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || ref == "." || ref == ".." || strings.ContainsAny(ref, `/\`) {
		return "", ErrInvalidReference
	}
	return filepath.Join(s.root, ref), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
