package templates

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

// LocalStore keeps wrappers as files under a base directory.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("templates: create %s: %w", basePath, err)
	}
	return &LocalStore{basePath: basePath}, nil
}

func (s *LocalStore) path(problemID string, lang domain.Language) (string, error) {
	key, err := Key(problemID, lang)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, filepath.FromSlash(key)), nil
}

// GetWrapper reads <base>/<problem>/<language>.txt.
func (s *LocalStore) GetWrapper(_ context.Context, problemID string, lang domain.Language) (string, error) {
	full, err := s.path(problemID, lang)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWrapperNotFound, err)
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return "", domain.ErrWrapperNotFound
	}
	if err != nil {
		return "", fmt.Errorf("templates: read %s: %w", full, err)
	}
	return string(data), nil
}

// PutWrapper writes a wrapper, creating the problem directory.
func (s *LocalStore) PutWrapper(_ context.Context, problemID string, lang domain.Language, wrapper string) error {
	full, err := s.path(problemID, lang)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("templates: create dir: %w", err)
	}
	if err := os.WriteFile(full, []byte(wrapper), 0o644); err != nil {
		return fmt.Errorf("templates: write %s: %w", full, err)
	}
	return nil
}
