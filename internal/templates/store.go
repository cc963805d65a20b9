// Package templates stores test wrapper templates outside the problem catalog.
package templates

import (
	"context"
	"fmt"
	"path"
	"regexp"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

// Store is a WrapperStore that can also be written to.
type Store interface {
	repository.WrapperStore
	PutWrapper(ctx context.Context, problemID string, lang domain.Language, wrapper string) error
}

var problemIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Key returns the object key of a wrapper: <problem>/<language>.txt.
func Key(problemID string, lang domain.Language) (string, error) {
	if !problemIDPattern.MatchString(problemID) {
		return "", fmt.Errorf("templates: invalid problem id %q", problemID)
	}
	if !lang.IsValid() {
		return "", fmt.Errorf("templates: %q: %w", lang, domain.ErrInvalidLanguage)
	}
	return path.Join(problemID, string(lang)+".txt"), nil
}

// New creates the store for a backend: "local" takes a directory, "s3" a bucket name.
func New(ctx context.Context, backend, location string) (Store, error) {
	switch backend {
	case "local":
		return NewLocalStore(location)
	case "s3":
		return NewS3Store(ctx, location)
	default:
		return nil, fmt.Errorf("templates: unknown backend %q", backend)
	}
}
