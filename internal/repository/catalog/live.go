package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

var (
	_ repository.ProblemRepository = (*Live)(nil)
	_ repository.WrapperStore      = (*Live)(nil)
)

// reloadDebounce batches the burst of events editors emit for one save.
const reloadDebounce = 200 * time.Millisecond

// Live serves the last successfully loaded catalog from a file and can reload it in place.
// A reload that fails validation keeps the previous catalog.
type Live struct {
	path    string
	current atomic.Pointer[Catalog]
	logger  *zap.Logger
}

// NewLive loads path once. Call Watch to follow later edits.
func NewLive(path string, logger *zap.Logger) (*Live, error) {
	l := &Live{path: filepath.Clean(path), logger: logger}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload re-reads the file and swaps it in if it is valid.
func (l *Live) Reload() error {
	c, err := Load(l.path)
	if err != nil {
		return err
	}
	l.current.Store(c)
	return nil
}

// Current returns the catalog being served.
func (l *Live) Current() *Catalog {
	return l.current.Load()
}

func (l *Live) List(ctx context.Context) ([]domain.ProblemSummary, error) {
	return l.Current().List(ctx)
}

func (l *Live) GetByID(ctx context.Context, id string) (*domain.Problem, error) {
	return l.Current().GetByID(ctx, id)
}

func (l *Live) GetWrapper(ctx context.Context, problemID string, lang domain.Language) (string, error) {
	return l.Current().GetWrapper(ctx, problemID, lang)
}

// Watch reloads the catalog whenever its file changes, until ctx is done. The parent
// directory is watched because editors often replace the file instead of writing it.
func (l *Live) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", l.path, err)
	}
	l.logger.Info("Watching problem catalog", zap.String("path", l.path))

	debounce := time.NewTimer(reloadDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != l.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(reloadDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("Catalog watcher error", zap.Error(err))

		case <-debounce.C:
			if err := l.Reload(); err != nil {
				l.logger.Error("Catalog reload failed, keeping previous version", zap.Error(err))
				continue
			}
			list, _ := l.List(ctx)
			l.logger.Info("Problem catalog reloaded", zap.Int("problems", len(list)))
		}
	}
}
