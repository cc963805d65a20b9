// Package bootstrap builds the problem and wrapper backends selected by configuration.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/config"
	"github.com/Harsh-BH/gauntlet/internal/repository"
	"github.com/Harsh-BH/gauntlet/internal/repository/catalog"
	"github.com/Harsh-BH/gauntlet/internal/repository/postgres"
	"github.com/Harsh-BH/gauntlet/internal/templates"
)

// Sources holds the backends shared by the API server and the worker.
type Sources struct {
	Problems repository.ProblemRepository
	Wrappers repository.WrapperStore

	// Catalog is set when either backend is the YAML catalog.
	Catalog *catalog.Live
}

// NewSources resolves PROBLEM_SOURCE and WRAPPER_SOURCE. pool is only required when
// either of them is postgres. The catalog file is read at most once.
func NewSources(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *zap.Logger) (*Sources, error) {
	var pg *postgres.ProblemRepo
	s := &Sources{}

	loadCatalog := func() (*catalog.Live, error) {
		if s.Catalog != nil {
			return s.Catalog, nil
		}
		c, err := catalog.NewLive(cfg.Problems.Catalog, logger)
		if err != nil {
			return nil, err
		}
		s.Catalog = c
		return c, nil
	}
	postgresRepo := func(what string) (*postgres.ProblemRepo, error) {
		if pool == nil {
			return nil, fmt.Errorf("bootstrap: %s source is postgres but no database pool was given", what)
		}
		if pg == nil {
			pg = postgres.NewPostgresProblemRepository(pool)
		}
		return pg, nil
	}

	switch cfg.Problems.Source {
	case config.SourceCatalog:
		c, err := loadCatalog()
		if err != nil {
			return nil, err
		}
		s.Problems = c
	case config.SourcePostgres:
		repo, err := postgresRepo("problem")
		if err != nil {
			return nil, err
		}
		s.Problems = repo
	default:
		return nil, fmt.Errorf("bootstrap: unknown problem source %q", cfg.Problems.Source)
	}

	switch cfg.Wrappers.Source {
	case config.SourceCatalog:
		c, err := loadCatalog()
		if err != nil {
			return nil, err
		}
		s.Wrappers = c
	case config.SourcePostgres:
		repo, err := postgresRepo("wrapper")
		if err != nil {
			return nil, err
		}
		s.Wrappers = repo
	case config.SourceLocal:
		store, err := templates.New(ctx, config.SourceLocal, cfg.Wrappers.Dir)
		if err != nil {
			return nil, err
		}
		s.Wrappers = store
	case config.SourceS3:
		store, err := templates.New(ctx, config.SourceS3, cfg.Wrappers.Bucket)
		if err != nil {
			return nil, err
		}
		s.Wrappers = store
	default:
		return nil, fmt.Errorf("bootstrap: unknown wrapper source %q", cfg.Wrappers.Source)
	}

	return s, nil
}

// WatchCatalog follows edits to the catalog file until ctx is done. It returns at once
// when no catalog is in use.
func (s *Sources) WatchCatalog(ctx context.Context) error {
	if s.Catalog == nil {
		return nil
	}
	return s.Catalog.Watch(ctx)
}
