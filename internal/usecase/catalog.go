package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

// CatalogUsecase serves problem listings, details and wrapper templates.
type CatalogUsecase struct {
	problems repository.ProblemRepository
	wrappers repository.WrapperStore
	logger   *zap.Logger
}

// NewCatalogUsecase creates a new CatalogUsecase.
func NewCatalogUsecase(problems repository.ProblemRepository, wrappers repository.WrapperStore, logger *zap.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		problems: problems,
		wrappers: wrappers,
		logger:   logger,
	}
}

// List returns every problem summary.
func (uc *CatalogUsecase) List(ctx context.Context) ([]domain.ProblemSummary, error) {
	list, err := uc.problems.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	return list, nil
}

// Get returns a problem by ID.
func (uc *CatalogUsecase) Get(ctx context.Context, id string) (*domain.Problem, error) {
	p, err := uc.problems.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProblemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get problem %s: %w", id, err)
	}
	return p, nil
}

// Wrapper returns the test wrapper for a problem and language.
func (uc *CatalogUsecase) Wrapper(ctx context.Context, problemID string, lang domain.Language) (string, error) {
	if !lang.IsValid() {
		return "", domain.ErrInvalidLanguage
	}
	if _, err := uc.Get(ctx, problemID); err != nil {
		return "", err
	}
	w, err := uc.wrappers.GetWrapper(ctx, problemID, lang)
	if err != nil {
		if errors.Is(err, domain.ErrWrapperNotFound) {
			uc.logger.Debug("Wrapper not found",
				zap.String("problem_id", problemID),
				zap.String("language", string(lang)),
			)
			return "", domain.ErrWrapperNotFound
		}
		return "", fmt.Errorf("get wrapper: %w", err)
	}
	return w, nil
}
