package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/codegen"
	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/metrics"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

// GenerateStubUsecase renders starter code for catalog problems or ad-hoc signatures.
type GenerateStubUsecase struct {
	problems repository.ProblemRepository
	logger   *zap.Logger
}

// NewGenerateStubUsecase creates a new GenerateStubUsecase.
func NewGenerateStubUsecase(problems repository.ProblemRepository, logger *zap.Logger) *GenerateStubUsecase {
	return &GenerateStubUsecase{
		problems: problems,
		logger:   logger,
	}
}

// ForProblem renders the stub of a catalog problem in one language.
func (uc *GenerateStubUsecase) ForProblem(ctx context.Context, problemID string, lang domain.Language) (string, error) {
	p, err := uc.problems.GetByID(ctx, problemID)
	if err != nil {
		return "", err
	}
	return uc.Generate(p.FunctionSignature, lang)
}

// AllForProblem renders the stub of a catalog problem in every language.
func (uc *GenerateStubUsecase) AllForProblem(ctx context.Context, problemID string) (codegen.StubSet, error) {
	p, err := uc.problems.GetByID(ctx, problemID)
	if err != nil {
		return codegen.StubSet{}, err
	}
	return uc.GenerateAll(p.FunctionSignature), nil
}

// Generate renders sig in lang.
func (uc *GenerateStubUsecase) Generate(sig domain.FunctionSignature, lang domain.Language) (string, error) {
	if !lang.IsValid() {
		return "", domain.ErrInvalidLanguage
	}
	if !codegen.Supports(lang) {
		uc.record(lang, domain.ErrUnsupportedLanguage)
		return "", fmt.Errorf("%w: no stub generator for %q", domain.ErrUnsupportedLanguage, lang)
	}
	stub, err := codegen.Generate(sig, lang)
	if err != nil {
		uc.record(lang, err)
		uc.logger.Debug("Stub generation failed",
			zap.String("function", sig.Function),
			zap.String("language", string(lang)),
			zap.Error(err),
		)
		return "", err
	}
	uc.record(lang, nil)
	return stub, nil
}

// GenerateAll renders sig in every language.
func (uc *GenerateStubUsecase) GenerateAll(sig domain.FunctionSignature) codegen.StubSet {
	set := codegen.GenerateAll(sig)
	for lang := range set.Stubs {
		uc.record(lang, nil)
	}
	for lang := range set.Unresolved {
		uc.record(lang, domain.ErrUnresolvedType)
	}
	return set
}

func (uc *GenerateStubUsecase) record(lang domain.Language, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnresolvedType):
		outcome = "unresolved"
	default:
		outcome = "error"
	}
	metrics.StubGenerations.WithLabelValues(string(lang), outcome).Inc()
}
