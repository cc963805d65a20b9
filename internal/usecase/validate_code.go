package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/harness"
	"github.com/Harsh-BH/gauntlet/internal/judge"
	"github.com/Harsh-BH/gauntlet/internal/metrics"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

const maxSourceCodeSize = 1 << 20 // 1 MB

// ValidateCodeUsecase merges user code into a problem's wrapper, runs it on the judge and
// classifies the result.
type ValidateCodeUsecase struct {
	problems repository.ProblemRepository
	wrappers repository.WrapperStore
	judge    repository.Judge
	logger   *zap.Logger
}

// NewValidateCodeUsecase creates a new ValidateCodeUsecase.
func NewValidateCodeUsecase(
	problems repository.ProblemRepository,
	wrappers repository.WrapperStore,
	j repository.Judge,
	logger *zap.Logger,
) *ValidateCodeUsecase {
	return &ValidateCodeUsecase{
		problems: problems,
		wrappers: wrappers,
		judge:    j,
		logger:   logger,
	}
}

// Execute validates req against the stored wrapper of its problem.
func (uc *ValidateCodeUsecase) Execute(ctx context.Context, req *domain.ValidateRequest) (*domain.ValidateResponse, error) {
	if err := checkSource(req.Language, req.SourceCode); err != nil {
		return nil, err
	}
	if _, err := uc.problems.GetByID(ctx, req.ProblemID); err != nil {
		return nil, err
	}

	wrapper, err := uc.wrappers.GetWrapper(ctx, req.ProblemID, req.Language)
	if err != nil {
		return nil, err
	}

	return uc.MergeAndSubmit(ctx, wrapper, req.SourceCode, req.Language)
}

// MergeAndSubmit splices userCode into wrapper, submits the program and evaluates the
// verdict. MergedSource is the exact text sent to the judge.
func (uc *ValidateCodeUsecase) MergeAndSubmit(ctx context.Context, wrapper, userCode string, lang domain.Language) (*domain.ValidateResponse, error) {
	merged, err := harness.Merge(wrapper, userCode, lang)
	if err != nil {
		return nil, err
	}

	result, err := uc.judge.Submit(ctx, merged, lang)
	if err != nil {
		metrics.Verdicts.WithLabelValues(string(lang), "error").Inc()
		uc.logger.Warn("Judge submission failed",
			zap.String("language", string(lang)),
			zap.Error(err),
		)
		return nil, err
	}

	verdict := judge.Evaluate(result)
	label := "rejected"
	if verdict.Accepted {
		label = "accepted"
	}
	metrics.Verdicts.WithLabelValues(string(lang), label).Inc()

	uc.logger.Info("Submission evaluated",
		zap.String("language", string(lang)),
		zap.Bool("accepted", verdict.Accepted),
		zap.String("judge_status", result.Status.Description),
	)

	return &domain.ValidateResponse{
		Verdict:      verdict,
		MergedSource: merged,
		JudgeStatus:  result.Status.Description,
		Time:         result.Time,
		MemoryKB:     result.Memory,
	}, nil
}

// checkSource applies the request checks shared by synchronous and queued validation.
func checkSource(lang domain.Language, source string) error {
	if !lang.IsValid() {
		return domain.ErrInvalidLanguage
	}
	if _, ok := harness.Placeholder(lang); !ok {
		return fmt.Errorf("%w: %s cannot be submitted", domain.ErrUnsupportedLanguage, lang)
	}
	if _, ok := judge.LanguageID(lang); !ok {
		return fmt.Errorf("%w: %s has no judge runtime", domain.ErrUnsupportedLanguage, lang)
	}
	if strings.TrimSpace(source) == "" {
		return domain.ErrEmptySourceCode
	}
	if len(source) > maxSourceCodeSize {
		return domain.ErrPayloadTooLarge
	}
	return nil
}

// isClientError reports errors caused by the request or catalog content rather than
// infrastructure. Retrying them cannot succeed.
func isClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidLanguage) ||
		errors.Is(err, domain.ErrUnsupportedLanguage) ||
		errors.Is(err, domain.ErrEmptySourceCode) ||
		errors.Is(err, domain.ErrPayloadTooLarge) ||
		errors.Is(err, domain.ErrProblemNotFound) ||
		errors.Is(err, domain.ErrWrapperNotFound) ||
		errors.Is(err, domain.ErrPlaceholderNotFound)
}
