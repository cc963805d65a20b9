package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

// busyText is shown to users when the judge could not be reached after the retry.
const busyText = "Server is busy, try again later."

// ExecuteSubmissionUsecase runs a queued submission through the validation pipeline and
// stores its terminal state.
type ExecuteSubmissionUsecase struct {
	repo       repository.SubmissionRepository
	idempotent repository.IdempotencyStore
	validator  *ValidateCodeUsecase
	logger     *zap.Logger
}

// NewExecuteSubmissionUsecase creates a new ExecuteSubmissionUsecase.
func NewExecuteSubmissionUsecase(
	repo repository.SubmissionRepository,
	idempotent repository.IdempotencyStore,
	validator *ValidateCodeUsecase,
	logger *zap.Logger,
) *ExecuteSubmissionUsecase {
	return &ExecuteSubmissionUsecase{
		repo:       repo,
		idempotent: idempotent,
		validator:  validator,
		logger:     logger,
	}
}

// Execute processes one submission: idempotency check, RUNNING, validate, store result.
// Judge failures and bad catalog data end in FAILED and are not returned as errors; only
// infrastructure errors are, so the caller can dead-letter the message. If ctx ends while
// the submission is in flight it goes back to QUEUED and the returned error wraps ctx.Err()
// so the caller can requeue it.
// Returns (isDuplicate, error).
func (uc *ExecuteSubmissionUsecase) Execute(ctx context.Context, sub *domain.Submission) (bool, error) {
	log := uc.logger.With(zap.String("submission_id", sub.SubmissionID.String()))

	acquired, err := uc.idempotent.AcquireLock(ctx, sub.SubmissionID)
	if err != nil {
		log.Error("Failed to acquire idempotency lock", zap.Error(err))
		return false, err
	}
	if !acquired {
		log.Info("Duplicate message detected, skipping")
		return true, nil
	}

	if err := uc.repo.UpdateStatus(ctx, sub.SubmissionID, domain.StatusRunning); err != nil {
		if ctx.Err() != nil {
			return false, uc.abandon(ctx, log, sub.SubmissionID)
		}
		log.Error("Failed to update submission status", zap.Error(err))
		return false, err
	}

	req := &domain.ValidateRequest{
		ProblemID:  sub.ProblemID,
		Language:   sub.Language,
		SourceCode: sub.SourceCode,
	}
	resp, err := uc.validator.Execute(ctx, req)
	if err != nil && ctx.Err() != nil {
		return false, uc.abandon(ctx, log, sub.SubmissionID)
	}

	// The verdict is final from here on; store it even if ctx ends meanwhile.
	store := context.WithoutCancel(ctx)

	result, err := outcome(resp, err)
	if err != nil {
		log.Error("Validation failed", zap.Error(err))
		_ = uc.repo.SetResult(store, sub.SubmissionID, &domain.SubmissionResult{
			Status:      domain.StatusFailed,
			DisplayText: "Internal error, please resubmit.",
		})
		return false, err
	}

	if err := uc.repo.SetResult(store, sub.SubmissionID, result); err != nil {
		log.Error("Failed to store result", zap.Error(err))
		return false, err
	}

	_ = uc.idempotent.ReleaseLock(store, sub.SubmissionID)

	log.Info("Submission processed",
		zap.String("status", string(result.Status)),
		zap.String("judge_status", result.JudgeStatus),
	)
	return false, nil
}

// abandon hands an interrupted submission back to the queue: status QUEUED and the lock
// dropped so the redelivery is not mistaken for a duplicate.
func (uc *ExecuteSubmissionUsecase) abandon(ctx context.Context, log *zap.Logger, id uuid.UUID) error {
	cause := ctx.Err()
	bg := context.WithoutCancel(ctx)

	if err := uc.repo.UpdateStatus(bg, id, domain.StatusQueued); err != nil {
		log.Error("Failed to reset interrupted submission", zap.Error(err))
	}
	if err := uc.idempotent.ForgetLock(bg, id); err != nil {
		log.Error("Failed to drop idempotency lock", zap.Error(err))
	}

	log.Warn("Submission interrupted, handing back to the queue", zap.Error(cause))
	return fmt.Errorf("submission %s interrupted: %w", id, cause)
}

// outcome maps a validation response or error to the stored result. Only errors that
// should dead-letter the message are returned.
func outcome(resp *domain.ValidateResponse, err error) (*domain.SubmissionResult, error) {
	switch {
	case err == nil:
		status := domain.StatusRejected
		if resp.Verdict.Accepted {
			status = domain.StatusAccepted
		}
		return &domain.SubmissionResult{
			Status:      status,
			DisplayText: resp.Verdict.DisplayText,
			JudgeStatus: resp.JudgeStatus,
			Time:        resp.Time,
			MemoryKB:    resp.MemoryKB,
		}, nil
	case domain.IsJudgeFailure(err):
		return &domain.SubmissionResult{Status: domain.StatusFailed, DisplayText: busyText}, nil
	case isClientError(err):
		return &domain.SubmissionResult{Status: domain.StatusFailed, DisplayText: err.Error()}, nil
	default:
		return nil, fmt.Errorf("validate submission: %w", err)
	}
}
