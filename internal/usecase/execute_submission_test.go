package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

func newQueuedSubmission(f *fixture, lang domain.Language, source string) *domain.Submission {
	sub := &domain.Submission{
		SubmissionID: uuid.New(),
		ProblemID:    "sum",
		Language:     lang,
		SourceCode:   source,
		Status:       domain.StatusQueued,
	}
	_ = f.submissions.Create(context.Background(), sub)
	return sub
}

func (f *fixture) executor() *ExecuteSubmissionUsecase {
	return NewExecuteSubmissionUsecase(f.submissions, f.idempotency, f.validator(), f.logger)
}

func TestExecuteSubmission_Accepted(t *testing.T) {
	f := newFixture()
	sub := newQueuedSubmission(f, domain.LangPython, "def sum(a, b):\n    return a + b")

	isDup, err := f.executor().Execute(context.Background(), sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if isDup {
		t.Fatal("expected not duplicate")
	}

	if len(f.submissions.StatusUpdates) != 1 || f.submissions.StatusUpdates[0].Status != domain.StatusRunning {
		t.Errorf("expected a single RUNNING update, got %+v", f.submissions.StatusUpdates)
	}
	if len(f.submissions.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(f.submissions.Results))
	}
	res := f.submissions.Results[0].Result
	if res.Status != domain.StatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", res.Status)
	}
	if res.DisplayText != "All 3 tests passed" || res.Time != "0.021" || res.MemoryKB != 3200 {
		t.Errorf("unexpected result %+v", res)
	}
	if len(f.idempotency.ReleaseCalls) != 1 {
		t.Errorf("expected lock release, got %d", len(f.idempotency.ReleaseCalls))
	}
}

func TestExecuteSubmission_Rejected(t *testing.T) {
	f := newFixture()
	f.judge.SubmitFn = func(ctx context.Context, src string, lang domain.Language) (*domain.ExecutionResult, error) {
		return &domain.ExecutionResult{
			CompileOutput: "SyntaxError: invalid syntax",
			Status:        domain.JudgeStatus{ID: 11, Description: "Runtime Error (NZEC)"},
		}, nil
	}
	sub := newQueuedSubmission(f, domain.LangPython, "def sum(a, b) return")

	if _, err := f.executor().Execute(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := f.submissions.Results[0].Result
	if res.Status != domain.StatusRejected {
		t.Errorf("expected REJECTED, got %s", res.Status)
	}
	if res.DisplayText != "SyntaxError: invalid syntax" {
		t.Errorf("unexpected display text %q", res.DisplayText)
	}
	if res.JudgeStatus != "Runtime Error (NZEC)" {
		t.Errorf("unexpected judge status %q", res.JudgeStatus)
	}
}

func TestExecuteSubmission_JudgeBusyIsTerminal(t *testing.T) {
	f := newFixture()
	f.judge.SubmitFn = func(ctx context.Context, src string, lang domain.Language) (*domain.ExecutionResult, error) {
		return nil, fmt.Errorf("%w: %w", domain.ErrServerBusy, domain.ErrSubmissionFailed)
	}
	sub := newQueuedSubmission(f, domain.LangPython, "x = 1")

	_, err := f.executor().Execute(context.Background(), sub)
	if err != nil {
		t.Fatalf("judge failure should not be returned, got %v", err)
	}

	res := f.submissions.Results[0].Result
	if res.Status != domain.StatusFailed {
		t.Errorf("expected FAILED, got %s", res.Status)
	}
	if res.DisplayText != "Server is busy, try again later." {
		t.Errorf("unexpected display text %q", res.DisplayText)
	}
}

func TestExecuteSubmission_MissingWrapperIsTerminal(t *testing.T) {
	f := newFixture()
	sub := newQueuedSubmission(f, domain.LangCpp, "int sum(int a, int b) { return a + b; }")

	if _, err := f.executor().Execute(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := f.submissions.Results[0].Result
	if res.Status != domain.StatusFailed {
		t.Errorf("expected FAILED, got %s", res.Status)
	}
	if f.judge.Calls() != 0 {
		t.Error("judge must not be called")
	}
}

func TestExecuteSubmission_Duplicate(t *testing.T) {
	f := newFixture()
	f.idempotency.AcquireLockFn = func(ctx context.Context, id uuid.UUID) (bool, error) {
		return false, nil
	}
	sub := newQueuedSubmission(f, domain.LangPython, "x = 1")

	isDup, err := f.executor().Execute(context.Background(), sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isDup {
		t.Error("expected duplicate")
	}
	if len(f.submissions.StatusUpdates) != 0 || f.judge.Calls() != 0 {
		t.Error("duplicate must not be processed")
	}
}

func TestExecuteSubmission_LockError(t *testing.T) {
	f := newFixture()
	f.idempotency.AcquireLockFn = func(ctx context.Context, id uuid.UUID) (bool, error) {
		return false, errors.New("redis down")
	}
	sub := newQueuedSubmission(f, domain.LangPython, "x = 1")

	if _, err := f.executor().Execute(context.Background(), sub); err == nil {
		t.Fatal("expected error")
	}
}

func TestExecuteSubmission_InfrastructureError(t *testing.T) {
	f := newFixture()
	f.wrappers.GetWrapperFn = func(ctx context.Context, problemID string, lang domain.Language) (string, error) {
		return "", errors.New("s3: access denied")
	}
	sub := newQueuedSubmission(f, domain.LangPython, "x = 1")

	if _, err := f.executor().Execute(context.Background(), sub); err == nil {
		t.Fatal("expected error so the message is dead-lettered")
	}
	if got := f.submissions.Results[0].Result.Status; got != domain.StatusFailed {
		t.Errorf("expected FAILED, got %s", got)
	}
}

func TestExecuteSubmission_CancelledMidJudgeGoesBackToQueue(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.judge.SubmitFn = func(ctx context.Context, src string, lang domain.Language) (*domain.ExecutionResult, error) {
		cancel()
		return nil, fmt.Errorf("judge: %w", ctx.Err())
	}
	sub := newQueuedSubmission(f, domain.LangPython, "x = 1")

	_, err := f.executor().Execute(ctx, sub)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if domain.IsJudgeFailure(err) {
		t.Errorf("shutdown must not be reported as a judge failure: %v", err)
	}
	if len(f.submissions.Results) != 0 {
		t.Errorf("no terminal result may be stored, got %+v", f.submissions.Results[0].Result)
	}

	updates := f.submissions.StatusUpdates
	if len(updates) != 2 || updates[0].Status != domain.StatusRunning || updates[1].Status != domain.StatusQueued {
		t.Errorf("expected RUNNING then QUEUED, got %+v", updates)
	}
	if len(f.idempotency.ForgetCalls) != 1 || len(f.idempotency.ReleaseCalls) != 0 {
		t.Errorf("expected the lock to be dropped, got forget=%d release=%d",
			len(f.idempotency.ForgetCalls), len(f.idempotency.ReleaseCalls))
	}
}

func TestExecuteSubmission_VerdictStoredAfterCancel(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.judge.SubmitFn = func(context.Context, string, domain.Language) (*domain.ExecutionResult, error) {
		cancel()
		return &domain.ExecutionResult{Stdout: "ok", Status: domain.JudgeStatus{ID: 3, Description: "Accepted"}}, nil
	}
	f.submissions.SetResultFn = func(ctx context.Context, _ uuid.UUID, _ *domain.SubmissionResult) error {
		return ctx.Err()
	}
	sub := newQueuedSubmission(f, domain.LangPython, "def sum(a, b):\n    return a + b")

	if _, err := f.executor().Execute(ctx, sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.submissions.Results) != 1 || f.submissions.Results[0].Result.Status != domain.StatusAccepted {
		t.Errorf("expected the ACCEPTED verdict to be stored, got %+v", f.submissions.Results)
	}
}
