package pool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/pool"
	"github.com/Harsh-BH/gauntlet/internal/repository/mock"
	"github.com/Harsh-BH/gauntlet/internal/usecase"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type counters struct {
	acked    atomic.Int32
	nacked   atomic.Int32
	requeued atomic.Int32
}

func (c *counters) settled() int32 { return c.acked.Load() + c.nacked.Load() }

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func newExecutor(judge *mock.Judge, idem *mock.IdempotencyStore) *usecase.ExecuteSubmissionUsecase {
	logger := zap.NewNop()
	wrappers := mock.NewWrapperStore()
	wrappers.Put("sum", domain.LangPython, "# function implementation\nprint(sum(1, 2))\n")
	problems := mock.NewProblemRepository(&domain.Problem{
		ProblemSummary:    domain.ProblemSummary{ID: "sum"},
		FunctionSignature: domain.FunctionSignature{Function: "sum", Inputs: []string{"a: int", "b: int"}, Return: "int"},
	})
	validator := usecase.NewValidateCodeUsecase(problems, wrappers, judge, logger)
	return usecase.NewExecuteSubmissionUsecase(mock.NewSubmissionRepository(), idem, validator, logger)
}

func send(ch chan<- *domain.SubmissionMessage, c *counters) {
	ch <- &domain.SubmissionMessage{
		Submission: &domain.Submission{
			SubmissionID: uuid.New(),
			ProblemID:    "sum",
			Language:     domain.LangPython,
			SourceCode:   "def sum(a, b):\n    return a + b",
		},
		Ack: func() error {
			c.acked.Add(1)
			return nil
		},
		Nack: func(requeue bool) error {
			c.nacked.Add(1)
			if requeue {
				c.requeued.Add(1)
			}
			return nil
		},
	}
}

func startPool(size int, exec pool.Executor) (chan *domain.SubmissionMessage, *pool.WorkerPool, context.CancelFunc) {
	ch := make(chan *domain.SubmissionMessage, 16)
	ctx, cancel := context.WithCancel(context.Background())
	wp := pool.NewWorkerPool(size, ch, exec, zap.NewNop())
	wp.Start(ctx)
	return ch, wp, cancel
}

func TestPool_ProcessAndAck(t *testing.T) {
	judge := &mock.Judge{}
	ch, wp, cancel := startPool(2, newExecutor(judge, &mock.IdempotencyStore{}))

	var c counters
	for i := 0; i < 5; i++ {
		send(ch, &c)
	}
	waitFor(t, func() bool { return c.settled() == 5 })

	cancel()
	wp.Stop()

	if c.acked.Load() != 5 {
		t.Errorf("expected 5 ACKs, got %d", c.acked.Load())
	}
	if judge.Calls() != 5 {
		t.Errorf("expected 5 judge submissions, got %d", judge.Calls())
	}
}

func TestPool_JudgeBusyIsAcked(t *testing.T) {
	judge := &mock.Judge{
		SubmitFn: func(ctx context.Context, src string, lang domain.Language) (*domain.ExecutionResult, error) {
			return nil, domain.ErrServerBusy
		},
	}
	ch, wp, cancel := startPool(1, newExecutor(judge, &mock.IdempotencyStore{}))

	var c counters
	send(ch, &c)
	waitFor(t, func() bool { return c.settled() == 1 })

	cancel()
	wp.Stop()

	if c.acked.Load() != 1 {
		t.Errorf("a FAILED verdict is terminal and must be acked, got %d ACKs", c.acked.Load())
	}
}

func TestPool_NacksOnInfrastructureFailure(t *testing.T) {
	idem := &mock.IdempotencyStore{
		AcquireLockFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, errors.New("redis: connection refused")
		},
	}
	ch, wp, cancel := startPool(1, newExecutor(&mock.Judge{}, idem))

	var c counters
	send(ch, &c)
	waitFor(t, func() bool { return c.settled() == 1 })

	cancel()
	wp.Stop()

	if c.nacked.Load() != 1 {
		t.Errorf("expected 1 NACK, got %d", c.nacked.Load())
	}
}

func TestPool_ShutdownRequeuesInFlightSubmission(t *testing.T) {
	started := make(chan struct{})
	judge := &mock.Judge{
		SubmitFn: func(ctx context.Context, _ string, _ domain.Language) (*domain.ExecutionResult, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	idem := &mock.IdempotencyStore{}
	ch, wp, cancel := startPool(1, newExecutor(judge, idem))

	var c counters
	send(ch, &c)
	<-started

	cancel()
	wp.Stop()

	if c.nacked.Load() != 1 || c.requeued.Load() != 1 {
		t.Errorf("expected 1 requeueing NACK, got nacked=%d requeued=%d", c.nacked.Load(), c.requeued.Load())
	}
	if c.acked.Load() != 0 {
		t.Errorf("an interrupted submission must not be acked, got %d ACKs", c.acked.Load())
	}
	if len(idem.ForgetCalls) != 1 {
		t.Errorf("expected the idempotency lock to be dropped, got %d", len(idem.ForgetCalls))
	}
}

func TestPool_InfrastructureFailureIsNotRequeued(t *testing.T) {
	idem := &mock.IdempotencyStore{
		AcquireLockFn: func(context.Context, uuid.UUID) (bool, error) {
			return false, errors.New("redis: connection refused")
		},
	}
	ch, wp, cancel := startPool(1, newExecutor(&mock.Judge{}, idem))

	var c counters
	send(ch, &c)
	waitFor(t, func() bool { return c.settled() == 1 })

	cancel()
	wp.Stop()

	if c.requeued.Load() != 0 {
		t.Errorf("infrastructure failures go to the dead-letter queue, got %d requeues", c.requeued.Load())
	}
}

func TestPool_DuplicateIsAcked(t *testing.T) {
	judge := &mock.Judge{}
	idem := &mock.IdempotencyStore{
		AcquireLockFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	ch, wp, cancel := startPool(1, newExecutor(judge, idem))

	var c counters
	send(ch, &c)
	waitFor(t, func() bool { return c.settled() == 1 })

	cancel()
	wp.Stop()

	if c.acked.Load() != 1 || c.nacked.Load() != 0 {
		t.Errorf("expected 1 ACK and 0 NACKs, got %d/%d", c.acked.Load(), c.nacked.Load())
	}
	if judge.Calls() != 0 {
		t.Error("duplicate must not reach the judge")
	}
}

type panicky struct{}

func (panicky) Execute(context.Context, *domain.Submission) (bool, error) { panic("boom") }

func TestPool_PanicNacksAndWorkerSurvives(t *testing.T) {
	ch, wp, cancel := startPool(1, panicky{})

	var c counters
	send(ch, &c)
	send(ch, &c)
	waitFor(t, func() bool { return c.settled() == 2 })

	cancel()
	wp.Stop()

	if c.nacked.Load() != 2 {
		t.Errorf("expected both messages NACKed by the same worker, got %d", c.nacked.Load())
	}
}

func TestPool_StopsOnChannelClose(t *testing.T) {
	ch, wp, cancel := startPool(3, newExecutor(&mock.Judge{}, &mock.IdempotencyStore{}))
	defer cancel()

	close(ch)
	wp.Stop()
}
