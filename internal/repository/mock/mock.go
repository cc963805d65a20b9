package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

// ---- ProblemRepository mock ----

var _ repository.ProblemRepository = (*ProblemRepository)(nil)

// ProblemRepository is an in-memory test double for repository.ProblemRepository.
type ProblemRepository struct {
	mu       sync.RWMutex
	problems map[string]*domain.Problem

	ListFn    func(ctx context.Context) ([]domain.ProblemSummary, error)
	GetByIDFn func(ctx context.Context, id string) (*domain.Problem, error)
}

// NewProblemRepository creates a mock seeded with problems.
func NewProblemRepository(problems ...*domain.Problem) *ProblemRepository {
	m := &ProblemRepository{problems: make(map[string]*domain.Problem)}
	for _, p := range problems {
		m.problems[p.ID] = p
	}
	return m
}

func (m *ProblemRepository) List(ctx context.Context) ([]domain.ProblemSummary, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ProblemSummary, 0, len(m.problems))
	for _, p := range m.problems {
		out = append(out, p.ProblemSummary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *ProblemRepository) GetByID(ctx context.Context, id string) (*domain.Problem, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.problems[id]
	if !ok {
		return nil, domain.ErrProblemNotFound
	}
	return p, nil
}

// ---- WrapperStore mock ----

var _ repository.WrapperStore = (*WrapperStore)(nil)

// WrapperStore is an in-memory test double for repository.WrapperStore.
type WrapperStore struct {
	mu       sync.RWMutex
	wrappers map[string]string

	GetWrapperFn func(ctx context.Context, problemID string, lang domain.Language) (string, error)
}

// NewWrapperStore creates an empty mock wrapper store.
func NewWrapperStore() *WrapperStore {
	return &WrapperStore{wrappers: make(map[string]string)}
}

// Put registers a wrapper for a problem and language.
func (m *WrapperStore) Put(problemID string, lang domain.Language, wrapper string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wrappers[problemID+"/"+string(lang)] = wrapper
}

func (m *WrapperStore) GetWrapper(ctx context.Context, problemID string, lang domain.Language) (string, error) {
	if m.GetWrapperFn != nil {
		return m.GetWrapperFn(ctx, problemID, lang)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.wrappers[problemID+"/"+string(lang)]
	if !ok {
		return "", domain.ErrWrapperNotFound
	}
	return w, nil
}

// ---- SubmissionRepository mock ----

var _ repository.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository is an in-memory test double for repository.SubmissionRepository.
type SubmissionRepository struct {
	mu          sync.RWMutex
	submissions map[uuid.UUID]*domain.Submission

	CreateFn       func(ctx context.Context, sub *domain.Submission) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	UpdateStatusFn func(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus) error
	SetResultFn    func(ctx context.Context, id uuid.UUID, result *domain.SubmissionResult) error

	// Recorded calls for assertions.
	StatusUpdates []StatusUpdate
	Results       []ResultUpdate
}

type StatusUpdate struct {
	ID     uuid.UUID
	Status domain.SubmissionStatus
}

type ResultUpdate struct {
	ID     uuid.UUID
	Result *domain.SubmissionResult
}

// NewSubmissionRepository creates an empty mock submission repository.
func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{submissions: make(map[uuid.UUID]*domain.Submission)}
}

func (m *SubmissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, sub)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[sub.SubmissionID] = sub
	return nil
}

func (m *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.submissions[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (m *SubmissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus) error {
	m.mu.Lock()
	m.StatusUpdates = append(m.StatusUpdates, StatusUpdate{ID: id, Status: status})
	m.mu.Unlock()
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub, ok := m.submissions[id]; ok {
		sub.Status = status
	}
	return nil
}

func (m *SubmissionRepository) SetResult(ctx context.Context, id uuid.UUID, result *domain.SubmissionResult) error {
	m.mu.Lock()
	m.Results = append(m.Results, ResultUpdate{ID: id, Result: result})
	m.mu.Unlock()
	if m.SetResultFn != nil {
		return m.SetResultFn(ctx, id, result)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub, ok := m.submissions[id]; ok {
		sub.Status = result.Status
		sub.DisplayText = result.DisplayText
		sub.JudgeStatus = result.JudgeStatus
		sub.Time = result.Time
		sub.MemoryKB = result.MemoryKB
	}
	return nil
}

// GetAll returns all stored submissions (for test assertions).
func (m *SubmissionRepository) GetAll() []*domain.Submission {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Submission, 0, len(m.submissions))
	for _, s := range m.submissions {
		out = append(out, s)
	}
	return out
}

// ---- IdempotencyStore mock ----

var _ repository.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore is a test double for repository.IdempotencyStore.
type IdempotencyStore struct {
	mu sync.Mutex

	AcquireLockFn func(ctx context.Context, id uuid.UUID) (bool, error)
	ReleaseLockFn func(ctx context.Context, id uuid.UUID) error

	AcquireCalls []uuid.UUID
	ReleaseCalls []uuid.UUID
	ForgetCalls  []uuid.UUID
}

func (m *IdempotencyStore) AcquireLock(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	m.AcquireCalls = append(m.AcquireCalls, id)
	m.mu.Unlock()
	if m.AcquireLockFn != nil {
		return m.AcquireLockFn(ctx, id)
	}
	return true, nil // default: lock acquired
}

func (m *IdempotencyStore) ReleaseLock(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.ReleaseCalls = append(m.ReleaseCalls, id)
	m.mu.Unlock()
	if m.ReleaseLockFn != nil {
		return m.ReleaseLockFn(ctx, id)
	}
	return nil
}

func (m *IdempotencyStore) ForgetLock(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ForgetCalls = append(m.ForgetCalls, id)
	return nil
}

// ---- Judge mock ----

var _ repository.Judge = (*Judge)(nil)

// Judge is a test double for repository.Judge.
type Judge struct {
	mu sync.Mutex

	SubmitFn func(ctx context.Context, sourceCode string, lang domain.Language) (*domain.ExecutionResult, error)

	Sources []string
}

func (m *Judge) Submit(ctx context.Context, sourceCode string, lang domain.Language) (*domain.ExecutionResult, error) {
	m.mu.Lock()
	m.Sources = append(m.Sources, sourceCode)
	m.mu.Unlock()
	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, sourceCode, lang)
	}
	return &domain.ExecutionResult{
		Stdout: "All 3 tests passed\n",
		Time:   "0.021",
		Memory: 3200,
		Status: domain.JudgeStatus{ID: 3, Description: "Accepted"},
	}, nil
}

// Calls returns how many submissions the judge received.
func (m *Judge) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sources)
}
