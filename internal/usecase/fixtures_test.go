package usecase

import (
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	mockpub "github.com/Harsh-BH/gauntlet/internal/publisher/mock"
	mockrepo "github.com/Harsh-BH/gauntlet/internal/repository/mock"
)

const pythonSumWrapper = "# function implementation\n\nprint(sum(2, 3))\n"

func sumProblem() *domain.Problem {
	return &domain.Problem{
		ProblemSummary: domain.ProblemSummary{ID: "sum", Title: "Sum", Topic: "warmup", Difficulty: "easy"},
		FunctionSignature: domain.FunctionSignature{
			Function: "sum",
			Inputs:   []string{"a: int", "b: int"},
			Return:   "int",
		},
	}
}

type fixture struct {
	problems    *mockrepo.ProblemRepository
	wrappers    *mockrepo.WrapperStore
	judge       *mockrepo.Judge
	submissions *mockrepo.SubmissionRepository
	idempotency *mockrepo.IdempotencyStore
	publisher   *mockpub.MockPublisher
	logger      *zap.Logger
}

func newFixture() *fixture {
	wrappers := mockrepo.NewWrapperStore()
	wrappers.Put("sum", domain.LangPython, pythonSumWrapper)
	return &fixture{
		problems:    mockrepo.NewProblemRepository(sumProblem()),
		wrappers:    wrappers,
		judge:       &mockrepo.Judge{},
		submissions: mockrepo.NewSubmissionRepository(),
		idempotency: &mockrepo.IdempotencyStore{},
		publisher:   mockpub.NewMockPublisher(),
		logger:      zap.NewNop(),
	}
}

func (f *fixture) validator() *ValidateCodeUsecase {
	return NewValidateCodeUsecase(f.problems, f.wrappers, f.judge, f.logger)
}
