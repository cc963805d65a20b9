package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

func TestCatalog_ListAndGet(t *testing.T) {
	f := newFixture()
	uc := NewCatalogUsecase(f.problems, f.wrappers, f.logger)

	list, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != "sum" {
		t.Errorf("unexpected list %+v", list)
	}

	p, err := uc.Get(context.Background(), "sum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Function != "sum" {
		t.Errorf("expected function sum, got %s", p.Function)
	}

	if _, err := uc.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrProblemNotFound) {
		t.Errorf("expected ErrProblemNotFound, got %v", err)
	}
}

func TestCatalog_Wrapper(t *testing.T) {
	f := newFixture()
	uc := NewCatalogUsecase(f.problems, f.wrappers, f.logger)

	w, err := uc.Wrapper(context.Background(), "sum", domain.LangPython)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != pythonSumWrapper {
		t.Errorf("unexpected wrapper %q", w)
	}

	if _, err := uc.Wrapper(context.Background(), "sum", domain.LangCpp); !errors.Is(err, domain.ErrWrapperNotFound) {
		t.Errorf("expected ErrWrapperNotFound, got %v", err)
	}
	if _, err := uc.Wrapper(context.Background(), "nope", domain.LangPython); !errors.Is(err, domain.ErrProblemNotFound) {
		t.Errorf("expected ErrProblemNotFound, got %v", err)
	}
	if _, err := uc.Wrapper(context.Background(), "sum", "ruby"); !errors.Is(err, domain.ErrInvalidLanguage) {
		t.Errorf("expected ErrInvalidLanguage, got %v", err)
	}
}

func TestGenerateStub(t *testing.T) {
	f := newFixture()
	uc := NewGenerateStubUsecase(f.problems, f.logger)

	stub, err := uc.ForProblem(context.Background(), "sum", domain.LangPython)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "def sum(a: int, b: int) -> int:\n    # TODO: implement\n    raise NotImplementedError()"
	if stub != want {
		t.Errorf("stub mismatch:\n%s\nwant\n%s", stub, want)
	}

	set, err := uc.AllForProblem(context.Background(), "sum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Stubs) != len(domain.Languages()) {
		t.Errorf("expected a stub for every language, got %d", len(set.Stubs))
	}

	if _, err := uc.ForProblem(context.Background(), "nope", domain.LangPython); !errors.Is(err, domain.ErrProblemNotFound) {
		t.Errorf("expected ErrProblemNotFound, got %v", err)
	}
	if _, err := uc.ForProblem(context.Background(), "sum", "ruby"); !errors.Is(err, domain.ErrInvalidLanguage) {
		t.Errorf("expected ErrInvalidLanguage, got %v", err)
	}
}

func TestGenerateStub_Unresolved(t *testing.T) {
	f := newFixture()
	uc := NewGenerateStubUsecase(f.problems, f.logger)

	sig := domain.FunctionSignature{Function: "flatten", Inputs: []string{"xs: list"}, Return: "int"}
	_, err := uc.Generate(sig, domain.LangSML)
	if !errors.Is(err, domain.ErrUnresolvedType) {
		t.Errorf("expected ErrUnresolvedType, got %v", err)
	}

	set := uc.GenerateAll(sig)
	if _, ok := set.Unresolved[domain.LangSML]; !ok {
		t.Error("expected sml to be reported as unresolved")
	}
	if _, ok := set.Stubs[domain.LangPython]; !ok {
		t.Error("expected a python stub")
	}
}
