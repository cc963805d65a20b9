// Package catalog serves problems and wrapper templates from a YAML file.
package catalog

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

var (
	_ repository.ProblemRepository = (*Catalog)(nil)
	_ repository.WrapperStore      = (*Catalog)(nil)
)

type file struct {
	Problems []entry `yaml:"problems"`
}

type entry struct {
	domain.Problem `yaml:",inline"`
	Wrappers       map[domain.Language]string `yaml:"wrappers"`
}

// Catalog is an immutable, in-memory problem set. Safe for concurrent use.
type Catalog struct {
	ids      []string
	problems map[string]*domain.Problem
	wrappers map[string]map[domain.Language]string
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	c := &Catalog{
		problems: make(map[string]*domain.Problem, len(f.Problems)),
		wrappers: make(map[string]map[domain.Language]string, len(f.Problems)),
	}
	for i := range f.Problems {
		e := f.Problems[i]
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("catalog: problem %d: %w", i, err)
		}
		if _, dup := c.problems[e.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate problem id %q", e.ID)
		}
		p := e.Problem
		c.problems[e.ID] = &p
		c.wrappers[e.ID] = e.Wrappers
		c.ids = append(c.ids, e.ID)
	}
	sort.Strings(c.ids)
	return c, nil
}

func validate(e entry) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("missing id")
	case e.Function == "":
		return fmt.Errorf("%s: missing function", e.ID)
	case e.Return == "":
		return fmt.Errorf("%s: missing return", e.ID)
	}
	for lang := range e.Wrappers {
		if !lang.IsValid() {
			return fmt.Errorf("%s: wrapper for %q: %w", e.ID, lang, domain.ErrInvalidLanguage)
		}
	}
	return nil
}

// List returns every problem summary ordered by ID.
func (c *Catalog) List(_ context.Context) ([]domain.ProblemSummary, error) {
	out := make([]domain.ProblemSummary, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.problems[id].ProblemSummary)
	}
	return out, nil
}

// GetByID returns a copy of the problem so callers cannot mutate the catalog.
func (c *Catalog) GetByID(_ context.Context, id string) (*domain.Problem, error) {
	p, ok := c.problems[id]
	if !ok {
		return nil, domain.ErrProblemNotFound
	}
	cp := *p
	cp.Inputs = append([]string(nil), p.Inputs...)
	return &cp, nil
}

// GetWrapper returns the wrapper template for a problem and language.
func (c *Catalog) GetWrapper(_ context.Context, problemID string, lang domain.Language) (string, error) {
	w, ok := c.wrappers[problemID][lang]
	if !ok {
		return "", domain.ErrWrapperNotFound
	}
	return w, nil
}
