// Package codegen renders starter code for a function signature in each target language.
package codegen

import (
	"errors"
	"fmt"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

// Generate renders the stub for sig in lang. If any parameter or the return type cannot
// be resolved the result is empty and the error wraps domain.ErrUnresolvedType.
func Generate(sig domain.FunctionSignature, lang domain.Language) (string, error) {
	spec, ok := specs[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	}

	params := ParseParameters(sig.Inputs)
	resolved := make([]domain.Parameter, len(params))
	for i, p := range params {
		typ, err := resolve(ParseType(p.Type), spec, lang)
		if err != nil {
			return "", fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		resolved[i] = domain.Parameter{Name: p.Name, Type: typ}
	}

	ret, err := resolve(ParseType(sig.Return), spec, lang)
	if err != nil {
		return "", fmt.Errorf("return type: %w", err)
	}

	return spec.render(sig.Function, resolved, ret), nil
}

// StubSet is the outcome of rendering a signature in every language.
type StubSet struct {
	Stubs      map[domain.Language]string `json:"stubs"`
	Unresolved map[domain.Language]string `json:"unresolved,omitempty"`
}

// GenerateAll renders sig in every known language. Languages whose types cannot be
// resolved are reported in Unresolved with the reason instead of a stub.
func GenerateAll(sig domain.FunctionSignature) StubSet {
	set := StubSet{
		Stubs:      make(map[domain.Language]string),
		Unresolved: make(map[domain.Language]string),
	}
	for _, lang := range domain.Languages() {
		stub, err := Generate(sig, lang)
		if err != nil {
			if errors.Is(err, domain.ErrUnresolvedType) {
				set.Unresolved[lang] = err.Error()
			}
			continue
		}
		set.Stubs[lang] = stub
	}
	return set
}
