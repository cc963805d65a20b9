package codegen

import (
	"fmt"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

// Resolve maps a type expression to the concrete type token of lang.
func Resolve(expr string, lang domain.Language) (string, error) {
	spec, ok := specs[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	}
	return resolve(ParseType(expr), spec, lang)
}

func resolve(t TypeExpr, spec languageSpec, lang domain.Language) (string, error) {
	switch t := t.(type) {
	case Container:
		elem, err := resolve(t.Elem, spec, lang)
		if err != nil {
			return "", err
		}
		return spec.wrap(elem), nil
	case Primitive:
		if token, ok := spec.primitives[t.Name]; ok {
			return token, nil
		}
		return "", fmt.Errorf("%w: primitive %q has no %s equivalent", domain.ErrUnresolvedType, t.Name, lang)
	case Opaque:
		if t.Name == "" {
			return "", fmt.Errorf("%w: empty type", domain.ErrUnresolvedType)
		}
		if !opaquePattern.MatchString(t.Name) {
			return "", fmt.Errorf("%w: malformed type %q", domain.ErrUnresolvedType, t.Name)
		}
		return t.Name, nil
	default:
		return "", fmt.Errorf("%w: %v", domain.ErrUnresolvedType, t)
	}
}
