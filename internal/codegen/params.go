package codegen

import (
	"strings"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

// ParseParameters splits each raw "name: type" declaration on its first colon and
// trims both halves. Order is preserved. A declaration without a colon keeps an empty
// type, which fails later at resolution.
func ParseParameters(raw []string) []domain.Parameter {
	params := make([]domain.Parameter, 0, len(raw))
	for _, decl := range raw {
		name, typ, _ := strings.Cut(decl, ":")
		params = append(params, domain.Parameter{
			Name: strings.TrimSpace(name),
			Type: strings.TrimSpace(typ),
		})
	}
	return params
}
