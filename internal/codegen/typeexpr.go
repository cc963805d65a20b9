package codegen

import (
	"regexp"
	"strings"
)

var (
	containerPattern = regexp.MustCompile(`^list\[(.+)\]$`)

	// opaquePattern admits identifiers optionally qualified with "::" or ".".
	opaquePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*((::|\.)[A-Za-z_][A-Za-z0-9_]*)*$`)
)

// primitiveNames is the closed primitive vocabulary. A language table may omit any of them.
var primitiveNames = map[string]struct{}{
	"int":  {},
	"str":  {},
	"list": {},
}

// TypeExpr is a parsed type expression.
type TypeExpr interface {
	String() string
	typeExpr()
}

// Primitive is a name from the primitive vocabulary.
type Primitive struct {
	Name string
}

// Container is list[Elem].
type Container struct {
	Elem TypeExpr
}

// Opaque is a user-defined identifier rendered verbatim.
type Opaque struct {
	Name string
}

func (Primitive) typeExpr() {}
func (Container) typeExpr() {}
func (Opaque) typeExpr()    {}

func (p Primitive) String() string { return p.Name }
func (c Container) String() string { return "list[" + c.Elem.String() + "]" }
func (o Opaque) String() string    { return o.Name }

// ParseType classifies expr as a container, a primitive or an opaque identifier,
// checked in that order.
func ParseType(expr string) TypeExpr {
	expr = strings.TrimSpace(expr)
	if m := containerPattern.FindStringSubmatch(expr); m != nil {
		return Container{Elem: ParseType(m[1])}
	}
	if _, ok := primitiveNames[expr]; ok {
		return Primitive{Name: expr}
	}
	return Opaque{Name: expr}
}
