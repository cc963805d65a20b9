package codegen

import (
	"strings"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

// languageSpec is everything the generator knows about one target language.
type languageSpec struct {
	label      string
	primitives map[string]string
	wrap       func(elem string) string
	render     func(fn string, params []domain.Parameter, ret string) string
}

var specs = map[domain.Language]languageSpec{
	domain.LangPython: {
		label: "Python",
		primitives: map[string]string{
			"int":  "int",
			"str":  "str",
			"list": "list",
		},
		wrap:   func(elem string) string { return "list[" + elem + "]" },
		render: renderPython,
	},
	domain.LangJava: {
		label: "Java",
		primitives: map[string]string{
			"int":  "int",
			"str":  "String",
			"list": "String[]",
		},
		wrap:   func(elem string) string { return elem + "[]" },
		render: renderJava,
	},
	domain.LangC: {
		label: "C",
		primitives: map[string]string{
			"int":  "int",
			"str":  "char*",
			"list": "int*",
		},
		wrap:   func(elem string) string { return elem + "*" },
		render: renderC,
	},
	domain.LangCpp: {
		label: "C++",
		primitives: map[string]string{
			"int":  "int",
			"str":  "std::string",
			"list": "std::vector",
		},
		wrap:   func(elem string) string { return "std::vector<" + elem + ">" },
		render: renderCpp,
	},
	// sml has no bare list type: element type is mandatory.
	domain.LangSML: {
		label: "SML",
		primitives: map[string]string{
			"int": "int",
			"str": "string",
		},
		wrap:   func(elem string) string { return elem + " list" },
		render: renderSML,
	},
}

// Label returns the human readable name of lang, or the raw name when unknown.
func Label(lang domain.Language) string {
	if spec, ok := specs[lang]; ok {
		return spec.label
	}
	return string(lang)
}

// Supports reports whether stubs can be generated for lang.
func Supports(lang domain.Language) bool {
	_, ok := specs[lang]
	return ok
}

func joinParams(params []domain.Parameter, sep string, format func(p domain.Parameter) string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = format(p)
	}
	return strings.Join(parts, sep)
}

func nameColonType(p domain.Parameter) string { return p.Name + ": " + p.Type }
func typeSpaceName(p domain.Parameter) string { return p.Type + " " + p.Name }

func renderPython(fn string, params []domain.Parameter, ret string) string {
	return strings.Join([]string{
		"def " + fn + "(" + joinParams(params, ", ", nameColonType) + ") -> " + ret + ":",
		"    # TODO: implement",
		"    raise NotImplementedError()",
	}, "\n")
}

func renderJava(fn string, params []domain.Parameter, ret string) string {
	return strings.Join([]string{
		"public static " + ret + " " + fn + "(" + joinParams(params, ", ", typeSpaceName) + ") {",
		"    // TODO: implement",
		`    throw new UnsupportedOperationException("Not implemented");`,
		"}",
	}, "\n")
}

func renderC(fn string, params []domain.Parameter, ret string) string {
	sig := joinParams(params, ", ", typeSpaceName)
	if sig == "" {
		sig = "void"
	}
	return strings.Join([]string{
		"#include <stdio.h>",
		"#include <stdlib.h>",
		"",
		ret + " " + fn + "(" + sig + ") {",
		"    // TODO: implement",
		`    fprintf(stderr, "` + fn + `: not implemented\n");`,
		"    abort();",
		"}",
	}, "\n")
}

func renderCpp(fn string, params []domain.Parameter, ret string) string {
	return strings.Join([]string{
		"#include <iostream>",
		"#include <stdexcept>",
		"#include <string>",
		"#include <vector>",
		"",
		ret + " " + fn + "(" + joinParams(params, ", ", typeSpaceName) + ") {",
		"    // TODO: implement",
		`    throw std::runtime_error("Not implemented");`,
		"}",
	}, "\n")
}

func renderSML(fn string, params []domain.Parameter, ret string) string {
	return strings.Join([]string{
		"fun " + fn + " (" + joinParams(params, " * ", nameColonType) + ") : " + ret + " =",
		"    (* TODO: implement *)",
		`    raise Fail "Not implemented"`,
	}, "\n")
}
