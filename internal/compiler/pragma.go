package compiler

import (
	"regexp"
	"strings"
)

var (
	// Leftmost match wins, so a "/*" inside a line comment or a string
	// never opens a block comment.
	commentOrString = regexp.MustCompile(`(?s)"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'|//[^\n]*|/\*.*?\*/`)
	pragmaPattern   = regexp.MustCompile(`pragma\s+solidity\s+([^;]+);`)
)

// ParsePragmas returns every "pragma solidity" expression in a source file
func ParsePragmas(src string) []string {
	src = stripComments(src)

	var exprs []string
	for _, m := range pragmaPattern.FindAllStringSubmatch(src, -1) {
		exprs = append(exprs, strings.TrimSpace(m[1]))
	}
	return exprs
}

// stripComments blanks out comments in a single left-to-right pass,
// leaving string literals untouched
func stripComments(src string) string {
	return commentOrString.ReplaceAllStringFunc(src, func(m string) string {
		if strings.HasPrefix(m, "//") || strings.HasPrefix(m, "/*") {
			return " "
		}
		return m
	})
}

// SourceConstraint combines all version pragmas of a source file. A file
// without a pragma accepts any compiler.
func SourceConstraint(src string) (Constraint, error) {
	exprs := ParsePragmas(src)
	if len(exprs) == 0 {
		return Any, nil
	}

	c, err := ParseConstraint(exprs[0])
	if err != nil {
		return Constraint{}, err
	}
	for _, expr := range exprs[1:] {
		next, err := ParseConstraint(expr)
		if err != nil {
			return Constraint{}, err
		}
		c = c.And(next)
	}
	return c, nil
}
