package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// comparator is a single bound on a full version, e.g. ">= v0.8.0"
type comparator struct {
	op      string
	version string // canonical "vX.Y.Z"
}

func (c comparator) matches(v string) bool {
	cmp := semver.Compare(v, c.version)
	switch c.op {
	case "=":
		return cmp == 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	}
	return false
}

// Constraint is a solidity version requirement: a disjunction of
// conjunctions of comparators
type Constraint struct {
	raw  string
	sets [][]comparator
}

// Any matches every version
var Any = Constraint{raw: "*", sets: [][]comparator{{}}}

func (c Constraint) String() string {
	return c.raw
}

// Check reports whether a X.Y.Z version satisfies the constraint
func (c Constraint) Check(version string) bool {
	v := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(v) {
		return false
	}
	for _, set := range c.sets {
		ok := true
		for _, cmp := range set {
			if !cmp.matches(v) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// And returns a constraint satisfied only when both are
func (c Constraint) And(other Constraint) Constraint {
	var sets [][]comparator
	for _, a := range c.sets {
		for _, b := range other.sets {
			merged := make([]comparator, 0, len(a)+len(b))
			merged = append(merged, a...)
			merged = append(merged, b...)
			sets = append(sets, merged)
		}
	}
	return Constraint{raw: c.raw + " " + other.raw, sets: sets}
}

// ParseConstraint parses a version expression as written after
// "pragma solidity", e.g. "^0.8.0", ">=0.6.0 <0.9.0" or "0.7.0 || ^0.8.0".
func ParseConstraint(expr string) (Constraint, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Any, nil
	}

	c := Constraint{raw: expr}
	for _, part := range strings.Split(expr, "||") {
		set, err := parseRange(part)
		if err != nil {
			return Constraint{}, fmt.Errorf("invalid version constraint %q: %w", expr, err)
		}
		c.sets = append(c.sets, set)
	}
	return c, nil
}

func parseRange(part string) ([]comparator, error) {
	fields := strings.Fields(part)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty range")
	}

	// hyphen range: "0.6.0 - 0.8.x"
	if len(fields) == 3 && fields[1] == "-" {
		lo, err := parsePartial(fields[0])
		if err != nil {
			return nil, err
		}
		hi, err := parsePartial(fields[2])
		if err != nil {
			return nil, err
		}
		return append(expand(">=", lo), expand("<=", hi)...), nil
	}

	// glue operators written apart from their version: ">= 0.6.0"
	var tokens []string
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if isOperator(f) {
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("operator %q without version", f)
			}
			f += fields[i+1]
			i++
		}
		tokens = append(tokens, f)
	}

	var set []comparator
	for _, tok := range tokens {
		op, rest := splitOperator(tok)
		p, err := parsePartial(rest)
		if err != nil {
			return nil, err
		}
		set = append(set, expand(op, p)...)
	}
	return set, nil
}

func isOperator(s string) bool {
	switch s {
	case "^", "~", "=", ">", ">=", "<", "<=":
		return true
	}
	return false
}

func splitOperator(tok string) (string, string) {
	for _, op := range []string{">=", "<=", "^", "~", "=", ">", "<"} {
		if strings.HasPrefix(tok, op) {
			return op, strings.TrimSpace(tok[len(op):])
		}
	}
	return "", tok
}

// partial is a possibly incomplete version; n counts the given components
type partial struct {
	major, minor, patch int
	n                   int
}

func (p partial) full() string {
	return fmt.Sprintf("v%d.%d.%d", p.major, p.minor, p.patch)
}

func parsePartial(s string) (partial, error) {
	s = strings.TrimPrefix(s, "v")
	if s == "" || s == "*" || s == "x" || s == "X" {
		return partial{}, nil
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return partial{}, fmt.Errorf("malformed version %q", s)
	}
	var p partial
	nums := []*int{&p.major, &p.minor, &p.patch}
	for i, part := range parts {
		if part == "*" || part == "x" || part == "X" {
			break
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return partial{}, fmt.Errorf("malformed version %q", s)
		}
		*nums[i] = v
		p.n = i + 1
	}
	return p, nil
}

// expand turns an operator on a partial version into plain comparators
func expand(op string, p partial) []comparator {
	if p.n == 0 {
		switch op {
		case "<", ">":
			// "<*" and ">*" can never match
			return []comparator{{">", "v0.0.0"}, {"<", "v0.0.0"}}
		}
		return nil
	}

	lower := comparator{">=", p.full()}
	switch op {
	case "", "=":
		if p.n == 3 {
			return []comparator{{"=", p.full()}}
		}
		return []comparator{lower, {"<", bump(p, p.n-1)}}
	case "^":
		// bump the first non-zero given component
		idx := p.n - 1
		switch {
		case p.major > 0 || p.n == 1:
			idx = 0
		case p.minor > 0 || p.n == 2:
			idx = 1
		}
		return []comparator{lower, {"<", bump(p, idx)}}
	case "~":
		idx := 1
		if p.n == 1 {
			idx = 0
		}
		return []comparator{lower, {"<", bump(p, idx)}}
	case ">=":
		return []comparator{lower}
	case ">":
		if p.n == 3 {
			return []comparator{{">", p.full()}}
		}
		return []comparator{{">=", bump(p, p.n-1)}}
	case "<":
		return []comparator{{"<", p.full()}}
	case "<=":
		if p.n == 3 {
			return []comparator{{"<=", p.full()}}
		}
		return []comparator{{"<", bump(p, p.n-1)}}
	}
	return nil
}

// bump increments component idx and zeroes the ones after it
func bump(p partial, idx int) string {
	switch idx {
	case 0:
		return fmt.Sprintf("v%d.0.0", p.major+1)
	case 1:
		return fmt.Sprintf("v%d.%d.0", p.major, p.minor+1)
	default:
		return fmt.Sprintf("v%d.%d.%d", p.major, p.minor, p.patch+1)
	}
}
