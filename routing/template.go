package routing

import (
	"fmt"
	"strings"
)

// segmentKind classifies one /-delimited unit of a route template.
type segmentKind uint8

const (
	segmentLiteral segmentKind = iota
	segmentParam
	segmentCatchAll
)

// Specificity ranks per segment kind, compared lexicographically across a
// template when several templates match the same path. Higher wins.
const (
	rankCatchAll uint8 = iota
	rankParam
	rankConstrained
	rankLiteral
)

// segment is one parsed unit of a route template.
type segment struct {
	kind segmentKind

	// literal is the exact text for segmentLiteral.
	literal string

	// name is the variable name for segmentParam and segmentCatchAll.
	name string

	// constraint validates and converts the variable, segmentParam only.
	// constraintSpec keeps the raw expression (e.g. "range(1,10)") for
	// structural route comparison and introspection.
	constraint     Constraint
	constraintSpec string

	// optional marks {name?} parameters and {*name?} catch-alls.
	optional bool
}

// rank returns the specificity rank of the segment.
func (s *segment) rank() uint8 {
	switch s.kind {
	case segmentLiteral:
		return rankLiteral
	case segmentCatchAll:
		return rankCatchAll
	default:
		if s.constraint != nil {
			return rankConstrained
		}
		return rankParam
	}
}

// structuralEqual reports whether two segments are interchangeable for route
// identity: same kind, literal text, constraint expression and optional flag.
// Variable names do not participate: two templates that differ only in
// variable naming match exactly the same set of paths.
func (s *segment) structuralEqual(o *segment) bool {
	return s.kind == o.kind &&
		s.literal == o.literal &&
		s.constraintSpec == o.constraintSpec &&
		s.optional == o.optional
}

// parseTemplate compiles a route pattern into its segment sequence.
//
// Grammar per segment:
//
//	literal          plain text, no braces
//	{name}           required variable
//	{name?}          optional variable, meaningful on the last segment
//	{name:spec}      constrained variable, spec is a registered constraint
//	{name:spec(a)}   constrained variable with argument
//	{*name}          catch-all, must be the last segment
//	{*name?}         catch-all that may bind the empty remainder
//
// The empty pattern and "/" compile to an empty segment sequence.
func parseTemplate(pattern string) ([]segment, error) {
	if pattern == "" || pattern[0] != '/' {
		return nil, fmt.Errorf("%w: %q must begin with a slash", ErrInvalidPattern, pattern)
	}

	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return nil, nil
	}

	parts := strings.Split(trimmed, "/")
	segments := make([]segment, 0, len(parts))
	names := make(map[string]struct{}, len(parts))

	for i, part := range parts {
		seg, err := parseSegment(part, pattern)
		if err != nil {
			return nil, err
		}

		if seg.kind == segmentCatchAll && i != len(parts)-1 {
			return nil, fmt.Errorf("%w: catch-all {*%s} must be the last segment of %q", ErrInvalidPattern, seg.name, pattern)
		}

		if seg.kind != segmentLiteral {
			if _, dup := names[seg.name]; dup {
				return nil, fmt.Errorf("%w: duplicated variable %q in %q", ErrInvalidPattern, seg.name, pattern)
			}
			names[seg.name] = struct{}{}
		}

		segments = append(segments, seg)
	}

	return segments, nil
}

// parseSegment compiles a single /-delimited template part.
func parseSegment(part, pattern string) (segment, error) {
	if part == "" {
		return segment{}, fmt.Errorf("%w: empty segment in %q", ErrInvalidPattern, pattern)
	}

	// A part containing a brace must be exactly one {...} expression.
	// Mixed literal/variable segments are not supported.
	if !strings.ContainsAny(part, "{}") {
		return segment{kind: segmentLiteral, literal: part}, nil
	}

	if len(part) < 2 || part[0] != '{' || part[len(part)-1] != '}' ||
		strings.ContainsAny(part[1:len(part)-1], "{}") {
		return segment{}, fmt.Errorf("%w: unbalanced braces in %q", ErrInvalidPattern, pattern)
	}

	expr := part[1 : len(part)-1]
	seg := segment{kind: segmentParam}

	if rest, ok := strings.CutPrefix(expr, "*"); ok {
		seg.kind = segmentCatchAll
		expr = rest
	}

	if rest, ok := strings.CutSuffix(expr, "?"); ok {
		seg.optional = true
		expr = rest
	}

	if name, spec, ok := strings.Cut(expr, ":"); ok {
		if seg.kind == segmentCatchAll {
			return segment{}, fmt.Errorf("%w: catch-all {*%s} cannot have a constraint in %q", ErrInvalidPattern, name, pattern)
		}

		c, err := buildConstraint(spec)
		if err != nil {
			return segment{}, fmt.Errorf("%w (in %q)", err, pattern)
		}

		seg.constraint = c
		seg.constraintSpec = spec
		expr = name
	}

	if err := checkVarName(expr); err != nil {
		return segment{}, fmt.Errorf("%w: %v in %q", ErrInvalidPattern, err, pattern)
	}
	seg.name = expr

	return seg, nil
}

// checkVarName validates a template variable name: a non-empty run of ASCII
// letters, digits and underscores, starting with a letter or underscore.
func checkVarName(name string) error {
	if name == "" {
		return fmt.Errorf("missing variable name")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return fmt.Errorf("variable name %q must not start with a digit", name)
			}
		default:
			return fmt.Errorf("invalid character %q in variable name %q", c, name)
		}
	}
	return nil
}
