package routing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Constraint validates a raw path segment and, where applicable, converts it
// to a typed Value. Implementations must be safe for concurrent use: a single
// constraint instance is shared by every request resolving its route.
type Constraint interface {
	// Name returns the constraint name as written in the template,
	// without the argument list.
	Name() string

	// Match reports whether raw satisfies the constraint. On success it
	// returns the bound value, typed when the constraint converts.
	Match(raw string) (Value, bool)
}

// ConstraintBuilder creates a Constraint from the argument text inside the
// parentheses of a template expression. For argument-free constraints the
// builder receives an empty string.
type ConstraintBuilder func(arg string) (Constraint, error)

// constraintBuilders maps constraint names to their builders.
// Guarded by constraintMu: custom constraints may be registered from init
// functions in multiple packages.
var (
	constraintMu       sync.RWMutex
	constraintBuilders = map[string]ConstraintBuilder{
		"int":       noArg("int", matchInt32),
		"long":      noArg("long", matchInt64),
		"bool":      noArg("bool", matchBool),
		"float":     noArg("float", matchFloat),
		"double":    noArg("double", matchFloat),
		"decimal":   noArg("decimal", matchFloat),
		"guid":      noArg("guid", matchUUID),
		"uuid":      noArg("uuid", matchUUID),
		"alpha":     noArg("alpha", matchAlpha),
		"datetime":  noArg("datetime", matchDateTime),
		"date":      noArg("date", matchDate),
		"hex":       noArg("hex", matchHex),
		"slug":      noArg("slug", matchSlug),
		"min":       intArg("min", newMin),
		"max":       intArg("max", newMax),
		"range":     newRange,
		"minlength": intArg("minlength", newMinLength),
		"maxlength": intArg("maxlength", newMaxLength),
		"length":    intArg("length", newLength),
		"regex":     newRegex,
	}
)

// RegisterConstraint makes a custom constraint available to route templates
// under the given name. Registration must happen before any template using
// the name is registered; it is not possible to replace a built-in.
func RegisterConstraint(name string, builder ConstraintBuilder) error {
	if name == "" || builder == nil {
		return fmt.Errorf("%w: constraint name and builder must be non-empty", ErrInvalidPattern)
	}

	constraintMu.Lock()
	defer constraintMu.Unlock()

	if _, exists := constraintBuilders[name]; exists {
		return fmt.Errorf("%w: constraint %q is already registered", ErrInvalidPattern, name)
	}
	constraintBuilders[name] = builder

	return nil
}

// buildConstraint parses a constraint expression from a template, such as
// "int" or "range(1,10)", and returns the compiled constraint.
func buildConstraint(spec string) (Constraint, error) {
	name := spec
	arg := ""

	if open := strings.IndexByte(spec, '('); open != -1 {
		if !strings.HasSuffix(spec, ")") {
			return nil, fmt.Errorf("%w: unterminated constraint argument in %q", ErrInvalidPattern, spec)
		}
		name = spec[:open]
		arg = spec[open+1 : len(spec)-1]
	}

	constraintMu.RLock()
	builder, ok := constraintBuilders[name]
	constraintMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown constraint %q", ErrInvalidPattern, name)
	}

	c, err := builder(arg)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// funcConstraint adapts a plain match function to the Constraint interface.
type funcConstraint struct {
	name  string
	match func(string) (Value, bool)
}

func (c *funcConstraint) Name() string { return c.name }

func (c *funcConstraint) Match(raw string) (Value, bool) { return c.match(raw) }

// noArg returns a builder for a constraint that takes no argument.
func noArg(name string, match func(string) (Value, bool)) ConstraintBuilder {
	c := &funcConstraint{name: name, match: match}
	return func(arg string) (Constraint, error) {
		if arg != "" {
			return nil, fmt.Errorf("%w: constraint %q takes no argument", ErrInvalidPattern, name)
		}
		return c, nil
	}
}

// intArg returns a builder for a constraint with a single integer argument.
func intArg(name string, build func(n int64) Constraint) ConstraintBuilder {
	return func(arg string) (Constraint, error) {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: constraint %q requires an integer argument, got %q", ErrInvalidPattern, name, arg)
		}
		return build(n), nil
	}
}

// --- Converting constraints ---

func matchInt32(raw string) (Value, bool) {
	i, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return Value{}, false
	}
	return intValue(raw, i), true
}

func matchInt64(raw string) (Value, bool) {
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Value{}, false
	}
	return intValue(raw, i), true
}

func matchBool(raw string) (Value, bool) {
	// Only the spellings "true" and "false" (any case) are accepted, not
	// the 0/1/t/f forms of strconv.ParseBool.
	switch {
	case strings.EqualFold(raw, "true"):
		return boolValue(raw, true), true
	case strings.EqualFold(raw, "false"):
		return boolValue(raw, false), true
	default:
		return Value{}, false
	}
}

func matchFloat(raw string) (Value, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}, false
	}
	return floatValue(raw, f), true
}

func matchUUID(raw string) (Value, bool) {
	// RFC 9562 UUID in canonical 8-4-4-4-12 form.
	if len(raw) != 36 {
		return Value{}, false
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return Value{}, false
	}
	return uuidValue(raw, u), true
}

func matchDateTime(raw string) (Value, bool) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Value{}, false
	}
	return timeValue(raw, t), true
}

func matchDate(raw string) (Value, bool) {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return Value{}, false
	}
	return timeValue(raw, t), true
}

// --- Text constraints ---

func matchAlpha(raw string) (Value, bool) {
	if raw == "" {
		return Value{}, false
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return Value{}, false
		}
	}
	return stringValue(raw), true
}

func matchHex(raw string) (Value, bool) {
	if raw == "" {
		return Value{}, false
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return Value{}, false
		}
	}
	return stringValue(raw), true
}

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*$`)

func matchSlug(raw string) (Value, bool) {
	if !slugPattern.MatchString(raw) {
		return Value{}, false
	}
	return stringValue(raw), true
}

// --- Bounded constraints ---

// boundsConstraint validates a numeric segment against inclusive bounds and
// converts it to an integer value.
type boundsConstraint struct {
	name     string
	min, max int64
}

func newMin(n int64) Constraint {
	return &boundsConstraint{name: "min", min: n, max: 1<<63 - 1}
}

func newMax(n int64) Constraint {
	return &boundsConstraint{name: "max", min: -1 << 63, max: n}
}

func newRange(arg string) (Constraint, error) {
	lo, hi, ok := strings.Cut(arg, ",")
	if !ok {
		return nil, fmt.Errorf("%w: constraint \"range\" requires two integer arguments, got %q", ErrInvalidPattern, arg)
	}
	minV, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: constraint \"range\" requires integer arguments, got %q", ErrInvalidPattern, arg)
	}
	maxV, err := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: constraint \"range\" requires integer arguments, got %q", ErrInvalidPattern, arg)
	}
	if minV > maxV {
		return nil, fmt.Errorf("%w: constraint \"range\" lower bound exceeds upper bound in %q", ErrInvalidPattern, arg)
	}
	return &boundsConstraint{name: "range", min: minV, max: maxV}, nil
}

func (c *boundsConstraint) Name() string { return c.name }

func (c *boundsConstraint) Match(raw string) (Value, bool) {
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || i < c.min || i > c.max {
		return Value{}, false
	}
	return intValue(raw, i), true
}

// lengthConstraint validates the segment length in bytes.
type lengthConstraint struct {
	name     string
	min, max int
}

func newMinLength(n int64) Constraint {
	return &lengthConstraint{name: "minlength", min: int(n), max: int(^uint(0) >> 1)}
}

func newMaxLength(n int64) Constraint {
	return &lengthConstraint{name: "maxlength", min: 0, max: int(n)}
}

func newLength(n int64) Constraint {
	return &lengthConstraint{name: "length", min: int(n), max: int(n)}
}

func (c *lengthConstraint) Name() string { return c.name }

func (c *lengthConstraint) Match(raw string) (Value, bool) {
	if len(raw) < c.min || len(raw) > c.max {
		return Value{}, false
	}
	return stringValue(raw), true
}

// --- Regex constraint ---

// regexConstraint validates against a user-supplied anchored pattern.
type regexConstraint struct {
	re *regexp.Regexp
}

func newRegex(arg string) (Constraint, error) {
	if arg == "" {
		return nil, fmt.Errorf("%w: constraint \"regex\" requires a pattern argument", ErrInvalidPattern)
	}
	re, err := compileRegexp("^(?:" + arg + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: constraint \"regex\" pattern %q: %v", ErrInvalidPattern, arg, err)
	}
	return &regexConstraint{re: re}, nil
}

func (c *regexConstraint) Name() string { return "regex" }

func (c *regexConstraint) Match(raw string) (Value, bool) {
	if !c.re.MatchString(raw) {
		return Value{}, false
	}
	return stringValue(raw), true
}

// regexpCache caches compiled regular expressions by pattern string. The
// number of unique patterns is bounded by the number of registered routes,
// so the cache grows to a fixed size and stays there.
var regexpCache sync.Map

// compileRegexp returns a cached *regexp.Regexp for the given pattern,
// compiling and caching it on first use.
func compileRegexp(pattern string) (*regexp.Regexp, error) {
	if v, ok := regexpCache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := regexpCache.LoadOrStore(pattern, re)

	return actual.(*regexp.Regexp), nil
}
