package routing

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinConstraints(t *testing.T) {
	tests := []struct {
		spec   string
		accept []string
		reject []string
	}{
		{"int", []string{"0", "42", "-7", "2147483647"}, []string{"abc", "4.2", "", "2147483648"}},
		{"long", []string{"9223372036854775807", "-1"}, []string{"9223372036854775808", "x"}},
		{"bool", []string{"true", "False", "TRUE"}, []string{"1", "0", "yes"}},
		{"float", []string{"3.14", "42", "-0.5", "1e3"}, []string{"abc", ""}},
		{"double", []string{"2.718"}, []string{"two"}},
		{"decimal", []string{"10.50"}, []string{"$10"}},
		{"guid", []string{"550e8400-e29b-41d4-a716-446655440000"}, []string{"550e8400", "not-a-guid"}},
		{"uuid", []string{"550E8400-E29B-41D4-A716-446655440000"}, []string{"zzze8400-e29b-41d4-a716-446655440000"}},
		{"alpha", []string{"hello", "ABC"}, []string{"abc123", "", "a-b"}},
		{"hex", []string{"deadBEEF", "0123"}, []string{"xyz", ""}},
		{"slug", []string{"my-post-title", "a1"}, []string{"-lead", "trail-", "a--b"}},
		{"datetime", []string{"2024-01-15T10:30:00Z"}, []string{"2024-01-15", "now"}},
		{"date", []string{"2024-01-15"}, []string{"2024-1-5", "15-01-2024"}},
		{"min(10)", []string{"10", "99"}, []string{"9", "abc"}},
		{"max(10)", []string{"10", "-5"}, []string{"11"}},
		{"range(1,12)", []string{"1", "12", "6"}, []string{"0", "13", "x"}},
		{"minlength(3)", []string{"abc", "abcd"}, []string{"ab"}},
		{"maxlength(3)", []string{"", "abc"}, []string{"abcd"}},
		{"length(2)", []string{"ab"}, []string{"a", "abc"}},
		{"regex([a-z]{2}-[0-9]+)", []string{"us-42"}, []string{"US-42", "us-"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, err := buildConstraint(tt.spec)
			require.NoError(t, err)

			for _, raw := range tt.accept {
				_, ok := c.Match(raw)
				assert.True(t, ok, "expected %q to satisfy %s", raw, tt.spec)
			}
			for _, raw := range tt.reject {
				_, ok := c.Match(raw)
				assert.False(t, ok, "expected %q to fail %s", raw, tt.spec)
			}
		})
	}
}

func TestConstraintConversion(t *testing.T) {
	t.Run("int converts", func(t *testing.T) {
		c, err := buildConstraint("int")
		require.NoError(t, err)

		v, ok := c.Match("42")
		require.True(t, ok)
		assert.Equal(t, KindInt, v.Kind())
		assert.Equal(t, "42", v.String())

		i, ok := v.Int()
		require.True(t, ok)
		assert.Equal(t, int64(42), i)
	})

	t.Run("bool converts", func(t *testing.T) {
		c, err := buildConstraint("bool")
		require.NoError(t, err)

		v, ok := c.Match("True")
		require.True(t, ok)
		b, ok := v.Bool()
		require.True(t, ok)
		assert.True(t, b)
	})

	t.Run("guid converts", func(t *testing.T) {
		c, err := buildConstraint("guid")
		require.NoError(t, err)

		raw := "550e8400-e29b-41d4-a716-446655440000"
		v, ok := c.Match(raw)
		require.True(t, ok)

		u, ok := v.UUID()
		require.True(t, ok)
		assert.Equal(t, uuid.MustParse(raw), u)
		assert.Equal(t, raw, v.String())
	})

	t.Run("date converts", func(t *testing.T) {
		c, err := buildConstraint("date")
		require.NoError(t, err)

		v, ok := c.Match("2024-01-15")
		require.True(t, ok)
		ts, ok := v.Time()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), ts)
	})

	t.Run("range converts", func(t *testing.T) {
		c, err := buildConstraint("range(1,12)")
		require.NoError(t, err)

		v, ok := c.Match("7")
		require.True(t, ok)
		i, ok := v.Int()
		require.True(t, ok)
		assert.Equal(t, int64(7), i)
	})

	t.Run("text constraints keep string kind", func(t *testing.T) {
		c, err := buildConstraint("minlength(2)")
		require.NoError(t, err)

		v, ok := c.Match("abc")
		require.True(t, ok)
		assert.Equal(t, KindString, v.Kind())
	})
}

func TestBuildConstraintErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"unknown name", "nope"},
		{"argument on no-arg constraint", "int(5)"},
		{"missing argument", "minlength"},
		{"non-integer argument", "minlength(abc)"},
		{"range single argument", "range(5)"},
		{"range inverted bounds", "range(10,1)"},
		{"regex missing pattern", "regex"},
		{"regex invalid pattern", "regex([)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildConstraint(tt.spec)
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}
}

func TestRegisterConstraint(t *testing.T) {
	t.Run("custom constraint usable in templates", func(t *testing.T) {
		err := RegisterConstraint("even", func(arg string) (Constraint, error) {
			return &funcConstraint{name: "even", match: func(raw string) (Value, bool) {
				v, ok := matchInt64(raw)
				if !ok {
					return Value{}, false
				}
				i, _ := v.Int()
				if i%2 != 0 {
					return Value{}, false
				}
				return v, true
			}}, nil
		})
		require.NoError(t, err)

		c, err := buildConstraint("even")
		require.NoError(t, err)

		_, ok := c.Match("4")
		assert.True(t, ok)
		_, ok = c.Match("5")
		assert.False(t, ok)
	})

	t.Run("rejects replacing a built-in", func(t *testing.T) {
		err := RegisterConstraint("int", func(string) (Constraint, error) { return nil, nil })
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "already registered"))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		err := RegisterConstraint("", func(string) (Constraint, error) { return nil, nil })
		assert.Error(t, err)
	})
}
