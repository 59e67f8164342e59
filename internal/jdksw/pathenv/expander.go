package pathenv

import (
	"os"
	"strings"
)

// EnvironmentResolver looks up environment variables by name.
type EnvironmentResolver interface {
	LookupEnv(name string) (string, bool)
}

// OSEnvironment resolves variables from the process environment.
type OSEnvironment struct{}

// LookupEnv implements EnvironmentResolver.
func (OSEnvironment) LookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapEnvironment is a fixed variable table. Names match case-insensitively,
// the way Windows resolves them.
type MapEnvironment map[string]string

// LookupEnv implements EnvironmentResolver.
func (m MapEnvironment) LookupEnv(name string) (string, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// Expander substitutes environment references inside a single segment.
// Expansion is best effort: an implementation that cannot expand returns the
// segment unchanged instead of failing.
type Expander interface {
	Expand(segment string) string
}

// EnvExpander expands %NAME% references using an EnvironmentResolver.
type EnvExpander struct {
	env EnvironmentResolver
}

// NewEnvExpander creates an EnvExpander. A nil resolver reads the process
// environment.
func NewEnvExpander(env EnvironmentResolver) *EnvExpander {
	if env == nil {
		env = OSEnvironment{}
	}
	return &EnvExpander{env: env}
}

// Expand replaces every %NAME% with its value. Unknown names and unmatched
// percent signs are copied through literally. An empty result counts as a
// failed expansion and yields the original segment.
func (e *EnvExpander) Expand(segment string) string {
	if !strings.Contains(segment, "%") {
		return segment
	}
	expanded := expandPercent(segment, e.env.LookupEnv)
	if expanded == "" {
		return segment
	}
	return expanded
}

func expandPercent(s string, lookup func(string) (string, bool)) string {
	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		rest := s[start+1:]
		end := strings.IndexByte(rest, '%')
		if end < 0 {
			b.WriteString(s[start:])
			return b.String()
		}
		name := rest[:end]
		if value, ok := lookup(name); ok && name != "" {
			b.WriteString(value)
			s = rest[end+1:]
			continue
		}
		// The closing percent may open the next reference.
		b.WriteByte('%')
		b.WriteString(name)
		s = rest[end:]
	}
}
