//go:build !windows

package pathenv

// DefaultExpander returns the platform expander.
func DefaultExpander() Expander {
	return NewEnvExpander(OSEnvironment{})
}
