//go:build windows

package pathenv

import "golang.org/x/sys/windows/registry"

// SystemExpander uses ExpandEnvironmentStrings against the live process
// environment.
type SystemExpander struct{}

// Expand implements Expander.
func (SystemExpander) Expand(segment string) string {
	expanded, err := registry.ExpandString(segment)
	if err != nil || expanded == "" {
		return segment
	}
	return expanded
}

// DefaultExpander returns the platform expander.
func DefaultExpander() Expander {
	return SystemExpander{}
}
