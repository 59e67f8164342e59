//go:build !windows

package pathenv

import "github.com/OpenGG/jdksw/internal/jdksw/storage"

// SystemRepository returns a file repository at fallbackPath; only Windows
// has a machine search path registry value.
func SystemRepository(s *storage.Storage, fallbackPath string) Repository {
	return NewFileRepository(s, fallbackPath)
}
