package pathenv

import (
	"runtime"

	"github.com/spf13/afero"

	"github.com/OpenGG/jdksw/internal/jdksw/domain"
)

// LauncherName is the executable that identifies the active JDK.
const LauncherName = "java"

// Locator resolves which launcher the OS would run for the given, already
// expanded, search path segments.
type Locator interface {
	Locate(segments []string) (string, error)
}

// ExecutableLocator walks the segments in order, the way the OS resolves a
// bare command name, and reports the first launcher file it finds.
type ExecutableLocator struct {
	fs         afero.Fs
	name       string
	extensions []string
}

// NewExecutableLocator creates a locator for name. With no extensions the
// platform defaults are used (.exe, .cmd and .bat on Windows).
func NewExecutableLocator(fs afero.Fs, name string, extensions ...string) *ExecutableLocator {
	if len(extensions) == 0 {
		extensions = defaultExtensions()
	}
	return &ExecutableLocator{fs: fs, name: name, extensions: extensions}
}

// Locate returns the absolute launcher path, or domain.ErrActiveJdkNotFound.
func (l *ExecutableLocator) Locate(segments []string) (string, error) {
	for _, segment := range segments {
		dir := CleanSegment(segment)
		if dir == "" {
			continue
		}
		for _, ext := range l.extensions {
			candidate := joinPath(dir, l.name+ext)
			info, err := l.fs.Stat(candidate)
			if err != nil {
				continue
			}
			if info.Mode().IsRegular() {
				return candidate, nil
			}
		}
	}
	return "", domain.ErrActiveJdkNotFound
}

func defaultExtensions() []string {
	if runtime.GOOS == "windows" {
		return []string{".exe", ".cmd", ".bat"}
	}
	return []string{""}
}
