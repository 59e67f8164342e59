package domain

import (
	"errors"
	"fmt"
)

// Exported error variables allow callers to use errors.Is() for error checking.
var (
	ErrIndexOutOfRange     = errors.New("jdk index out of range")
	ErrEmptySnapshot       = errors.New("no search path backup has been taken")
	ErrLauncherProbe       = errors.New("failed to read jdk version")
	ErrActiveJdkNotFound   = errors.New("no java launcher found on the search path")
	ErrInstallRootEmpty    = errors.New("jdk path cannot be empty")
	ErrJdkNameEmpty        = errors.New("jdk name cannot be empty")
	ErrJdkNameNonPrintable = errors.New("jdk name contains non-printable characters")
	ErrConfigParse         = errors.New("failed to parse configuration")
)

// IndexOutOfRangeError reports an entry index together with the valid range.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("jdk index %d does not exist: no jdks are registered", e.Index)
	}
	return fmt.Sprintf("jdk index %d does not exist: valid range is 0-%d", e.Index, e.Len-1)
}

// Is lets errors.Is match against ErrIndexOutOfRange.
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
