package pathenv

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/OpenGG/jdksw/internal/jdksw/domain"
)

// MergeResult describes the search path produced by Merge.
type MergeResult struct {
	Path     SearchPath
	Target   string
	Active   string
	Replaced []int
	Appended bool
}

// Merger rewrites a search path so that a JDK's bin directory becomes active.
type Merger struct {
	expander Expander
	locator  Locator
	logger   zerolog.Logger
}

// NewMerger wires a Merger from its collaborators.
func NewMerger(expander Expander, locator Locator, logger zerolog.Logger) *Merger {
	return &Merger{expander: expander, locator: locator, logger: logger}
}

// Merge computes the new search path for installRoot.
//
// Segments are expanded and handed to the locator. Matching uses the same
// cleaned segment the locator resolves (see CleanSegment); the raw segment
// at a matching index is what gets replaced. When no launcher is found
// the JDK bin directory is appended. When one is found, every segment whose
// expanded value is contained in the launcher path is rewritten to the JDK bin
// directory. All matches are replaced, not only the first. When the launcher
// was found but no segment matches it, the bin directory is appended.
//
// installRoot must be non-empty; Merge does not check it.
func (m *Merger) Merge(current SearchPath, installRoot string) MergeResult {
	target := JdkBinDir(installRoot)
	result := MergeResult{Path: current.Clone(), Target: target}

	expanded := make([]string, len(current))
	for i, segment := range current {
		expanded[i] = m.expander.Expand(segment)
	}

	active, err := m.locator.Locate(expanded)
	if err != nil {
		if !errors.Is(err, domain.ErrActiveJdkNotFound) {
			m.logger.Warn().Err(err).Msg("launcher lookup failed, treating as not found")
		}
		m.logger.Debug().Str("target", target).Msg("no active jdk, appending bin directory")
		result.Path = append(result.Path, target)
		result.Appended = true
		return result
	}

	result.Active = active
	for i, segment := range expanded {
		dir := CleanSegment(segment)
		if dir == "" {
			continue
		}
		if strings.Contains(active, dir) {
			result.Path[i] = target
			result.Replaced = append(result.Replaced, i)
		}
	}

	if len(result.Replaced) == 0 {
		m.logger.Warn().
			Str("active", active).
			Str("target", target).
			Msg("active launcher matched no segment, appending bin directory")
		result.Path = append(result.Path, target)
		result.Appended = true
		return result
	}

	m.logger.Debug().
		Str("active", active).
		Str("target", target).
		Ints("replaced", result.Replaced).
		Msg("replaced active jdk segments")
	return result
}
