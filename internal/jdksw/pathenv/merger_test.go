package pathenv

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenGG/jdksw/internal/jdksw/domain"
)

// fakeLocator returns the first segment containing a marker as the active
// launcher, mimicking a filesystem walk without touching disk.
type fakeLocator struct {
	marker string
	calls  [][]string
}

func (f *fakeLocator) Locate(segments []string) (string, error) {
	f.calls = append(f.calls, append([]string(nil), segments...))
	for _, s := range segments {
		if f.marker != "" && strings.Contains(s, f.marker) {
			return strings.TrimRight(s, `\`) + `\java.exe`, nil
		}
	}
	return "", domain.ErrActiveJdkNotFound
}

func newTestMerger(env MapEnvironment, locator Locator) *Merger {
	return NewMerger(NewEnvExpander(env), locator, zerolog.Nop())
}

func TestMerge_NotFoundAppendsAndPreservesOrder(t *testing.T) {
	merger := newTestMerger(nil, &fakeLocator{})
	current := SearchPath{`C:\a`, `C:\b`, `C:\c`}

	result := merger.Merge(current, `C:\jdk-17`)

	assert.Equal(t, SearchPath{`C:\a`, `C:\b`, `C:\c`, `C:\jdk-17\bin`}, result.Path)
	assert.True(t, result.Appended)
	assert.Empty(t, result.Replaced)
	assert.Empty(t, result.Active)
	assert.Equal(t, SearchPath{`C:\a`, `C:\b`, `C:\c`}, current, "input must not be modified")
}

func TestMerge_FoundReplacesSegmentInPlace(t *testing.T) {
	locator := &fakeLocator{marker: "jdk-11"}
	merger := newTestMerger(nil, locator)
	current := SearchPath{`C:\Windows`, `C:\jdk-11\bin`, `C:\tools`}

	result := merger.Merge(current, `C:\jdk-17`)

	assert.Equal(t, SearchPath{`C:\Windows`, `C:\jdk-17\bin`, `C:\tools`}, result.Path)
	assert.Equal(t, []int{1}, result.Replaced)
	assert.False(t, result.Appended)
	assert.Equal(t, `C:\jdk-11\bin\java.exe`, result.Active)
}

func TestMerge_MatchesOnExpandedValueKeepsOthersRaw(t *testing.T) {
	env := MapEnvironment{"JAVA_HOME": `C:\jdk-11`, "SystemRoot": `C:\Windows`}
	locator := &fakeLocator{marker: "jdk-11"}
	merger := newTestMerger(env, locator)
	current := SearchPath{`%SystemRoot%\system32`, `%JAVA_HOME%\bin`, `%USERPROFILE%\bin`}

	result := merger.Merge(current, `D:\java\jdk-21`)

	assert.Equal(t, SearchPath{`%SystemRoot%\system32`, `D:\java\jdk-21\bin`, `%USERPROFILE%\bin`}, result.Path)
	require.Len(t, locator.calls, 1)
	assert.Equal(t, []string{`C:\Windows\system32`, `C:\jdk-11\bin`, `%USERPROFILE%\bin`}, locator.calls[0])
}

func TestMerge_ReplacesEveryMatchingSegment(t *testing.T) {
	// C:\jdk and C:\jdk\bin are both substrings of C:\jdk\bin\java.exe.
	locator := &fakeLocator{marker: `C:\jdk\bin`}
	merger := newTestMerger(nil, locator)
	current := SearchPath{`C:\jdk`, `C:\other`, `C:\jdk\bin`}

	result := merger.Merge(current, `C:\jdk-17`)

	assert.Equal(t, SearchPath{`C:\jdk-17\bin`, `C:\other`, `C:\jdk-17\bin`}, result.Path)
	assert.Equal(t, []int{0, 2}, result.Replaced)
	assert.Len(t, result.Path, len(current))
}

func TestMerge_IgnoresEmptySegments(t *testing.T) {
	locator := &fakeLocator{marker: "jdk-11"}
	merger := newTestMerger(nil, locator)
	current := SearchPath{`C:\jdk-11\bin`, "", `C:\x`, ""}

	result := merger.Merge(current, `C:\jdk-17`)

	assert.Equal(t, SearchPath{`C:\jdk-17\bin`, "", `C:\x`, ""}, result.Path)
}

func TestMerge_FoundWithoutMatchingSegmentAppends(t *testing.T) {
	locator := locatorFunc(func([]string) (string, error) { return `Z:\elsewhere\java.exe`, nil })
	merger := newTestMerger(nil, locator)

	result := merger.Merge(SearchPath{`C:\a`}, `C:\jdk-17`)

	assert.Equal(t, SearchPath{`C:\a`, `C:\jdk-17\bin`}, result.Path)
	assert.True(t, result.Appended)
}

func TestMerge_IdempotentReplacement(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeLauncher(t, fs, "/opt/jdk-11/bin/java")
	writeLauncher(t, fs, "/opt/jdk-17/bin/java")
	merger := newTestMerger(nil, NewExecutableLocator(fs, LauncherName, ""))
	current := SearchPath{"/usr/bin", "/opt/jdk-11/bin", "/sbin"}

	first := merger.Merge(current, "/opt/jdk-17")
	second := merger.Merge(first.Path, "/opt/jdk-17")

	want := SearchPath{"/usr/bin", "/opt/jdk-17/bin", "/sbin"}
	assert.Equal(t, want, first.Path)
	assert.Equal(t, want, second.Path)
	assert.Equal(t, []int{1}, second.Replaced)
	assert.False(t, second.Appended)
}

func TestMerge_EmptyInstallRootRunsMechanically(t *testing.T) {
	merger := newTestMerger(nil, &fakeLocator{})

	result := merger.Merge(SearchPath{`C:\a`}, "")

	assert.Equal(t, SearchPath{`C:\a`, `\bin`}, result.Path)
}

type locatorFunc func([]string) (string, error)

func (f locatorFunc) Locate(segments []string) (string, error) { return f(segments) }

func TestMerge_PaddedActiveSegmentIsReplaced(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeLauncher(t, fs, "/opt/jdk-11/bin/java")
	merger := newTestMerger(nil, NewExecutableLocator(fs, LauncherName, ""))

	result := merger.Merge(SearchPath{"/usr/bin", "/opt/jdk-11/bin ", "/sbin"}, "/opt/jdk-17")

	assert.Equal(t, SearchPath{"/usr/bin", "/opt/jdk-17/bin", "/sbin"}, result.Path)
	assert.Equal(t, "/opt/jdk-11/bin/java", result.Active)
	assert.Equal(t, []int{1}, result.Replaced)
	assert.False(t, result.Appended)
}

func TestMerge_QuotedActiveSegmentIsReplaced(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeLauncher(t, fs, "/Program Files/Java/jdk-11/bin/java")
	env := MapEnvironment{"ProgramFiles": "/Program Files"}
	merger := newTestMerger(env, NewExecutableLocator(fs, LauncherName, ""))
	current := SearchPath{"/usr/bin", `"%ProgramFiles%/Java/jdk-11/bin"`}

	result := merger.Merge(current, "/opt/jdk-17")

	assert.Equal(t, SearchPath{"/usr/bin", "/opt/jdk-17/bin"}, result.Path)
	assert.Equal(t, []int{1}, result.Replaced)
	assert.False(t, result.Appended)
}
