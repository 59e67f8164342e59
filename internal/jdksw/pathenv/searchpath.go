// Package pathenv reads, expands and rewrites the machine search path.
package pathenv

import "strings"

// Separator delimits segments in the raw search path value.
const Separator = ";"

// SearchPath is the ordered list of raw search path segments. Order is
// significant: the first segment holding a launcher wins.
type SearchPath []string

// ParseSearchPath splits a raw value into segments. Empty segments are kept
// so that writing the result back reproduces the input exactly.
func ParseSearchPath(raw string) SearchPath {
	if raw == "" {
		return SearchPath{}
	}
	return SearchPath(strings.Split(raw, Separator))
}

// String joins the segments into the raw external representation.
func (p SearchPath) String() string {
	return strings.Join(p, Separator)
}

// Clone returns a copy that can be modified independently.
func (p SearchPath) Clone() SearchPath {
	out := make(SearchPath, len(p))
	copy(out, p)
	return out
}

// CleanSegment returns the directory a segment names: surrounding blanks
// are dropped and one pair of enclosing double quotes is removed, as Windows
// does when resolving commands.
func CleanSegment(segment string) string {
	cleaned := strings.TrimSpace(segment)
	if len(cleaned) >= 2 && cleaned[0] == '"' && cleaned[len(cleaned)-1] == '"' {
		cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
	}
	return cleaned
}

// JdkBinDir returns the launcher directory of a JDK install root. Windows
// separators are used unless the root is written with forward slashes only.
func JdkBinDir(installRoot string) string {
	return joinPath(installRoot, "bin")
}

func joinPath(dir, elem string) string {
	sep := `\`
	if strings.Contains(dir, "/") && !strings.Contains(dir, `\`) {
		sep = "/"
	}
	trimmed := strings.TrimRight(dir, `\/`)
	if trimmed == "" && strings.HasPrefix(dir, "/") {
		return "/" + elem
	}
	return trimmed + sep + elem
}
