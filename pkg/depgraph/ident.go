package depgraph

import (
	"regexp"
	"strings"
)

// DefaultHostPrefix is the well-known hosting prefix stripped when building
// display labels. Callers can override it per invocation, e.g. for modules
// hosted on an internal forge.
const DefaultHostPrefix = "github.com/"

var (
	nonAlnum    = regexp.MustCompile(`[^A-Za-z0-9]`)
	nonAlnumRun = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// Normalize converts a raw module identifier into its normalized form by
// replacing every character outside [A-Za-z0-9] with an underscore.
//
// Normalization is total and deterministic. Distinct raw identifiers can
// collide ("a/b" and "a.b" both normalize to "a_b"); collisions are an
// accepted limitation and are not deduplicated at this stage.
func Normalize(raw string) string {
	return nonAlnum.ReplaceAllString(raw, "_")
}

// NormalizePrefix normalizes a package prefix for matching against
// normalized identifiers. A trailing path separator is dropped first so that
// "github.com/acme/" and "github.com/acme" match the same nodes.
func NormalizePrefix(prefix string) string {
	return Normalize(strings.TrimRight(prefix, "/"))
}

// Label is the human-facing breakdown of a raw module identifier into an
// organization segment, a project segment, and an optional version.
//
// For identifiers without a path separator after host-prefix stripping,
// Project is empty and Org holds the whole remainder. Consumers choose how
// to join the segments (newline, " | ", ...) - the core never pre-joins.
type Label struct {
	Org     string
	Project string
	Version string
}

// Simplify derives a [Label] from a raw identifier:
//
//  1. strip hostPrefix if the identifier starts with it,
//  2. strip everything from the first "@" onward (the version),
//  3. trim leading/trailing path separators,
//  4. split at the first remaining separator into organization and project.
//
// An empty hostPrefix disables step 1.
func Simplify(raw, hostPrefix string) Label {
	var l Label
	s := raw
	if hostPrefix != "" {
		s = strings.TrimPrefix(s, hostPrefix)
	}
	if i := strings.IndexByte(s, '@'); i >= 0 {
		l.Version = s[i+1:]
		s = s[:i]
	}
	s = strings.Trim(s, "/")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		l.Org = s[:i]
		l.Project = s[i+1:]
	} else {
		l.Org = s
	}
	return l
}

// Display joins the organization and project segments with sep. When the
// identifier had no project segment the single segment is returned as-is.
func (l Label) Display(sep string) string {
	if l.Project == "" {
		return l.Org
	}
	return l.Org + sep + l.Project
}

// ConsolidationKey derives the key under which nodes are merged into one
// logical component: the project segment (or the organization when no
// project exists) with every run of non-alphanumeric characters collapsed
// into a single underscore and leading/trailing underscores trimmed.
func (l Label) ConsolidationKey() string {
	s := l.Project
	if s == "" {
		s = l.Org
	}
	return strings.Trim(nonAlnumRun.ReplaceAllString(s, "_"), "_")
}

// ShortVersion returns at most the first ten characters of the version, the
// fragment used to annotate consolidated edges. Returns "" when the
// identifier carried no version.
func (l Label) ShortVersion() string {
	if len(l.Version) > 10 {
		return l.Version[:10]
	}
	return l.Version
}
