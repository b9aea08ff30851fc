// Package version implements semantic version parsing, rendering, and
// bump-scheme arithmetic for release tags.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Scheme selects which component of a semantic version to increment,
// or declines to release at all.
type Scheme string

const (
	Major     Scheme = "major"
	Minor     Scheme = "minor"
	Patch     Scheme = "patch"
	NoRelease Scheme = "norelease"
)

// Schemes lists every recognized bump scheme.
var Schemes = []Scheme{Major, Minor, Patch, NoRelease}

// ParseScheme validates a configured bump scheme value.
func ParseScheme(s string) (Scheme, error) {
	switch scheme := Scheme(strings.ToLower(strings.TrimSpace(s))); scheme {
	case Major, Minor, Patch, NoRelease:
		return scheme, nil
	default:
		return "", fmt.Errorf("invalid bump scheme: %q (expected one of %v)", s, Schemes)
	}
}

// Bump returns a new version with the scheme's component incremented.
// Lower-order components reset to zero per semver; the receiver is
// never mutated. Bumping with NoRelease is a programming error.
func Bump(v *semver.Version, scheme Scheme) (*semver.Version, error) {
	if v == nil {
		v = semver.New(0, 0, 0, "", "")
	}

	switch scheme {
	case Major:
		next := v.IncMajor()
		return &next, nil
	case Minor:
		next := v.IncMinor()
		return &next, nil
	case Patch:
		next := v.IncPatch()
		return &next, nil
	default:
		return nil, fmt.Errorf("cannot bump version with scheme %q", scheme)
	}
}

// Format renders a version as a tag name with the given prefix.
func Format(prefix string, v *semver.Version) string {
	return fmt.Sprintf("%s%d.%d.%d", prefix, v.Major(), v.Minor(), v.Patch())
}

// ParseTag parses a tag name back into a version. The prefix must match
// exactly and the remainder must be three dot-separated non-negative
// integers; anything else is an explicit error so that an ambiguous
// existing tag is never mistaken for version zero.
func ParseTag(prefix, tag string) (*semver.Version, error) {
	rest, ok := strings.CutPrefix(tag, prefix)
	if !ok {
		return nil, fmt.Errorf("tag %q does not start with prefix %q", tag, prefix)
	}

	v, err := semver.StrictNewVersion(rest)
	if err != nil {
		return nil, fmt.Errorf("tag %q is not a valid %smajor.minor.patch version: %w", tag, prefix, err)
	}

	if v.Prerelease() != "" || v.Metadata() != "" {
		return nil, fmt.Errorf("tag %q carries a pre-release or build suffix", tag)
	}

	return v, nil
}
