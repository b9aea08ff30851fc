package release

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ryclarke/release-tool/scm"
	"github.com/ryclarke/release-tool/version"
)

// Input collects everything the release decision depends on. It is
// assembled at the boundary so that Resolve stays a pure function.
type Input struct {
	Prior         *semver.Version // nil when no prior release exists
	DefaultScheme version.Scheme
	TagPrefix     string

	CommitTitle    string // title line of the triggering commit
	SkipMarker     string // inline marker suppressing the release
	NoReleaseLabel string // PR label suppressing the release

	PullRequest *scm.PullRequest // nil when the commit was pushed directly
}

// Decision is the outcome of version resolution: either skip the
// release with a reason, or publish the given next version.
type Decision struct {
	Skip   bool
	Reason string

	NextVersion *semver.Version
	TagName     string
}

// skipRules are evaluated in order; the first match suppresses the
// release. Keeping the precedence as an explicit rule list makes the
// override chain easy to read and extend.
var skipRules = []struct {
	reason string
	match  func(in Input) bool
}{
	{
		reason: "commit marker",
		match: func(in Input) bool {
			return in.SkipMarker != "" && strings.Contains(in.CommitTitle, in.SkipMarker)
		},
	},
	{
		reason: "pr label",
		match: func(in Input) bool {
			return in.PullRequest != nil && in.PullRequest.Labels.Contains(in.NoReleaseLabel)
		},
	},
}

// overrideLabels map PR labels to bump schemes, ordered by severity.
// When a PR carries more than one, the highest severity wins
// (major > minor > patch).
var overrideLabels = []struct {
	label  string
	scheme version.Scheme
}{
	{"release:major", version.Major},
	{"release:minor", version.Minor},
	{"release:patch", version.Patch},
}

// Resolve computes the release decision for one push. It is a pure
// function of its input: no I/O, no ambient configuration reads.
func Resolve(in Input) (Decision, error) {
	for _, rule := range skipRules {
		if rule.match(in) {
			return Decision{Skip: true, Reason: rule.reason}, nil
		}
	}

	scheme, overridden := resolveScheme(in)
	if scheme == version.NoRelease {
		return Decision{Skip: true, Reason: "configured default"}, nil
	}

	next, err := version.Bump(in.Prior, scheme)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to compute next version: %w", err)
	}

	reason := fmt.Sprintf("%s bump", scheme)
	if overridden {
		reason += " (label override)"
	}

	return Decision{
		Reason:      reason,
		NextVersion: next,
		TagName:     version.Format(in.TagPrefix, next),
	}, nil
}

// resolveScheme picks the bump scheme for this run, preferring a PR
// override label over the configured default.
func resolveScheme(in Input) (version.Scheme, bool) {
	if in.PullRequest != nil {
		for _, override := range overrideLabels {
			if in.PullRequest.Labels.Contains(override.label) {
				return override.scheme, true
			}
		}
	}

	return in.DefaultScheme, false
}
