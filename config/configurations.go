package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var (
	// Version is dynamically set at build time using the -X linker flag.
	// Default value is used for testing and development builds.
	Version = "dev"
)

const (
	GitProvider   = "git.provider"
	GitRepository = "git.repository"
	AuthToken     = "auth-token"

	BumpScheme     = "bump-version-scheme"
	TagPrefix      = "tag-prefix"
	ReleaseName    = "release-name"
	ReleaseBody    = "release-body"
	UseAutoNotes   = "use-github-release-notes"
	MaxCommits     = "max-commits"
	CommitOrder    = "commit-order"
	TargetSHA      = "sha"
	DryRun         = "dry-run"
	SkipMarker     = "skip-marker"
	NoReleaseLabel = "norelease-label"

	// Template variables substituted into the release name.
	VersionVar = "<RELEASE_VERSION>"
	TagVar     = "<RELEASE_TAG>"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(GitProvider, "github")

	v.SetDefault(BumpScheme, "minor")
	v.SetDefault(TagPrefix, "v")
	v.SetDefault(ReleaseName, TagVar)
	v.SetDefault(UseAutoNotes, false)
	v.SetDefault(MaxCommits, 50)
	v.SetDefault(CommitOrder, "desc")
	v.SetDefault(DryRun, false)
	v.SetDefault(SkipMarker, "[norelease]")
	v.SetDefault(NoReleaseLabel, "norelease")

	// Runner metadata uses the GITHUB_* namespace rather than INPUT_*.
	v.BindEnv(GitRepository, "GITHUB_REPOSITORY")
	v.BindEnv(AuthToken, "GITHUB_TOKEN", "INPUT_GITHUB_TOKEN")
	v.BindEnv(TargetSHA, "GITHUB_SHA", "INPUT_SHA")
}

// Validate checks the configuration surface before any network call is made.
func Validate(v *viper.Viper) error {
	if repo := v.GetString(GitRepository); repo == "" {
		return fmt.Errorf("repository is not set (expected GITHUB_REPOSITORY or --repository)")
	} else if !strings.Contains(repo, "/") {
		return fmt.Errorf("invalid repository %q (expected owner/name)", repo)
	}

	if v.GetString(TargetSHA) == "" {
		return fmt.Errorf("target commit is not set (expected GITHUB_SHA or --sha)")
	}

	if v.GetInt(MaxCommits) < 0 {
		return fmt.Errorf("max-commits must be non-negative, got %d", v.GetInt(MaxCommits))
	}

	switch order := v.GetString(CommitOrder); order {
	case "asc", "desc":
	default:
		return fmt.Errorf("invalid commit-order: %q (expected \"asc\" or \"desc\")", order)
	}

	return nil
}
