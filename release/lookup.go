// Package release implements the version resolution and release
// publishing flow: look up the latest release, decide the next version,
// and create the new tag and release.
package release

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog/log"

	"github.com/ryclarke/release-tool/scm"
	"github.com/ryclarke/release-tool/version"
)

// Prior describes the most recent release found in the repository.
// A nil Version means the repository has no releases yet.
type Prior struct {
	Version *semver.Version
	TagName string
}

// Lookup fetches the latest release and parses its tag. A missing
// release is a normal outcome; a tag that does not match the configured
// prefix and major.minor.patch format is a fatal error, never coerced
// into "no prior release".
func Lookup(provider scm.Provider, prefix string) (*Prior, error) {
	latest, err := provider.LatestRelease()
	if err != nil {
		if errors.Is(err, scm.ErrNoReleases) {
			log.Debug().Msg("no prior release found")

			return &Prior{}, nil
		}

		return nil, err
	}

	prior, err := version.ParseTag(prefix, latest.TagName)
	if err != nil {
		return nil, fmt.Errorf("cannot parse latest release tag: %w", err)
	}

	log.Debug().Str("tag", latest.TagName).Stringer("version", prior).Msg("found prior release")

	return &Prior{Version: prior, TagName: latest.TagName}, nil
}
