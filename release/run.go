package release

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ryclarke/release-tool/config"
	"github.com/ryclarke/release-tool/scm"
	"github.com/ryclarke/release-tool/version"
)

// Run executes the full flow for one push: look up the prior release,
// resolve the decision, and publish when one is called for. A skip
// decision returns nil Outputs and no error.
func Run(ctx context.Context, provider scm.Provider) (*Outputs, Decision, error) {
	viper := config.Viper(ctx)

	scheme, err := version.ParseScheme(viper.GetString(config.BumpScheme))
	if err != nil {
		return nil, Decision{}, err
	}

	prior, err := Lookup(provider, viper.GetString(config.TagPrefix))
	if err != nil {
		return nil, Decision{}, err
	}

	sha := viper.GetString(config.TargetSHA)

	commit, err := provider.GetCommit(sha)
	if err != nil {
		return nil, Decision{}, err
	}

	pr, err := provider.PullRequestForCommit(sha)
	if err != nil {
		return nil, Decision{}, err
	}

	dec, err := Resolve(Input{
		Prior:          prior.Version,
		DefaultScheme:  scheme,
		TagPrefix:      viper.GetString(config.TagPrefix),
		CommitTitle:    commit.Title,
		SkipMarker:     viper.GetString(config.SkipMarker),
		NoReleaseLabel: viper.GetString(config.NoReleaseLabel),
		PullRequest:    pr,
	})
	if err != nil {
		return nil, Decision{}, err
	}

	if dec.Skip {
		log.Info().Str("reason", dec.Reason).Msg("skipping release")

		return nil, dec, nil
	}

	log.Info().
		Stringer("version", dec.NextVersion).
		Str("tag", dec.TagName).
		Str("reason", dec.Reason).
		Msg("resolved next version")

	outputs, err := Publish(ctx, provider, dec, prior)
	if err != nil {
		return nil, dec, fmt.Errorf("failed to publish %s: %w", dec.TagName, err)
	}

	return outputs, dec, nil
}
