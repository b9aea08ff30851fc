package release

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ryclarke/release-tool/config"
	"github.com/ryclarke/release-tool/scm"
)

// Outputs are the values exposed to downstream workflow steps after a
// successful publish (or a dry run, which leaves UploadURL empty).
type Outputs struct {
	TagName   string
	Version   string
	UploadURL string
}

// Publish composes the release name and body for a Publish decision and
// submits the creation request. In dry-run mode the request is fully
// composed and logged but never sent.
func Publish(ctx context.Context, provider scm.Provider, dec Decision, prior *Prior) (*Outputs, error) {
	viper := config.Viper(ctx)

	if dec.Skip || dec.NextVersion == nil {
		return nil, fmt.Errorf("cannot publish a skip decision")
	}

	req := &scm.ReleaseRequest{
		TagName:       dec.TagName,
		CommitSHA:     viper.GetString(config.TargetSHA),
		Name:          releaseName(viper.GetString(config.ReleaseName), dec),
		GenerateNotes: viper.GetBool(config.UseAutoNotes),
	}

	body, err := composeBody(ctx, provider, req, prior)
	if err != nil {
		return nil, err
	}

	req.Body = body

	outputs := &Outputs{
		TagName: dec.TagName,
		Version: dec.NextVersion.String(),
	}

	if viper.GetBool(config.DryRun) {
		log.Info().
			Str("tag", req.TagName).
			Str("commit", req.CommitSHA).
			Str("name", req.Name).
			Bool("generate-notes", req.GenerateNotes).
			Str("body", req.Body).
			Msg("dry run: skipping release creation")

		return outputs, nil
	}

	created, err := provider.CreateRelease(req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("tag", created.TagName).Str("url", created.URL).Msg("created release")

	outputs.UploadURL = created.UploadURL

	return outputs, nil
}

// releaseName substitutes the version and tag template variables into
// the configured name template.
func releaseName(template string, dec Decision) string {
	return strings.NewReplacer(
		config.VersionVar, dec.NextVersion.String(),
		config.TagVar, dec.TagName,
	).Replace(template)
}

// composeBody builds the release body: any configured extra text first,
// then either the platform's generated notes or a bounded commit summary.
func composeBody(ctx context.Context, provider scm.Provider, req *scm.ReleaseRequest, prior *Prior) (string, error) {
	viper := config.Viper(ctx)

	var parts []string
	if extra := viper.GetString(config.ReleaseBody); extra != "" {
		parts = append(parts, extra)
	}

	// With generated notes the platform appends its own summary.
	if req.GenerateNotes {
		return strings.Join(parts, "\n\n"), nil
	}

	summary, err := commitSummary(provider, prior.TagName, req.CommitSHA,
		viper.GetInt(config.MaxCommits), viper.GetString(config.CommitOrder))
	if err != nil {
		return "", err
	}

	if summary != "" {
		parts = append(parts, summary)
	}

	return strings.Join(parts, "\n\n"), nil
}

// commitSummary renders a bulleted list of the commits contained in the
// release, capped at max entries with an explicit truncation line.
func commitSummary(provider scm.Provider, baseTag, head string, max int, order string) (string, error) {
	if max == 0 {
		return "", nil
	}

	commits, total, err := provider.CompareCommits(baseTag, head, max)
	if err != nil {
		return "", fmt.Errorf("failed to summarize commits: %w", err)
	}

	if len(commits) == 0 {
		return "", nil
	}

	if order == "asc" {
		slices.Reverse(commits)
	}

	lines := []string{"## Commits"}
	for _, c := range commits {
		lines = append(lines, fmt.Sprintf("- %s %s", c.ShortSHA(), c.Title))
	}

	// A capped list always carries an explicit truncation line, even
	// when the provider could not determine the exact overflow.
	switch {
	case total == scm.TotalUnknown:
		lines = append(lines, "- ... and more commits")
	case total > len(commits):
		lines = append(lines, fmt.Sprintf("- ... and %d more commits", total-len(commits)))
	}

	return strings.Join(lines, "\n"), nil
}
