package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v74/github"

	"github.com/ryclarke/release-tool/scm"
)

// LatestRelease returns the most recent release in the repository, or
// scm.ErrNoReleases if the repository has never been released.
func (g *Github) LatestRelease() (*scm.Release, error) {
	resp, httpResp, err := g.client.Repositories.GetLatestRelease(g.ctx, g.owner, g.repo)
	if err != nil {
		if httpResp != nil && httpResp.StatusCode == http.StatusNotFound {
			return nil, scm.ErrNoReleases
		}

		return nil, fmt.Errorf("failed to get latest release: %w", err)
	}

	return parseRelease(resp), nil
}

// CreateRelease creates the tag and release described by the request.
// A tag collision maps to scm.ErrTagExists so callers can distinguish a
// race from a generic platform failure.
func (g *Github) CreateRelease(req *scm.ReleaseRequest) (*scm.Release, error) {
	release := &github.RepositoryRelease{
		TagName:         github.Ptr(req.TagName),
		TargetCommitish: github.Ptr(req.CommitSHA),
		Name:            github.Ptr(req.Name),
		Body:            github.Ptr(req.Body),
	}

	if req.GenerateNotes {
		release.GenerateReleaseNotes = github.Ptr(true)
	}

	resp, _, err := g.client.Repositories.CreateRelease(g.ctx, g.owner, g.repo, release)
	if err != nil {
		if isTagConflict(err) {
			return nil, fmt.Errorf("%w: %s", scm.ErrTagExists, req.TagName)
		}

		return nil, fmt.Errorf("failed to create release: %w", err)
	}

	return parseRelease(resp), nil
}

// isTagConflict reports whether the API rejected the release because the
// tag name is already taken.
func isTagConflict(err error) bool {
	var errResp *github.ErrorResponse
	if !errors.As(err, &errResp) {
		return false
	}

	if errResp.Response == nil || errResp.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}

	for _, e := range errResp.Errors {
		if e.Code == "already_exists" {
			return true
		}
	}

	return false
}

func parseRelease(resp *github.RepositoryRelease) *scm.Release {
	return &scm.Release{
		TagName:   resp.GetTagName(),
		CommitSHA: resp.GetTargetCommitish(),
		Name:      resp.GetName(),
		URL:       resp.GetHTMLURL(),
		UploadURL: resp.GetUploadURL(),
	}
}
