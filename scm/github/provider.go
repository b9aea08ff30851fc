// Package github implements the release provider for the GitHub REST API.
package github

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/go-github/v74/github"

	"github.com/ryclarke/release-tool/config"
	"github.com/ryclarke/release-tool/scm"
)

func init() {
	// Register the GitHub provider factory
	scm.Register("github", New)
}

// New creates a GitHub provider for the given "owner/name" repository.
func New(ctx context.Context, repository string) scm.Provider {
	owner, repo, _ := strings.Cut(repository, "/")

	return &Github{
		// TODO: Add support for enterprise GitHub instances (currently SaaS only)
		client: github.NewClient(http.DefaultClient).WithAuthToken(config.Viper(ctx).GetString(config.AuthToken)),
		owner:  owner,
		repo:   repo,
		ctx:    ctx,
	}
}

type Github struct {
	client *github.Client
	owner  string
	repo   string
	ctx    context.Context
}
