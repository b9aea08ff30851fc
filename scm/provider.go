package scm

import (
	"context"
	"fmt"
)

// TotalUnknown is returned as the total commit count when a range is
// known to exceed the requested limit but its true size was not
// determined, as happens when listing a long history without a base.
const TotalUnknown = -1

var providerFactories = make(map[string]ProviderFactory)

type ProviderFactory func(ctx context.Context, repository string) Provider

// Provider defines the interface for release platform providers.
type Provider interface {
	// LatestRelease returns the most recent release in the repository,
	// or ErrNoReleases if none exist yet.
	LatestRelease() (*Release, error)

	// GetCommit returns the commit metadata for the given SHA.
	GetCommit(sha string) (*Commit, error)

	// CompareCommits lists up to limit commits after base (exclusive) up
	// to head (inclusive), newest first, along with the total number of
	// commits in the range, or TotalUnknown when the range exceeds the
	// limit by an undetermined amount. An empty base lists commits
	// reachable from head instead.
	CompareCommits(base, head string, limit int) ([]*Commit, int, error)

	// PullRequestForCommit returns the pull request associated with the
	// given commit, or nil if the commit was pushed directly.
	PullRequestForCommit(sha string) (*PullRequest, error)

	// CreateRelease creates the tag and release described by the request,
	// returning ErrTagExists when the tag is already taken.
	CreateRelease(req *ReleaseRequest) (*Release, error)
}

// Get retrieves a registered provider by name.
// If the provider is not registered, it panics.
func Get(ctx context.Context, name, repository string) Provider {
	if factory, exists := providerFactories[name]; exists {
		return factory(ctx, repository)
	}

	panic(fmt.Sprintf("release provider %s not registered", name))
}

// Register a new provider factory by name.
func Register(name string, factory ProviderFactory) {
	if _, exists := providerFactories[name]; !exists {
		providerFactories[name] = factory
	}
}
