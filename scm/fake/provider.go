// Package fake implements an in-memory release provider for testing.
package fake

import (
	"context"
	"fmt"
	"maps"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ryclarke/release-tool/scm"
)

var _ scm.Provider = new(Fake)

func init() {
	// Register the fake provider factory
	scm.Register("fake", New)
}

// Fake implements a mock release provider for testing purposes
type Fake struct {
	Repository string
	Latest     *scm.Release
	Commits    []*scm.Commit               // newest first
	Total      int                         // overrides the CompareCommits total when nonzero
	PRs        map[string]*scm.PullRequest // key: commit SHA
	Created    []*scm.ReleaseRequest       // every CreateRelease call, in order
	Errors     map[string]error            // configurable errors for testing
}

// Shared, when set, is returned by the registered factory so tests can
// seed provider state before a command runs.
var Shared *Fake

// New creates a new fake provider for the specified repository
func New(_ context.Context, repository string) scm.Provider {
	if Shared != nil {
		return Shared
	}

	return &Fake{
		Repository: repository,
		PRs:        make(map[string]*scm.PullRequest),
		Errors:     make(map[string]error),
	}
}

// NewFake creates a new fake provider with optional seed data
func NewFake(repository string, latest *scm.Release, commits []*scm.Commit) *Fake {
	f := New(context.Background(), repository).(*Fake)
	f.Latest = copyRelease(latest)

	// Deep copy commits to avoid mutations affecting tests
	f.Commits = make([]*scm.Commit, len(commits))
	for i, c := range commits {
		f.Commits[i] = &scm.Commit{SHA: c.SHA, Title: c.Title}
	}

	return f
}

// LatestRelease returns the seeded release, or scm.ErrNoReleases
func (f *Fake) LatestRelease() (*scm.Release, error) {
	if err := f.Errors["LatestRelease"]; err != nil {
		return nil, err
	}

	if f.Latest == nil {
		return nil, scm.ErrNoReleases
	}

	return copyRelease(f.Latest), nil
}

// GetCommit returns the seeded commit matching the SHA
func (f *Fake) GetCommit(sha string) (*scm.Commit, error) {
	if err := f.Errors["GetCommit"]; err != nil {
		return nil, err
	}

	for _, c := range f.Commits {
		if c.SHA == sha {
			return &scm.Commit{SHA: c.SHA, Title: c.Title}, nil
		}
	}

	return nil, fmt.Errorf("commit not found: %s", sha)
}

// CompareCommits returns up to limit seeded commits plus the total count
func (f *Fake) CompareCommits(base, head string, limit int) ([]*scm.Commit, int, error) {
	if err := f.Errors["CompareCommits"]; err != nil {
		return nil, 0, err
	}

	total := len(f.Commits)
	if f.Total != 0 {
		total = f.Total
	}

	list := f.Commits
	if len(list) > limit {
		list = list[:limit]
	}

	result := make([]*scm.Commit, len(list))
	for i, c := range list {
		result[i] = &scm.Commit{SHA: c.SHA, Title: c.Title}
	}

	return result, total, nil
}

// PullRequestForCommit returns the seeded pull request for the SHA, if any
func (f *Fake) PullRequestForCommit(sha string) (*scm.PullRequest, error) {
	if err := f.Errors["PullRequestForCommit"]; err != nil {
		return nil, err
	}

	pr, exists := f.PRs[sha]
	if !exists {
		return nil, nil
	}

	// Return a copy to prevent mutations
	return &scm.PullRequest{
		Number: pr.Number,
		Title:  pr.Title,
		Labels: pr.Labels.Clone(),
	}, nil
}

// CreateRelease records the request and returns a synthetic release
func (f *Fake) CreateRelease(req *scm.ReleaseRequest) (*scm.Release, error) {
	if err := f.Errors["CreateRelease"]; err != nil {
		return nil, err
	}

	if f.Latest != nil && f.Latest.TagName == req.TagName {
		return nil, fmt.Errorf("%w: %s", scm.ErrTagExists, req.TagName)
	}

	for _, prev := range f.Created {
		if prev.TagName == req.TagName {
			return nil, fmt.Errorf("%w: %s", scm.ErrTagExists, req.TagName)
		}
	}

	f.Created = append(f.Created, req)

	return &scm.Release{
		TagName:   req.TagName,
		CommitSHA: req.CommitSHA,
		Name:      req.Name,
		URL:       fmt.Sprintf("https://example.com/%s/releases/%s", f.Repository, req.TagName),
		UploadURL: fmt.Sprintf("https://example.com/%s/releases/%s/assets", f.Repository, req.TagName),
	}, nil
}

// Test helper methods for configuring the fake provider

// SeedPullRequest associates a pull request with a commit SHA
func (f *Fake) SeedPullRequest(sha string, number int, title string, labels ...string) {
	f.PRs[sha] = &scm.PullRequest{
		Number: number,
		Title:  title,
		Labels: mapset.NewSet(labels...),
	}
}

// SeedErrors configures errors returned by specific methods
func (f *Fake) SeedErrors(errors map[string]error) {
	// Deep copy errors to avoid mutations affecting tests
	maps.Copy(f.Errors, errors)
}

// SetError configures the provider to return an error for a specific method
func (f *Fake) SetError(method string, err error) {
	f.Errors[method] = err
}

// ClearError removes a configured error for a specific method
func (f *Fake) ClearError(method string) {
	delete(f.Errors, method)
}

// CreateCalls returns the number of CreateRelease invocations
func (f *Fake) CreateCalls() int {
	return len(f.Created)
}

// Clear removes all seeded data and recorded calls
func (f *Fake) Clear() {
	f.Latest = nil
	f.Commits = nil
	f.Total = 0
	f.PRs = make(map[string]*scm.PullRequest)
	f.Created = nil
	f.Errors = make(map[string]error)
}

func copyRelease(r *scm.Release) *scm.Release {
	if r == nil {
		return nil
	}

	// Return a copy to prevent mutations
	out := *r

	return &out
}
