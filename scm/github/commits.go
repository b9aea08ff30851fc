package github

import (
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/go-github/v74/github"

	"github.com/ryclarke/release-tool/scm"
)

const maxPerPage = 100

// CompareCommits lists up to limit commits after base (exclusive) up to
// head (inclusive), newest first, plus the total commit count of the
// range. With an empty base it falls back to the commit history of head,
// as happens before the first release exists.
func (g *Github) CompareCommits(base, head string, limit int) ([]*scm.Commit, int, error) {
	if base == "" {
		return g.listCommits(head, limit)
	}

	perPage := limit
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	var (
		commits []*scm.Commit
		total   int
	)

	opts := &github.ListOptions{PerPage: perPage}

	for {
		cmp, resp, err := g.client.Repositories.CompareCommits(g.ctx, g.owner, g.repo, base, head, opts)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to compare %s...%s: %w", base, head, err)
		}

		total = cmp.GetTotalCommits()

		for _, c := range cmp.Commits {
			commits = append(commits, parseCommit(c))
		}

		if resp.NextPage == 0 || len(commits) >= limit {
			break
		}

		opts.Page = resp.NextPage
	}

	if len(commits) > limit {
		commits = commits[:limit]
	}

	// The compare API returns commits oldest first.
	slices.Reverse(commits)

	return commits, total, nil
}

// GetCommit returns the commit metadata for the given SHA.
func (g *Github) GetCommit(sha string) (*scm.Commit, error) {
	resp, _, err := g.client.Repositories.GetCommit(g.ctx, g.owner, g.repo, sha, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", sha, err)
	}

	return parseCommit(resp), nil
}

// PullRequestForCommit returns the pull request the commit was merged
// from, or nil when the commit was pushed directly to the branch.
func (g *Github) PullRequestForCommit(sha string) (*scm.PullRequest, error) {
	resp, _, err := g.client.PullRequests.ListPullRequestsWithCommit(g.ctx, g.owner, g.repo, sha, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull requests for %s: %w", sha, err)
	}

	if len(resp) == 0 {
		return nil, nil
	}

	return parsePR(resp[0]), nil
}

// listCommits pages through the history of head until limit+1 commits
// are collected, enough to tell whether the range overflows the limit.
// When the history ends within those pages the total is exact;
// otherwise it is reported as scm.TotalUnknown rather than a
// misleading undercount.
func (g *Github) listCommits(head string, limit int) ([]*scm.Commit, int, error) {
	perPage := limit + 1
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	var (
		commits   []*scm.Commit
		morePages bool
	)

	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	if head != "" {
		opts.SHA = head
	}

	for {
		list, resp, err := g.client.Repositories.ListCommits(g.ctx, g.owner, g.repo, opts)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list commits for %s: %w", head, err)
		}

		// Listing is newest first already.
		for _, c := range list {
			commits = append(commits, parseCommit(c))
		}

		morePages = resp.NextPage != 0
		if !morePages || len(commits) > limit {
			break
		}

		opts.Page = resp.NextPage
	}

	total := len(commits)
	if morePages && total > limit {
		total = scm.TotalUnknown
	}

	if len(commits) > limit {
		commits = commits[:limit]
	}

	return commits, total, nil
}

func parseCommit(c *github.RepositoryCommit) *scm.Commit {
	title, _, _ := strings.Cut(c.GetCommit().GetMessage(), "\n")

	return &scm.Commit{
		SHA:   c.GetSHA(),
		Title: title,
	}
}

func parsePR(resp *github.PullRequest) *scm.PullRequest {
	pr := &scm.PullRequest{
		Number: resp.GetNumber(),
		Title:  resp.GetTitle(),
		Labels: mapset.NewSet[string](),
	}

	for _, label := range resp.Labels {
		pr.Labels.Add(label.GetName())
	}

	return pr
}
