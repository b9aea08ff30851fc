package fake

import (
	"errors"
	"testing"

	"github.com/ryclarke/release-tool/scm"
)

func seeded(t *testing.T) *Fake {
	t.Helper()

	return NewFake("test-org/test-repo",
		&scm.Release{TagName: "v1.0.0", URL: "https://example.com/release"},
		[]*scm.Commit{
			{SHA: "cccc", Title: "Third"},
			{SHA: "bbbb", Title: "Second"},
			{SHA: "aaaa", Title: "First"},
		})
}

func TestLatestRelease(t *testing.T) {
	f := seeded(t)

	release, err := f.LatestRelease()
	if err != nil {
		t.Fatalf("LatestRelease() returned error: %v", err)
	}

	if release.TagName != "v1.0.0" {
		t.Errorf("Expected v1.0.0, got %s", release.TagName)
	}

	// Returned release is a copy; mutations must not leak back.
	release.TagName = "mutated"
	if f.Latest.TagName != "v1.0.0" {
		t.Error("Expected seeded release to be isolated from mutations")
	}
}

func TestLatestReleaseEmpty(t *testing.T) {
	f := NewFake("test-org/test-repo", nil, nil)

	if _, err := f.LatestRelease(); !errors.Is(err, scm.ErrNoReleases) {
		t.Errorf("Expected ErrNoReleases, got: %v", err)
	}
}

func TestCompareCommitsCap(t *testing.T) {
	f := seeded(t)

	commits, total, err := f.CompareCommits("v1.0.0", "cccc", 2)
	if err != nil {
		t.Fatalf("CompareCommits() returned error: %v", err)
	}

	if total != 3 || len(commits) != 2 {
		t.Errorf("Expected 2 of 3 commits, got %d of %d", len(commits), total)
	}

	// A seeded total overrides the commit count.
	f.Total = scm.TotalUnknown

	if _, total, _ := f.CompareCommits("v1.0.0", "cccc", 2); total != scm.TotalUnknown {
		t.Errorf("Expected seeded total to pass through, got %d", total)
	}
}

func TestGetCommit(t *testing.T) {
	f := seeded(t)

	commit, err := f.GetCommit("bbbb")
	if err != nil {
		t.Fatalf("GetCommit() returned error: %v", err)
	}

	if commit.Title != "Second" {
		t.Errorf("Expected Second, got %s", commit.Title)
	}

	if _, err := f.GetCommit("zzzz"); err == nil {
		t.Error("Expected error for unknown commit")
	}
}

func TestPullRequestForCommit(t *testing.T) {
	f := seeded(t)
	f.SeedPullRequest("cccc", 42, "A change", "release:minor")

	pr, err := f.PullRequestForCommit("cccc")
	if err != nil {
		t.Fatalf("PullRequestForCommit() returned error: %v", err)
	}

	if pr == nil || pr.Number != 42 || !pr.Labels.Contains("release:minor") {
		t.Errorf("Unexpected pull request: %+v", pr)
	}

	none, err := f.PullRequestForCommit("aaaa")
	if err != nil {
		t.Fatalf("PullRequestForCommit() returned error: %v", err)
	}

	if none != nil {
		t.Errorf("Expected nil for commit without PR, got %+v", none)
	}
}

func TestCreateRelease(t *testing.T) {
	f := seeded(t)

	release, err := f.CreateRelease(&scm.ReleaseRequest{TagName: "v1.1.0", CommitSHA: "cccc"})
	if err != nil {
		t.Fatalf("CreateRelease() returned error: %v", err)
	}

	if release.UploadURL == "" {
		t.Error("Expected a synthetic upload URL")
	}

	if f.CreateCalls() != 1 {
		t.Errorf("Expected one recorded call, got %d", f.CreateCalls())
	}
}

func TestCreateReleaseConflict(t *testing.T) {
	f := seeded(t)

	// Colliding with the seeded latest release.
	if _, err := f.CreateRelease(&scm.ReleaseRequest{TagName: "v1.0.0"}); !scm.IsTagExists(err) {
		t.Errorf("Expected tag conflict, got: %v", err)
	}

	// Colliding with a previously created release.
	if _, err := f.CreateRelease(&scm.ReleaseRequest{TagName: "v1.1.0"}); err != nil {
		t.Fatalf("CreateRelease() returned error: %v", err)
	}

	if _, err := f.CreateRelease(&scm.ReleaseRequest{TagName: "v1.1.0"}); !scm.IsTagExists(err) {
		t.Errorf("Expected tag conflict on repeat creation, got: %v", err)
	}
}

func TestErrorInjection(t *testing.T) {
	f := seeded(t)
	boom := errors.New("boom")

	f.SetError("LatestRelease", boom)
	if _, err := f.LatestRelease(); !errors.Is(err, boom) {
		t.Errorf("Expected injected error, got: %v", err)
	}

	f.ClearError("LatestRelease")
	if _, err := f.LatestRelease(); err != nil {
		t.Errorf("Expected error to be cleared, got: %v", err)
	}

	f.SeedErrors(map[string]error{"CreateRelease": boom})
	if _, err := f.CreateRelease(&scm.ReleaseRequest{TagName: "v9.9.9"}); !errors.Is(err, boom) {
		t.Errorf("Expected injected error, got: %v", err)
	}
}
