package scm

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Release is a platform release record associated with a tag.
type Release struct {
	TagName   string `json:"tag_name"`
	CommitSHA string `json:"target_commitish"`
	Name      string `json:"name"`
	URL       string `json:"html_url"`
	UploadURL string `json:"upload_url"`
}

// Commit holds the subset of commit metadata used for release summaries.
type Commit struct {
	SHA   string `json:"sha"`
	Title string `json:"title"`
}

// ShortSHA returns the abbreviated commit hash used in summaries.
func (c *Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}

	return c.SHA
}

// PullRequest is the pull request associated with a pushed commit, if any.
// Only its labels influence the release decision.
type PullRequest struct {
	Number int                `json:"number"`
	Title  string             `json:"title"`
	Labels mapset.Set[string] `json:"labels"`
}

// ReleaseRequest carries everything needed to create one release.
type ReleaseRequest struct {
	TagName       string
	CommitSHA     string
	Name          string
	Body          string
	GenerateNotes bool
}
