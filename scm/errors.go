package scm

import "errors"

// IsTagExists reports whether the error chain contains a tag conflict.
func IsTagExists(err error) bool {
	return errors.Is(err, ErrTagExists)
}

var (
	// ErrNoReleases indicates the repository has no releases yet. This is
	// a normal lookup outcome, distinct from a malformed existing tag.
	ErrNoReleases = errors.New("repository has no releases")

	// ErrTagExists indicates the release tag already exists on the
	// platform, usually a race with a concurrent run or a manually
	// pushed tag. Creation is never retried on this error.
	ErrTagExists = errors.New("release tag already exists")
)
