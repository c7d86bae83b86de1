package store

import "strings"

// New selects and constructs the Store Backend variant appropriate for url,
// dispatching on URL shape rather than any declared type. repoRoot is the
// managed repository's root, under which the Git variant clones its store
// into .gitalong/.
func New(url, repoRoot string, headers Headers, retry RetryPolicy) (Backend, error) {
	if isJSONDocumentURL(url) {
		return newJSONStore(url, headers, retry), nil
	}
	return newGitStore(url, repoRoot, retry)
}

// isJSONDocumentURL reports whether url names a hosted JSON document rather
// than a Git remote: an http(s) URL whose path ends in ".json". A plain
// https Git remote (GitHub, GitLab, ...) never carries that suffix, so this
// distinguishes the two without needing an explicit scheme of its own.
func isJSONDocumentURL(url string) bool {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false
	}
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	return strings.HasSuffix(path, ".json")
}
