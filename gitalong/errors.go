package gitalong

import "fmt"

// NotSetUpError is raised when a repository operation is attempted against
// a managed repository with no .gitalong.json at its root.
type NotSetUpError struct {
	RepoRoot string
}

func (e NotSetUpError) Error() string {
	return fmt.Sprintf("%s is not set up for gitalong: no %s found", e.RepoRoot, ConfigFileName)
}

// AlreadySetUpError is raised when setup is invoked against a repository
// that already has a .gitalong.json.
type AlreadySetUpError struct {
	RepoRoot string
}

func (e AlreadySetUpError) Error() string {
	return fmt.Sprintf("%s is already set up for gitalong: %s already exists", e.RepoRoot, ConfigFileName)
}

// StoreUnavailableError is raised when the store backend could not be
// reached after exhausting its retry budget.
type StoreUnavailableError struct {
	Attempts int
	Err      error
}

func (e StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable after %d attempts: %s", e.Attempts, e.Err)
}

func (e StoreUnavailableError) Unwrap() error { return e.Err }

// StoreConflictError is raised when a store write's retry budget is
// exhausted due to repeated concurrent-write conflicts.
type StoreConflictError struct {
	Attempts int
	Err      error
}

func (e StoreConflictError) Error() string {
	return fmt.Sprintf("store write conflict not resolved after %d attempts: %s", e.Attempts, e.Err)
}

func (e StoreConflictError) Unwrap() error { return e.Err }

// GitFailureError wraps a failed Git Probe invocation, preserving the
// underlying error (typically git.ErrGitExecCommand) for errors.As.
type GitFailureError struct {
	Err error
}

func (e GitFailureError) Error() string {
	return fmt.Sprintf("git command failed: %s", e.Err)
}

func (e GitFailureError) Unwrap() error { return e.Err }

// PermissionDeniedError is raised when a filesystem chmod could not be
// applied to enforce a claim decision.
type PermissionDeniedError struct {
	Path string
	Err  error
}

func (e PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied changing mode of %s: %s", e.Path, e.Err)
}

func (e PermissionDeniedError) Unwrap() error { return e.Err }

// InvalidConfigError is raised when .gitalong.json is malformed or missing
// a required field.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %s field %q: %s", ConfigFileName, e.Field, e.Reason)
}
