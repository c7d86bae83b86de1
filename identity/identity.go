// Package identity resolves the (host, user) pair that uniquely identifies
// a clone within the fleet, used as the primary key for deciding "mine" vs.
// "someone else's" tracked commits.
package identity

import (
	"fmt"
	"os"
)

// Identity identifies a single clone of the managed repository.
type Identity struct {
	// Host is the operating system hostname of the machine running this clone.
	Host string

	// User is the Git user.email configured for the managed repository.
	User string
}

// String renders the identity as "user@host", the form used in log messages
// and CLI diagnostics.
func (i Identity) String() string {
	return fmt.Sprintf("%s@%s", i.User, i.Host)
}

// configClient is the subset of *git.Client identity resolution depends on.
// Kept minimal and unexported so this package doesn't import git directly,
// avoiding an import cycle with packages that need both.
type configClient interface {
	Config(path string) (string, error)
}

// Resolve builds the Identity for the current clone: the OS hostname and the
// repository's configured user.email.
func Resolve(client configClient) (Identity, error) {
	host, err := os.Hostname()
	if err != nil {
		return Identity{}, fmt.Errorf("resolving hostname: %w", err)
	}

	email, err := client.Config("user.email")
	if err != nil {
		return Identity{}, fmt.Errorf("resolving user.email: %w", err)
	}

	return Identity{Host: host, User: email}, nil
}
