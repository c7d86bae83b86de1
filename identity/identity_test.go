package identity_test

import (
	"errors"
	"os"
	"testing"

	"github.com/douglaslassance/gitalong/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfig struct {
	email string
	err   error
}

func (f fakeConfig) Config(path string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.email, nil
}

func TestResolve(t *testing.T) {
	id, err := identity.Resolve(fakeConfig{email: "jean@example.com"})
	require.NoError(t, err)

	host, err := os.Hostname()
	require.NoError(t, err)

	assert.Equal(t, host, id.Host)
	assert.Equal(t, "jean@example.com", id.User)
}

func TestResolveConfigError(t *testing.T) {
	_, err := identity.Resolve(fakeConfig{err: errors.New("no config")})
	require.ErrorContains(t, err, "user.email")
}

func TestString(t *testing.T) {
	id := identity.Identity{Host: "workstation", User: "jean@example.com"}
	assert.Equal(t, "jean@example.com@workstation", id.String())
}
