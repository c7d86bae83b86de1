package gitalong_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/douglaslassance/gitalong"
	"github.com/douglaslassance/gitalong/git"
	"github.com/stretchr/testify/assert"
)

func TestGitFailureErrorUnwrapsToGitExecError(t *testing.T) {
	execErr := git.ErrGitExecCommand{Cmd: "git status", Out: "fatal: not a repository", ExitCode: 128}
	err := error(gitalong.GitFailureError{Err: execErr})

	var target git.ErrGitExecCommand
	require := assert.New(t)
	require.True(errors.As(err, &target))
	require.Equal(128, target.ExitCode)
}

func TestStoreUnavailableErrorMessage(t *testing.T) {
	err := gitalong.StoreUnavailableError{Attempts: 5, Err: fmt.Errorf("connection refused")}
	assert.Contains(t, err.Error(), "5 attempts")
}

func TestPermissionDeniedErrorMessage(t *testing.T) {
	err := gitalong.PermissionDeniedError{Path: "asset.png", Err: fmt.Errorf("operation not permitted")}
	assert.Contains(t, err.Error(), "asset.png")
}
