package git_test

import (
	"os"
	"testing"
)

// nonWorkingDirectory switches the test process into a freshly created
// temporary directory that is guaranteed not to be part of any git
// repository, restoring the original working directory on cleanup.
func nonWorkingDirectory(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})

	return dir
}
