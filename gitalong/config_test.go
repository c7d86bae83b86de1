package gitalong_test

import (
	"testing"

	"github.com/douglaslassance/gitalong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSaveAndLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()

	cfg := gitalong.Config{
		StoreURL:          "https://example.com/store.json",
		StoreHeaders:      map[string]string{"Authorization": "$TOKEN"},
		ModifyPermissions: true,
		TrackedExtensions: []string{".png", ".psd"},
		TrackUncommitted:  true,
		PullThreshold:     30,
	}

	require.NoError(t, cfg.Save(dir))

	loaded, err := gitalong.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigSaveTwiceFailsAlreadySetUp(t *testing.T) {
	dir := t.TempDir()
	cfg := gitalong.Config{StoreURL: "git@example.com:store.git"}

	require.NoError(t, cfg.Save(dir))

	err := cfg.Save(dir)
	require.Error(t, err)
	var already gitalong.AlreadySetUpError
	assert.ErrorAs(t, err, &already)
}

func TestLoadConfigMissingFileIsNotSetUp(t *testing.T) {
	dir := t.TempDir()

	_, err := gitalong.LoadConfig(dir)
	require.Error(t, err)
	var notSetUp gitalong.NotSetUpError
	assert.ErrorAs(t, err, &notSetUp)
}

func TestConfigValidateRequiresStoreURL(t *testing.T) {
	err := gitalong.Config{}.Validate()
	require.Error(t, err)
	var invalid gitalong.InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "store_url", invalid.Field)
}

func TestConfigValidateRejectsNegativePullThreshold(t *testing.T) {
	err := gitalong.Config{StoreURL: "x", PullThreshold: -1}.Validate()
	require.Error(t, err)
	var invalid gitalong.InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "pull_threshold", invalid.Field)
}
