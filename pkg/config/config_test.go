package config

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omtsf/pkg/model"
)

var mockConfig = []byte(`
validate:
  run_l3: true
merge:
  same_as_threshold: probable
  group_size_limit: 10
redact:
  default_scope: public
  retain_nodes:
    - n-0
`)

func TestLoadFileAppliesDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := fmt.Sprintf("%s/omtsf.yaml", dir)
	require.NoError(t, os.WriteFile(path, mockConfig, 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Validate.RunL1) // default, not set in the file
	assert.True(t, cfg.Validate.RunL3) // overridden in the file
	assert.Equal(t, "probable", cfg.Merge.SameAsThreshold)
	assert.Equal(t, 10, cfg.Merge.GroupSizeLimit)
	assert.Equal(t, model.DisclosureScope("public"), cfg.DefaultDisclosureScope())
	assert.Equal(t, []string{"n-0"}, cfg.Redact.RetainNodes)
	assert.Equal(t, int64(268435456), cfg.Decode.MaxInputBytes) // default, not set in the file
}

func TestLoadFileRejectsInvalidEnumValue(t *testing.T) {
	dir := t.TempDir()
	path := fmt.Sprintf("%s/omtsf.yaml", dir)
	require.NoError(t, os.WriteFile(path, []byte("redact:\n  default_scope: bogus\n"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(dir)
	assert.Error(t, err)
}

func TestConfigConversionsMatchEngineDefaults(t *testing.T) {
	dir := t.TempDir()
	path := fmt.Sprintf("%s/omtsf.yaml", dir)
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	vc := cfg.ValidateConfig()
	assert.True(t, vc.RunL1)
	assert.True(t, vc.RunL2)
	assert.False(t, vc.RunL3)

	mc := cfg.MergeConfig()
	assert.Equal(t, model.ConfidencePossible, mc.SameAsThreshold)
	assert.Equal(t, 50, mc.GroupSizeLimit)
}
