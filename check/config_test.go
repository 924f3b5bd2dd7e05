package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, DefaultConfigFile)
	content := `name: custom
grammars:
  json:
    - .json
    - .jsonc
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", config.Name)
	assert.Equal(t, map[string][]string{"json": {".json", ".jsonc"}}, config.Grammars)
	// not in the file, so the default is kept
	assert.Equal(t, "info", config.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: {}\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestWriteConfigRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, WriteConfig(path, DefaultConfig()))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestGrammarFor(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Grammars["zeta"] = []string{".json"}

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{path: "a/b/doc.json", want: "json", ok: true},
		{path: "hosts.ipv4", want: "ipv4", ok: true},
		{path: "greeting.hello", want: "hello", ok: true},
		{path: "README", ok: false},
		{path: "main.go", ok: false},
	}
	for _, tt := range tests {
		got, ok := config.GrammarFor(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestTOMLConfig(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "parsco.toml")
	content := `name = "toml"
log_level = "debug"

[grammars]
ipv4 = [".hosts"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "toml", config.Name)
	assert.Equal(t, "debug", config.LogLevel)
	name, ok := config.GrammarFor("lab.hosts")
	assert.True(t, ok)
	assert.Equal(t, "ipv4", name)

	out := filepath.Join(tempDir, "roundtrip.toml")
	require.NoError(t, WriteConfig(out, config))
	again, err := LoadConfig(out)
	require.NoError(t, err)
	assert.Equal(t, config, again)

	bad := filepath.Join(tempDir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("rules = 1\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}
