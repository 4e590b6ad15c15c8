package configpaths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), dir)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/dev")
	dir, err = DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/dev", ".config", AppName), dir)

	t.Setenv("HOME", "")
	_, err = DefaultConfigDir()
	assert.Error(t, err)
}

func TestDefaultNamedConfigPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	tests := map[string]string{"json": "convert.json", "yml": "convert.yaml", "YAML": "convert.yaml", "toml": "convert.toml", "ini": "convert.json"}
	for format, file := range tests {
		p, err := DefaultNamedConfigPath("convert", format)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/xdg", AppName, file), p, format)
	}
}

func TestConfigCandidatePaths(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}
	wd := t.TempDir()
	chdir(t, wd)
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	c := ConfigCandidatePaths("board.yml", "convert")
	assert.Equal(t, []string{
		"board.yml",
		filepath.Join(wd, "convert.yaml"), filepath.Join(wd, "convert.yml"),
		"/tmp/xdg/ioc2chcfg/convert.yaml", "/tmp/xdg/ioc2chcfg/convert.yml",
		"/etc/ioc2chcfg/convert.yaml", "/etc/ioc2chcfg/convert.yml",
	}, c.YAML)
	assert.Equal(t, []string{
		filepath.Join(wd, "convert.json"),
		"/tmp/xdg/ioc2chcfg/convert.json",
		"/etc/ioc2chcfg/convert.json",
	}, c.JSON)
	assert.Len(t, c.TOML, 3)

	c = ConfigCandidatePaths("settings.cfg")
	assert.Equal(t, []string{"settings.cfg"}, c.JSON)
	assert.Empty(t, c.YAML)

	c = ConfigCandidatePaths("", AppName, "inspect")
	assert.Len(t, c.TOML, 6)
	assert.Equal(t, filepath.Join(wd, AppName+".toml"), c.TOML[0])
}

func TestEnsureDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "convert.json")
	require.NoError(t, EnsureDir(p))
	assert.DirExists(t, filepath.Dir(p))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
