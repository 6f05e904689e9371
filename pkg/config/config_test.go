package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/pipeline"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, CacheFile, c.Cache.Backend)
	assert.Equal(t, pipeline.DefaultGEDTimeout, c.Compare.GEDTimeout)
	assert.Equal(t, pipeline.DefaultWorkers(), c.Batch.Workers)
	assert.Equal(t, DefaultAddr, c.Server.Addr)
	assert.EqualValues(t, DefaultMaxBodyBytes, c.Server.MaxBodyBytes)
	assert.Nil(t, c.Fold.Threshold)
	assert.Empty(t, c.Warnings)
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "config.toml", `
[fold]
threshold = 0.3
normalize = false

[compare]
ged_timeout = "2s"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"

[server]
addr = "127.0.0.1:9000"

[extra]
ignored = true
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, c.Fold.Threshold)
	assert.Equal(t, 0.3, *c.Fold.Threshold)
	assert.False(t, *c.Fold.Normalize)
	assert.Equal(t, 2*time.Second, c.Compare.GEDTimeout)
	assert.Equal(t, CacheRedis, c.Cache.Backend)
	assert.Equal(t, "127.0.0.1:9000", c.Server.Addr)
	assert.NotEmpty(t, c.Warnings, "unknown keys should be reported")

	opts := c.PipelineOptions()
	assert.Equal(t, "relaxed:0.3:false", opts.FoldKey())
	assert.Equal(t, 2*time.Second, opts.GEDTimeout)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "config.yaml", `
compare:
  skip_edit_distance: true
batch:
  workers: 3
store:
  target: results.jsonl
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.Compare.SkipEditDistance)
	assert.Equal(t, 3, c.Batch.Workers)
	assert.Equal(t, "results.jsonl", c.Store.Target)
}

func TestPartialFoldWarns(t *testing.T) {
	c, err := Load(write(t, "c.toml", "[fold]\nthreshold = 0.2\n"))
	require.NoError(t, err)
	assert.Nil(t, c.Fold.Threshold)
	assert.Nil(t, c.Fold.Normalize)
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "strict")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    errors.Code
	}{
		{"negative threshold", "c.toml", "[fold]\nthreshold = -1.0\nnormalize = true\n", errors.ErrCodeInvalidConfig},
		{"unknown backend", "c.toml", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidConfig},
		{"redis without url", "c.yaml", "cache:\n  backend: redis\n", errors.ErrCodeInvalidConfig},
		{"negative workers", "c.yaml", "batch:\n  workers: -2\n", errors.ErrCodeInvalidConfig},
		{"malformed toml", "c.toml", "[fold\n", errors.ErrCodeInvalidConfig},
		{"bad extension", "c.ini", "", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.file, tt.content))
			assert.True(t, errors.Is(err, tt.code), "got %v, want %s", err, tt.code)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestLoadDefaultMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, CacheFile, c.Cache.Backend)
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := CacheDir()
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.True(t, strings.HasPrefix(dir, home), "CacheDir() = %q, should be under %q", dir, home)
	assert.Equal(t, filepath.Join(home, ".cache", AppName), dir)
}

func TestCacheDirXDG(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "xdg")
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(custom, AppName), dir)
}

func TestDefaultPath(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(custom, AppName, "config.toml"), path)
}
