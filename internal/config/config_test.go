// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))

	return fs
}

func writeFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "convreverb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_Flags(t *testing.T) {
	fs := newFlags(t, "-j", "4", "--strict", "--match-rate", "--log-format", "json")

	cfg, err := Load(fs, "")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.MatchRate)
	assert.False(t, cfg.Progress)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "workers: 3\ndiagnostics: true\nlog_level: debug\n")

	cfg, err := Load(newFlags(t), path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.Diagnostics)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "workers: 3\nprogress: false\nlog_level: warn\n")
	t.Setenv("CONVREVERB_WORKERS", "5")
	t.Setenv("CONVREVERB_PROGRESS", "true")

	cfg, err := Load(newFlags(t, "--workers", "7"), path)
	require.NoError(t, err)

	// flag beats env, env beats file, file beats default
	assert.Equal(t, 7, cfg.Workers)
	assert.True(t, cfg.Progress)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "negative workers", args: []string{"--workers=-2"}},
		{name: "bad level", args: []string{"--log-level", "chatty"}},
		{name: "bad format", args: []string{"--log-format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newFlags(t, tt.args...), "")
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestRegisterFlags(t *testing.T) {
	t.Parallel()

	fs := newFlags(t)
	for _, name := range []string{"workers", "progress", "diagnostics", "strict", "match-rate", "log-level", "log-format"} {
		assert.NotNil(t, fs.Lookup(name), name)
	}
	assert.Equal(t, "j", fs.Lookup("workers").Shorthand)
}
