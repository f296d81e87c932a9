package tahoecfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	gerrors "github.com/DeBrosOfficial/giab/pkg/errors"
)

const furl = "pb://hckqqn4vq5ggzuukfztpuu4wykwefa6d@tcp:127.0.0.1:44801/introducer"

// freshNodeConfig is an abridged tahoe.cfg as written by "tahoe create-node".
const freshNodeConfig = `# -*- mode: conf; coding: utf-8 -*-

[node]
nickname = node
web.port = tcp:3456:interface=127.0.0.1

[client]
# Which services should this client connect to?
introducer.furl = None

# Encoding parameters this client will use for newly-uploaded files
# This can be changed at any time: the encoding is saved in each filecap,
# and we can download old files with any encoding settings
#shares.needed = 3
#shares.happy = 7
#shares.total = 10

[storage]
enabled = true
`

func TestInjectHandshake(t *testing.T) {
	out, err := InjectHandshake(freshNodeConfig, furl)
	require.NoError(t, err)

	assert.Contains(t, out, "\nintroducer.furl = "+furl+"\n")
	assert.NotContains(t, out, HandshakePlaceholder)
	assert.Equal(t, strings.Count(freshNodeConfig, "\n"), strings.Count(out, "\n"))
}

func TestInjectHandshakeVerbatimToken(t *testing.T) {
	token := `pb://x@y/z\1$1 & \n`
	out, err := InjectHandshake("introducer.furl = None\n", token)
	require.NoError(t, err)
	assert.Equal(t, "introducer.furl = "+token+"\n", out)
}

func TestInjectHandshakeMatchCount(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		actual int
	}{
		{"missing", "[client]\nintroducer.furl = pb://already@set/x\n", 0},
		{"duplicated", "introducer.furl = None\nintroducer.furl = None\n", 2},
		{"indented", "  introducer.furl = None\n", 0},
		{"crlf", "introducer.furl = None\r\n", 0},
		{"trailing text", "introducer.furl = None # default\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := InjectHandshake(tt.text, furl)
			require.Error(t, err)
			assert.Equal(t, tt.text, out)

			var cfgErr *gerrors.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "introducer", cfgErr.Setting)
			assert.Equal(t, 1, cfgErr.Expected)
			assert.Equal(t, tt.actual, cfgErr.Actual)
		})
	}
}

func TestFixEncodingDefaults(t *testing.T) {
	out, err := FixEncodingDefaults(freshNodeConfig)
	require.NoError(t, err)

	assert.Contains(t, out, "\nshares.needed = 1\nshares.happy = 1\nshares.total = 1\n")
	assert.NotContains(t, out, "#shares.")
	// Unrelated comments survive.
	assert.Contains(t, out, "# Encoding parameters this client will use")
}

func TestFixEncodingDefaultsAnyDigits(t *testing.T) {
	text := "#shares.total = 0100\n#shares.needed = 7\n#shares.happy = 42"
	out, err := FixEncodingDefaults(text)
	require.NoError(t, err)
	assert.Equal(t, "shares.total = 1\nshares.needed = 1\nshares.happy = 1", out)
}

func TestFixEncodingDefaultsMatchCount(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		actual int
	}{
		{"none", "[client]\nshares.needed = 1\n", 0},
		{"two", "#shares.needed = 3\n#shares.happy = 7\n", 2},
		{"four", "#shares.needed = 3\n#shares.happy = 7\n#shares.total = 10\n#shares.total = 10\n", 4},
		{"non-digit value", "#shares.needed = three\n#shares.happy = 7\n#shares.total = 10\n", 2},
		{"unknown key", "#shares.min = 3\n#shares.happy = 7\n#shares.total = 10\n", 2},
		{"empty value", "#shares.needed = \n#shares.happy = 7\n#shares.total = 10\n", 2},
		{"spaced comment", "# shares.needed = 3\n#shares.happy = 7\n#shares.total = 10\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FixEncodingDefaults(tt.text)
			require.Error(t, err)
			assert.Equal(t, tt.text, out)

			var cfgErr *gerrors.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "encodings", cfgErr.Setting)
			assert.Equal(t, 3, cfgErr.Expected)
			assert.Equal(t, tt.actual, cfgErr.Actual)
		})
	}
}

func TestConfigureLogsBothReplacements(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	out, err := Configure(zap.New(core), freshNodeConfig, furl)
	require.NoError(t, err)
	assert.True(t, Inspect(out).Configured())

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "Replaced introducer", logs.All()[0].Message)
	assert.Equal(t, "Replaced encoding parameters", logs.All()[1].Message)
}

func TestConfigureStopsAtFirstFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	text := "introducer.furl = None\n#shares.needed = 3\n"
	out, err := Configure(zap.New(core), text, furl)
	require.Error(t, err)
	assert.Equal(t, text, out, "input returned unchanged")
	assert.True(t, gerrors.IsConfiguration(err))
	assert.Equal(t, 1, logs.Len())
}

func writeConfig(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tahoe.cfg")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func TestRewrite(t *testing.T) {
	path := writeConfig(t, freshNodeConfig, 0640)

	require.NoError(t, Rewrite(zap.NewNop(), path, furl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "introducer.furl = "+furl+"\n")
	assert.Contains(t, text, "shares.needed = 1\nshares.happy = 1\nshares.total = 1\n")
	assert.Contains(t, text, "nickname = node\n")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestRewriteKeepsSymlink(t *testing.T) {
	target := writeConfig(t, freshNodeConfig, 0600)
	link := filepath.Join(t.TempDir(), "tahoe.cfg")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	require.NoError(t, Rewrite(zap.NewNop(), link, furl))

	linkInfo, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, linkInfo.Mode()&os.ModeSymlink, "tahoe.cfg is still a symlink")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, Inspect(string(data)).Configured())

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestRewriteLeavesFileUntouchedOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
		setting string
		actual  int
	}{
		{"no introducer placeholder", strings.Replace(freshNodeConfig, HandshakePlaceholder, "", 1), "introducer", 0},
		{"duplicated introducer placeholder", strings.Replace(freshNodeConfig,
			HandshakePlaceholder+"\n", HandshakePlaceholder+"\n"+HandshakePlaceholder+"\n", 1), "introducer", 2},
		{"missing share default", strings.Replace(freshNodeConfig, "#shares.happy = 7\n", "", 1), "encodings", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content, 0644)

			err := Rewrite(zap.NewNop(), path, furl)
			require.Error(t, err)

			var cfgErr *gerrors.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.setting, cfgErr.Setting)
			assert.Equal(t, tt.actual, cfgErr.Actual)
			assert.Contains(t, err.Error(), path)

			data, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestRewriteMissingFile(t *testing.T) {
	err := Rewrite(zap.NewNop(), filepath.Join(t.TempDir(), "tahoe.cfg"), furl)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspect(t *testing.T) {
	fresh := Inspect(freshNodeConfig)
	assert.Equal(t, 1, fresh.HandshakePlaceholders)
	assert.Equal(t, 3, fresh.EncodingPlaceholders)
	assert.Empty(t, fresh.Introducer)
	assert.False(t, fresh.Configured())

	out, err := Configure(zap.NewNop(), freshNodeConfig, furl)
	require.NoError(t, err)

	done := Inspect(out)
	assert.Zero(t, done.HandshakePlaceholders)
	assert.Zero(t, done.EncodingPlaceholders)
	assert.Equal(t, furl, done.Introducer)
	assert.True(t, done.Configured())
}
