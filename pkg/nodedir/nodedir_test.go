package nodedir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	gerrors "github.com/DeBrosOfficial/giab/pkg/errors"
)

func TestRoles(t *testing.T) {
	assert.Equal(t, []Role{RoleIntroducer, RoleStorage}, Roles())
	assert.Equal(t, "introducer", RoleIntroducer.DirName())
	assert.Equal(t, "node", RoleStorage.DirName())
}

func TestNewPaths(t *testing.T) {
	p, err := NewPaths("/srv/grid")
	require.NoError(t, err)

	assert.Equal(t, "/srv/grid", p.Base())
	assert.Equal(t, "/srv/grid/introducer", p.Dir(RoleIntroducer))
	assert.Equal(t, "/srv/grid/node", p.Dir(RoleStorage))
	assert.Equal(t, "/srv/grid/introducer/private/introducer.furl", p.HandshakeFile())
	assert.Equal(t, "/srv/grid/node/tahoe.cfg", p.ConfigFile())
	assert.Equal(t, "/srv/grid/node/twistd.pid", p.PIDFile(RoleStorage))
}

func TestNewPathsRelative(t *testing.T) {
	p, err := NewPaths("grid")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p.Base()))
	assert.Equal(t, filepath.Join(p.Base(), "node"), p.Dir(RoleStorage))
}

func TestNewPathsEmpty(t *testing.T) {
	_, err := NewPaths("")
	require.Error(t, err)
}

func TestEnsureCreated(t *testing.T) {
	log := zap.NewNop()
	path := filepath.Join(t.TempDir(), "introducer")

	created, err := EnsureCreated(log, path)
	require.NoError(t, err)
	assert.True(t, created, "first call creates the directory")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	created, err = EnsureCreated(log, path)
	require.NoError(t, err)
	assert.False(t, created, "second call sees it already provisioned")
}

func TestEnsureCreatedMissingParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "node")

	created, err := EnsureCreated(zap.NewNop(), path)
	require.Error(t, err)
	assert.False(t, created)
	assert.True(t, gerrors.IsDirectoryCreation(err))

	var dirErr *gerrors.DirectoryCreationError
	require.ErrorAs(t, err, &dirErr)
	assert.Equal(t, path, dirErr.Path)
}

func TestEnsureCreatedPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	parent := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(parent, 0500))

	_, err := EnsureCreated(zap.NewNop(), filepath.Join(parent, "node"))
	require.Error(t, err)
	assert.True(t, gerrors.IsDirectoryCreation(err))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "nope")))
}
