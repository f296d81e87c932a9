// Package nodedir maps grid node roles onto their working directories and
// creates those directories idempotently. Directory presence is the only
// record of whether a node has been provisioned.
package nodedir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	gerrors "github.com/DeBrosOfficial/giab/pkg/errors"
)

// Role identifies a node's function in the grid.
type Role string

const (
	RoleIntroducer Role = "introducer"
	RoleStorage    Role = "storage"
)

// Roles returns every role in the fixed order lifecycle commands visit them.
func Roles() []Role {
	return []Role{RoleIntroducer, RoleStorage}
}

// DirName is the role's directory under the base directory.
func (r Role) DirName() string {
	switch r {
	case RoleStorage:
		return "node"
	default:
		return string(r)
	}
}

const (
	// HandshakeFile is written by the introducer on its first start.
	HandshakeFile = "introducer.furl"
	// ConfigFile is the storage node's configuration.
	ConfigFile = "tahoe.cfg"
	// PIDFile is written by a running node.
	PIDFile = "twistd.pid"

	dirPerm = 0755
)

// Paths is the set of node directories under one base directory. It is
// computed once and never changes.
type Paths struct {
	base string
	dirs map[Role]string
}

// NewPaths derives node directories from base, which is made absolute.
func NewPaths(base string) (*Paths, error) {
	if base == "" {
		return nil, fmt.Errorf("base directory must not be empty")
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", base, err)
	}

	dirs := make(map[Role]string, len(Roles()))
	for _, role := range Roles() {
		dirs[role] = filepath.Join(abs, role.DirName())
	}
	return &Paths{base: abs, dirs: dirs}, nil
}

// Base returns the absolute base directory.
func (p *Paths) Base() string {
	return p.base
}

// Dir returns the working directory for role.
func (p *Paths) Dir(role Role) string {
	if dir, ok := p.dirs[role]; ok {
		return dir
	}
	return filepath.Join(p.base, role.DirName())
}

// HandshakeFile returns introducer/private/introducer.furl.
func (p *Paths) HandshakeFile() string {
	return filepath.Join(p.Dir(RoleIntroducer), "private", HandshakeFile)
}

// ConfigFile returns node/tahoe.cfg.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.Dir(RoleStorage), ConfigFile)
}

// PIDFile returns the twistd pid file for role.
func (p *Paths) PIDFile(role Role) string {
	return filepath.Join(p.Dir(role), PIDFile)
}

// EnsureCreated creates path if it is absent and reports whether it did.
// An existing entry at path counts as already provisioned. Every other
// failure is a DirectoryCreationError. Parents are not created.
func EnsureCreated(log *zap.Logger, path string) (bool, error) {
	err := os.Mkdir(path, dirPerm)
	switch {
	case err == nil:
		log.Debug("Created directory", zap.String("path", path))
		return true, nil
	case errors.Is(err, fs.ErrExist):
		return false, nil
	default:
		return false, gerrors.NewDirectoryCreationError(path, err)
	}
}

// Exists reports whether path is present. Used by status reporting only;
// provisioning relies on EnsureCreated's atomic mkdir.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
