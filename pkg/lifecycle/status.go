package lifecycle

import (
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/DeBrosOfficial/giab/pkg/nodedir"
	"github.com/DeBrosOfficial/giab/pkg/tahoecfg"
)

// NodeStatus is a point-in-time view of one node, derived from its directory.
type NodeStatus struct {
	Role        nodedir.Role
	Dir         string
	Provisioned bool // directory exists
	Configured  bool // storage: tahoe.cfg carries the furl and share counts; introducer: furl published
	Handshake   bool // introducer only: private/introducer.furl exists
	Running     bool
	PID         int
}

// Status inspects every node without running the tool or changing anything.
func (m *Manager) Status() []NodeStatus {
	roles := m.topology.Roles()
	out := make([]NodeStatus, 0, len(roles))
	for _, role := range roles {
		out = append(out, m.nodeStatus(role))
	}
	return out
}

func (m *Manager) nodeStatus(role nodedir.Role) NodeStatus {
	st := NodeStatus{
		Role: role,
		Dir:  m.paths.Dir(role),
	}
	st.Provisioned = nodedir.Exists(st.Dir)
	if !st.Provisioned {
		return st
	}

	switch role {
	case nodedir.RoleIntroducer:
		st.Handshake = nodedir.Exists(m.paths.HandshakeFile())
		st.Configured = st.Handshake
	case nodedir.RoleStorage:
		if data, err := os.ReadFile(m.paths.ConfigFile()); err == nil {
			st.Configured = tahoecfg.Inspect(string(data)).Configured()
		}
	}

	st.PID, st.Running = readPID(m.paths.PIDFile(role))
	return st
}

// readPID returns the pid in path and whether that process is alive.
func readPID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, checkProcessRunning(pid)
}

func checkProcessRunning(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || err == syscall.EPERM
}
