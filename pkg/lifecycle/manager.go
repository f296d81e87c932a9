// Package lifecycle drives a grid's nodes through provisioning, startup and
// the start/stop/restart commands by invoking the node management tool.
package lifecycle

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/DeBrosOfficial/giab/pkg/handshake"
	"github.com/DeBrosOfficial/giab/pkg/logging"
	"github.com/DeBrosOfficial/giab/pkg/nodedir"
	"github.com/DeBrosOfficial/giab/pkg/process"
	"github.com/DeBrosOfficial/giab/pkg/tahoecfg"
)

// Command is a tool subcommand applied to every node.
type Command string

const (
	CommandStart   Command = "start"
	CommandStop    Command = "stop"
	CommandRestart Command = "restart"
)

// DispatchCommands lists the commands Dispatch accepts.
func DispatchCommands() []Command {
	return []Command{CommandStart, CommandStop, CommandRestart}
}

// Manager runs lifecycle operations for the nodes under one base directory.
type Manager struct {
	paths    *nodedir.Paths
	topology *Topology
	runner   process.Runner
	waiter   *handshake.Waiter
	tool     string
	logger   *zap.Logger
}

// Option customizes a Manager.
type Option func(*Manager)

// WithRunner replaces the process runner.
func WithRunner(r process.Runner) Option {
	return func(m *Manager) { m.runner = r }
}

// WithWaiter replaces the handshake waiter.
func WithWaiter(w *handshake.Waiter) Option {
	return func(m *Manager) { m.waiter = w }
}

// WithTool sets the node management executable.
func WithTool(tool string) Option {
	return func(m *Manager) { m.tool = tool }
}

// NewManager creates a manager. logger is the parent of every operation's
// named channel.
func NewManager(paths *nodedir.Paths, logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		paths:    paths,
		topology: DefaultTopology(),
		runner:   process.NewExecRunner(),
		waiter:   handshake.NewWaiter(handshake.DefaultInterval),
		tool:     "tahoe",
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Paths returns the node directories the manager operates on.
func (m *Manager) Paths() *nodedir.Paths {
	return m.paths
}

// Launch brings the whole grid up, provisioning and configuring nodes whose
// directories do not exist yet. Nodes that already exist are only started.
// The introducer is running before the storage node is created.
func (m *Manager) Launch(ctx context.Context) error {
	log := logging.Channel(m.logger, "launch", "")

	if _, err := nodedir.EnsureCreated(log, m.paths.Base()); err != nil {
		return err
	}

	if _, err := m.provision(ctx, nodedir.RoleIntroducer); err != nil {
		return err
	}
	if err := m.startNode(ctx, nodedir.RoleIntroducer); err != nil {
		return err
	}

	created, err := m.provision(ctx, nodedir.RoleStorage)
	if err != nil {
		return err
	}
	if created {
		if err := m.configureStorage(ctx); err != nil {
			return err
		}
	}

	if err := m.startNode(ctx, nodedir.RoleStorage); err != nil {
		return err
	}

	log.Info("Grid launched", zap.String("base", m.paths.Base()))
	return nil
}

// provision creates the role's directory and, if it is new, runs the tool's
// create subcommand in it. A directory that already exists is left alone
// even if a previous create failed part way.
func (m *Manager) provision(ctx context.Context, role nodedir.Role) (bool, error) {
	log := logging.Channel(m.logger, string(role), "create")

	spec, err := m.topology.Spec(role)
	if err != nil {
		return false, err
	}

	dir := m.paths.Dir(role)
	created, err := nodedir.EnsureCreated(log, dir)
	if err != nil || !created {
		return false, err
	}

	log.Info("Creating", zap.String("role", string(role)))
	if err := m.runner.Run(ctx, log, m.tool, spec.CreateCommand, dir); err != nil {
		return true, err
	}
	return true, nil
}

func (m *Manager) startNode(ctx context.Context, role nodedir.Role) error {
	log := logging.Channel(m.logger, string(role), "start")
	log.Info("Starting", zap.String("role", string(role)))
	return m.runner.Run(ctx, log, m.tool, string(CommandStart), "--basedir", m.paths.Dir(role))
}

// configureStorage waits for the introducer's furl and writes it, with the
// single-node share counts, into the storage node's tahoe.cfg.
func (m *Manager) configureStorage(ctx context.Context) error {
	waitLog := logging.Channel(m.logger, string(nodedir.RoleIntroducer), "handshake")
	furl, err := m.waiter.Wait(ctx, waitLog, m.paths.HandshakeFile())
	if err != nil {
		return err
	}

	log := logging.Channel(m.logger, string(nodedir.RoleStorage), "configure")
	log.Info("Reconfiguring node", zap.String("dir", m.paths.Dir(nodedir.RoleStorage)))
	return tahoecfg.Rewrite(log, m.paths.ConfigFile(), furl)
}

// Dispatch runs "<tool> <cmd> --basedir <dir>" for every node in topology
// order, stopping at the first failure.
func (m *Manager) Dispatch(ctx context.Context, cmd Command) error {
	if !validCommand(cmd) {
		return fmt.Errorf("unsupported lifecycle command %q", cmd)
	}

	for _, role := range m.topology.Roles() {
		log := logging.Channel(m.logger, string(role), string(cmd))
		log.Info(fmt.Sprintf("%s %s", role, cmd))
		if err := m.runner.Run(ctx, log, m.tool, string(cmd), "--basedir", m.paths.Dir(role)); err != nil {
			return err
		}
	}
	return nil
}

// Start runs "<tool> start" on every node.
func (m *Manager) Start(ctx context.Context) error {
	return m.Dispatch(ctx, CommandStart)
}

// Stop runs "<tool> stop" on every node.
func (m *Manager) Stop(ctx context.Context) error {
	return m.Dispatch(ctx, CommandStop)
}

// Restart runs "<tool> restart" on every node.
func (m *Manager) Restart(ctx context.Context) error {
	return m.Dispatch(ctx, CommandRestart)
}

func validCommand(cmd Command) bool {
	for _, c := range DispatchCommands() {
		if c == cmd {
			return true
		}
	}
	return false
}
