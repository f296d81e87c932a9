// Package cli builds the giab command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/giab/pkg/config"
	"github.com/DeBrosOfficial/giab/pkg/handshake"
	"github.com/DeBrosOfficial/giab/pkg/lifecycle"
	"github.com/DeBrosOfficial/giab/pkg/logging"
	"github.com/DeBrosOfficial/giab/pkg/nodedir"
	"github.com/DeBrosOfficial/giab/pkg/process"
)

const description = "Tahoe-LAFS Grid In A Box - create/configure/start/stop a self-contained set of nodes."

// VersionInfo is populated via -ldflags at build time.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

func (v VersionInfo) String() string {
	s := "giab " + v.Version
	if v.Commit != "" {
		s += fmt.Sprintf(" (commit %s)", v.Commit)
	}
	if v.Date != "" {
		s += fmt.Sprintf(" built %s", v.Date)
	}
	return s
}

// Options holds the persistent flag values.
type Options struct {
	ConfigPath       string
	BaseDir          string
	LogLevel         string
	Tool             string
	PollInterval     time.Duration
	HandshakeTimeout time.Duration
	NoColor          bool
}

// NewRootCommand builds the root command and its subcommands.
func NewRootCommand(info VersionInfo) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:           "giab",
		Short:         "Tahoe-LAFS Grid In A Box",
		Long:          description,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.BaseDir, "dir", "d", "", "The base directory which contains node directories.")
	pf.StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel,
		fmt.Sprintf("Set logging level (%s).", strings.Join(logging.LevelNames(), ", ")))
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ~/.giab/giab.yaml if present).")
	pf.StringVar(&opts.Tool, "tool", config.DefaultTool, "Node management executable.")
	pf.DurationVar(&opts.PollInterval, "poll-interval", config.DefaultPollInterval,
		"Delay between reads of the introducer's furl during launch.")
	pf.DurationVar(&opts.HandshakeTimeout, "handshake-timeout", 0,
		"Give up waiting for the introducer's furl after this long (0 waits forever).")
	pf.BoolVar(&opts.NoColor, "no-color", false, "Disable ANSI colors even if the config file enables them.")

	for _, spec := range commandTable(info) {
		root.AddCommand(spec.command(opts))
	}
	return root
}

// Execute runs the command tree with a context cancelled on SIGINT or SIGTERM.
func Execute(info VersionInfo, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(info)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// app is everything a grid command needs, built once per invocation.
type app struct {
	cfg     *config.Config
	logger  *logging.ColoredLogger
	manager *lifecycle.Manager
	color   bool
}

func newApp(cmd *cobra.Command, opts *Options, name string) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd.Flags(), opts, cfg)

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := cfg.ResolveBaseDir(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	color := cfg.Logging.Color && !opts.NoColor
	logger := logging.New(logging.Options{
		Level:        level,
		EnableColors: color,
		Output:       cmd.OutOrStdout(),
	})
	logger.Logger = logger.With(zap.String("run", uuid.NewString()))

	logger.Channel("options", "").Debug(name,
		zap.String("base_dir", cfg.BaseDir),
		zap.String("tool", cfg.Tool),
		zap.String("log_level", cfg.Logging.Level),
		zap.Duration("poll_interval", cfg.Handshake.PollInterval),
		zap.Duration("handshake_timeout", cfg.Handshake.Timeout),
	)

	paths, err := nodedir.NewPaths(cfg.BaseDir)
	if err != nil {
		return nil, err
	}

	runner := &process.ExecRunner{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
	waiter := handshake.NewWaiter(cfg.Handshake.PollInterval, handshake.WithTimeout(cfg.Handshake.Timeout))

	manager := lifecycle.NewManager(paths, logger.Logger,
		lifecycle.WithRunner(runner),
		lifecycle.WithWaiter(waiter),
		lifecycle.WithTool(cfg.Tool),
	)

	return &app{cfg: cfg, logger: logger, manager: manager, color: color}, nil
}

// applyFlags overlays flags the user set explicitly, so a config file value
// wins over a flag default.
func applyFlags(flags *pflag.FlagSet, opts *Options, cfg *config.Config) {
	if flags.Changed("dir") {
		cfg.BaseDir = opts.BaseDir
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.LogLevel
	}
	if flags.Changed("tool") {
		cfg.Tool = opts.Tool
	}
	if flags.Changed("poll-interval") {
		cfg.Handshake.PollInterval = opts.PollInterval
	}
	if flags.Changed("handshake-timeout") {
		cfg.Handshake.Timeout = opts.HandshakeTimeout
	}
}
