package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/DeBrosOfficial/giab/pkg/lifecycle"
)

// commandSpec describes one subcommand.
type commandSpec struct {
	name  string
	short string

	// needsGrid commands load config, build the logger and the manager.
	needsGrid bool
	// needsTool commands invoke the node management tool.
	needsTool bool

	run func(ctx context.Context, cmd *cobra.Command, a *app) error
}

// commandTable returns every subcommand sorted by name. It is built fresh
// for each root command and never modified afterwards.
func commandTable(info VersionInfo) []commandSpec {
	table := []commandSpec{
		{
			name:      "launch",
			short:     "Start all nodes, creating and configuring each from scratch if necessary.",
			needsGrid: true,
			needsTool: true,
			run: func(ctx context.Context, _ *cobra.Command, a *app) error {
				return a.manager.Launch(ctx)
			},
		},
		{
			name:      "status",
			short:     "Show which nodes are provisioned, configured and running.",
			needsGrid: true,
			run: func(_ context.Context, cmd *cobra.Command, a *app) error {
				return renderStatus(cmd.OutOrStdout(), a.manager.Paths().Base(), a.manager.Status(), a.color)
			},
		},
		{
			name:  "version",
			short: "Print the giab version.",
			run: func(_ context.Context, cmd *cobra.Command, _ *app) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return err
			},
		},
	}

	for _, c := range lifecycle.DispatchCommands() {
		c := c
		table = append(table, commandSpec{
			name:      string(c),
			short:     fmt.Sprintf("Run \"tahoe %s\" on each node directory.", c),
			needsGrid: true,
			needsTool: true,
			run: func(ctx context.Context, _ *cobra.Command, a *app) error {
				return a.manager.Dispatch(ctx, c)
			},
		})
	}

	sort.Slice(table, func(i, j int) bool { return table[i].name < table[j].name })
	return table
}

// command builds the cobra command for this table entry, bound to opts.
func (spec commandSpec) command(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   spec.name,
		Short: spec.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !spec.needsGrid {
				return spec.run(ctx, cmd, nil)
			}

			a, err := newApp(cmd, opts, spec.name)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			if spec.needsTool {
				if _, err := lifecycle.NewDependencyChecker(a.cfg.Tool).CheckAll(); err != nil {
					return err
				}
			}
			return spec.run(ctx, cmd, a)
		},
	}
}
