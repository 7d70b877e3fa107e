package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/cli"
	"github.com/willibrandon/dotnetproj/modifier"
	"github.com/willibrandon/dotnetproj/observability"
)

// NewFrameworkCommand creates the parent "framework" command with subcommands
func NewFrameworkCommand(env *cli.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "framework",
		Short: "Target framework operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <SOLUTION> <TFM>",
		Short: "Set TargetFramework in every project of a solution",
		Long: `Replace the value of every TargetFramework element in the projects of a
solution. Projects that declare TargetFrameworks (plural) are left alone.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrameworkSet(cmd.Context(), env, args[0], args[1])
		},
	})

	return cmd
}

func runFrameworkSet(ctx context.Context, env *cli.Env, path, tfm string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	m, err := modifier.NewFactory(env.Fs, env.ModifierOptions()).CreateContext(ctx, path)
	if err != nil {
		return err
	}
	m.Apply(modifier.NewSetTargetFrameworkStrategy(tfm))

	if err := saveSolution(ctx, env, m); err != nil {
		return err
	}
	observability.PropertyEditsTotal.WithLabelValues("set").Inc()
	env.Console.Success("Set TargetFramework to '%s' in %d projects", tfm, len(m.Projects()))
	return nil
}
