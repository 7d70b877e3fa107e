package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/cli"
	"github.com/willibrandon/dotnetproj/modifier"
)

// NewCPMCommand creates the parent "cpm" command with subcommands
func NewCPMCommand(env *cli.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cpm",
		Short: "Central package management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate [SOLUTION]",
		Short: "Move package versions into Directory.Packages.props",
		Long: `Enable central package management for a solution.

Every versioned PackageReference of every project becomes a PackageVersion in
the Directory.Packages.props next to the solution, and the references lose
their Version attribute. A package referenced at different versions gets the
highest one and a warning is logged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCPMMigrate(cmd.Context(), env, firstArg(args))
		},
	})

	return cmd
}

func runCPMMigrate(ctx context.Context, env *cli.Env, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path, err := resolveSolutionPath(env, path)
	if err != nil {
		return err
	}

	m, err := modifier.NewFactory(env.Fs, env.ModifierOptions()).CreateContext(ctx, path)
	if err != nil {
		return err
	}

	err = modifier.NewCentralPackageManagementMigrator(env.Logger).Migrate(ctx, m)
	if errors.Is(err, modifier.ErrAlreadyMigrated) {
		env.Console.Warning("Central package management is already enabled for '%s'", path)
		return nil
	}
	if err != nil {
		return err
	}

	if err := saveSolution(ctx, env, m); err != nil {
		return err
	}
	env.Console.Success("Migrated %d projects of '%s' to central package management", len(m.Projects()), path)
	return nil
}
