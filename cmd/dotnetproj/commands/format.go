package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/cli"
	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/watch"
	"github.com/willibrandon/dotnetproj/modifier"
	"github.com/willibrandon/dotnetproj/observability"
)

// FormatOptions holds the configuration for the format command.
type FormatOptions struct {
	Watch bool
}

// NewFormatCommand creates the format command.
func NewFormatCommand(env *cli.Env) *cobra.Command {
	opts := &FormatOptions{}

	cmd := &cobra.Command{
		Use:   "format <FILE>...",
		Short: "Reformat project and props files",
		Long: `Rewrite MSBuild files with the canonical layout: two-space indentation,
one element per line and normalized attribute spacing.

Examples:
  dotnetproj format src/App/App.csproj
  dotnetproj format Directory.Build.props Directory.Packages.props
  dotnetproj format --watch src/App/App.csproj`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd.Context(), env, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Keep running and reformat files when they change")

	return cmd
}

func runFormat(ctx context.Context, env *cli.Env, paths []string, opts *FormatOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	for _, path := range paths {
		if err := formatFile(ctx, env, path); err != nil {
			return err
		}
	}

	if !opts.Watch {
		return nil
	}

	w, err := watch.New(paths, func(ctx context.Context, path string) error {
		return formatFile(ctx, env, path)
	}, env.Logger)
	if err != nil {
		return err
	}
	env.Console.Info("Watching %d files for changes", len(paths))
	return w.Run(ctx)
}

// formatFile rewrites path when its formatted text differs from the file.
func formatFile(ctx context.Context, env *cli.Env, path string) (err error) {
	_, span := observability.StartFormatSpan(ctx, path)
	defer func() { observability.EndSpanWithError(span, err) }()

	f, err := loadProject(env, path)
	if err != nil {
		return err
	}
	text, err := f.ToXMLString()
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", path, err)
	}

	if text == f.Source() {
		observability.DocumentsFormattedTotal.WithLabelValues("false").Inc()
		env.Console.Detail("%s is already formatted", path)
		return nil
	}

	observability.DocumentsFormattedTotal.WithLabelValues("true").Inc()
	if env.DryRun {
		showDiff(env, modifier.DocumentDiff{Path: path, Kind: modifier.KindProject, Before: f.Source(), After: text})
		return nil
	}
	if err := f.Save(env.Fs, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	env.Console.Success("Formatted %s", path)
	return nil
}
