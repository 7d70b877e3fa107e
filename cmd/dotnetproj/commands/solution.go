package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/cli"
	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/output"
	"github.com/willibrandon/dotnetproj/scaffold"
	"github.com/willibrandon/dotnetproj/solution"
	"github.com/willibrandon/dotnetproj/traversal"
)

// SolutionOptions holds the flags of the solution subcommands.
type SolutionOptions struct {
	Format    string
	Projects  []string
	Framework string
}

// NewSolutionCommand creates the parent "solution" command with subcommands
func NewSolutionCommand(env *cli.Env) *cobra.Command {
	opts := &SolutionOptions{}

	cmd := &cobra.Command{
		Use:   "solution",
		Short: "Inspect and create solutions",
		Example: `  # List the projects of a solution with their solution folders
  dotnetproj solution list App.sln

  # Create a solution with two projects
  dotnetproj solution new ./repo App --project Web --project Core

  # List the source files of every project
  dotnetproj solution sources App.sln --format json`,
	}

	list := &cobra.Command{
		Use:   "list [SOLUTION]",
		Short: "List the projects of a solution",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolutionList(env, opts, firstArg(args))
		},
	}
	list.Flags().StringVar(&opts.Format, "format", "console", "Output format (console, json)")

	create := &cobra.Command{
		Use:   "new <DIRECTORY> <NAME>",
		Short: "Create a solution with SDK-style projects",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolutionNew(env, opts, args[0], args[1])
		},
	}
	create.Flags().StringArrayVar(&opts.Projects, "project", nil, "Project to create (repeatable)")
	create.Flags().StringVarP(&opts.Framework, "framework", "f", scaffold.DefaultTargetFramework, "Target framework of the new projects")

	sources := &cobra.Command{
		Use:   "sources [SOLUTION]",
		Short: "List the source files of every project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolutionSources(cmd.Context(), env, opts, firstArg(args))
		},
	}
	sources.Flags().StringVar(&opts.Format, "format", "console", "Output format (console, json)")

	cmd.AddCommand(list, create, sources)
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func runSolutionList(env *cli.Env, opts *SolutionOptions, path string) error {
	if err := output.ValidateFormat(opts.Format); err != nil {
		return err
	}
	start := time.Now()
	path, err := resolveSolutionPath(env, path)
	if err != nil {
		return err
	}

	sol, err := solution.ParseSolution(env.Fs, path)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		result := output.NewSolutionListOutput(path, start)
		for _, p := range sol.Projects {
			result.Projects = append(result.Projects, output.SolutionProject{
				Name:          p.Name,
				StructurePath: p.StructurePath,
				Path:          p.Path,
				GUID:          p.GUID,
			})
		}
		result.ElapsedMs = output.MeasureElapsed(start)
		return output.WriteJSON(env.Console.Out(), result)
	}

	if len(sol.Projects) == 0 {
		env.Console.Info("No projects found in solution '%s'", path)
		return nil
	}
	width := 0
	for _, p := range sol.Projects {
		width = max(width, len(p.StructurePath))
	}
	for _, p := range sol.Projects {
		env.Console.Printf("%-*s  %s\n", width, p.StructurePath, p.Path)
	}
	return nil
}

func runSolutionNew(env *cli.Env, opts *SolutionOptions, dir, name string) error {
	b := scaffold.NewSolutionBuilder(name)
	for _, p := range opts.Projects {
		b.AddProject(scaffold.NewProjectBuilder(p).WithProperty("TargetFramework", opts.Framework))
	}

	if env.DryRun {
		env.Console.Info("Would create solution '%s' with %d projects in '%s'", name, len(opts.Projects), dir)
		return nil
	}

	path, err := b.Save(env.Fs, dir)
	if err != nil {
		return fmt.Errorf("failed to create solution: %w", err)
	}
	env.Console.Success("Created solution '%s'", path)
	return nil
}

func runSolutionSources(ctx context.Context, env *cli.Env, opts *SolutionOptions, path string) error {
	if err := output.ValidateFormat(opts.Format); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	path, err := resolveSolutionPath(env, path)
	if err != nil {
		return err
	}

	descriptor, err := solution.NewDescriptorParser(env.Fs, env.Logger).ParseContext(ctx, path)
	if err != nil {
		return err
	}
	sources, err := traversal.NewSourceFileFinder(env.Fs, env.Logger).FindSourceFilesContext(ctx, descriptor)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		result := output.NewSourcesOutput(path, start)
		for _, s := range sources {
			result.Projects = append(result.Projects, output.ProjectSource{Project: s.ProjectPath, Files: s.Files})
		}
		result.ElapsedMs = output.MeasureElapsed(start)
		return output.WriteJSON(env.Console.Out(), result)
	}

	for _, s := range sources {
		env.Console.Printf("%s\n", s.ProjectPath)
		for _, f := range s.Files {
			env.Console.Printf("  %s\n", f)
		}
	}
	return nil
}
