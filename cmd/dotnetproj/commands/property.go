package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/cli"
	"github.com/willibrandon/dotnetproj/modifier"
	"github.com/willibrandon/dotnetproj/observability"
	"github.com/willibrandon/dotnetproj/project"
)

// PropertyOptions holds the flags shared by the property subcommands.
type PropertyOptions struct {
	ProjectPath string
}

// NewPropertyCommand creates the parent "property" command with subcommands
func NewPropertyCommand(env *cli.Env) *cobra.Command {
	opts := &PropertyOptions{}

	cmd := &cobra.Command{
		Use:   "property",
		Short: "Read and edit MSBuild properties",
		Long: `Read and edit properties declared in PropertyGroup elements of a project file.

A property that is declared more than once is reported as an error rather than
guessing which declaration wins.`,
		Example: `  # Read a property
  dotnetproj property get TargetFramework --project src/App/App.csproj

  # Set a property, adding a PropertyGroup if there is none
  dotnetproj property set Nullable enable --project src/App/App.csproj

  # Remove every declaration of a property
  dotnetproj property remove LangVersion`,
	}

	cmd.PersistentFlags().StringVarP(&opts.ProjectPath, "project", "p", "", "The project file to operate on (defaults to current directory)")

	cmd.AddCommand(&cobra.Command{
		Use:   "get <NAME>",
		Short: "Print the value of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPropertyGet(env, opts, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <NAME> <VALUE>",
		Short: "Set a property, replacing its value in place",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPropertySet(env, opts, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <NAME>",
		Short: "Remove every declaration of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPropertyRemove(env, opts, args[0])
		},
	})

	return cmd
}

func runPropertyGet(env *cli.Env, opts *PropertyOptions, name string) error {
	path, err := resolveProjectPath(env, opts.ProjectPath)
	if err != nil {
		return err
	}
	f, err := loadProject(env, path)
	if err != nil {
		return err
	}

	prop, err := f.Properties().GetProperty(name)
	if err != nil {
		if errors.Is(err, project.ErrPropertyMissing) {
			return fmt.Errorf("property '%s' not found in project '%s'", name, path)
		}
		return err
	}
	env.Console.Println(prop.Value)
	return nil
}

func runPropertySet(env *cli.Env, opts *PropertyOptions, name, value string) error {
	path, err := resolveProjectPath(env, opts.ProjectPath)
	if err != nil {
		return err
	}
	f, err := loadProject(env, path)
	if err != nil {
		return err
	}

	if err := f.Properties().SetProperty(name, value); err != nil {
		return err
	}
	if err := saveDocument(env, path, modifier.KindProject, f); err != nil {
		return err
	}
	observability.PropertyEditsTotal.WithLabelValues("set").Inc()
	env.Console.Success("Set property '%s' to '%s' in project '%s'", name, value, path)
	return nil
}

func runPropertyRemove(env *cli.Env, opts *PropertyOptions, name string) error {
	path, err := resolveProjectPath(env, opts.ProjectPath)
	if err != nil {
		return err
	}
	f, err := loadProject(env, path)
	if err != nil {
		return err
	}

	props := f.Properties()
	if _, ok, err := props.FindProperty(name); err == nil && !ok {
		return fmt.Errorf("property '%s' not found in project '%s'", name, path)
	}
	props.RemoveProperty(name)

	if err := saveDocument(env, path, modifier.KindProject, f); err != nil {
		return err
	}
	observability.PropertyEditsTotal.WithLabelValues("remove").Inc()
	env.Console.Success("Removed property '%s' from project '%s'", name, path)
	return nil
}
