package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/cli"
	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/output"
	"github.com/willibrandon/dotnetproj/modifier"
	"github.com/willibrandon/dotnetproj/project"
	"github.com/willibrandon/dotnetproj/version"
)

// PackageOptions holds the flags of the package subcommands.
type PackageOptions struct {
	ProjectPath string
	Version     string
	Format      string
}

// NewPackageCommand creates the parent "package" command with subcommands
func NewPackageCommand(env *cli.Env) *cobra.Command {
	opts := &PackageOptions{}

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Manage package references",
		Long: `Manage NuGet package references in .NET project files.

When a Directory.Packages.props with central package management enabled sits
at or above the project, versions are written there and the PackageReference
in the project carries no Version attribute.`,
		Example: `  # Add a package
  dotnetproj package add Newtonsoft.Json --version 13.0.3

  # List packages in a project
  dotnetproj package list --project src/App/App.csproj

  # Update a package version
  dotnetproj package update Serilog --version 4.0.0

  # Remove a package
  dotnetproj package remove Newtonsoft.Json`,
		// Parent commands have no Run function - they are containers only
	}

	cmd.PersistentFlags().StringVarP(&opts.ProjectPath, "project", "p", "", "The project file to operate on (defaults to current directory)")

	add := &cobra.Command{
		Use:   "add <PACKAGE_ID>",
		Short: "Add a package reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackageAdd(env, opts, args[0])
		},
	}
	add.Flags().StringVarP(&opts.Version, "version", "v", "", "The version of the package to add")

	update := &cobra.Command{
		Use:   "update <PACKAGE_ID>",
		Short: "Change the version of a package reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackageUpdate(env, opts, args[0])
		},
	}
	update.Flags().StringVarP(&opts.Version, "version", "v", "", "The new version")
	_ = update.MarkFlagRequired("version")

	list := &cobra.Command{
		Use:   "list",
		Short: "List package references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackageList(env, opts)
		},
	}
	list.Flags().StringVar(&opts.Format, "format", "console", "Output format (console, json)")

	remove := &cobra.Command{
		Use:   "remove <PACKAGE_ID>",
		Short: "Remove a package reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackageRemove(env, opts, args[0])
		},
	}

	cmd.AddCommand(add, update, list, remove)
	return cmd
}

// packageTarget is a project together with the central packages file that
// governs it, if central package management is on.
type packageTarget struct {
	path      string
	file      *project.File
	propsPath string
	props     *project.PackagesProps
}

func loadPackageTarget(env *cli.Env, projectPath string) (*packageTarget, error) {
	path, err := resolveProjectPath(env, projectPath)
	if err != nil {
		return nil, err
	}
	f, err := loadProject(env, path)
	if err != nil {
		return nil, err
	}
	t := &packageTarget{path: path, file: f}

	propsPath := findPackagesProps(env.Fs, path)
	if propsPath == "" {
		return t, nil
	}
	pf, err := project.Load(env.Fs, propsPath)
	if err != nil {
		return nil, err
	}
	props := project.NewPackagesProps(pf)
	enabled, err := props.GetCentralPackageManagement()
	if err != nil {
		return nil, err
	}
	if enabled {
		t.propsPath, t.props = propsPath, props
	}
	return t, nil
}

func (t *packageTarget) save(env *cli.Env) error {
	if err := saveDocument(env, t.path, modifier.KindProject, t.file); err != nil {
		return err
	}
	if t.props != nil && t.props.Modified() {
		return saveDocument(env, t.propsPath, modifier.KindPackagesProps, t.props.File)
	}
	return nil
}

func validateVersion(v string) error {
	if v == "" {
		return nil
	}
	if _, err := version.ParseRequirement(v); err != nil {
		return fmt.Errorf("invalid package version '%s': %w", v, err)
	}
	return nil
}

func runPackageAdd(env *cli.Env, opts *PackageOptions, packageID string) error {
	if err := validateVersion(opts.Version); err != nil {
		return err
	}
	t, err := loadPackageTarget(env, opts.ProjectPath)
	if err != nil {
		return err
	}

	refs := t.file.PackageReferences()
	var updated bool
	if t.props != nil {
		if _, ok := refs.Find(packageID); !ok {
			refs.Add(packageID)
		} else {
			updated = true
		}
		if opts.Version != "" {
			setPackageVersion(t.props, packageID, opts.Version)
		}
	} else {
		updated = refs.AddOrUpdate(packageID, opts.Version)
	}

	if err := t.save(env); err != nil {
		return err
	}
	if updated {
		env.Console.Success("Updated package '%s' in project '%s'", packageID, t.path)
	} else {
		env.Console.Success("Added package '%s' to project '%s'", packageID, t.path)
	}
	return nil
}

func runPackageUpdate(env *cli.Env, opts *PackageOptions, packageID string) error {
	if err := validateVersion(opts.Version); err != nil {
		return err
	}
	t, err := loadPackageTarget(env, opts.ProjectPath)
	if err != nil {
		return err
	}

	refs := t.file.PackageReferences()
	if _, ok := refs.Find(packageID); !ok {
		return fmt.Errorf("package '%s' not found in project '%s'", packageID, t.path)
	}
	if t.props != nil {
		setPackageVersion(t.props, packageID, opts.Version)
	} else {
		refs.SetVersion(packageID, opts.Version)
	}

	if err := t.save(env); err != nil {
		return err
	}
	env.Console.Success("Updated package '%s' to version '%s'", packageID, opts.Version)
	return nil
}

func setPackageVersion(props *project.PackagesProps, packageID, v string) {
	props.PackageVersions().Set(packageID, v)
}

func runPackageList(env *cli.Env, opts *PackageOptions) error {
	if err := output.ValidateFormat(opts.Format); err != nil {
		return err
	}
	start := time.Now()
	t, err := loadPackageTarget(env, opts.ProjectPath)
	if err != nil {
		return err
	}

	central := map[string]string{}
	if t.props != nil {
		versions, err := t.props.PackageVersions().GetPackageVersions()
		if err != nil {
			return err
		}
		for _, v := range versions {
			central[strings.ToLower(v.Name)] = v.Version
		}
	}

	refs := t.file.PackageReferences().GetPackageReferences()
	if opts.Format == "json" {
		result := output.NewPackageListOutput(t.path, start)
		for _, ref := range refs {
			v := ref.Version
			if v == "" {
				v = central[strings.ToLower(ref.Name)]
			}
			result.Packages = append(result.Packages, output.PackageReference{ID: ref.Name, Version: v})
		}
		result.ElapsedMs = output.MeasureElapsed(start)
		return output.WriteJSON(env.Console.Out(), result)
	}

	if len(refs) == 0 {
		env.Console.Info("No package references found in project '%s'", t.path)
		return nil
	}
	env.Console.Printf("Project '%s' has the following package references:\n", t.path)
	for _, ref := range refs {
		switch {
		case ref.HasVersion():
			env.Console.Printf("  > %-40s %s\n", ref.Name, ref.Version)
		case central[strings.ToLower(ref.Name)] != "":
			env.Console.Printf("  > %-40s %s (central)\n", ref.Name, central[strings.ToLower(ref.Name)])
		default:
			env.Console.Printf("  > %s\n", ref.Name)
		}
	}
	return nil
}

func runPackageRemove(env *cli.Env, opts *PackageOptions, packageID string) error {
	t, err := loadPackageTarget(env, opts.ProjectPath)
	if err != nil {
		return err
	}

	if !t.file.PackageReferences().Remove(packageID) {
		return fmt.Errorf("package '%s' not found in project '%s'", packageID, t.path)
	}
	if err := t.save(env); err != nil {
		return err
	}
	env.Console.Success("Removed package '%s' from project '%s'", packageID, t.path)
	return nil
}
