package cli

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/output"
)

var flags GlobalFlags

var rootCmd = &cobra.Command{
	Use:   "dotnetproj",
	Short: "Structural editor for MSBuild solutions and projects",
	Long: `dotnetproj edits .sln and .csproj files structurally: it sets properties,
manages package references, migrates solutions to central package management
and reformats project files, touching only the elements it changes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Environment.Setup(cmd.Context(), flags)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Show help when no command is provided
		_ = cmd.Help()
	},
}

// Environment is the environment shared by all commands
var Environment *Env

// Console is the global console for CLI commands
var Console *output.Console

// Execute runs the root command and releases tracing and metrics resources
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if cerr := Environment.Close(context.Background()); err == nil {
		err = cerr
	}
	return err
}

func init() {
	Console = output.DefaultConsole()
	Environment = NewEnv(Console, afero.NewOsFs())

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "Configuration file to use (default: search .dotnetproj.yaml)")
	pf.StringVar(&flags.Verbosity, "verbosity", "", "Display verbosity (quiet, normal, detailed, diagnostic)")
	pf.BoolVar(&flags.DryRun, "dry-run", false, "Print the changes as diffs instead of writing files")
	pf.StringVar(&flags.TraceExporter, "trace-exporter", "", "Trace exporter (none, stdout, otlp)")
	pf.StringVar(&flags.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
}

// SetupVersion configures version information after variables are set
func SetupVersion() {
	rootCmd.SetVersionTemplate(GetFullVersion() + "\n")
	rootCmd.Version = GetVersion()
}

// AddCommand adds a command to the root command
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// RootCommand returns the root command
func RootCommand() *cobra.Command {
	return rootCmd
}
