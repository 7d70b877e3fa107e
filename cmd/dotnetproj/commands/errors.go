package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// InvalidProjectFileError is returned when a solution file is passed where
// a project file is expected.
type InvalidProjectFileError struct {
	Path string
}

func (e *InvalidProjectFileError) Error() string {
	return fmt.Sprintf("%s is a solution file; pass a project file with --project", e.Path)
}

// Verb-first patterns that should be detected and rejected
var verbFirstPatterns = map[string]string{
	"add package":     "dotnetproj package add",
	"remove package":  "dotnetproj package remove",
	"list package":    "dotnetproj package list",
	"update package":  "dotnetproj package update",
	"get property":    "dotnetproj property get",
	"set property":    "dotnetproj property set",
	"remove property": "dotnetproj property remove",
	"list solution":   "dotnetproj solution list",
	"new solution":    "dotnetproj solution new",
	"set framework":   "dotnetproj framework set",
	"migrate":         "dotnetproj cpm migrate",
}

// SetupCustomErrorHandler configures verb-first pattern detection
func SetupCustomErrorHandler(rootCmd *cobra.Command) {
	rootCmd.SilenceErrors = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if err == nil {
			return nil
		}
		if suggestion := suggestNounFirst(commandWords(cmd)); suggestion != "" {
			return fmt.Errorf("the verb-first form is not supported. Try: %s", suggestion)
		}
		return err
	})

	rootCmd.Args = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return nil
		}
		return HandleUnknownCommand(cmd, args)
	}
}

// HandleUnknownCommand provides suggestions for unknown commands
func HandleUnknownCommand(cmd *cobra.Command, args []string) error {
	if suggestion := suggestNounFirst(args); suggestion != "" {
		return fmt.Errorf("the verb-first form is not supported. Try: %s", suggestion)
	}
	return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
}

func commandWords(cmd *cobra.Command) []string {
	parts := []string{}
	for c := cmd; c != nil && c.Parent() != nil; c = c.Parent() {
		parts = append([]string{c.Name()}, parts...)
	}
	return parts
}

// suggestNounFirst matches the leading words of args against the verb-first
// patterns, longest pattern first.
func suggestNounFirst(args []string) string {
	if len(args) >= 2 {
		if s, ok := verbFirstPatterns[strings.ToLower(args[0]+" "+args[1])]; ok {
			return s
		}
	}
	if len(args) >= 1 {
		if s, ok := verbFirstPatterns[strings.ToLower(args[0])]; ok {
			return s
		}
	}
	return ""
}
