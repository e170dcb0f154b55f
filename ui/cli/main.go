// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, its global flags and the entry point
// used by the entities-service binary.

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/entities-service/internal/configstore"
	"github.com/toeirei/entities-service/internal/i18n"
	"github.com/toeirei/entities-service/internal/logging"
	"github.com/toeirei/entities-service/internal/prompt"
)

// pathsFunc resolves the two store locations. Tests point it at a temp dir.
var pathsFunc = configstore.DefaultPaths

// newPrompter builds the prompter for a command. Tests rely on the command's
// input not being a terminal.
var newPrompter = func(cmd *cobra.Command) prompt.Prompter {
	return prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
}

// cliError carries the message shown to the operator while keeping the
// underlying cause available to errors.Is/As.
type cliError struct {
	msg string
	err error
}

func (e *cliError) Error() string { return e.msg }
func (e *cliError) Unwrap() error { return e.err }

func userError(err error, msg string) error {
	return &cliError{msg: msg, err: err}
}

// globalOptions are the flags shared by every command.
type globalOptions struct {
	verbose          bool
	language         string
	useServiceDotenv bool
	useCLIDotenv     bool
}

// mode returns the store selected by --use-service-dotenv/--use-cli-dotenv.
func (o *globalOptions) mode() configstore.Mode {
	if o.useServiceDotenv {
		return configstore.ServiceMode
	}
	return configstore.CLIMode
}

// store resolves the store locations for this invocation.
func (o *globalOptions) store() (*configstore.Store, error) {
	paths, err := pathsFunc()
	if err != nil {
		return nil, userError(err, i18n.T("config.error_paths", err))
	}
	logging.Debugf("cli store: %s, service store: %s", paths.CLI, paths.Service)
	return configstore.New(paths), nil
}

// Execute runs the CLI. The main package maps a returned error to a
// non-zero exit status.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates a fresh command tree. Every call returns independent
// commands and flag state, so tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}

	cmd := &cobra.Command{
		Use:           "entities-service",
		Short:         i18n.T("root.short"),
		Version:       compositeVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetDebug(opts.verbose)
			i18n.Init(opts.language)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetVersionTemplate(i18n.T("root.version", "{{.Version}}") + "\n")

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	flags.StringVar(&opts.language, "language", "en", `Message language ("en", "de")`)
	flags.BoolVar(&opts.useServiceDotenv, "use-service-dotenv", false, "Use the .env file also used for the DLite Entities Service")
	flags.BoolVar(&opts.useCLIDotenv, "use-cli-dotenv", false, "Use the .env file only for the CLI (default)")
	cmd.MarkFlagsMutuallyExclusive("use-service-dotenv", "use-cli-dotenv")

	cmd.AddCommand(
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// isAborted reports whether err is a cancelled prompt.
func isAborted(err error) bool {
	return errors.Is(err, prompt.ErrAborted)
}

func abortedError(err error) error {
	return userError(err, i18n.T("config.aborted"))
}

// fprintln writes one line, ignoring write errors on the terminal.
func fprintln(cmd *cobra.Command, msg string) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
}
