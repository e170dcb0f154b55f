// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/entities-service/internal/config"
	"github.com/toeirei/entities-service/internal/configstore"
	"github.com/toeirei/entities-service/internal/i18n"
	"github.com/toeirei/entities-service/internal/prompt"
	"github.com/toeirei/entities-service/util/slicest"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var unsetAll, yes bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: i18n.T("config.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !unsetAll {
				return cmd.Help()
			}
			return runUnsetAll(cmd, opts, yes)
		},
	}
	cmd.Flags().BoolVar(&unsetAll, "unset-all", false, "Unset (remove) all configuration options in dotenv file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the --unset-all confirmation prompt")

	cmd.AddCommand(
		newConfigSetCmd(opts),
		newConfigUnsetCmd(opts),
		newConfigShowCmd(opts),
		newConfigPathCmd(opts),
	)
	return cmd
}

// keyArgs validates the configuration option in args[0] before anything
// touches the store.
func keyArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return err
		}
		_, err := configstore.ParseKey(args[0])
		return err
	}
}

// completeKeys offers the configuration options with their descriptions.
func completeKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	matches := slicest.Filter(configstore.Keys(), func(k configstore.ConfigKey) bool {
		return strings.HasPrefix(k.String(), strings.ToLower(toComplete))
	})
	return slicest.Map(matches, func(k configstore.ConfigKey) string {
		return k.String() + "\t" + k.Description()
	}), cobra.ShellCompDirectiveNoFileComp
}

func keyHelp() string {
	var b strings.Builder
	b.WriteString("Configuration options:\n")
	for _, k := range configstore.Keys() {
		fmt.Fprintf(&b, "  %-15s %s\n", k.String(), k.Description())
	}
	fmt.Fprintf(&b, "\nThese can also be set as environment variables by prefixing with %q.", config.EnvPrefix+"_")
	return b.String()
}

func newConfigSetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: i18n.T("config.set_short"),
		Long: i18n.T("config.set_short") + "\n\n" + keyHelp() +
			"\n\nThe value is prompted for if not provided; input is hidden for sensitive options.",
		Args:              keyArgs(1, 2),
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _ := configstore.ParseKey(args[0])

			var value string
			if len(args) > 1 {
				value = args[1]
			}
			if value == "" {
				var err error
				value, err = newPrompter(cmd).Value(i18n.T("config.prompt_value", key), key.Sensitive())
				if isAborted(err) {
					return abortedError(err)
				}
				if err != nil {
					return err
				}
			}

			store, err := opts.store()
			if err != nil {
				return err
			}
			if err := store.Set(key, value, opts.mode()); err != nil {
				return err
			}
			if key.Sensitive() {
				fprintln(cmd, i18n.T("config.set_done_sensitive", key))
			} else {
				fprintln(cmd, i18n.T("config.set_done", key, value))
			}
			return nil
		},
	}
}

func newConfigUnsetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "unset <key>",
		Short:             i18n.T("config.unset_short"),
		Long:              i18n.T("config.unset_short") + "\n\n" + keyHelp(),
		Args:              keyArgs(1, 1),
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _ := configstore.ParseKey(args[0])
			store, err := opts.store()
			if err != nil {
				return err
			}
			if err := store.Unset(key, opts.mode()); err != nil {
				return err
			}
			fprintln(cmd, i18n.T("config.unset_done", key))
			return nil
		},
	}
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	var reveal, effective bool
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: i18n.T("config.show_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			store, err := opts.store()
			if err != nil {
				return err
			}
			path := store.Path(opts.mode())

			var entries []configstore.Entry
			if effective {
				entries, err = effectiveEntries(path, reveal)
			} else {
				entries, err = store.Show(opts.mode(), reveal)
			}
			if errors.Is(err, configstore.ErrNotFound) {
				return userError(err, i18n.T("config.no_file", path))
			}
			if err != nil {
				return err
			}
			return renderEntries(cmd.OutOrStdout(), format, entries)
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal-sensitive", false, "Reveal sensitive values. (DANGEROUS! Use with caution.)")
	cmd.Flags().BoolVar(&effective, "effective", false, "Show the settings in effect (defaults, .env file and environment)")
	cmd.Flags().StringVarP(&output, "output", "o", string(outputText), "Output format: text, yaml or json")
	return cmd
}

// effectiveEntries resolves every option the way the service would see it.
func effectiveEntries(path string, reveal bool) ([]configstore.Entry, error) {
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	var out []configstore.Entry
	for _, key := range configstore.Keys() {
		value := settings.Lookup(key)
		if value != "" && key.Sensitive() && !reveal {
			value = configstore.Mask
		}
		out = append(out, configstore.Entry{Key: key, Value: value})
	}
	return out, nil
}

func newConfigPathCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: i18n.T("config.path_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			fprintln(cmd, store.Path(opts.mode()))
			return nil
		},
	}
}

func runUnsetAll(cmd *cobra.Command, opts *globalOptions, yes bool) error {
	mode := opts.mode()
	if !yes {
		ok, err := newPrompter(cmd).Confirm(i18n.T("config.confirm_unset_all", mode))
		if isAborted(err) {
			return abortedError(err)
		}
		if err != nil {
			return err
		}
		if !ok {
			return abortedError(prompt.ErrAborted)
		}
	}

	store, err := opts.store()
	if err != nil {
		return err
	}
	path := store.Path(mode)
	removed, err := store.UnsetAll(mode)
	if err != nil {
		return err
	}
	if removed {
		fprintln(cmd, i18n.T("config.removed", path))
	} else {
		fprintln(cmd, i18n.T("config.no_file", path))
	}
	return nil
}
