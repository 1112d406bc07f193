package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spetersoncode/aidispatch/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change settings",
	}
	cmd.AddCommand(
		newConfigListCommand(a),
		newConfigGetCommand(a),
		newConfigSetCommand(a),
	)
	return cmd
}

func newConfigListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all settings (API keys masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", a.cfg.Path())
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, key := range config.Keys {
				v, err := a.cfg.Get(key)
				if err != nil {
					return err
				}
				if config.IsSecret(key) {
					v = config.Mask(v)
				}
				fmt.Fprintf(tw, "%s\t%s\n", key, v)
			}
			return tw.Flush()
		},
	}
}

func newConfigGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newConfigSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := a.cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		},
	}
}
