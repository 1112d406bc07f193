package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTemplateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates"},
		Short:   "Manage saved prompt templates",
	}
	cmd.AddCommand(
		newTemplateListCommand(a),
		newTemplateShowCommand(a),
		newTemplateSetCommand(a),
		newTemplateDeleteCommand(a),
	)
	return cmd
}

func newTemplateListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := a.templates.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(templates) == 0 {
				fmt.Fprintln(out, "No templates saved.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDESCRIPTION\tPROMPT")
			for _, t := range templates {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, t.Description, truncate(t.Prompt, 50))
			}
			return tw.Flush()
		},
	}
}

func newTemplateShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a template prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok, err := a.templates.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("template %q not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Prompt)
			return nil
		},
	}
}

func newTemplateSetCommand(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "set <name> <prompt...>",
		Short: "Create or replace a template",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.templates.Set(cmd.Context(), args[0], strings.Join(args[1:], " "), description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Short description")
	return cmd
}

func newTemplateDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.templates.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("template %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", args[0])
			return nil
		},
	}
}
