package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	ai "github.com/spetersoncode/aidispatch"
	"github.com/spetersoncode/aidispatch/model"
)

func newModelsCommand() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List known models and their prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ai.ParseProvider(provider)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PROVIDER\tMODEL\tINPUT/1K\tOUTPUT/1K\tNOTE")
			for _, prov := range ai.Providers {
				if p != ai.ProviderAuto && p != prov {
					continue
				}
				def := model.Default(prov).String()
				for _, m := range model.ForProvider(prov) {
					note := ""
					if m.String() == def {
						note = "default"
					}
					fmt.Fprintf(tw, "%s\t%s\t$%.5f\t$%.5f\t%s\n",
						prov, m, m.Pricing().InputPerThousand, m.Pricing().OutputPerThousand, note)
				}
				for _, id := range model.SupportedModels(prov) {
					if _, ok := model.Lookup(id); ok {
						continue
					}
					fmt.Fprintf(tw, "%s\t%s\t-\t-\talias of %s\n", prov, id, model.Resolve(prov, id))
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Only list this provider's models")
	return cmd
}
