package cli

import (
	"github.com/spf13/cobra"
)

// itemCommand creates the item command for single-entity lookups.
func (c *CLI) itemCommand() *cobra.Command {
	var detail string

	cmd := &cobra.Command{
		Use:   "item <resource> <guid>",
		Short: "Fetch a single entity by Guid",
		Long: `Fetch a single entity by Guid, e.g.

  unleashed item StockOnHand 12345678-9abc-def0-1234-56789abcdef0

With --detail the named sub-resource of the entity is fetched instead and
its Items array is printed:

  unleashed item StockOnHand <guid> --detail AllWarehouses`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.newClient()
			if err != nil {
				return err
			}

			var result []byte
			if detail != "" {
				result, err = api.ItemDetail(args[0], args[1], detail).Results(cmd.Context())
			} else {
				result, err = api.Item(args[0], args[1]).Result(cmd.Context())
			}
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&detail, "detail", "", "sub-resource to fetch, e.g. AllWarehouses")

	return cmd
}
