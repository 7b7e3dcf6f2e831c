package cli

import (
	"github.com/spf13/cobra"
)

// getCommand creates the get command for list resources.
func (c *CLI) getCommand() *cobra.Command {
	var (
		page    int
		all     bool
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "get <resource>",
		Short: "Fetch a list resource (Products, StockOnHand, ...)",
		Long: `Fetch a list resource.

By default the first page is printed verbatim. With --all every page is
walked sequentially and items repeated across page boundaries collapse to
one. With --page N exactly that page is fetched.

Filters are passed as repeated --filter key=value flags; their order is
preserved on the wire because the filter string is the payload of the
request signature. Values are sent unescaped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(filters)
			if err != nil {
				return err
			}

			api, err := c.newClient()
			if err != nil {
				return err
			}

			resource := api.Resource(args[0], filter)

			var result []byte
			switch {
			case all:
				result, err = resource.AllResults(cmd.Context())
			case page > 0:
				result, err = resource.Page(cmd.Context(), page)
			default:
				result, err = resource.FirstPage(cmd.Context())
			}
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "fetch a single page")
	cmd.Flags().BoolVar(&all, "all", false, "walk all pages")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "query filter as key=value (repeatable, order preserved)")
	cmd.MarkFlagsMutuallyExclusive("page", "all")

	return cmd
}
