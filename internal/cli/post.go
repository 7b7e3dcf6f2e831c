package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// postCommand creates the post command for editable resources.
func (c *CLI) postCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "post <resource> <guid>",
		Short: "Post a JSON object to an editable resource",
		Long: `Post a JSON object to an editable resource under the given Guid.

The body is read from --file, or from stdin when --file is omitted. It is
sent as-is without validation; the raw status line of the vendor response is
printed and a non-2xx status makes the command fail.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			api, err := c.newClient()
			if err != nil {
				return err
			}

			resp, err := api.EditableResource(args[0], nil).Post(cmd.Context(), args[1], body)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			fmt.Fprintln(cmd.OutOrStdout(), resp.Status)

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				detail, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("post rejected: %s: %s", resp.Status, detail)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file holding the JSON body (defaults to stdin)")

	return cmd
}

func readBody(stdin io.Reader, file string) ([]byte, error) {
	if file == "" {
		return io.ReadAll(stdin)
	}
	body, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
