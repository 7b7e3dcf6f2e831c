// Package cli implements the unleashed command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/upOwa/unleashed-py/pkg/client"
	"github.com/upOwa/unleashed-py/pkg/endpoint"
	"github.com/upOwa/unleashed-py/pkg/logging"
)

// CLI holds shared state for all commands.
type CLI struct {
	configPath string
	apiID      string
	apiKey     string
	apiURL     string

	// newClient builds the API client; replaced in tests.
	newClient func() (*client.Client, error)
}

// New creates a new CLI instance.
func New() *CLI {
	c := &CLI{}
	c.newClient = c.buildClient
	return c
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "unleashed",
		Short:        "Query the Unleashed Software inventory API",
		Long: `unleashed is a thin CLI over the Unleashed Software REST API.

Credentials come from a TOML config file, the UNLEASHED_API_ID and
UNLEASHED_API_KEY environment variables, or flags, in increasing order of
precedence.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.LevelWarn
			if verbose {
				level = logging.LevelDebug
			}
			logging.Setup(logging.Config{Level: level, Pretty: true, Output: os.Stderr})
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to TOML config file")
	root.PersistentFlags().StringVar(&c.apiID, "api-id", "", "Unleashed api-auth-id")
	root.PersistentFlags().StringVar(&c.apiKey, "api-key", "", "Unleashed API key (shared secret)")
	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "Unleashed API base URL")

	root.AddCommand(c.getCommand())
	root.AddCommand(c.itemCommand())
	root.AddCommand(c.postCommand())

	return root
}

// buildClient resolves configuration and creates the API client.
func (c *CLI) buildClient() (*client.Client, error) {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}

	if c.apiID != "" {
		cfg.API.ID = c.apiID
	}
	if c.apiKey != "" {
		cfg.API.Key = c.apiKey
	}
	if c.apiURL != "" {
		cfg.API.URL = c.apiURL
	}

	clientCfg := client.DefaultConfig(cfg.API.ID, cfg.API.Key)
	if cfg.API.URL != "" {
		clientCfg.BaseURL = cfg.API.URL
	}

	return client.New(clientCfg)
}

// parseFilter turns repeated --filter key=value arguments into an ordered
// endpoint filter. Order is kept as given because it is signed.
func parseFilter(args []string) (endpoint.Filter, error) {
	var filter endpoint.Filter
	for _, arg := range args {
		key, value, found := splitPair(arg)
		if !found {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", arg)
		}
		filter = filter.With(key, value)
	}
	return filter, nil
}

func splitPair(s string) (key, value string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// writeJSON prints a JSON document followed by a newline.
func writeJSON(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
