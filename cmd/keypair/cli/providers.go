package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/majorcontext/keypair/internal/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available credential provider types",
	Long: `List the strategy types a profile can select with its "type" key.
A profile without a type uses "static".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeProviders(cmd.OutOrStdout(), provider.Describe(), jsonOut)
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

type providerInfo struct {
	Name        string   `json:"type"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases,omitempty"`
	Default     bool     `json:"default,omitempty"`
}

func writeProviders(w io.Writer, infos []provider.Info, asJSON bool) error {
	rows := make([]providerInfo, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, providerInfo{
			Name:        info.Name,
			Description: info.Description,
			Aliases:     info.Aliases,
			Default:     info.Name == provider.DefaultType,
		})
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tALIASES\tDESCRIPTION")
	for _, r := range rows {
		name := r.Name
		if r.Default {
			name += " (default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, dash(strings.Join(r.Aliases, ", ")), r.Description)
	}
	return tw.Flush()
}
