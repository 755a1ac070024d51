package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/livp123/houserules/internal/core"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered rulesets",
	Long: `List every registered ruleset in registration order.
按注册顺序列出所有已注册的规则集。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry(cmd.Context(), core.NewRegistry(), currentConfig().GetRulesetsConfig())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tRULES\tMULTIPLAYER\tDESCRIPTION")
		for _, rs := range reg.List() {
			fmt.Fprintf(tw, "%s\t%d\t%t\t%s\n", rs.Name(), rs.Len(), rs.MultiplayerSafe(), rs.Description())
		}
		return tw.Flush()
	},
}
