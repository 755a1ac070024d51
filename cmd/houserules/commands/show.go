package commands

import (
	"fmt"

	"github.com/livp123/houserules/internal/core"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <ruleset>",
	Short: "Show a ruleset and the capabilities of its rules",
	Long: `Show the welcome text of a ruleset followed by the capability flags of each rule.
显示规则集的欢迎文本以及每条规则的能力标志。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry(cmd.Context(), core.NewRegistry(), currentConfig().GetRulesetsConfig())
		if err != nil {
			return err
		}
		rs, err := reg.Lookup(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, core.WelcomeMessage(rs))
		fmt.Fprintln(out)
		for i, r := range rs.Rules() {
			caps := rs.Capabilities(i)
			fmt.Fprintf(out, "%d. %s (multiplayer_safe=%t patchable=%t syncables=%s)\n",
				i+1, r.Name(), caps.MultiplayerSafe, caps.Patchable, caps.ModifiedSyncables)
		}
		fmt.Fprintf(out, "\nmultiplayer safe: %t, syncables: %s\n", rs.MultiplayerSafe(), rs.ModifiedSyncables())
		return nil
	},
}
