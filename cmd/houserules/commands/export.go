package commands

import (
	"fmt"

	"github.com/livp123/houserules/internal/core"
	"github.com/livp123/houserules/internal/rulesets"
	"github.com/livp123/houserules/internal/utils/fileutil"
	"github.com/livp123/houserules/internal/utils/logger"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <ruleset>",
	Short: "Export a ruleset as a YAML definition",
	Long: `Export a ruleset as a YAML definition that can be placed in the rulesets directory.
将规则集导出为 YAML 定义，可放入规则集目录中使用。

Examples:
  houserules export "Better Sorcerer"
  houserules export "Better Sorcerer" -o /etc/houserules/rulesets/sorcerer.yaml`,
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
		data, err := rulesets.Encode(rs)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := fileutil.AtomicWriteFile(exportOutput, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", exportOutput, err)
		}
		logger.Get(cmd.Context()).Infof("[CLI] Exported %s to %s", rs.Name(), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the definition to a file instead of stdout")
}
