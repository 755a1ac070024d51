package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/livp123/houserules/internal/config"
	"github.com/livp123/houserules/internal/utils/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Manage the configuration file.
管理配置文件。`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults and HOUSERULES_* environment overrides are applied.
输出应用默认值和 HOUSERULES_* 环境变量覆盖后的配置。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(currentConfig().GetConfig())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to the path given by --config.
将默认配置写入 --config 指定的路径。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cm := currentConfig()
		path := cm.GetConfigPath()
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		cm.UpdateConfig(config.DefaultConfig())
		if err := cm.SaveConfig(); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Get(cmd.Context()).Infof("[CLI] Default configuration written to %s", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing configuration file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
