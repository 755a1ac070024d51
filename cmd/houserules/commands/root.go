package commands

import (
	"fmt"
	"os"

	"github.com/livp123/houserules/internal/config"
	"github.com/livp123/houserules/internal/runtime"
	"github.com/livp123/houserules/internal/utils/logger"
	"github.com/spf13/cobra"
)

// cfgManager holds the configuration loaded by the persistent pre-run.
// cfgManager 保存持久化预运行阶段加载的配置。
var cfgManager *config.ConfigManager

var RootCmd = &cobra.Command{
	Use:   "houserules",
	Short: "houserules ruleset lifecycle engine",
	Long: `houserules selects, activates and deactivates rulesets of reversible
game rule overrides, isolating every rule callback from the others.
houserules 负责选择、激活和停用由可逆游戏规则覆盖组成的规则集，并隔离每条规则的回调。`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cm := config.NewConfigManager(config.GetConfigPath())
		if err := cm.LoadConfig(); err != nil {
			logger.Init(logger.LoggingConfig{Enabled: false, Level: "info"})
			return fmt.Errorf("load config %s: %w", cm.GetConfigPath(), err)
		}
		logger.Init(*cm.GetLoggingConfig())
		cfgManager = cm

		// Inject logger into context
		// 将日志记录器注入 context
		ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "", "Path to configuration file")

	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(simulateCmd)
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(configCmd)

	// 禁用补全命令描述
	RootCmd.CompletionOptions.DisableDescriptions = true
}

// currentConfig returns the loaded configuration manager, or one holding the defaults.
// currentConfig 返回已加载的配置管理器，未加载时返回持有默认配置的管理器。
func currentConfig() config.Configurable {
	if cfgManager == nil {
		cm := config.NewConfigManager(config.GetConfigPath())
		cm.UpdateConfig(config.DefaultConfig())
		return cm
	}
	return cfgManager
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
