package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/config"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/engine"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/logger"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/storage"
)

var (
	configPath string
	owner      string
	timeout    time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "founder_radar",
	Short: "Turn a business topic into founder pain points, strategies and triggers",
	Long: `founder_radar sends a business topic to a hosted chat-completion model,
extracts PAIN / STRATEGY / TRIGGER lines from the reply and prints the
resulting dashboard cards. It also offers a short-answer founder chat and
deep-research source lookup.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&owner, "owner", "cli", "Dashboard owner used for persisted state")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(researchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEngine 加载配置并初始化日志、存储与引擎，返回的 cleanup 需要调用方执行
func newEngine(ctx context.Context) (*engine.Engine, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("无法加载配置文件: %w", err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, nil, fmt.Errorf("无法初始化日志: %w", err)
	}

	cleanup := func() {}
	var store engine.StateStore
	if cfg.DB.Driver != "" {
		s, err := storage.Open(ctx, cfg.DB.Driver, cfg.DB.Source)
		if err != nil {
			logger.Log.Errorf("无法连接数据库: %v. 状态仅保存在内存中。", err)
		} else {
			store = s
			cleanup = func() { s.Close() }
			logger.Log.Info("已成功连接到数据库")
		}
	}

	eng, err := engine.NewFromConfig(ctx, cfg, store)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}
