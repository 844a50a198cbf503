package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/founder_radar/app/display/internal/conf"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/config"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/engine"
	insightLogger "github.com/iWorld-y/founder_radar/app/insight/pkg/logger"
)

// NewInsightEngine 初始化 insight 引擎，补全凭证只保存在服务端
func NewInsightEngine(c *conf.Insight, store engine.StateStore, logger log.Logger) (*engine.Engine, func(), error) {
	cfg := toConfig(c)

	// 初始化日志
	if err := insightLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init insight logger: %v", err)
		_ = insightLogger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewFromConfig(context.Background(), cfg, store)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up insight engine")
	}
	return eng, cleanup, nil
}

// toConfig 将 internal/conf.Insight 转换为 pkg/config.Config
func toConfig(c *conf.Insight) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		return cfg
	}
	if c.Llm != nil {
		cfg.LLM = config.LLMConfig{
			Provider: c.Llm.Provider,
			BaseURL:  c.Llm.BaseUrl,
			APIKey:   c.Llm.ApiKey,
			Model:    c.Llm.Model,
		}
	}
	if c.Search != nil {
		cfg.Search.Provider = c.Search.Provider
		if c.Search.Tavily != nil {
			cfg.Search.Tavily.APIKey = c.Search.Tavily.ApiKey
		}
		if c.Search.Searxng != nil {
			cfg.Search.SearXNG = config.SearXNGConfig{
				BaseURL: c.Search.Searxng.BaseUrl,
				Timeout: int(c.Search.Searxng.Timeout),
			}
		}
	}
	if c.Parse != nil {
		cfg.Parse.Strict = c.Parse.Strict
	}
	if c.Log != nil {
		cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
	}
	if c.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS:        int(c.Concurrency.Qps),
			RPM:        int(c.Concurrency.Rpm),
			MaxRetries: int(c.Concurrency.MaxRetries),
		}
	}
	return cfg
}
