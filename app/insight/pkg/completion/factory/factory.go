package factory

import (
	"context"
	"fmt"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/completion"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/config"
)

// NewClient 根据配置创建补全客户端，并叠加限流层
func NewClient(ctx context.Context, cfg *config.Config) (completion.Client, error) {
	base, err := newProvider(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	c := cfg.Concurrency
	return completion.NewLimited(base, c.RPM, c.QPS, c.MaxRetries), nil
}

func newProvider(ctx context.Context, llm config.LLMConfig) (completion.Client, error) {
	params := completion.DefaultParams(llm.Model)

	switch llm.Provider {
	case "", "openai":
		if llm.APIKey == "" {
			return nil, fmt.Errorf("llm api key is missing")
		}
		return completion.NewOpenAIClient(completion.OpenAIConfig{
			BaseURL: llm.BaseURL,
			APIKey:  llm.APIKey,
		}, params), nil

	case "gemini":
		return completion.NewGeminiClient(ctx, llm.APIKey, params)

	case "eino":
		if llm.APIKey == "" {
			return nil, fmt.Errorf("llm api key is missing")
		}
		baseURL := llm.BaseURL
		if baseURL == "" {
			baseURL = completion.DefaultOpenAIBaseURL
		}
		return completion.NewEinoOpenAIClient(ctx, baseURL, llm.APIKey, params)

	default:
		return nil, fmt.Errorf("unknown llm provider: %s", llm.Provider)
	}
}
