package completion

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// DefaultOpenAIBaseURL 默认的 OpenAI 兼容补全地址
const DefaultOpenAIBaseURL = "https://api.fireworks.ai/inference/v1"

// DefaultModel 默认模型
const DefaultModel = "accounts/fireworks/models/deepseek-v3"

// OpenAIConfig OpenAI 兼容接口配置
type OpenAIConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// OpenAIClient 走 OpenAI 兼容的 /chat/completions 接口
type OpenAIClient struct {
	client openai.Client
	params Params
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient 创建客户端，不做重试，不设置超时
func NewOpenAIClient(cfg OpenAIConfig, params Params) *OpenAIClient {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if params.Model == "" {
		params.Model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHeader("Accept", "application/json"),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		params: params,
	}
}

// Complete 实现 Client
func (c *OpenAIClient) Complete(ctx context.Context, messages []model.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:            openai.ChatModel(c.params.Model),
		Messages:         toOpenAIMessages(messages),
		MaxTokens:        openai.Int(int64(c.params.MaxTokens)),
		Temperature:      openai.Float(c.params.Temperature),
		TopP:             openai.Float(c.params.TopP),
		PresencePenalty:  openai.Float(c.params.PresencePenalty),
		FrequencyPenalty: openai.Float(c.params.FrequencyPenalty),
	}

	// top_k 不在 OpenAI 标准参数中，兼容服务（Fireworks 等）支持
	resp, err := c.client.Chat.Completions.New(ctx, params, option.WithJSONSet("top_k", c.params.TopK))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", failed("openai", apiErr.StatusCode, err)
		}
		return "", failed("openai", 0, err)
	}
	if resp == nil || len(resp.Choices) == 0 || !resp.Choices[0].Message.JSON.Content.Valid() {
		return "", failed("openai", 0, errMissingContent)
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case model.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case model.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
