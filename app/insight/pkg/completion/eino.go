package completion

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// EinoClient 适配任意 eino ChatModel。
// eino 的 OpenAI 配置没有 top_k，使用该 provider 时 top_k 取服务端默认值。
type EinoClient struct {
	cm einomodel.BaseChatModel
}

var _ Client = (*EinoClient)(nil)

// NewEinoClient 包装已有的 ChatModel
func NewEinoClient(cm einomodel.BaseChatModel) *EinoClient {
	return &EinoClient{cm: cm}
}

// NewEinoOpenAIClient 使用 eino-ext 的 OpenAI ChatModel
func NewEinoOpenAIClient(ctx context.Context, baseURL, apiKey string, params Params) (*EinoClient, error) {
	if params.Model == "" {
		params.Model = DefaultModel
	}
	maxTokens := params.MaxTokens
	temperature := float32(params.Temperature)
	topP := float32(params.TopP)
	presence := float32(params.PresencePenalty)
	frequency := float32(params.FrequencyPenalty)

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:          baseURL,
		APIKey:           apiKey,
		Model:            params.Model,
		MaxTokens:        &maxTokens,
		Temperature:      &temperature,
		TopP:             &topP,
		PresencePenalty:  &presence,
		FrequencyPenalty: &frequency,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewEinoClient(cm), nil
}

// Complete 实现 Client
func (c *EinoClient) Complete(ctx context.Context, messages []model.Message) (string, error) {
	input := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case model.RoleSystem:
			input = append(input, schema.SystemMessage(m.Content))
		case model.RoleAssistant:
			input = append(input, schema.AssistantMessage(m.Content, nil))
		default:
			input = append(input, schema.UserMessage(m.Content))
		}
	}

	resp, err := c.cm.Generate(ctx, input)
	if err != nil {
		return "", failed("eino", 0, err)
	}
	if resp == nil || resp.Content == "" {
		return "", failed("eino", 0, errMissingContent)
	}
	return resp.Content, nil
}
