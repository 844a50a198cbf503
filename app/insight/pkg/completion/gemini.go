package completion

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// DefaultGeminiModel gemini 默认模型
const DefaultGeminiModel = "gemini-2.5-flash"

type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient 基于 Google GenAI SDK，原生支持 top_k
type GeminiClient struct {
	models geminiModels
	params Params
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient 创建 Gemini 客户端
func NewGeminiClient(ctx context.Context, apiKey string, params Params) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api_key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGeminiClient(client.Models, params), nil
}

func newGeminiClient(models geminiModels, params Params) *GeminiClient {
	if params.Model == "" {
		params.Model = DefaultGeminiModel
	}
	return &GeminiClient{models: models, params: params}
}

// Complete 实现 Client
func (c *GeminiClient) Complete(ctx context.Context, messages []model.Message) (string, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case model.RoleSystem:
			system = append(system, m.Content)
		case model.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.params.Temperature)),
		TopP:            genai.Ptr(float32(c.params.TopP)),
		TopK:            genai.Ptr(float32(c.params.TopK)),
		MaxOutputTokens: int32(c.params.MaxTokens),
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.params.Model, contents, cfg)
	if err != nil {
		return "", failed("gemini", 0, err)
	}
	text, ok := geminiText(resp)
	if !ok {
		return "", failed("gemini", 0, errMissingContent)
	}
	return text, nil
}

func geminiText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", false
	}
	var sb strings.Builder
	found := false
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
		found = true
	}
	return sb.String(), found
}
