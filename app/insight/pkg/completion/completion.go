// Package completion 封装托管的对话补全接口，一次调用对应一次阻塞请求。
package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// ErrCompletionFailed 所有补全失败（网络、非 2xx、JSON 异常、缺少内容）统一匹配此错误
var ErrCompletionFailed = errors.New("completion failed")

// Client 补全客户端
type Client interface {
	// Complete 发送消息列表，返回第一个候选的文本内容
	Complete(ctx context.Context, messages []model.Message) (string, error)
}

// 固定的采样参数
const (
	DefaultMaxTokens        = 4096
	DefaultTemperature      = 0.7
	DefaultTopP             = 1.0
	DefaultTopK             = 40
	DefaultPresencePenalty  = 0.0
	DefaultFrequencyPenalty = 0.0
)

// Params 请求参数，除模型名外均为固定值
type Params struct {
	Model            string
	MaxTokens        int
	Temperature      float64
	TopP             float64
	TopK             int
	PresencePenalty  float64
	FrequencyPenalty float64
}

// DefaultParams 返回固定采样参数
func DefaultParams(modelName string) Params {
	return Params{
		Model:            modelName,
		MaxTokens:        DefaultMaxTokens,
		Temperature:      DefaultTemperature,
		TopP:             DefaultTopP,
		TopK:             DefaultTopK,
		PresencePenalty:  DefaultPresencePenalty,
		FrequencyPenalty: DefaultFrequencyPenalty,
	}
}

// Error 补全失败详情，errors.Is(err, ErrCompletionFailed) 恒为 true
type Error struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s completion failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrCompletionFailed }

func failed(provider string, status int, err error) error {
	return &Error{Provider: provider, StatusCode: status, Err: err}
}

// errMissingContent 响应中没有 choices[0].message.content
var errMissingContent = errors.New("missing choices[0].message.content")
