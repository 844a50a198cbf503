package completion

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

type fakeGemini struct {
	resp     *genai.GenerateContentResponse
	err      error
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeGemini) GenerateContent(_ context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func TestGeminiClient_Complete(t *testing.T) {
	fake := &fakeGemini{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText("TRIGGER: t", genai.RoleModel)}},
	}}
	c := newGeminiClient(fake, DefaultParams(""))

	out, err := c.Complete(context.Background(), []model.Message{
		{Role: model.RoleSystem, Content: "sys"},
		{Role: model.RoleUser, Content: "u"},
		{Role: model.RoleAssistant, Content: "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "TRIGGER: t", out)
	require.Len(t, fake.contents, 2)
	assert.Equal(t, string(genai.RoleModel), fake.contents[1].Role)
	require.NotNil(t, fake.config.TopK)
	assert.EqualValues(t, 40, *fake.config.TopK)
	assert.EqualValues(t, 4096, fake.config.MaxOutputTokens)
	assert.NotNil(t, fake.config.SystemInstruction)
}

func TestGeminiClient_Failures(t *testing.T) {
	for name, fake := range map[string]*fakeGemini{
		"api error":     {err: errors.New("quota exceeded")},
		"no candidates": {resp: &genai.GenerateContentResponse{}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := newGeminiClient(fake, DefaultParams("")).Complete(context.Background(),
				[]model.Message{{Role: model.RoleUser, Content: "q"}})
			assert.True(t, errors.Is(err, ErrCompletionFailed))
		})
	}
}

type fakeChatModel struct {
	input []*schema.Message
	out   *schema.Message
	err   error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	f.input = input
	return f.out, f.err
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestEinoClient_Complete(t *testing.T) {
	fake := &fakeChatModel{out: schema.AssistantMessage("STRATEGY: s", nil)}
	out, err := NewEinoClient(fake).Complete(context.Background(), []model.Message{
		{Role: model.RoleSystem, Content: "sys"},
		{Role: model.RoleUser, Content: "u"},
	})
	require.NoError(t, err)
	assert.Equal(t, "STRATEGY: s", out)
	require.Len(t, fake.input, 2)
	assert.Equal(t, schema.System, fake.input[0].Role)
	assert.Equal(t, schema.User, fake.input[1].Role)

	fake.err = errors.New("boom")
	_, err = NewEinoClient(fake).Complete(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrCompletionFailed))
}

func TestEinoClient_EmptyContent(t *testing.T) {
	fake := &fakeChatModel{out: schema.AssistantMessage("", nil)}
	_, err := NewEinoClient(fake).Complete(context.Background(), nil)
	assert.ErrorIs(t, err, ErrCompletionFailed)
	assert.ErrorIs(t, err, errMissingContent)

	fake.out = nil
	_, err = NewEinoClient(fake).Complete(context.Background(), nil)
	assert.ErrorIs(t, err, errMissingContent)
}

type scriptedClient struct {
	calls atomic.Int32
	errs  []error
}

func (s *scriptedClient) Complete(context.Context, []model.Message) (string, error) {
	i := int(s.calls.Add(1)) - 1
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return "ok", nil
}

func TestLimited_NoRetryByDefault(t *testing.T) {
	next := &scriptedClient{errs: []error{failed("openai", 429, errors.New("slow down"))}}
	_, err := NewLimited(next, 0, 0, 0).Complete(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrCompletionFailed))
	assert.EqualValues(t, 1, next.calls.Load())
}

func TestLimited_RetriesTooManyRequests(t *testing.T) {
	next := &scriptedClient{errs: []error{failed("openai", 429, errors.New("slow down"))}}
	l := NewLimited(next, 0, 0, 2)
	l.baseDelay = time.Millisecond

	out, err := l.Complete(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.EqualValues(t, 2, next.calls.Load())
}

func TestLimited_DoesNotRetryOtherErrors(t *testing.T) {
	next := &scriptedClient{errs: []error{failed("openai", 500, fmt.Errorf("internal"))}}
	l := NewLimited(next, 0, 0, 3)
	l.baseDelay = time.Millisecond

	_, err := l.Complete(context.Background(), nil)
	assert.Error(t, err)
	assert.EqualValues(t, 1, next.calls.Load())
}

func TestLimited_ContextCanceled(t *testing.T) {
	next := &scriptedClient{}
	l := NewLimited(next, 1, 1, 0)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := l.Complete(ctx, nil)
	require.NoError(t, err)

	// 令牌已耗尽，取消后的等待立即返回
	cancel()
	_, err = l.Complete(ctx, nil)
	assert.ErrorIs(t, err, ErrCompletionFailed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 1, next.calls.Load())
}

func TestErrorMessage(t *testing.T) {
	err := failed("openai", 502, errors.New("bad gateway"))
	assert.Equal(t, "openai completion failed (status 502): bad gateway", err.Error())
	assert.Equal(t, "gemini completion failed: x", failed("gemini", 0, errors.New("x")).Error())
}
