package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/completion"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/config"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/dashboard"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/parser"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const coffeeReply = `Here is the analysis.
PAIN: Posting consistently while running the shop
PAIN: Low engagement on promotional posts
PAIN: No budget for professional photography
STRATEGY: Batch-create a week of content every Monday
STRATEGY: Feature regulars and baristas in stories
STRATEGY: Run a monthly latte-art giveaway
STRATEGY: Partner with nearby businesses for cross-posts
TRIGGER: Foot traffic dropped after a competitor opened
TRIGGER: Rising ad costs on paid channels
TRIGGER: Owner burnout from doing everything alone
`

type fakeClient struct {
	mu    sync.Mutex
	calls [][]model.Message
	reply func(ctx context.Context, messages []model.Message) (string, error)
}

func (f *fakeClient) Complete(ctx context.Context, messages []model.Message) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]model.Message{}, messages...))
	f.mu.Unlock()
	return f.reply(ctx, messages)
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeClient) lastCall() []model.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func replyWith(s string) func(context.Context, []model.Message) (string, error) {
	return func(context.Context, []model.Message) (string, error) { return s, nil }
}

func newTestEngine(client completion.Client, opts Options) *Engine {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	return New(client, opts)
}

func TestSearch_EndToEnd(t *testing.T) {
	client := &fakeClient{reply: replyWith(coffeeReply)}
	e := newTestEngine(client, Options{})
	ctx := context.Background()

	var stages []int
	res, err := e.Search(ctx, "alice", "Coffee shop social media strategy", func(stage string, p int) {
		stages = append(stages, p)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 70, 90, 100}, stages)
	assert.NotEmpty(t, res.RequestID)
	assert.NoError(t, res.SchemaErr)

	require.Len(t, res.Items, dashboard.CardCount)
	lens := map[model.CardType]int{}
	for _, typ := range []model.CardType{model.CardTopResearchFinds, model.CardProductDevelopmentInsights, model.CardChallengesFaced} {
		item, ok := dashboard.Find(res.Items, typ)
		require.True(t, ok)
		lens[typ] = dashboard.DataLen(item)
	}
	assert.Equal(t, 3, lens[model.CardTopResearchFinds])
	assert.Equal(t, 4, lens[model.CardProductDevelopmentInsights])
	assert.Equal(t, 3, lens[model.CardChallengesFaced])

	require.Equal(t, 1, client.callCount())
	msgs := client.lastCall()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Coffee shop social media strategy")

	st, err := e.DashboardState(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, st.IsSearching)
	assert.True(t, st.SearchCompleted)
	assert.Equal(t, "Coffee shop social media strategy", st.Query)
	assert.Len(t, st.Items, dashboard.CardCount)
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := &fakeClient{reply: replyWith(coffeeReply)}
	e := newTestEngine(client, Options{})

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := e.Search(context.Background(), "alice", q, nil)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
	assert.Equal(t, 0, client.callCount())
}

func TestSearch_NoTagsStillFiveCards(t *testing.T) {
	e := newTestEngine(&fakeClient{reply: replyWith("I cannot help with that.")}, Options{})
	res, err := e.Search(context.Background(), "alice", "anything", nil)
	require.NoError(t, err)
	require.Len(t, res.Items, dashboard.CardCount)
	for _, item := range res.Items {
		assert.Equal(t, 0, dashboard.DataLen(item))
	}
}

func TestSearch_FailureKeepsPriorItems(t *testing.T) {
	fail := false
	client := &fakeClient{reply: func(context.Context, []model.Message) (string, error) {
		if fail {
			return "", fmt.Errorf("%w: upstream 500", completion.ErrCompletionFailed)
		}
		return coffeeReply, nil
	}}
	e := newTestEngine(client, Options{})
	ctx := context.Background()

	_, err := e.Search(ctx, "alice", "first", nil)
	require.NoError(t, err)

	fail = true
	var lastStage string
	lastProgress := -1
	_, err = e.Search(ctx, "alice", "second", func(stage string, p int) {
		lastStage, lastProgress = stage, p
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, completion.ErrCompletionFailed)
	assert.Equal(t, StageFailed, lastStage)
	assert.Equal(t, 0, lastProgress)

	st, err := e.DashboardState(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, st.IsSearching)
	assert.Len(t, st.Items, dashboard.CardCount)
	item, ok := dashboard.Find(st.Items, model.CardTopResearchFinds)
	require.True(t, ok)
	assert.Equal(t, 3, dashboard.DataLen(item))
}

func TestSearch_Superseded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client := &fakeClient{reply: func(ctx context.Context, msgs []model.Message) (string, error) {
		if strings.Contains(msgs[0].Content, "old query") {
			close(entered)
			<-release
		}
		return coffeeReply, nil
	}}
	e := newTestEngine(client, Options{})
	ctx := context.Background()

	errCh := make(chan error, 1)
	go func() {
		_, err := e.Search(ctx, "alice", "old query", nil)
		errCh <- err
	}()
	<-entered

	_, err := e.Search(ctx, "alice", "new query", nil)
	require.NoError(t, err)

	close(release)
	assert.ErrorIs(t, <-errCh, ErrSuperseded)

	st, err := e.DashboardState(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new query", st.Query)
	assert.True(t, st.SearchCompleted)
}

func TestSearch_DedupInFlight(t *testing.T) {
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	client := &fakeClient{reply: func(ctx context.Context, msgs []model.Message) (string, error) {
		entered <- struct{}{}
		<-release
		return coffeeReply, nil
	}}
	e := newTestEngine(client, Options{})

	var wg sync.WaitGroup
	results := make([]*SearchResult, 2)
	for i, owner := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(i int, owner string) {
			defer wg.Done()
			res, err := e.Search(context.Background(), owner, "same query", nil)
			assert.NoError(t, err)
			results[i] = res
		}(i, owner)
	}
	<-entered
	// 等待第二个请求进入合并
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 1, client.callCount())
	for _, r := range results {
		require.NotNil(t, r)
		assert.Len(t, r.Items, dashboard.CardCount)
	}
}

func TestSearch_DedupSurvivesCallerCancel(t *testing.T) {
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	client := &fakeClient{reply: func(ctx context.Context, msgs []model.Message) (string, error) {
		entered <- struct{}{}
		select {
		case <-release:
			return coffeeReply, nil
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", completion.ErrCompletionFailed, ctx.Err())
		}
	}}
	e := newTestEngine(client, Options{})

	aliceCtx, cancelAlice := context.WithCancel(context.Background())
	aliceErr := make(chan error, 1)
	go func() {
		_, err := e.Search(aliceCtx, "alice", "same query", nil)
		aliceErr <- err
	}()
	<-entered

	bobRes := make(chan *SearchResult, 1)
	bobErr := make(chan error, 1)
	go func() {
		res, err := e.Search(context.Background(), "bob", "same query", nil)
		bobRes <- res
		bobErr <- err
	}()
	// 等待 bob 进入合并
	time.Sleep(100 * time.Millisecond)

	cancelAlice()
	err := <-aliceErr
	assert.ErrorIs(t, err, completion.ErrCompletionFailed)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	require.NoError(t, <-bobErr)
	res := <-bobRes
	require.NotNil(t, res)
	assert.Len(t, res.Items, dashboard.CardCount)
	assert.Equal(t, 1, client.callCount())

	st, err := e.DashboardState(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, st.IsSearching)
}

func TestSearch_Strict(t *testing.T) {
	client := &fakeClient{reply: replyWith("PAIN: only one\nSTRATEGY: s1\n")}
	e := newTestEngine(client, Options{Strict: true})

	res, err := e.Search(context.Background(), "alice", "thin reply", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, res.SchemaErr, parser.ErrSchemaViolation)
	assert.Len(t, res.Insight.Pains, 3)
	assert.Len(t, res.Insight.Strategies, 4)
	assert.Len(t, res.Insight.Triggers, 3)
	assert.Equal(t, "only one", res.Insight.Pains[0].Text)
}

func TestSearch_CanceledContext(t *testing.T) {
	client := &fakeClient{reply: func(ctx context.Context, _ []model.Message) (string, error) {
		return "", fmt.Errorf("%w: %v", completion.ErrCompletionFailed, ctx.Err())
	}}
	e := newTestEngine(client, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Search(ctx, "alice", "q", nil)
	assert.ErrorIs(t, err, completion.ErrCompletionFailed)
}

func TestClearDashboard(t *testing.T) {
	e := newTestEngine(&fakeClient{reply: replyWith(coffeeReply)}, Options{})
	ctx := context.Background()

	_, err := e.Search(ctx, "alice", "q", nil)
	require.NoError(t, err)
	require.NoError(t, e.ClearDashboard(ctx, "alice"))

	st, err := e.DashboardState(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, st.Items)
	assert.False(t, st.SearchCompleted)
}

func TestMemoryStateStore_Isolation(t *testing.T) {
	m := NewMemoryStateStore()
	ctx := context.Background()

	in := &model.DashboardState{Items: []model.CardItem{{ID: 1}}}
	require.NoError(t, m.SaveState(ctx, "alice", in))
	in.Items[0].ID = 99

	got, err := m.LoadState(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].ID)
	assert.Equal(t, model.StateVersion, got.Version)

	got.Items[0].ID = 42
	again, err := m.LoadState(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].ID)
}

func TestNewFromConfig_Error(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "nope"}}
	_, err := NewFromConfig(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "unknown llm provider")

	cfg = &config.Config{LLM: config.LLMConfig{Provider: "openai", APIKey: "k"}}
	e, err := NewFromConfig(context.Background(), cfg, nil)
	require.NoError(t, err)
	_, err = e.Research(context.Background(), "q")
	assert.True(t, errors.Is(err, ErrNoSearcher))
}
