package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/attachment"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/completion"
	completionfactory "github.com/iWorld-y/founder_radar/app/insight/pkg/completion/factory"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/config"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/dashboard"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/logger"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/parser"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/prompt"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/search"
	searchfactory "github.com/iWorld-y/founder_radar/app/insight/pkg/search/factory"
)

var (
	ErrEmptyQuery     = errors.New("query is empty")
	ErrSuperseded     = errors.New("search superseded by a newer request")
	ErrUnknownSession = errors.New("unknown chat session")
	ErrNoSearcher     = errors.New("search provider is not configured")
)

// 搜索进度阶段
const (
	StageStarting   = "starting"
	StageRequesting = "requesting completion"
	StageParsing    = "parsing response"
	StageAssembling = "assembling dashboard"
	StageCompleted  = "completed"
	StageFailed     = "failed"
)

// sharedCompletionTimeout 合并后的补全请求脱离调用方 ctx，需要独立的上限
const sharedCompletionTimeout = 2 * time.Minute

// ProgressFunc 进度回调，progress 取值 0-100
type ProgressFunc func(stage string, progress int)

// Options 引擎可选依赖
type Options struct {
	Store    StateStore
	Searcher search.Searcher
	Fetch    attachment.Fetcher
	// Strict 开启后按 Schema 修正解析结果
	Strict bool
	Schema parser.Schema
	Rand   *rand.Rand
	// SessionTTL 对话闲置多久后丢弃，MaxSessions 同时保留的对话数
	SessionTTL  time.Duration
	MaxSessions int
}

// Engine 核心处理引擎
type Engine struct {
	client   completion.Client
	store    StateStore
	searcher search.Searcher
	resolver *attachment.Resolver
	fetch    attachment.Fetcher
	strict   bool
	schema   parser.Schema

	group singleflight.Group

	mu          sync.Mutex
	generations map[string]uint64
	rnd         *rand.Rand

	// stateMu 串行化状态的读改写
	stateMu sync.Mutex

	sessionsMu  sync.Mutex
	sessions    map[string]*session
	sessionTTL  time.Duration
	maxSessions int
	now         func() time.Time
}

// New 创建引擎实例
func New(client completion.Client, opts Options) *Engine {
	if opts.Store == nil {
		opts.Store = NewMemoryStateStore()
	}
	if opts.Fetch == nil {
		opts.Fetch = attachment.FetchReadable
	}
	if opts.Schema == (parser.Schema{}) {
		opts.Schema = parser.DefaultSchema()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		client:      client,
		store:       opts.Store,
		searcher:    opts.Searcher,
		resolver:    attachment.NewResolver(opts.Fetch),
		fetch:       opts.Fetch,
		strict:      opts.Strict,
		schema:      opts.Schema,
		generations: make(map[string]uint64),
		rnd:         opts.Rand,
		sessions:    make(map[string]*session),
		sessionTTL:  opts.SessionTTL,
		maxSessions: opts.MaxSessions,
		now:         time.Now,
	}
}

// NewFromConfig 根据配置创建补全客户端与搜索客户端并组装引擎
func NewFromConfig(ctx context.Context, cfg *config.Config, store StateStore) (*Engine, error) {
	client, err := completionfactory.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	searcher, err := searchfactory.NewSearcher(cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}
	return New(client, Options{
		Store:    store,
		Searcher: searcher,
		Strict:   cfg.Parse.Strict,
	}), nil
}

// complete 按 query 合并相同的补全请求。
// 共享请求不随任一调用方取消，每个调用方只在自己的 ctx 结束时放弃等待。
func (e *Engine) complete(ctx context.Context, requestID, query string, messages []model.Message) (string, error) {
	ch := e.group.DoChan(query, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedCompletionTimeout)
		defer cancel()
		return e.client.Complete(sctx, messages)
	})
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", completion.ErrCompletionFailed, ctx.Err())
	case r := <-ch:
		if r.Shared {
			logger.Log.Debugf("搜索请求已合并 request=%s", requestID)
		}
		if r.Err != nil {
			return "", r.Err
		}
		return r.Val.(string), nil
	}
}

// SearchResult 一次搜索的结果
type SearchResult struct {
	RequestID  string
	Query      string
	Generation uint64
	Insight    model.Insight
	Items      []model.CardItem
	// SchemaErr 严格模式下结果被修正时非空
	SchemaErr error
}

// Search 执行一次搜索：构造 prompt，请求补全，解析并生成仪表盘卡片。
// 同一 owner 的旧请求在新请求发出后返回 ErrSuperseded，不修改状态。
func (e *Engine) Search(ctx context.Context, owner, query string, progress ProgressFunc) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if progress == nil {
		progress = func(string, int) {}
	}

	gen := e.nextGeneration(owner)
	requestID := uuid.NewString()
	logger.Log.Infof("开始搜索 owner=%s request=%s generation=%d query_len=%d", owner, requestID, gen, len(query))
	progress(StageStarting, 0)

	if err := e.updateState(ctx, owner, func(st *model.DashboardState) {
		st.IsSearching = true
		st.Query = query
	}); err != nil {
		return nil, err
	}

	progress(StageRequesting, 10)
	messages := []model.Message{{Role: model.RoleUser, Content: prompt.BuildSearch(query)}}
	reply, err := e.complete(ctx, requestID, query, messages)
	if err != nil {
		if !e.isLatest(owner, gen) {
			return nil, ErrSuperseded
		}
		logger.Log.Errorf("搜索失败 request=%s: %v", requestID, err)
		if serr := e.updateState(context.WithoutCancel(ctx), owner, func(st *model.DashboardState) {
			st.IsSearching = false
		}); serr != nil {
			logger.Log.Errorf("重置搜索状态失败 owner=%s: %v", owner, serr)
		}
		progress(StageFailed, 0)
		return nil, fmt.Errorf("search: %w", err)
	}
	if !e.isLatest(owner, gen) {
		logger.Log.Infof("丢弃过期的搜索结果 request=%s generation=%d", requestID, gen)
		return nil, ErrSuperseded
	}

	progress(StageParsing, 70)
	parsed := parser.Parse(reply)
	var schemaErr error
	if e.strict {
		parsed, schemaErr = parser.Normalize(parsed, e.schema)
		if schemaErr != nil {
			logger.Log.Warnf("解析结果不符合约束 request=%s: %v", requestID, schemaErr)
		}
	}
	insight := e.enrich(parsed)

	progress(StageAssembling, 90)
	items := dashboard.Assemble(insight)

	e.stateMu.Lock()
	if !e.isLatest(owner, gen) {
		e.stateMu.Unlock()
		return nil, ErrSuperseded
	}
	err = e.store.SaveState(ctx, owner, &model.DashboardState{
		Version:         model.StateVersion,
		SearchCompleted: true,
		Query:           query,
		Items:           items,
		UpdatedAt:       time.Now(),
	})
	e.stateMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save dashboard state: %w", err)
	}

	logger.Log.Infof("搜索完成 request=%s pains=%d strategies=%d triggers=%d",
		requestID, len(insight.Pains), len(insight.Strategies), len(insight.Triggers))
	progress(StageCompleted, 100)

	return &SearchResult{
		RequestID:  requestID,
		Query:      query,
		Generation: gen,
		Insight:    insight,
		Items:      items,
		SchemaErr:  schemaErr,
	}, nil
}

// DashboardState 返回当前仪表盘状态
func (e *Engine) DashboardState(ctx context.Context, owner string) (*model.DashboardState, error) {
	return e.store.LoadState(ctx, owner)
}

// ClearDashboard 清空仪表盘，并使进行中的搜索失效
func (e *Engine) ClearDashboard(ctx context.Context, owner string) error {
	e.nextGeneration(owner)
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.store.ClearState(ctx, owner)
}

func (e *Engine) updateState(ctx context.Context, owner string, fn func(*model.DashboardState)) error {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	st, err := e.store.LoadState(ctx, owner)
	if err != nil {
		return fmt.Errorf("load dashboard state: %w", err)
	}
	fn(st)
	st.UpdatedAt = time.Now()
	if err := e.store.SaveState(ctx, owner, st); err != nil {
		return fmt.Errorf("save dashboard state: %w", err)
	}
	return nil
}

func (e *Engine) nextGeneration(owner string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generations[owner]++
	return e.generations[owner]
}

func (e *Engine) isLatest(owner string, gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generations[owner] == gen
}

func (e *Engine) enrich(p model.ParsedInsight) model.Insight {
	e.mu.Lock()
	defer e.mu.Unlock()
	return parser.Enrich(p, e.rnd)
}
