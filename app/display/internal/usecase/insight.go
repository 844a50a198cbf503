package usecase

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/completion"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/engine"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// InsightUseCase 搜索、仪表盘与深度研究
type InsightUseCase struct {
	eng *engine.Engine
	log *log.Helper
}

// NewInsightUseCase 创建实例
func NewInsightUseCase(eng *engine.Engine, logger log.Logger) *InsightUseCase {
	return &InsightUseCase{eng: eng, log: log.NewHelper(logger)}
}

// Search 执行搜索并返回卡片
func (uc *InsightUseCase) Search(ctx context.Context, owner, query string) (*engine.SearchResult, error) {
	res, err := uc.eng.Search(ctx, owner, query, func(stage string, progress int) {
		uc.log.WithContext(ctx).Debugf("search owner=%s stage=%q progress=%d", owner, stage, progress)
	})
	if err != nil {
		return nil, searchError(err)
	}
	return res, nil
}

// Dashboard 返回当前仪表盘状态
func (uc *InsightUseCase) Dashboard(ctx context.Context, owner string) (*model.DashboardState, error) {
	st, err := uc.eng.DashboardState(ctx, owner)
	if err != nil {
		return nil, errors.InternalServer("STATE_UNAVAILABLE", "failed to load dashboard").WithCause(err)
	}
	return st, nil
}

// ClearDashboard 清空仪表盘
func (uc *InsightUseCase) ClearDashboard(ctx context.Context, owner string) error {
	if err := uc.eng.ClearDashboard(ctx, owner); err != nil {
		return errors.InternalServer("STATE_UNAVAILABLE", "failed to clear dashboard").WithCause(err)
	}
	return nil
}

// Research 深度研究来源
func (uc *InsightUseCase) Research(ctx context.Context, query string) ([]model.Source, error) {
	sources, err := uc.eng.Research(ctx, query)
	switch {
	case err == nil:
		return sources, nil
	case stderrors.Is(err, engine.ErrEmptyQuery):
		return nil, errors.BadRequest("EMPTY_QUERY", "query must not be empty")
	case stderrors.Is(err, engine.ErrNoSearcher):
		return nil, errors.ServiceUnavailable("RESEARCH_DISABLED", "no search provider configured")
	default:
		uc.log.WithContext(ctx).Errorf("research failed: %v", err)
		return nil, errors.New(502, "SEARCH_FAILED", "search provider request failed").WithCause(err)
	}
}

func searchError(err error) error {
	switch {
	case stderrors.Is(err, engine.ErrEmptyQuery):
		return errors.BadRequest("EMPTY_QUERY", "query must not be empty")
	case stderrors.Is(err, engine.ErrSuperseded):
		return errors.Conflict("SEARCH_SUPERSEDED", "a newer search replaced this one")
	case stderrors.Is(err, completion.ErrCompletionFailed):
		return errors.New(502, "COMPLETION_FAILED", "completion request failed").WithCause(err)
	default:
		return errors.InternalServer("INTERNAL", "search failed").WithCause(err)
	}
}
