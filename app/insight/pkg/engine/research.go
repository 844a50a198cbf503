package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/attachment"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/logger"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/search"
)

const (
	researchMaxResults = 10
	researchMaxSources = 6
	// 摘要过短时抓取全文
	researchFetchBelow = 500
	researchMinContent = 100
)

// Research 为深度研究卡片搜索引用来源，摘要过短时用 readability 抓取正文
func (e *Engine) Research(ctx context.Context, query string) ([]model.Source, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if e.searcher == nil {
		return nil, ErrNoSearcher
	}

	candidates, err := e.searcher.Sources(ctx, search.Query{Text: query, Limit: researchMaxResults})
	if err != nil {
		return nil, fmt.Errorf("research search: %w", err)
	}
	logger.Log.Debugf("研究搜索返回 %d 条结果", len(candidates))

	sources := []model.Source{}
	for _, src := range candidates {
		if len(src.Content) < researchFetchBelow && src.Link != "" {
			fetched, err := e.fetch(ctx, src.Link)
			if err != nil {
				logger.Log.Debugf("抓取正文失败 [%s]: %v", src.Link, err)
			} else {
				src.Content = search.Longest(src.Content, fetched)
			}
		}
		src.Content = attachment.Truncate(strings.TrimSpace(src.Content), attachment.MaxBytes)
		if len(src.Content) <= researchMinContent {
			continue
		}
		sources = append(sources, src)
		if len(sources) >= researchMaxSources {
			break
		}
	}

	if len(sources) == 0 {
		logger.Log.Warnf("未找到足够的有效来源 query_len=%d", len(query))
	}
	return sources, nil
}
