package search

import (
	"context"
	"strings"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// DefaultLimit 未指定条数时每次检索返回的候选来源数
const DefaultLimit = 10

// Searcher 深度研究的来源检索。返回的 Source.Content 是提供方能给出的最长正文，
// 是否需要再抓取全文由调用方决定。
type Searcher interface {
	Sources(ctx context.Context, q Query) ([]model.Source, error)
}

// Query 一次来源检索
type Query struct {
	Text  string
	Limit int
}

// Size 本次检索期望的候选数
func (q Query) Size() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

// Longest 返回去掉首尾空白后最长的一段文本
func Longest(texts ...string) string {
	best := ""
	for _, t := range texts {
		if t = strings.TrimSpace(t); len(t) > len(best) {
			best = t
		}
	}
	return best
}

// Unique 按链接去重并截取前 n 条，无链接的结果丢弃
func Unique(list []model.Source, n int) []model.Source {
	seen := make(map[string]struct{}, len(list))
	out := make([]model.Source, 0, min(len(list), n))
	for _, s := range list {
		if len(out) >= n {
			break
		}
		link := strings.TrimSpace(s.Link)
		if link == "" {
			continue
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		s.Link = link
		out = append(out, s)
	}
	return out
}
