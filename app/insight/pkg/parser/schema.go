package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// ErrSchemaViolation 解析结果不满足数量约束，结果已按默认策略修正，可继续使用
var ErrSchemaViolation = errors.New("parsed insight violates schema")

// Placeholder 数量不足时的填充文本
const Placeholder = "Not enough data returned for this item"

// Schema 每个类别的数量约束，Max 为 0 表示不限
type Schema struct {
	MinPains, MaxPains           int
	MinStrategies, MaxStrategies int
	MinTriggers, MaxTriggers     int
}

// DefaultSchema 与提示词中要求的数量一致
func DefaultSchema() Schema {
	return Schema{
		MinPains: 3, MaxPains: 3,
		MinStrategies: 4, MaxStrategies: 4,
		MinTriggers: 3, MaxTriggers: 3,
	}
}

// Normalize 去空白、去空行、去重，超出上限截断，不足下限用占位填充。
// 发生截断或填充时同时返回修正后的结果和 ErrSchemaViolation。
func Normalize(p model.ParsedInsight, s Schema) (model.ParsedInsight, error) {
	var problems []string
	fix := func(name string, items []string, min, max int) []string {
		out := dedupe(items)
		if max > 0 && len(out) > max {
			problems = append(problems, fmt.Sprintf("%s: %d > max %d", name, len(out), max))
			out = out[:max]
		}
		if len(out) < min {
			problems = append(problems, fmt.Sprintf("%s: %d < min %d", name, len(out), min))
			for len(out) < min {
				out = append(out, Placeholder)
			}
		}
		return out
	}

	out := model.ParsedInsight{
		Pains:      fix("pains", p.Pains, s.MinPains, s.MaxPains),
		Strategies: fix("strategies", p.Strategies, s.MinStrategies, s.MaxStrategies),
		Triggers:   fix("triggers", p.Triggers, s.MinTriggers, s.MaxTriggers),
	}
	if len(problems) > 0 {
		return out, fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(problems, "; "))
	}
	return out, nil
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
