// Package parser 从模型返回的自由文本中提取带标签的行。
package parser

import (
	"math"
	"math/rand"
	"regexp"
	"strings"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/prompt"
)

// 行首锚定，大小写敏感
var tagLine = regexp.MustCompile(`^(` + regexp.QuoteMeta(prompt.TagPain) + `|` +
	regexp.QuoteMeta(prompt.TagStrategy) + `|` + regexp.QuoteMeta(prompt.TagTrigger) + `)(.*)$`)

var (
	painSources        = []string{"User Interviews", "Industry Reports", "Founder Surveys"}
	triggerTypes       = []string{"Financial", "Operational", "Personal"}
	strategyCategories = []string{"Market Analysis", "User Feedback", "Competitive Analysis", "Technology Trends"}
)

const (
	minFrequency = 65
	maxFrequency = 85
)

// Parse 提取 PAIN/STRATEGY/TRIGGER 行，未识别的行直接忽略，不返回错误
func Parse(raw string) model.ParsedInsight {
	out := model.ParsedInsight{
		Pains:      []string{},
		Strategies: []string{},
		Triggers:   []string{},
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	for _, line := range strings.Split(raw, "\n") {
		m := tagLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[2])
		switch m[1] {
		case prompt.TagPain:
			out.Pains = append(out.Pains, text)
		case prompt.TagStrategy:
			out.Strategies = append(out.Strategies, text)
		case prompt.TagTrigger:
			out.Triggers = append(out.Triggers, text)
		}
	}
	return out
}

// Enrich 为每个条目补充展示字段：来源/类型/类别轮询分配，
// 频率为 [65,85] 的伪随机整数，强度为 0.95-0.1*index（不截断）
func Enrich(p model.ParsedInsight, rnd *rand.Rand) model.Insight {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	in := model.Insight{
		Pains:      make([]model.PainPoint, 0, len(p.Pains)),
		Triggers:   make([]model.Challenge, 0, len(p.Triggers)),
		Strategies: make([]model.StrategicInsight, 0, len(p.Strategies)),
	}
	for i, text := range p.Pains {
		in.Pains = append(in.Pains, model.PainPoint{
			ID:        i + 1,
			Source:    painSources[i%len(painSources)],
			Text:      text,
			Frequency: minFrequency + rnd.Intn(maxFrequency-minFrequency+1),
		})
	}
	for i, text := range p.Triggers {
		in.Triggers = append(in.Triggers, model.Challenge{
			ID:       i + 1,
			Type:     triggerTypes[i%len(triggerTypes)],
			Text:     text,
			Strength: TriggerStrength(i),
		})
	}
	for i, text := range p.Strategies {
		in.Strategies = append(in.Strategies, model.StrategicInsight{
			ID:       i + 1,
			Category: strategyCategories[i%len(strategyCategories)],
			Text:     text,
		})
	}
	return in
}

// TriggerStrength 第 index 个触发因素的强度，保留两位小数
func TriggerStrength(index int) float64 {
	return math.Round((0.95-0.1*float64(index))*100) / 100
}
