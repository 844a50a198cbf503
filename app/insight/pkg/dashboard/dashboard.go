// Package dashboard 将解析结果排布为固定的五张卡片。
package dashboard

import "github.com/iWorld-y/founder_radar/app/insight/pkg/model"

// 卡片 ID 与布局为固定常量，与数据量无关
const (
	IDTopResearchFinds           = 1
	IDProductDevelopmentInsights = 2
	IDChallengesFaced            = 3
	IDDeepResearch               = 5
	IDChat                       = 6
)

// CardCount 每次组装固定输出的卡片数量
const CardCount = 5

// Assemble 按固定顺序输出五张卡片，空类别也会输出空卡片
func Assemble(in model.Insight) []model.CardItem {
	pains := in.Pains
	if pains == nil {
		pains = []model.PainPoint{}
	}
	triggers := in.Triggers
	if triggers == nil {
		triggers = []model.Challenge{}
	}
	strategies := in.Strategies
	if strategies == nil {
		strategies = []model.StrategicInsight{}
	}

	return []model.CardItem{
		{ID: IDDeepResearch, Type: model.CardDeepResearch, Height: "h-64", Width: "col-span-2", Data: []any{}},
		{ID: IDChat, Type: model.CardChat, Height: "h-64", Width: "col-span-1", Data: []any{}},
		{ID: IDChallengesFaced, Type: model.CardChallengesFaced, Height: "min-h-72", Width: "col-span-1", Data: triggers},
		{ID: IDTopResearchFinds, Type: model.CardTopResearchFinds, Height: "h-64", Width: "col-span-2", Data: pains},
		{ID: IDProductDevelopmentInsights, Type: model.CardProductDevelopmentInsights, Height: "h-[400px]", Width: "col-span-3", Data: strategies},
	}
}

// Find 按类型查找卡片
func Find(items []model.CardItem, t model.CardType) (model.CardItem, bool) {
	for _, it := range items {
		if it.Type == t {
			return it, true
		}
	}
	return model.CardItem{}, false
}

// DataLen 卡片数据条数，无法识别的数据类型返回 0
func DataLen(item model.CardItem) int {
	switch d := item.Data.(type) {
	case []model.PainPoint:
		return len(d)
	case []model.Challenge:
		return len(d)
	case []model.StrategicInsight:
		return len(d)
	case []any:
		return len(d)
	default:
		return 0
	}
}
