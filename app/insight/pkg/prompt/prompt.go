// Package prompt 构造发送给补全接口的提示词，纯函数，无副作用。
package prompt

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// 行标签，解析器依赖同一组常量
const (
	TagPain     = "PAIN:"
	TagStrategy = "STRATEGY:"
	TagTrigger  = "TRIGGER:"
)

// 提示词中要求的条目数量，仅作为对模型的提示
const (
	PainCount     = 3
	StrategyCount = 4
	TriggerCount  = 3
)

// ChatWordLimit 聊天回复字数上限
const ChatWordLimit = 50

type example struct {
	query      string
	pains      []string
	strategies []string
	triggers   []string
}

var examples = []example{
	{
		query: "Meal-prep delivery service for busy parents",
		pains: []string{
			"Parents have little time to plan healthy weekly meals",
			"Existing services are too expensive for family-sized portions",
			"Picky eaters make fixed menus hard to adopt",
		},
		strategies: []string{
			"Offer customizable family bundles with kid-friendly swaps",
			"Partner with schools and daycares for referral discounts",
			"Publish short recipe videos that show prep time honestly",
			"Introduce a pause-anytime subscription to reduce churn fear",
		},
		triggers: []string{
			"Back-to-school season resets family routines",
			"A new job or longer commute squeezes evening time",
			"A doctor's advice to improve a child's diet",
		},
	},
	{
		query: "Freelance bookkeeping app for creative agencies",
		pains: []string{
			"Invoices and expenses are scattered across many tools",
			"Project budgets overrun without anyone noticing in time",
			"Tax season triggers a scramble for missing receipts",
		},
		strategies: []string{
			"Integrate directly with popular project management tools",
			"Send proactive budget burn alerts per client project",
			"Auto-capture receipts from email and phone photos",
			"Provide an accountant-ready export with one click",
		},
		triggers: []string{
			"Landing a larger client with stricter billing terms",
			"Receiving a late-payment penalty or tax notice",
			"Hiring the first employee or contractor",
		},
	},
}

// BuildSearch 根据用户查询构造洞察类提示词，查询原样插入，不做转义
func BuildSearch(query string) string {
	var sb strings.Builder
	sb.WriteString("You are a market research analyst helping a startup founder understand their market.\n")
	fmt.Fprintf(&sb, "For the topic below, list exactly %d customer pain points, %d growth strategies and %d buying triggers.\n",
		PainCount, StrategyCount, TriggerCount)
	fmt.Fprintf(&sb, "Write one item per line. Start every pain point line with %q, every strategy line with %q and every trigger line with %q.\n",
		TagPain, TagStrategy, TagTrigger)
	sb.WriteString("Do not number the lines and do not add any other text.\n\n")

	for i, ex := range examples {
		fmt.Fprintf(&sb, "Example %d\nTopic: %s\n", i+1, ex.query)
		writeTagged(&sb, TagPain, ex.pains)
		writeTagged(&sb, TagStrategy, ex.strategies)
		writeTagged(&sb, TagTrigger, ex.triggers)
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Topic: %s\n", query)
	return sb.String()
}

func writeTagged(sb *strings.Builder, tag string, items []string) {
	for _, item := range items {
		sb.WriteString(tag)
		sb.WriteString(" ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
}

// BuildChat 构造聊天轮次的提示词，attachment 为附件正文，可为空
func BuildChat(query, attachment string) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful AI assistant for a startup founder working on business tasks such as market research and pitch deck creation and analysis. ")
	fmt.Fprintf(&sb, "Respond to the user's query in under %d words. ", ChatWordLimit)
	if strings.TrimSpace(attachment) != "" {
		sb.WriteString("A business document is attached below; answer as someone who has read it and never mention the document's name.\n\n")
		sb.WriteString("Attached document:\n")
		sb.WriteString(attachment)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "Query: \"%s\"", query)
	return sb.String()
}

// ChatMessages 历史对话在前，本轮构造的提示词作为最后一条用户消息
func ChatMessages(transcript []model.Message, prompt string) []model.Message {
	msgs := make([]model.Message, 0, len(transcript)+1)
	msgs = append(msgs, transcript...)
	return append(msgs, model.Message{Role: model.RoleUser, Content: prompt})
}
