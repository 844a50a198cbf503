package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

func TestBuildSearch(t *testing.T) {
	queries := []string{
		"Coffee shop social media strategy",
		`Quotes "inside" and {braces} %d stay verbatim`,
		"多语言 查询",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			p := BuildSearch(q)
			assert.Contains(t, p, q)
			assert.Contains(t, p, TagPain)
			assert.Contains(t, p, TagStrategy)
			assert.Contains(t, p, TagTrigger)
			assert.True(t, strings.HasSuffix(p, "Topic: "+q+"\n"))
		})
	}
}

func TestBuildSearch_Examples(t *testing.T) {
	p := BuildSearch("anything")
	for _, ex := range examples {
		assert.Contains(t, p, "Topic: "+ex.query)
	}
	// 两个示例中的标签行数量与要求的数量一致
	assert.Equal(t, 2*PainCount, strings.Count(p, "\n"+TagPain+" "))
	assert.Equal(t, 2*StrategyCount, strings.Count(p, "\n"+TagStrategy+" "))
	assert.Equal(t, 2*TriggerCount, strings.Count(p, "\n"+TagTrigger+" "))
	assert.Contains(t, p, "exactly 3 customer pain points, 4 growth strategies and 3 buying triggers")
}

func TestBuildSearch_Deterministic(t *testing.T) {
	assert.Equal(t, BuildSearch("x"), BuildSearch("x"))
}

func TestBuildChat(t *testing.T) {
	p := BuildChat(`how do I "pitch" this?`, "")
	assert.Contains(t, p, `how do I "pitch" this?`)
	assert.Contains(t, p, "under 50 words")
	assert.NotContains(t, p, "Attached document")

	withDoc := BuildChat("summarize", "Revenue grew 40% year over year.")
	assert.Contains(t, withDoc, "Attached document:\nRevenue grew 40% year over year.")
}

func TestChatMessages(t *testing.T) {
	transcript := []model.Message{
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "hello"},
	}
	msgs := ChatMessages(transcript, "built prompt")
	require.Len(t, msgs, 3)
	assert.Equal(t, transcript, msgs[:2])
	assert.Equal(t, model.Message{Role: model.RoleUser, Content: "built prompt"}, msgs[2])

	msgs[0].Content = "changed"
	assert.Equal(t, "hi", transcript[0].Content)
}
