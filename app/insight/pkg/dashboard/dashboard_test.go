package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/parser"
)

func TestAssemble_Empty(t *testing.T) {
	for _, in := range []model.Insight{{}, parser.Enrich(parser.Parse("nothing"), nil)} {
		items := Assemble(in)
		require.Len(t, items, CardCount)

		ids := make([]int, 0, len(items))
		types := make([]model.CardType, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
			types = append(types, it.Type)
			assert.Equal(t, 0, DataLen(it))
		}
		assert.ElementsMatch(t, []int{1, 2, 3, 5, 6}, ids)
		assert.ElementsMatch(t, []model.CardType{
			model.CardTopResearchFinds,
			model.CardChallengesFaced,
			model.CardProductDevelopmentInsights,
			model.CardDeepResearch,
			model.CardChat,
		}, types)
	}
}

func TestAssemble_FixedOrderAndLayout(t *testing.T) {
	items := Assemble(model.Insight{})
	want := []struct {
		id     int
		typ    model.CardType
		height string
		width  string
	}{
		{5, model.CardDeepResearch, "h-64", "col-span-2"},
		{6, model.CardChat, "h-64", "col-span-1"},
		{3, model.CardChallengesFaced, "min-h-72", "col-span-1"},
		{1, model.CardTopResearchFinds, "h-64", "col-span-2"},
		{2, model.CardProductDevelopmentInsights, "h-[400px]", "col-span-3"},
	}
	for i, w := range want {
		assert.Equal(t, w.id, items[i].ID)
		assert.Equal(t, w.typ, items[i].Type)
		assert.Equal(t, w.height, items[i].Height)
		assert.Equal(t, w.width, items[i].Width)
	}
}

func TestAssemble_DataMapping(t *testing.T) {
	raw := "PAIN: p1\nPAIN: p2\nSTRATEGY: s1\nTRIGGER: t1\nTRIGGER: t2\nTRIGGER: t3\n"
	items := Assemble(parser.Enrich(parser.Parse(raw), nil))

	top, ok := Find(items, model.CardTopResearchFinds)
	require.True(t, ok)
	assert.Equal(t, 2, DataLen(top))

	challenges, ok := Find(items, model.CardChallengesFaced)
	require.True(t, ok)
	assert.Equal(t, 3, DataLen(challenges))

	insights, ok := Find(items, model.CardProductDevelopmentInsights)
	require.True(t, ok)
	assert.Equal(t, 1, DataLen(insights))
}

func TestAssemble_JSONHasEmptyArrays(t *testing.T) {
	b, err := json.Marshal(Assemble(model.Insight{}))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "null")
}
