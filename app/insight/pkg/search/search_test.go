package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

func TestQuery_Size(t *testing.T) {
	assert.Equal(t, DefaultLimit, Query{}.Size())
	assert.Equal(t, 3, Query{Limit: 3}.Size())
}

func TestLongest(t *testing.T) {
	assert.Equal(t, "full body", Longest("snip", "  full body  "))
	assert.Equal(t, "", Longest("", "  "))
}

func TestUnique(t *testing.T) {
	in := []model.Source{
		{Title: "a", Link: "https://a"},
		{Title: "dup", Link: " https://a "},
		{Title: "nolink"},
		{Title: "b", Link: "https://b"},
		{Title: "c", Link: "https://c"},
	}
	want := []model.Source{
		{Title: "a", Link: "https://a"},
		{Title: "b", Link: "https://b"},
	}
	if diff := cmp.Diff(want, Unique(in, 2)); diff != "" {
		t.Errorf("Unique() mismatch (-want +got):\n%s", diff)
	}
}
