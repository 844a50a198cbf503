package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/search"
)

func TestClient_Sources(t *testing.T) {
	var got SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tv-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"query":"coffee","results":[{"title":"T","url":"https://x","content":"c","raw_content":"full text","score":0.9,"published_date":"2026-01-01"}]}`))
	}))
	defer srv.Close()

	c := NewClient("tv-key", WithBaseURL(srv.URL))
	sources, err := c.Sources(context.Background(), search.Query{Text: "coffee"})
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "https://x", sources[0].Link)
	assert.Equal(t, "full text", sources[0].Content)
	assert.Equal(t, "2026-01-01", sources[0].PubDate)
	assert.Equal(t, "basic", got.SearchDepth)
	assert.Equal(t, search.DefaultLimit, got.MaxResults)
	assert.Equal(t, "general", got.Topic)
	assert.True(t, got.IncludeRawContent)
}

func TestClient_SearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	_, err := NewClient("k", WithBaseURL(srv.URL)).Sources(context.Background(), search.Query{Text: "q"})
	assert.ErrorContains(t, err, "status 402")
}
