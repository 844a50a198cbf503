package searxng

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/search"
)

func TestClient_Sources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "general", r.URL.Query().Get("categories"))
		assert.Equal(t, "pricing", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"query":"pricing","results":[
			{"title":"a","url":"https://a","content":" first "},
			{"title":"a again","url":"https://a"},
			{"title":"b","url":"https://b","publishedDate":"2026-03-01"},
			{"title":"c","url":"https://c"}]}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, 0).Sources(context.Background(), search.Query{Text: "pricing", Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "b", got[1].Title)
	assert.Equal(t, "2026-03-01", got[1].PubDate)
}

func TestClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 1).Sources(context.Background(), search.Query{Text: "q"})
	assert.ErrorContains(t, err, "status 429")

	_, err = NewClient("not a url", 0).Sources(context.Background(), search.Query{Text: "q"})
	assert.ErrorContains(t, err, "invalid base url")
}
