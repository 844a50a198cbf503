package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/search"
)

const defaultTimeout = 30 * time.Second

// Client 自建 SearXNG 实例，只检索 general 分类
type Client struct {
	endpoint string
	http     *http.Client
}

var _ search.Searcher = (*Client)(nil)

// NewClient timeoutSec<=0 时使用 30 秒
func NewClient(baseURL string, timeoutSec int) *Client {
	timeout := defaultTimeout
	if timeoutSec > 0 {
		timeout = time.Duration(timeoutSec) * time.Second
	}
	return &Client{endpoint: baseURL, http: &http.Client{Timeout: timeout}}
}

type hit struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Content   string  `json:"content"`
	Published string  `json:"publishedDate"`
	Score     float64 `json:"score"`
}

// Sources 请求 /search?format=json，并在本地按链接去重、截断到 q.Size()
func (c *Client) Sources(ctx context.Context, q search.Query) ([]model.Source, error) {
	u, err := c.searchURL(q.Text)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searxng: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("searxng: status %d: %s", resp.StatusCode, msg)
	}

	var body struct {
		Results []hit `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("searxng: decode: %w", err)
	}

	out := make([]model.Source, 0, len(body.Results))
	for _, h := range body.Results {
		out = append(out, model.Source{
			Title:   h.Title,
			Link:    h.URL,
			PubDate: h.Published,
			Content: search.Longest(h.Content),
			Score:   h.Score,
		})
	}
	return search.Unique(out, q.Size()), nil
}

func (c *Client) searchURL(text string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("searxng: invalid base url %q", c.endpoint)
	}
	u.Path = "/search"
	u.RawQuery = url.Values{
		"q":          {text},
		"format":     {"json"},
		"categories": {"general"},
		"safesearch": {"1"},
	}.Encode()
	return u.String(), nil
}
