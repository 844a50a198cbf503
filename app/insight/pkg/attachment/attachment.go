package attachment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxBytes 附件正文进入 prompt 前的截断上限
const MaxBytes = 5000

// FetchTimeout 抓取网页的超时时间
const FetchTimeout = 30 * time.Second

var ErrEmptyAttachment = errors.New("attachment has neither text nor url")

// Attachment 聊天时附带的文档，Text 与 URL 二选一，Text 优先
type Attachment struct {
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// IsZero 是否为空附件
func (a Attachment) IsZero() bool {
	return strings.TrimSpace(a.Text) == "" && strings.TrimSpace(a.URL) == ""
}

// Fetcher 抓取 URL 并返回清洗后的正文
type Fetcher func(ctx context.Context, url string) (string, error)

// Resolver 把附件解析为可直接拼进 prompt 的文本
type Resolver struct {
	fetch Fetcher
}

// NewResolver 创建解析器，fetch 为空时使用 readability 抓取
func NewResolver(fetch Fetcher) *Resolver {
	if fetch == nil {
		fetch = FetchReadable
	}
	return &Resolver{fetch: fetch}
}

// Resolve 返回附件正文
func (r *Resolver) Resolve(ctx context.Context, a Attachment) (string, error) {
	if text := strings.TrimSpace(a.Text); text != "" {
		return Truncate(text, MaxBytes), nil
	}
	u := strings.TrimSpace(a.URL)
	if u == "" {
		return "", ErrEmptyAttachment
	}
	text, err := r.fetch(ctx, u)
	if err != nil {
		return "", fmt.Errorf("fetch attachment %s: %w", u, err)
	}
	return Truncate(strings.TrimSpace(text), MaxBytes), nil
}

// Truncate 按字节截断，不切断多字节字符
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
