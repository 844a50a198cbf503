package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/go-shiori/go-readability"
)

// maxPageBytes 抓取网页时读取的响应体上限
const maxPageBytes = 5 << 20

// ErrBlockedURL 非 http(s) 或指向内网地址的 URL
var ErrBlockedURL = errors.New("url is not allowed")

var defaultClient = NewClient(FetchTimeout)

// NewClient 返回只允许访问公网地址的 http.Client，重定向同样受限
func NewClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout: 10 * time.Second,
		Control: guardDial,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               nil,
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			return checkScheme(req.URL)
		},
	}
}

// FetchReadable 抓取网页并用 readability 提取正文
func FetchReadable(ctx context.Context, rawURL string) (string, error) {
	return FetchWith(defaultClient)(ctx, rawURL)
}

// FetchWith 使用指定 client 抓取网页
func FetchWith(client *http.Client) Fetcher {
	return func(ctx context.Context, rawURL string) (string, error) {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrBlockedURL, err)
		}
		if err := checkScheme(u); err != nil {
			return "", err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", "founder-radar/1.0")
		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", fmt.Errorf("fetch %s: status %d", u.Host, resp.StatusCode)
		}
		article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBytes), resp.Request.URL)
		if err != nil {
			return "", err
		}
		return article.TextContent, nil
	}
}

func checkScheme(u *url.URL) error {
	if (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return fmt.Errorf("%w: %s", ErrBlockedURL, u.Redacted())
	}
	return nil
}

// guardDial 在 DNS 解析之后校验实际连接的地址
func guardDial(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublic(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedURL, host)
	}
	return nil
}

var cgnat = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

func isPublic(ip net.IP) bool {
	switch {
	case ip.IsLoopback(), ip.IsPrivate(), ip.IsUnspecified(),
		ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(), ip.IsMulticast():
		return false
	case cgnat.Contains(ip):
		return false
	}
	return true
}
