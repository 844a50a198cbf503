package completion

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/logger"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// Limited 调用方叠加的限流与重试层，Client 本身不重试
type Limited struct {
	next       Client
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

var _ Client = (*Limited)(nil)

// NewLimited rpm<=0 表示不限速；maxRetries 仅对 429 生效
func NewLimited(next Client, rpm, qps, maxRetries int) *Limited {
	limit := rate.Inf
	if rpm > 0 {
		limit = rate.Limit(float64(rpm) / 60.0)
	}
	burst := qps
	if burst <= 0 {
		burst = 1
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Limited{
		next:       next,
		limiter:    rate.NewLimiter(limit, burst),
		maxRetries: maxRetries,
		baseDelay:  2 * time.Second,
	}
}

// Complete 每次请求前等待令牌，429 时指数退避
func (l *Limited) Complete(ctx context.Context, messages []model.Message) (string, error) {
	var lastErr error
	for i := 0; i <= l.maxRetries; i++ {
		if err := l.limiter.Wait(ctx); err != nil {
			return "", failed("limiter", 0, err)
		}
		out, err := l.next.Complete(ctx, messages)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !isTooManyRequests(err) || i == l.maxRetries {
			break
		}
		delay := l.baseDelay * time.Duration(1<<i)
		logger.Log.Warnf("补全接口限流，%s 后重试 (%d/%d)", delay, i+1, l.maxRetries)
		select {
		case <-ctx.Done():
			return "", failed("limiter", 0, ctx.Err())
		case <-time.After(delay):
		}
	}
	return "", lastErr
}

func isTooManyRequests(err error) bool {
	var ce *Error
	if errors.As(err, &ce) && ce.StatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
