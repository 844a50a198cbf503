package server

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/auth/jwt"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/middleware/selector"
	"github.com/go-kratos/kratos/v2/transport/http"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	pb "github.com/iWorld-y/founder_radar/app/display/api/founder/v1"
	"github.com/iWorld-y/founder_radar/app/display/internal/conf"
	"github.com/iWorld-y/founder_radar/app/display/internal/service"
)

// 无需登录即可访问的接口
var publicOperations = map[string]struct{}{
	pb.OperationFounderRegister: {},
	pb.OperationFounderLogin:    {},
}

func NewHTTPServer(c *conf.Server, auth *conf.Auth, s *service.FounderService, logger log.Logger) *http.Server {
	ms := []middleware.Middleware{
		recovery.Recovery(),
	}
	if auth != nil && auth.JwtKey != "" {
		key := []byte(auth.JwtKey)
		ms = append(ms, selector.Server(
			jwt.Server(func(token *jwtv5.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithSigningMethod(jwtv5.SigningMethodHS256)),
		).Match(func(ctx context.Context, operation string) bool {
			_, public := publicOperations[operation]
			return !public
		}).Build())
	} else {
		log.NewHelper(logger).Warn("auth.jwt_key is empty, requests are scoped by the X-Owner header")
	}

	var opts = []http.ServerOption{
		http.Middleware(ms...),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	pb.RegisterFounderHTTPServer(srv, s)

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return srv
}
