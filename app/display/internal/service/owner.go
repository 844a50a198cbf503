package service

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/middleware/auth/jwt"
	"github.com/go-kratos/kratos/v2/transport"
	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// AnonymousOwner 未登录且未携带 X-Owner 时使用的归属
const AnonymousOwner = "anonymous"

// OwnerHeader 未开启鉴权时用于区分用户的请求头
const OwnerHeader = "X-Owner"

// ownerFromContext 优先取 JWT 中的 username，其次取 X-Owner 请求头
func ownerFromContext(ctx context.Context) string {
	if claims, ok := jwt.FromContext(ctx); ok {
		if mc, ok := claims.(jwtv5.MapClaims); ok {
			if name, ok := mc["username"].(string); ok && name != "" {
				return name
			}
		}
	}
	if tr, ok := transport.FromServerContext(ctx); ok {
		if owner := strings.TrimSpace(tr.RequestHeader().Get(OwnerHeader)); owner != "" {
			return owner
		}
	}
	return AnonymousOwner
}
