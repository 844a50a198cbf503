package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/iWorld-y/founder_radar/app/display/internal/conf"
	"github.com/iWorld-y/founder_radar/app/display/internal/domain"
	"github.com/iWorld-y/founder_radar/app/display/internal/repo"
)

// TokenTTL 登录令牌有效期
const TokenTTL = 24 * time.Hour

// UserUseCase 用户业务逻辑
type UserUseCase struct {
	repo   repo.UserRepo
	log    *log.Helper
	jwtKey string
}

// NewUserUseCase 创建用户业务逻辑实例
func NewUserUseCase(repo repo.UserRepo, auth *conf.Auth, logger log.Logger) *UserUseCase {
	jwtKey := "default-secret"
	if auth != nil && auth.JwtKey != "" {
		jwtKey = auth.JwtKey
	}
	return &UserUseCase{
		repo:   repo,
		log:    log.NewHelper(logger),
		jwtKey: jwtKey,
	}
}

// Register 用户注册
func (uc *UserUseCase) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.BadRequest("INVALID_ARGUMENT", "username and password are required")
	}
	// 使用 bcrypt 对密码进行哈希处理
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.repo.CreateUser(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	})
}

// Login 用户登录，返回 HS256 签名的 JWT
func (uc *UserUseCase) Login(ctx context.Context, username, password string) (string, error) {
	u, err := uc.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.Unauthorized("AUTH_FAILED", "invalid username or password")
		}
		return "", err
	}
	// 验证密码哈希
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid username or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": u.Username,
		"exp":      time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString([]byte(uc.jwtKey))
}
