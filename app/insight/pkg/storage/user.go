package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User 登录用户
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUser 创建用户，用户名已存在时返回 ErrConflict
func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	now := time.Now()
	var id int64
	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)
		ON CONFLICT (username) DO NOTHING
		RETURNING id`), username, passwordHash, now.UnixMilli()).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: time.UnixMilli(now.UnixMilli())}, nil
}

// GetUserByUsername 按用户名查询
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var (
		u  User
		ts int64
	)
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, username, password_hash, created_at FROM users WHERE username = ?`), username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = time.UnixMilli(ts)
	return &u, nil
}
