package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	ErrNotFound = errors.New("storage: not found")
	ErrConflict = errors.New("storage: already exists")
)

// Storage 基于 database/sql 的持久层，支持 postgres 与 sqlite
type Storage struct {
	db     *sql.DB
	driver string
}

// Open 打开数据库并初始化表结构
func Open(ctx context.Context, driver, source string) (*Storage, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	case "":
		driver = DriverSQLite
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", driver)
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if driver == DriverSQLite {
		// sqlite 单写者
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db, driver: driver}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Driver 返回当前使用的驱动名
func (s *Storage) Driver() string {
	return s.driver
}

func (s *Storage) migrate(ctx context.Context) error {
	pk := "BIGSERIAL PRIMARY KEY"
	if s.driver == DriverSQLite {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id ` + pk + `,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS dashboard_states (
			owner TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chat_topics (
			id ` + pk + `,
			owner TEXT NOT NULL,
			name TEXT NOT NULL,
			deleted INTEGER NOT NULL DEFAULT 0,
			created_at BIGINT NOT NULL,
			UNIQUE (owner, name)
		)`,
		`CREATE TABLE IF NOT EXISTS chat_exchanges (
			id ` + pk + `,
			topic_id BIGINT NOT NULL REFERENCES chat_topics(id),
			user_text TEXT NOT NULL,
			assistant_text TEXT NOT NULL,
			deleted INTEGER NOT NULL DEFAULT 0,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_exchanges_topic ON chat_exchanges(topic_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// rebind 把 ? 占位符改写为 postgres 的 $n
func (s *Storage) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func rollback(tx *sql.Tx, err error) error {
	if rerr := tx.Rollback(); rerr != nil {
		err = fmt.Errorf("%w: %v", err, rerr)
	}
	return err
}

// sanitize 移除无效的 UTF-8 字符和 NULL 字节，PostgreSQL 文本字段不支持 NULL 字节
func sanitize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.ReplaceAll(s, "\x00", "")
}
