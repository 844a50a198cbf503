package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// DumpTranscript 把聊天记录按问答配对归档到主题下，返回写入的轮数。
// 没有提问的回答记为空提问，结尾没有回答的提问记为空回答，system 消息忽略。
func (s *Storage) DumpTranscript(ctx context.Context, owner, topic string, transcript []model.Message) (int, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return 0, errors.New("empty topic")
	}
	pairs := pairExchanges(transcript)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	now := time.Now().UnixMilli()
	var topicID int64
	err = tx.QueryRowContext(ctx, s.rebind(`
		INSERT INTO chat_topics (owner, name, deleted, created_at) VALUES (?, ?, 0, ?)
		ON CONFLICT (owner, name) DO UPDATE SET deleted = 0
		RETURNING id`), owner, topic, now).Scan(&topicID)
	if err != nil {
		return 0, rollback(tx, fmt.Errorf("upsert topic: %w", err))
	}

	for _, p := range pairs {
		_, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO chat_exchanges (topic_id, user_text, assistant_text, deleted, created_at)
			VALUES (?, ?, ?, 0, ?)`),
			topicID, sanitize(p.User), sanitize(p.Assistant), now)
		if err != nil {
			return 0, rollback(tx, fmt.Errorf("insert exchange: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(pairs), nil
}

func pairExchanges(transcript []model.Message) []model.Exchange {
	var (
		out     []model.Exchange
		pending *string
	)
	for _, m := range transcript {
		switch m.Role {
		case model.RoleUser:
			if pending != nil {
				out = append(out, model.Exchange{User: *pending})
			}
			content := m.Content
			pending = &content
		case model.RoleAssistant:
			ex := model.Exchange{Assistant: m.Content}
			if pending != nil {
				ex.User = *pending
				pending = nil
			}
			out = append(out, ex)
		}
	}
	if pending != nil {
		out = append(out, model.Exchange{User: *pending})
	}
	return out
}

// ListTopics 列出用户未删除的主题，按创建时间倒序
func (s *Storage) ListTopics(ctx context.Context, owner string) ([]model.Topic, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, owner, name, created_at FROM chat_topics
		WHERE owner = ? AND deleted = 0
		ORDER BY created_at DESC, id DESC`), owner)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := []model.Topic{}
	for rows.Next() {
		var (
			t  model.Topic
			ts int64
		)
		if err := rows.Scan(&t.ID, &t.Owner, &t.Name, &ts); err != nil {
			return nil, err
		}
		t.CreatedAt = time.UnixMilli(ts)
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// ListExchanges 列出主题下的问答，按写入顺序
func (s *Storage) ListExchanges(ctx context.Context, owner, topic string) ([]model.Exchange, error) {
	id, err := s.topicID(ctx, s.db, owner, topic)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, user_text, assistant_text, created_at FROM chat_exchanges
		WHERE topic_id = ? AND deleted = 0
		ORDER BY id ASC`), id)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	defer rows.Close()

	exchanges := []model.Exchange{}
	for rows.Next() {
		var (
			e  model.Exchange
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.User, &e.Assistant, &ts); err != nil {
			return nil, err
		}
		e.CreatedAt = time.UnixMilli(ts)
		exchanges = append(exchanges, e)
	}
	return exchanges, rows.Err()
}

// RenameTopic 重命名主题
func (s *Storage) RenameTopic(ctx context.Context, owner, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errors.New("empty topic")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	id, err := s.topicID(ctx, tx, owner, oldName)
	if err != nil {
		return rollback(tx, err)
	}
	if oldName == newName {
		return tx.Commit()
	}

	var exists int
	err = tx.QueryRowContext(ctx, s.rebind(`SELECT COUNT(1) FROM chat_topics WHERE owner = ? AND name = ?`), owner, newName).Scan(&exists)
	if err != nil {
		return rollback(tx, err)
	}
	if exists > 0 {
		return rollback(tx, fmt.Errorf("topic %q: %w", newName, ErrConflict))
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`UPDATE chat_topics SET name = ? WHERE id = ?`), newName, id); err != nil {
		return rollback(tx, fmt.Errorf("rename topic: %w", err))
	}
	return tx.Commit()
}

// DeleteTopic 软删除主题及其下所有问答
func (s *Storage) DeleteTopic(ctx context.Context, owner, topic string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	id, err := s.topicID(ctx, tx, owner, topic)
	if err != nil {
		return rollback(tx, err)
	}
	if _, err := tx.ExecContext(ctx, s.rebind(`UPDATE chat_exchanges SET deleted = 1 WHERE topic_id = ?`), id); err != nil {
		return rollback(tx, fmt.Errorf("delete exchanges: %w", err))
	}
	if _, err := tx.ExecContext(ctx, s.rebind(`UPDATE chat_topics SET deleted = 1 WHERE id = ?`), id); err != nil {
		return rollback(tx, fmt.Errorf("delete topic: %w", err))
	}
	return tx.Commit()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Storage) topicID(ctx context.Context, q queryer, owner, topic string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, s.rebind(`
		SELECT id FROM chat_topics WHERE owner = ? AND name = ? AND deleted = 0`), owner, topic).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("topic %q: %w", topic, ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}
