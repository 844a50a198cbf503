package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/logger"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// SaveState 覆盖保存某个用户的仪表盘状态
func (s *Storage) SaveState(ctx context.Context, owner string, st *model.DashboardState) error {
	if st == nil {
		return errors.New("nil dashboard state")
	}
	cp := *st
	cp.Version = model.StateVersion
	if cp.Items == nil {
		cp.Items = []model.CardItem{}
	}
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = time.Now()
	}
	payload, err := json.Marshal(&cp)
	if err != nil {
		return fmt.Errorf("marshal dashboard state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO dashboard_states (owner, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (owner) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`),
		owner, string(payload), cp.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save dashboard state: %w", err)
	}
	return nil
}

// LoadState 读取仪表盘状态；不存在时返回空状态，损坏或版本未知时清除后返回空状态
func (s *Storage) LoadState(ctx context.Context, owner string) (*model.DashboardState, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT payload FROM dashboard_states WHERE owner = ?`), owner).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewDashboardState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load dashboard state: %w", err)
	}

	st, err := decodeState([]byte(payload))
	if err != nil {
		logger.Log.Warnf("丢弃无法识别的仪表盘状态 owner=%s: %v", owner, err)
		if cerr := s.ClearState(ctx, owner); cerr != nil {
			return nil, cerr
		}
		return model.NewDashboardState(), nil
	}
	return st, nil
}

// ClearState 删除某个用户的仪表盘状态
func (s *Storage) ClearState(ctx context.Context, owner string) error {
	if _, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM dashboard_states WHERE owner = ?`), owner); err != nil {
		return fmt.Errorf("clear dashboard state: %w", err)
	}
	return nil
}

// decodeState 解析持久化的状态，版本 0 为裸的卡片数组
func decodeState(payload []byte) (*model.DashboardState, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []model.CardItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		st := model.NewDashboardState()
		if len(items) > 0 {
			st.Items = items
			st.SearchCompleted = true
		}
		return st, nil
	}

	var st model.DashboardState
	if err := json.Unmarshal(trimmed, &st); err != nil {
		return nil, err
	}
	if st.Version != model.StateVersion {
		return nil, fmt.Errorf("unknown state version %d", st.Version)
	}
	if st.Items == nil {
		st.Items = []model.CardItem{}
	}
	return &st, nil
}
