package engine

import (
	"context"
	"sync"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// StateStore 仪表盘状态存储，storage.Storage 实现了该接口
type StateStore interface {
	LoadState(ctx context.Context, owner string) (*model.DashboardState, error)
	SaveState(ctx context.Context, owner string, st *model.DashboardState) error
	ClearState(ctx context.Context, owner string) error
}

// MemoryStateStore 进程内的状态存储
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]model.DashboardState
}

var _ StateStore = (*MemoryStateStore)(nil)

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]model.DashboardState)}
}

func (m *MemoryStateStore) LoadState(_ context.Context, owner string) (*model.DashboardState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[owner]
	if !ok {
		return model.NewDashboardState(), nil
	}
	st.Items = append([]model.CardItem{}, st.Items...)
	return &st, nil
}

func (m *MemoryStateStore) SaveState(_ context.Context, owner string, st *model.DashboardState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *st
	cp.Version = model.StateVersion
	cp.Items = append([]model.CardItem{}, st.Items...)
	m.states[owner] = cp
	return nil
}

func (m *MemoryStateStore) ClearState(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, owner)
	return nil
}
