package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/attachment"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/engine"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// mockChatEngine 模拟对话引擎
type mockChatEngine struct {
	next     int
	fail     bool
	sessions map[string][]model.Message
}

func (m *mockChatEngine) NewSession() string {
	m.next++
	id := fmt.Sprintf("s%d", m.next)
	m.sessions[id] = nil
	return id
}

func (m *mockChatEngine) SeedSession(transcript []model.Message) string {
	id := m.NewSession()
	m.sessions[id] = transcript
	return id
}

func (m *mockChatEngine) HasSession(sessionID string) bool {
	_, ok := m.sessions[sessionID]
	return ok
}

func (m *mockChatEngine) ResetSession(sessionID string) {
	delete(m.sessions, sessionID)
}

func (m *mockChatEngine) Chat(ctx context.Context, sessionID, query string, att attachment.Attachment) (*engine.ChatReply, error) {
	if !m.HasSession(sessionID) {
		return nil, engine.ErrUnknownSession
	}
	m.sessions[sessionID] = append(m.sessions[sessionID], model.Message{Role: model.RoleUser, Content: query})
	if m.fail {
		m.sessions[sessionID] = append(m.sessions[sessionID], model.Message{Role: model.RoleAssistant, Content: engine.ApologyText})
		return &engine.ChatReply{SessionID: sessionID, Reply: engine.ApologyText, Failed: true}, fmt.Errorf("chat: boom")
	}
	m.sessions[sessionID] = append(m.sessions[sessionID], model.Message{Role: model.RoleAssistant, Content: "ok"})
	return &engine.ChatReply{SessionID: sessionID, Reply: "ok"}, nil
}

func (m *mockChatEngine) Transcript(sessionID string) ([]model.Message, error) {
	msgs, ok := m.sessions[sessionID]
	if !ok {
		return nil, engine.ErrUnknownSession
	}
	return msgs, nil
}

// mockArchiveRepo 模拟归档仓库
type mockArchiveRepo struct {
	dumped    map[string][]model.Message
	exchanges map[string][]model.Exchange
}

func (m *mockArchiveRepo) DumpTranscript(ctx context.Context, owner, topic string, transcript []model.Message) (int, error) {
	m.dumped[owner+"/"+topic] = transcript
	return len(transcript) / 2, nil
}

func (m *mockArchiveRepo) ListTopics(ctx context.Context, owner string) ([]model.Topic, error) {
	return []model.Topic{}, nil
}

func (m *mockArchiveRepo) ListExchanges(ctx context.Context, owner, topic string) ([]model.Exchange, error) {
	ex, ok := m.exchanges[owner+"/"+topic]
	if !ok {
		return nil, errors.NotFound("TOPIC_NOT_FOUND", "topic not found")
	}
	return ex, nil
}

func (m *mockArchiveRepo) RenameTopic(ctx context.Context, owner, oldName, newName string) error {
	return nil
}

func (m *mockArchiveRepo) DeleteTopic(ctx context.Context, owner, topic string) error {
	return nil
}

func newChatUseCase(eng *mockChatEngine) (*ChatUseCase, *mockArchiveRepo) {
	archive := &mockArchiveRepo{dumped: map[string][]model.Message{}, exchanges: map[string][]model.Exchange{}}
	return NewChatUseCase(eng, archive, log.DefaultLogger), archive
}

func TestChatUseCase_Ownership(t *testing.T) {
	eng := &mockChatEngine{sessions: map[string][]model.Message{}}
	uc, archive := newChatUseCase(eng)
	ctx := context.Background()

	reply, err := uc.Chat(ctx, "alice", "", "hi", attachment.Attachment{})
	require.NoError(t, err)
	assert.Equal(t, "s1", reply.SessionID)

	_, err = uc.Chat(ctx, "bob", reply.SessionID, "hijack", attachment.Attachment{})
	assert.True(t, errors.IsNotFound(err))

	_, err = uc.Transcript(ctx, "bob", reply.SessionID)
	assert.True(t, errors.IsNotFound(err))

	msgs, err := uc.Transcript(ctx, "alice", reply.SessionID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	n, err := uc.Archive(ctx, "alice", reply.SessionID, " launch ")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, archive.dumped["alice/launch"], 2)

	_, err = uc.Archive(ctx, "alice", reply.SessionID, "")
	assert.True(t, errors.IsBadRequest(err))
	_, err = uc.Archive(ctx, "bob", reply.SessionID, "x")
	assert.True(t, errors.IsNotFound(err))
}

func TestChatUseCase_FailedReply(t *testing.T) {
	eng := &mockChatEngine{sessions: map[string][]model.Message{}, fail: true}
	uc, _ := newChatUseCase(eng)

	reply, err := uc.Chat(context.Background(), "alice", "", "hi", attachment.Attachment{})
	require.NoError(t, err)
	assert.True(t, reply.Failed)
	assert.Equal(t, engine.ApologyText, reply.Reply)

	_, err = uc.Chat(context.Background(), "alice", "", "  ", attachment.Attachment{})
	assert.True(t, errors.IsBadRequest(err))
}

func TestChatUseCase_RenameValidation(t *testing.T) {
	uc, _ := newChatUseCase(&mockChatEngine{sessions: map[string][]model.Message{}})
	err := uc.RenameTopic(context.Background(), "alice", "a", " ")
	assert.True(t, errors.IsBadRequest(err))
	assert.NoError(t, uc.RenameTopic(context.Background(), "alice", "a", "b"))
}

func TestChatUseCase_UnknownSession(t *testing.T) {
	eng := &mockChatEngine{sessions: map[string][]model.Message{}}
	uc, _ := newChatUseCase(eng)

	_, err := uc.Chat(context.Background(), "alice", "made-up", "hi", attachment.Attachment{})
	assert.True(t, errors.IsNotFound(err))
	assert.Empty(t, eng.sessions)
	assert.Empty(t, uc.owners)
}

func TestChatUseCase_Reset(t *testing.T) {
	eng := &mockChatEngine{sessions: map[string][]model.Message{}}
	uc, _ := newChatUseCase(eng)
	ctx := context.Background()

	reply, err := uc.Chat(ctx, "alice", "", "hi", attachment.Attachment{})
	require.NoError(t, err)

	assert.True(t, errors.IsNotFound(uc.Reset(ctx, "bob", reply.SessionID)))
	require.NoError(t, uc.Reset(ctx, "alice", reply.SessionID))
	assert.False(t, eng.HasSession(reply.SessionID))
	assert.NotContains(t, uc.owners, reply.SessionID)

	_, err = uc.Transcript(ctx, "alice", reply.SessionID)
	assert.True(t, errors.IsNotFound(err))
}

func TestChatUseCase_PrunesEvictedOwners(t *testing.T) {
	eng := &mockChatEngine{sessions: map[string][]model.Message{}}
	uc, _ := newChatUseCase(eng)
	ctx := context.Background()

	first, err := uc.Chat(ctx, "alice", "", "hi", attachment.Attachment{})
	require.NoError(t, err)
	// 引擎回收了会话
	eng.ResetSession(first.SessionID)

	_, err = uc.Chat(ctx, "alice", "", "again", attachment.Attachment{})
	require.NoError(t, err)
	assert.NotContains(t, uc.owners, first.SessionID)
	assert.Len(t, uc.owners, 1)
}

func TestChatUseCase_Resume(t *testing.T) {
	eng := &mockChatEngine{sessions: map[string][]model.Message{}}
	uc, archive := newChatUseCase(eng)
	ctx := context.Background()
	archive.exchanges["alice/pricing"] = []model.Exchange{
		{ID: 1, User: "What should I charge?", Assistant: "Start at $20."},
		{ID: 2, User: "", Assistant: "Orphan reply."},
	}

	sid, msgs, err := uc.Resume(ctx, "alice", "pricing")
	require.NoError(t, err)
	assert.Equal(t, []model.Message{
		{Role: model.RoleUser, Content: "What should I charge?"},
		{Role: model.RoleAssistant, Content: "Start at $20."},
		{Role: model.RoleAssistant, Content: "Orphan reply."},
	}, msgs)

	got, err := uc.Transcript(ctx, "alice", sid)
	require.NoError(t, err)
	assert.Equal(t, msgs, got)
	_, err = uc.Transcript(ctx, "bob", sid)
	assert.True(t, errors.IsNotFound(err))

	_, _, err = uc.Resume(ctx, "bob", "pricing")
	assert.True(t, errors.IsNotFound(err))
}
