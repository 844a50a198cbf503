package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/attachment"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/logger"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/prompt"
)

// ApologyText 补全失败时追加到对话中的回复
const ApologyText = "Sorry, I encountered an error."

// 会话默认上限
const (
	DefaultSessionTTL  = 2 * time.Hour
	DefaultMaxSessions = 1000
)

type session struct {
	mu         sync.Mutex
	transcript []model.Message
	lastUsed   time.Time
}

// ChatReply 一轮对话的结果
type ChatReply struct {
	SessionID string
	Reply     string
	Failed    bool
}

// NewSession 创建一个新的对话
func (e *Engine) NewSession() string {
	return e.addSession(nil)
}

// SeedSession 以已有记录创建对话，用于恢复归档的主题
func (e *Engine) SeedSession(transcript []model.Message) string {
	return e.addSession(append([]model.Message{}, transcript...))
}

// addSession 插入前清理闲置会话，达到上限时淘汰最久未使用的
func (e *Engine) addSession(transcript []model.Message) string {
	id := uuid.NewString()
	now := e.now()

	e.sessionsMu.Lock()
	defer e.sessionsMu.Unlock()
	var oldestID string
	var oldest time.Time
	for sid, s := range e.sessions {
		if now.Sub(s.lastUsed) > e.sessionTTL {
			delete(e.sessions, sid)
			continue
		}
		if oldestID == "" || s.lastUsed.Before(oldest) {
			oldestID, oldest = sid, s.lastUsed
		}
	}
	if len(e.sessions) >= e.maxSessions && oldestID != "" {
		logger.Log.Infof("会话数达到上限，淘汰 session=%s", oldestID)
		delete(e.sessions, oldestID)
	}
	e.sessions[id] = &session{transcript: transcript, lastUsed: now}
	return id
}

// session 查找会话并刷新使用时间，过期会话视为不存在
func (e *Engine) session(id string) (*session, bool) {
	now := e.now()
	e.sessionsMu.Lock()
	defer e.sessionsMu.Unlock()
	s, ok := e.sessions[id]
	if !ok {
		return nil, false
	}
	if now.Sub(s.lastUsed) > e.sessionTTL {
		delete(e.sessions, id)
		return nil, false
	}
	s.lastUsed = now
	return s, true
}

// HasSession 会话是否仍然存在
func (e *Engine) HasSession(id string) bool {
	e.sessionsMu.Lock()
	defer e.sessionsMu.Unlock()
	s, ok := e.sessions[id]
	return ok && e.now().Sub(s.lastUsed) <= e.sessionTTL
}

// Chat 发送一轮对话。对话记录中保存用户原始输入，发给模型的是拼接后的 prompt。
// sessionID 为空时新建对话，未知的 sessionID 返回 ErrUnknownSession。
// 补全失败时对话记录追加固定的致歉回复，返回 Failed=true 的结果和错误。
func (e *Engine) Chat(ctx context.Context, sessionID, query string, att attachment.Attachment) (*ChatReply, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	if sessionID != "" && !e.HasSession(sessionID) {
		return nil, ErrUnknownSession
	}

	var attached string
	if !att.IsZero() {
		text, err := e.resolver.Resolve(ctx, att)
		if err != nil {
			return nil, fmt.Errorf("resolve attachment: %w", err)
		}
		attached = text
	}

	if sessionID == "" {
		sessionID = e.NewSession()
	}
	s, ok := e.session(sessionID)
	if !ok {
		return nil, ErrUnknownSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prior := s.transcript
	messages := prompt.ChatMessages(prior, prompt.BuildChat(query, attached))
	s.transcript = append(s.transcript, model.Message{Role: model.RoleUser, Content: query})

	reply, err := e.client.Complete(ctx, messages)
	if err != nil {
		logger.Log.Errorf("对话失败 session=%s: %v", sessionID, err)
		s.transcript = append(s.transcript, model.Message{Role: model.RoleAssistant, Content: ApologyText})
		return &ChatReply{SessionID: sessionID, Reply: ApologyText, Failed: true}, fmt.Errorf("chat: %w", err)
	}

	s.transcript = append(s.transcript, model.Message{Role: model.RoleAssistant, Content: reply})
	return &ChatReply{SessionID: sessionID, Reply: reply}, nil
}

// Transcript 返回对话记录的副本
func (e *Engine) Transcript(sessionID string) ([]model.Message, error) {
	s, ok := e.session(sessionID)
	if !ok {
		return nil, ErrUnknownSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message{}, s.transcript...), nil
}

// ResetSession 丢弃对话
func (e *Engine) ResetSession(sessionID string) {
	e.sessionsMu.Lock()
	delete(e.sessions, sessionID)
	e.sessionsMu.Unlock()
}
