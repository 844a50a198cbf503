package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/founder_radar/app/display/internal/repo"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/attachment"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/engine"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// ChatEngine 对话引擎，*engine.Engine 实现了该接口
type ChatEngine interface {
	NewSession() string
	SeedSession(transcript []model.Message) string
	HasSession(sessionID string) bool
	ResetSession(sessionID string)
	Chat(ctx context.Context, sessionID, query string, att attachment.Attachment) (*engine.ChatReply, error)
	Transcript(sessionID string) ([]model.Message, error)
}

var _ ChatEngine = (*engine.Engine)(nil)

// ChatUseCase 对话与归档。会话归属于创建它的用户
type ChatUseCase struct {
	eng     ChatEngine
	archive repo.ArchiveRepo
	log     *log.Helper

	mu     sync.Mutex
	owners map[string]string
}

// NewChatUseCase 创建实例
func NewChatUseCase(eng ChatEngine, archive repo.ArchiveRepo, logger log.Logger) *ChatUseCase {
	return &ChatUseCase{
		eng:     eng,
		archive: archive,
		log:     log.NewHelper(logger),
		owners:  make(map[string]string),
	}
}

var errSessionNotFound = errors.NotFound("SESSION_NOT_FOUND", "chat session not found")

// claim 记录新会话的归属，同时清理引擎已回收的会话
func (uc *ChatUseCase) claim(owner, sessionID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for sid := range uc.owners {
		if !uc.eng.HasSession(sid) {
			delete(uc.owners, sid)
		}
	}
	uc.owners[sessionID] = owner
}

func (uc *ChatUseCase) owns(owner, sessionID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	o, ok := uc.owners[sessionID]
	return ok && o == owner
}

func (uc *ChatUseCase) release(sessionID string) {
	uc.mu.Lock()
	delete(uc.owners, sessionID)
	uc.mu.Unlock()
}

// Chat 发送一轮对话。补全失败时返回 Failed=true 的致歉回复而不是错误
func (uc *ChatUseCase) Chat(ctx context.Context, owner, sessionID, message string, att attachment.Attachment) (*engine.ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.BadRequest("EMPTY_QUERY", "message must not be empty")
	}
	if sessionID == "" {
		sessionID = uc.eng.NewSession()
		uc.claim(owner, sessionID)
	} else if !uc.owns(owner, sessionID) {
		return nil, errSessionNotFound
	}

	reply, err := uc.eng.Chat(ctx, sessionID, message, att)
	if err != nil {
		if reply != nil && reply.Failed {
			uc.log.WithContext(ctx).Errorf("chat completion failed session=%s: %v", sessionID, err)
			return reply, nil
		}
		switch {
		case stderrors.Is(err, engine.ErrEmptyQuery):
			return nil, errors.BadRequest("EMPTY_QUERY", "message must not be empty")
		case stderrors.Is(err, engine.ErrUnknownSession):
			uc.release(sessionID)
			return nil, errSessionNotFound
		}
		return nil, errors.BadRequest("INVALID_ATTACHMENT", "attachment could not be read").WithCause(err)
	}
	return reply, nil
}

// Transcript 返回会话记录
func (uc *ChatUseCase) Transcript(ctx context.Context, owner, sessionID string) ([]model.Message, error) {
	if !uc.owns(owner, sessionID) {
		return nil, errSessionNotFound
	}
	msgs, err := uc.eng.Transcript(sessionID)
	if err != nil {
		uc.release(sessionID)
		return nil, errSessionNotFound.WithCause(err)
	}
	return msgs, nil
}

// Reset 丢弃会话
func (uc *ChatUseCase) Reset(ctx context.Context, owner, sessionID string) error {
	if !uc.owns(owner, sessionID) {
		return errSessionNotFound
	}
	uc.eng.ResetSession(sessionID)
	uc.release(sessionID)
	uc.log.WithContext(ctx).Infof("reset session=%s", sessionID)
	return nil
}

// Resume 以归档主题的问答创建新会话，空的一侧不进入对话记录
func (uc *ChatUseCase) Resume(ctx context.Context, owner, topic string) (string, []model.Message, error) {
	exchanges, err := uc.archive.ListExchanges(ctx, owner, topic)
	if err != nil {
		return "", nil, err
	}
	msgs := make([]model.Message, 0, 2*len(exchanges))
	for _, ex := range exchanges {
		if ex.User != "" {
			msgs = append(msgs, model.Message{Role: model.RoleUser, Content: ex.User})
		}
		if ex.Assistant != "" {
			msgs = append(msgs, model.Message{Role: model.RoleAssistant, Content: ex.Assistant})
		}
	}
	sessionID := uc.eng.SeedSession(msgs)
	uc.claim(owner, sessionID)
	uc.log.WithContext(ctx).Infof("resumed topic=%q session=%s messages=%d", topic, sessionID, len(msgs))
	return sessionID, msgs, nil
}

// Archive 把会话归档到主题下
func (uc *ChatUseCase) Archive(ctx context.Context, owner, sessionID, topic string) (int, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return 0, errors.BadRequest("EMPTY_TOPIC", "topic must not be empty")
	}
	msgs, err := uc.Transcript(ctx, owner, sessionID)
	if err != nil {
		return 0, err
	}
	n, err := uc.archive.DumpTranscript(ctx, owner, topic, msgs)
	if err != nil {
		return 0, err
	}
	uc.log.WithContext(ctx).Infof("archived session=%s topic=%q exchanges=%d", sessionID, topic, n)
	return n, nil
}

// ListTopics 列出归档主题
func (uc *ChatUseCase) ListTopics(ctx context.Context, owner string) ([]model.Topic, error) {
	return uc.archive.ListTopics(ctx, owner)
}

// ListExchanges 列出主题下的问答
func (uc *ChatUseCase) ListExchanges(ctx context.Context, owner, topic string) ([]model.Exchange, error) {
	return uc.archive.ListExchanges(ctx, owner, topic)
}

// RenameTopic 重命名主题
func (uc *ChatUseCase) RenameTopic(ctx context.Context, owner, topic, newTopic string) error {
	if strings.TrimSpace(newTopic) == "" {
		return errors.BadRequest("EMPTY_TOPIC", "new topic must not be empty")
	}
	return uc.archive.RenameTopic(ctx, owner, topic, strings.TrimSpace(newTopic))
}

// DeleteTopic 删除主题
func (uc *ChatUseCase) DeleteTopic(ctx context.Context, owner, topic string) error {
	return uc.archive.DeleteTopic(ctx, owner, topic)
}
