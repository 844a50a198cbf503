package repo

import (
	"context"

	"github.com/iWorld-y/founder_radar/app/display/internal/domain"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

// UserRepo 用户仓库接口
type UserRepo interface {
	// CreateUser 创建用户
	CreateUser(ctx context.Context, u *domain.User) error
	// GetUserByUsername 根据用户名获取用户
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ArchiveRepo 聊天归档仓库接口
type ArchiveRepo interface {
	// DumpTranscript 把对话按问答配对写入主题，返回写入的轮数
	DumpTranscript(ctx context.Context, owner, topic string, transcript []model.Message) (int, error)
	ListTopics(ctx context.Context, owner string) ([]model.Topic, error)
	ListExchanges(ctx context.Context, owner, topic string) ([]model.Exchange, error)
	RenameTopic(ctx context.Context, owner, oldName, newName string) error
	// DeleteTopic 软删除主题及其问答
	DeleteTopic(ctx context.Context, owner, topic string) error
}
