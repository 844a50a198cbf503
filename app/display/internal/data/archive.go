package data

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/founder_radar/app/display/internal/repo"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/storage"
)

type archiveRepo struct {
	data *Data
	log  *log.Helper
}

func NewArchiveRepo(data *Data, logger log.Logger) repo.ArchiveRepo {
	return &archiveRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *archiveRepo) DumpTranscript(ctx context.Context, owner, topic string, transcript []model.Message) (int, error) {
	n, err := r.data.store.DumpTranscript(ctx, owner, topic, transcript)
	return n, topicError(err)
}

func (r *archiveRepo) ListTopics(ctx context.Context, owner string) ([]model.Topic, error) {
	return r.data.store.ListTopics(ctx, owner)
}

func (r *archiveRepo) ListExchanges(ctx context.Context, owner, topic string) ([]model.Exchange, error) {
	ex, err := r.data.store.ListExchanges(ctx, owner, topic)
	return ex, topicError(err)
}

func (r *archiveRepo) RenameTopic(ctx context.Context, owner, oldName, newName string) error {
	return topicError(r.data.store.RenameTopic(ctx, owner, oldName, newName))
}

func (r *archiveRepo) DeleteTopic(ctx context.Context, owner, topic string) error {
	return topicError(r.data.store.DeleteTopic(ctx, owner, topic))
}

func topicError(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, storage.ErrNotFound):
		return errors.NotFound("TOPIC_NOT_FOUND", "topic not found")
	case stderrors.Is(err, storage.ErrConflict):
		return errors.Conflict("TOPIC_EXISTS", "topic already exists")
	default:
		return err
	}
}
