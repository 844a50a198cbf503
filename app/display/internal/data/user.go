package data

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/founder_radar/app/display/internal/domain"
	"github.com/iWorld-y/founder_radar/app/display/internal/repo"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/storage"
)

type userRepo struct {
	data *Data
	log  *log.Helper
}

func NewUserRepo(data *Data, logger log.Logger) repo.UserRepo {
	return &userRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *userRepo) CreateUser(ctx context.Context, u *domain.User) error {
	created, err := r.data.store.CreateUser(ctx, u.Username, u.PasswordHash)
	if err != nil {
		if stderrors.Is(err, storage.ErrConflict) {
			return errors.Conflict("USER_EXISTS", "username already taken")
		}
		return err
	}
	u.ID = created.ID
	return nil
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := r.data.store.GetUserByUsername(ctx, username)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return nil, errors.NotFound("USER_NOT_FOUND", "user not found")
		}
		return nil, err
	}
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
	}, nil
}
