package memory

import (
	"context"
	"time"

	"github.com/hashicorp/go-memdb"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// userRepository 用户仓储实现(内存)
type userRepository struct {
	store *Store
}

// NewUserRepository 创建用户仓储
func NewUserRepository(store *Store) user.Repository {
	return &userRepository{store: store}
}

// Create 创建用户,用户名冲突返回UsernameTaken
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	return r.store.write(ctx, func(txn *memdb.Txn) error {
		existing, err := txn.First(tableUser, "username", u.Username)
		if err != nil {
			return apperrors.Wrap(err, "create user")
		}
		if existing != nil {
			return user.UsernameTaken(u.Username)
		}

		now := time.Now()
		record := u.Clone()
		record.ID = uint(r.store.userSeq.Add(1))
		record.CreatedAt = now
		record.UpdatedAt = now
		if err := txn.Insert(tableUser, record); err != nil {
			return apperrors.Wrap(err, "create user")
		}

		u.ID = record.ID
		u.CreatedAt = now
		u.UpdatedAt = now
		return nil
	})
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, "id", id)
}

// FindByUsername 根据用户名查找用户
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.first(ctx, "username", username)
}

func (r *userRepository) first(ctx context.Context, index string, arg interface{}) (*user.User, error) {
	raw, err := r.store.read(ctx).First(tableUser, index, arg)
	if err != nil {
		return nil, apperrors.Wrap(err, "find user")
	}
	if raw == nil {
		return nil, user.ErrUserNotFound
	}
	return raw.(*user.User).Clone(), nil
}
