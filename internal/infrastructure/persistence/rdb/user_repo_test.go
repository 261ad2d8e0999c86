package rdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("按用户名查找", func(t *testing.T) {
		db, mock := newMockDB(t)
		now := time.Now()
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "role", "created_at", "updated_at"}).
				AddRow(1, "admin", "hash", "ADMIN", now, now))

		u, err := NewUserRepository(db).FindByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, u.IsAdmin())
	})

	t.Run("用户不存在", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `users`").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewUserRepository(db).FindByID(ctx, 9)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("用户名冲突", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO `users`").
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.username'"))

		err := NewUserRepository(db).Create(ctx, user.NewUser("alice", "hash", user.RoleUser))
		assert.ErrorIs(t, err, user.ErrUsernameTaken)
	})
}
