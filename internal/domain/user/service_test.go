package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func newService() user.Service {
	repo := memory.NewUserRepository(memory.MustNewStore())
	return user.NewService(repo, user.WithBcryptCost(bcrypt.MinCost))
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功", func(t *testing.T) {
		svc := newService()
		u, err := svc.Register(ctx, "alice", "secret", "secret")
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.Equal(t, user.RoleUser, u.Role)
		assert.NotEqual(t, "secret", u.Password)
	})

	tests := []struct {
		name      string
		username  string
		password  string
		confirm   string
		wantField []string
	}{
		{"用户名太短", "al", "secret", "secret", []string{"username"}},
		{"密码太短", "alice", "abc", "abc", []string{"password"}},
		{"两次密码不一致", "alice", "secret", "secreT", []string{"confirmPassword"}},
		{"全部非法", "a", "x", "y", []string{"username", "password", "confirmPassword"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().Register(ctx, tt.username, tt.password, tt.confirm)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

			var got []string
			for _, f := range apperrors.GetAppError(err).Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.wantField, got)
		})
	}

	t.Run("用户名重复", func(t *testing.T) {
		svc := newService()
		_, err := svc.Register(ctx, "alice", "secret", "secret")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "other", "other")
		assert.True(t, errors.Is(err, user.ErrUsernameTaken))
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Register(ctx, "alice", "secret", "secret")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidPassword))

	_, err = svc.Authenticate(ctx, "nobody", "secret")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidPassword))
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	created, err := svc.EnsureAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "admin", "changed")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := svc.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}
