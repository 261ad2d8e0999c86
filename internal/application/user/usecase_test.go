package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = ttl
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}

func newUserService(t *testing.T) user.Service {
	t.Helper()
	store, err := memory.NewStore()
	require.NoError(t, err)
	return user.NewService(memory.NewUserRepository(store), user.WithBcryptCost(bcrypt.MinCost))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newUserService(t)
	manager := jwt.NewManager("test-secret", time.Hour, "bookcatalog")
	register := appuser.NewRegisterUseCase(svc)
	login := appuser.NewLoginUseCase(svc, manager)
	ctx := context.Background()

	info, err := register.Execute(ctx, appuser.RegisterRequest{
		Username: "alice", Password: "secret", ConfirmPassword: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, string(user.RoleUser), info.Role)

	resp, err := login.Execute(ctx, appuser.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := manager.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, info.ID, claims.UserID)
	assert.Equal(t, string(user.RoleUser), claims.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := newUserService(t)
	login := appuser.NewLoginUseCase(svc, jwt.NewManager("s", time.Hour, "i"))
	_, err := appuser.NewRegisterUseCase(svc).Execute(context.Background(), appuser.RegisterRequest{
		Username: "alice", Password: "secret", ConfirmPassword: "secret",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"密码错误", "alice", "wrong"},
		{"用户不存在", "bob", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := login.Execute(context.Background(), appuser.LoginRequest{Username: tt.username, Password: tt.password})
			assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
			assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
		})
	}
}

func TestLogout_RevokesForRemainingLifetime(t *testing.T) {
	manager := jwt.NewManager("s", time.Hour, "i")
	token, err := manager.GenerateToken(1, "alice", "USER")
	require.NoError(t, err)
	claims, err := manager.ParseToken(token.AccessToken)
	require.NoError(t, err)

	revoker := &fakeRevoker{revoked: map[string]time.Duration{}}
	require.NoError(t, appuser.NewLogoutUseCase(revoker).Execute(context.Background(), claims))

	ttl, ok := revoker.revoked[token.ID]
	require.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)

	assert.NoError(t, appuser.NewLogoutUseCase(revoker).Execute(context.Background(), nil))
}

func TestBootstrapAdmin_Idempotent(t *testing.T) {
	svc := newUserService(t)
	uc := appuser.NewBootstrapAdminUseCase(svc, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, "admin", "admin123"))
	require.NoError(t, uc.Execute(ctx, "admin", "changed"))

	u, err := svc.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err, "第二次执行不修改密码")
	assert.True(t, u.IsAdmin())
}
