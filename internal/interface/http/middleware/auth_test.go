package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

type stubRevocation struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevocation) IsRevoked(_ context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

func newAuthEngine(m *AuthMiddleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(response.Dispatcher(response.DispatcherConfig{
		Classifier: response.NewClassifier("/api/", true),
	}))
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "admin": IsAdmin(c)})
	})
	r.GET("/api/resource", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, "test")
	expiredManager := jwt.NewManager("secret", -time.Minute, "test")
	otherManager := jwt.NewManager("other-secret", time.Hour, "test")

	admin, err := manager.GenerateToken(1, "admin", string(user.RoleAdmin))
	require.NoError(t, err)
	reader, err := manager.GenerateToken(2, "reader", string(user.RoleUser))
	require.NoError(t, err)
	expired, err := expiredManager.GenerateToken(3, "old", string(user.RoleUser))
	require.NoError(t, err)
	forged, err := otherManager.GenerateToken(1, "admin", string(user.RoleAdmin))
	require.NoError(t, err)

	revocation := &stubRevocation{revoked: map[string]bool{}}
	revokedToken, err := manager.GenerateToken(4, "gone", string(user.RoleUser))
	require.NoError(t, err)
	revocation.revoked[revokedToken.ID] = true

	m := NewAuthMiddleware(manager, revocation, "access_token")

	tests := []struct {
		name     string
		handlers []gin.HandlerFunc
		header   string
		cookie   string
		want     int
	}{
		{"缺少Token", []gin.HandlerFunc{m.RequireAuth()}, "", "", http.StatusUnauthorized},
		{"Bearer Token有效", []gin.HandlerFunc{m.RequireAuth()}, "Bearer " + reader.AccessToken, "", http.StatusOK},
		{"Cookie Token有效", []gin.HandlerFunc{m.RequireAuth()}, "", reader.AccessToken, http.StatusOK},
		{"非Bearer方案", []gin.HandlerFunc{m.RequireAuth()}, "Basic abc", "", http.StatusUnauthorized},
		{"Token过期", []gin.HandlerFunc{m.RequireAuth()}, "Bearer " + expired.AccessToken, "", http.StatusUnauthorized},
		{"签名不匹配", []gin.HandlerFunc{m.RequireAuth()}, "Bearer " + forged.AccessToken, "", http.StatusUnauthorized},
		{"已登出的Token", []gin.HandlerFunc{m.RequireAuth()}, "Bearer " + revokedToken.AccessToken, "", http.StatusUnauthorized},
		{"可选认证允许匿名", []gin.HandlerFunc{m.OptionalAuth()}, "", "", http.StatusOK},
		{"可选认证拒绝无效Token", []gin.HandlerFunc{m.OptionalAuth()}, "Bearer bogus", "", http.StatusUnauthorized},
		{"管理员角色", []gin.HandlerFunc{m.RequireAuth(), RequireRole(user.RoleAdmin)}, "Bearer " + admin.AccessToken, "", http.StatusOK},
		{"普通用户访问管理员接口", []gin.HandlerFunc{m.RequireAuth(), RequireRole(user.RoleAdmin)}, "Bearer " + reader.AccessToken, "", http.StatusForbidden},
		{"未认证直接检查角色", []gin.HandlerFunc{RequireRole(user.RoleAdmin)}, "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthEngine(m, tt.handlers...)
			req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestAuthMiddleware_RevocationStoreDown(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, "test")
	token, err := manager.GenerateToken(1, "u", string(user.RoleUser))
	require.NoError(t, err)

	m := NewAuthMiddleware(manager, &stubRevocation{err: errors.New("redis down")}, "")
	r := newAuthEngine(m, m.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthMiddleware_ContextValues(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, "test")
	token, err := manager.GenerateToken(7, "admin", string(user.RoleAdmin))
	require.NoError(t, err)

	m := NewAuthMiddleware(manager, &stubRevocation{}, "")
	r := newAuthEngine(m, m.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"admin":true}`, w.Body.String())
}
