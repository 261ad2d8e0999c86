package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Context key
const (
	ContextKeyClaims = "claims"
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// RevocationChecker Token黑名单查询
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. API从Authorization: Bearer <token>取Token，浏览器页面从Cookie取
// 2. 验证签名和有效期，再检查黑名单（已登出的Token）
// 3. 将Claims注入Context，RequireRole据此判断角色
// 4. 失败统一交给错误分发中间件渲染（API返回JSON，浏览器返回错误页）
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	revocation RevocationChecker
	cookieName string
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, revocation RevocationChecker, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		revocation: revocation,
		cookieName: cookieName,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	books := r.Group("/api/books")
//	books.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			return
		}
		if err := m.authenticate(c, token); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuth 可选登录
// 有Token则验证（无效Token同样拒绝），没有则作为匿名用户继续
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.Next()
			return
		}
		if err := m.authenticate(c, token); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// ForReads 读接口的认证策略：publicRead为true时允许匿名
func (m *AuthMiddleware) ForReads(publicRead bool) gin.HandlerFunc {
	if publicRead {
		return m.OptionalAuth()
	}
	return m.RequireAuth()
}

// RequireRole 要求指定角色，必须放在RequireAuth之后
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.Error(c, apperrors.ErrUnauthorized)
			return
		}
		if claims.Role != string(role) {
			response.Error(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if m.cookieName != "" {
		if cookie, err := c.Cookie(m.cookieName); err == nil {
			return cookie
		}
	}
	return ""
}

func (m *AuthMiddleware) authenticate(c *gin.Context, token string) error {
	claims, err := m.jwtManager.ParseToken(token)
	if err != nil {
		return err // ErrTokenExpired、ErrInvalidToken
	}

	revoked, err := m.revocation.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	if revoked {
		return apperrors.ErrInvalidToken.WithMessage("token has been revoked")
	}

	c.Set(ContextKeyClaims, claims)
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyRole, claims.Role)
	return nil
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetClaims 当前请求的Claims，匿名访问时为nil
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(ContextKeyClaims); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID 从Context获取当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	return c.GetUint(ContextKeyUserID)
}

// IsAdmin 当前用户是否为管理员（页面据此显示编辑按钮）
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextKeyRole) == string(user.RoleAdmin)
}
