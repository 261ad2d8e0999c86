package user

import (
	"context"
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 注册规则
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 4
)

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 注册普通用户（角色USER）
	Register(ctx context.Context, username, password, confirmPassword string) (*User, error)

	// Authenticate 校验用户名密码
	// 用户不存在和密码错误返回同一个错误，避免泄露用户是否存在
	Authenticate(ctx context.Context, username, password string) (*User, error)

	// EnsureAdmin 确保管理员账号存在（幂等）
	// 已存在时不修改密码和角色，返回created=false
	EnsureAdmin(ctx context.Context, username, password string) (created bool, err error)

	// GetByID 根据ID获取用户
	GetByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo Repository
	cost int
}

// Option 服务选项
type Option func(*service)

// WithBcryptCost 设置bcrypt cost（测试中使用bcrypt.MinCost加速）
func WithBcryptCost(cost int) Option {
	return func(s *service) { s.cost = cost }
}

// NewService 创建用户服务
func NewService(repo Repository, opts ...Option) Service {
	s := &service{repo: repo, cost: 12}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register 用户注册
// 业务规则：
// 1. 用户名3-50个字符，密码至少4个字符，两次密码一致
// 2. 密码bcrypt加密
// 3. 用户名唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, username, password, confirmPassword string) (*User, error) {
	var fields []apperrors.FieldError
	if n := utf8.RuneCountInString(username); n < MinUsernameLength || n > MaxUsernameLength {
		fields = append(fields, apperrors.FieldError{
			Field: "username", Message: "size must be between 3 and 50", RejectedValue: username,
		})
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		fields = append(fields, apperrors.FieldError{
			Field: "password", Message: "must be at least 4 characters", RejectedValue: "******",
		})
	}
	if password != confirmPassword {
		fields = append(fields, apperrors.FieldError{
			Field: "confirmPassword", Message: "passwords do not match", RejectedValue: "******",
		})
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields...)
	}

	return s.create(ctx, username, password, RoleUser)
}

// Authenticate 校验用户名密码
func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "verify password")
	}
	return user, nil
}

// EnsureAdmin 确保管理员存在
// 并发启动多个实例时，唯一索引保证只创建一次，冲突视为已存在
func (s *service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return false, err
	}

	if _, err := s.create(ctx, username, password, RoleAdmin); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetByID 根据ID获取用户
func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) create(ctx context.Context, username, password string, role Role) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "hash password")
	}

	user := NewUser(username, string(hashed), role)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err // Repository已转换为业务错误
	}
	return user, nil
}
