package user

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "user not found")

	// ErrUsernameTaken 用户名已被占用
	ErrUsernameTaken = apperrors.New(apperrors.ErrCodeUserDuplicate, apperrors.ConstraintViolationText)
)

// UsernameTaken 带字段错误的用户名冲突
func UsernameTaken(username string) *apperrors.AppError {
	return ErrUsernameTaken.WithFields(apperrors.FieldError{
		Field:         "username",
		Message:       "username is already taken",
		RejectedValue: username,
	})
}
