package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "book not found")

	// ErrTitleDuplicate 书名已存在(唯一性冲突,属于校验类错误)
	ErrTitleDuplicate = apperrors.New(apperrors.ErrCodeTitleDuplicate, apperrors.ConstraintViolationText)

	// ErrInvalidPrice 价格参数无法解析
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "invalid price")
)

// NotFound 带ID的图书不存在错误
func NotFound(id uint) *apperrors.AppError {
	return ErrBookNotFound.WithMessage("book not found with id: %d", id)
}

// DuplicateTitle 书名冲突,附带titre字段错误
func DuplicateTitle(title string) *apperrors.AppError {
	return ErrTitleDuplicate.WithFields(apperrors.FieldError{
		Field:         FieldTitle,
		Message:       "a book with this title already exists",
		RejectedValue: title,
	})
}
