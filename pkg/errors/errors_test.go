package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"资源不存在", ErrNotFound.WithMessage("book not found with id: 1"), KindNotFound},
		{"字段校验失败", Validation(FieldError{Field: "titre"}), KindValidation},
		{"唯一性冲突属于校验类", New(ErrCodeTitleDuplicate, "dup"), KindValidation},
		{"参数错误", InvalidArgument("bad prix: %q", "abc"), KindInvalidArgument},
		{"分页参数错误", ErrInvalidPage, KindInvalidArgument},
		{"未登录", ErrUnauthorized, KindUnauthorized},
		{"无权限", ErrForbidden, KindForbidden},
		{"限流", ErrTooManyRequests, KindTooManyRequests},
		{"数据库错误", Wrap(stderrors.New("conn refused"), "db"), KindInternal},
		{"普通错误", stderrors.New("boom"), KindInternal},
		{"被fmt包装的AppError", fmt.Errorf("ctx: %w", ErrNotFound), KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestAppError_CopiesDoNotMutatePredefined(t *testing.T) {
	e := ErrValidation.WithFields(FieldError{Field: "prix", Message: "m", RejectedValue: "0"})

	assert.Len(t, e.Fields, 1)
	assert.Empty(t, ErrValidation.Fields)
	assert.True(t, stderrors.Is(e, ErrValidation))

	m := ErrNotFound.WithMessage("book not found with id: %d", 7)
	assert.Equal(t, "book not found with id: 7", m.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
	assert.True(t, stderrors.Is(m, ErrNotFound))
}

func TestGetAppError(t *testing.T) {
	raw := stderrors.New("disk full")
	appErr := GetAppError(raw)

	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, "disk full", appErr.Message)
	assert.ErrorIs(t, appErr, raw)

	assert.Same(t, ErrForbidden, GetAppError(ErrForbidden))
}
