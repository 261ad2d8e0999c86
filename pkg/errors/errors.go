package errors

import (
	"errors"
	"fmt"
)

// Kind 错误分类
// 设计说明：
// 1. Kind决定HTTP状态码和对外的简短消息，由错误码区间推导（见KindOf）
// 2. 分类顺序固定：NotFound → Validation → InvalidArgument → 认证/授权/限流 → Internal
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindInvalidArgument
	KindUnauthorized
	KindForbidden
	KindTooManyRequests
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// FieldError 单个字段的校验失败
// RejectedValue统一转成文本，nil值记为"null"
type FieldError struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue string `json:"rejectedValue"`
}

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，区间决定错误分类（Kind）
// 2. Message是面向调用方的失败描述（对应错误报告中的details）
// 3. Fields仅在校验失败时填充，保持校验顺序
// 4. Err是内部错误，仅记录到日志
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同一错误码视为同一类错误
// 这样预定义错误在被Wrapf或WithFields复制后依然可以用errors.Is判断
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Kind 返回错误分类
func (e *AppError) Kind() Kind {
	return kindOfCode(e.Code)
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为Internal错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithMessage 复制错误并替换消息（保留错误码，预定义错误不被修改）
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// WithFields 复制错误并附加字段错误
func (e *AppError) WithFields(fields ...FieldError) *AppError {
	cp := *e
	cp.Fields = append(append([]FieldError(nil), e.Fields...), fields...)
	return &cp
}

// WithCause 复制错误并记录底层原因
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 参数错误（请求参数无法解析、分页参数非法）
// - 401xx: 认证错误
// - 403xx: 授权错误
// - 404xx: 资源不存在
// - 422xx: 校验错误（字段约束、唯一性约束）
// - 429xx: 请求过于频繁
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 参数错误（40000-40099）
	ErrCodeInvalidParams = 40000 // 参数错误
	ErrCodeBindError     = 40001 // 请求体无法解析
	ErrCodeInvalidPage   = 40002 // 分页参数非法

	// 认证错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 用户名或密码错误

	// 授权错误（40300-40399）
	ErrCodeForbidden = 40300 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound = 40401 // 用户不存在
	ErrCodeBookNotFound = 40402 // 图书不存在

	// 校验错误（42200-42299）
	ErrCodeValidation     = 42200 // 字段校验失败(通用)
	ErrCodeTitleDuplicate = 42201 // 书名已存在
	ErrCodeUserDuplicate  = 42202 // 用户名已存在
	ErrCodeDuplicateEntry = 42209 // 重复记录(通用)

	// 限流（42900-42999）
	ErrCodeTooManyRequests = 42900
)

// ConstraintViolationText 校验失败时的通用说明
const ConstraintViolationText = "submitted data does not satisfy the required constraints"

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "internal error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "database error")
	ErrRedisError    = New(ErrCodeRedisError, "cache error")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "authentication required")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "invalid token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "token expired")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "bad credentials")
	ErrForbidden       = New(ErrCodeForbidden, "access denied")

	// 资源不存在
	ErrNotFound = New(ErrCodeNotFound, "resource not found")

	// 校验
	ErrValidation = New(ErrCodeValidation, ConstraintViolationText)

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "invalid parameter")
	ErrBindError     = New(ErrCodeBindError, "malformed request body")
	ErrInvalidPage   = New(ErrCodeInvalidPage, "invalid pagination parameter")

	ErrTooManyRequests = New(ErrCodeTooManyRequests, "too many requests")
)

// =========================================
// 辅助函数
// =========================================

func kindOfCode(code int) Kind {
	switch {
	case code >= 40400 && code < 40500:
		return KindNotFound
	case code >= 42200 && code < 42300:
		return KindValidation
	case code >= 40000 && code < 40100:
		return KindInvalidArgument
	case code >= 40100 && code < 40200:
		return KindUnauthorized
	case code >= 40300 && code < 40400:
		return KindForbidden
	case code >= 42900 && code < 43000:
		return KindTooManyRequests
	default:
		return KindInternal
	}
}

// KindOf 返回任意错误的分类，非AppError一律视为Internal
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return KindInternal
}

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, err.Error())
}

// Validation 创建带字段错误的校验失败
func Validation(fields ...FieldError) *AppError {
	return ErrValidation.WithFields(fields...)
}

// InvalidArgument 创建参数错误
func InvalidArgument(format string, args ...interface{}) *AppError {
	return ErrInvalidParams.WithMessage(format, args...)
}
