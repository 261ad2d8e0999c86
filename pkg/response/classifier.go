package response

import (
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// TimestampLayout 错误报告的时间格式（yyyy-MM-ddTHH:mm:ss，不带时区）
const TimestampLayout = "2006-01-02T15:04:05"

// unexpectedViewMessage 浏览器端500页面的提示，不暴露内部信息
const unexpectedViewMessage = "an unexpected error occurred, please try again later"

// ErrorReport API调用方看到的错误体
type ErrorReport struct {
	Timestamp   string                 `json:"timestamp"`
	Status      int                    `json:"status"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Path        string                 `json:"path"`
	FieldErrors []apperrors.FieldError `json:"fieldErrors"`
}

// ViewError 浏览器调用方看到的错误视图模型
// 只有状态行和消息，不含details和字段错误
type ViewError struct {
	Code    int
	Status  string // 例如 "404 - Not Found"
	Message string
}

// Dispatch 分类结果（API和View二选一）
type Dispatch struct {
	Status int
	Kind   apperrors.Kind
	API    *ErrorReport
	View   *ViewError
}

// IsAPI 是否以JSON错误体响应
func (d Dispatch) IsAPI() bool {
	return d.API != nil
}

// Classifier 错误分类器
// 设计说明：
// 1. 无状态，每个失败请求调用一次Classify
// 2. 分类顺序：NotFound → Validation → InvalidArgument → 认证/授权/限流 → Internal
// 3. 渲染分支由请求路径前缀和Accept头决定
type Classifier struct {
	// APIPrefix 以此前缀开头的路径一律视为API请求
	APIPrefix string
	// ExposeInternal 为false时500错误不返回details
	ExposeInternal bool
	// Now 时间来源，测试中可替换
	Now func() time.Time
}

// NewClassifier 创建分类器
func NewClassifier(apiPrefix string, exposeInternal bool) Classifier {
	return Classifier{
		APIPrefix:      apiPrefix,
		ExposeInternal: exposeInternal,
		Now:            time.Now,
	}
}

// Classify 将失败映射为状态码和响应模型
func (c Classifier) Classify(err error, path, accept string) Dispatch {
	appErr := apperrors.GetAppError(err)
	kind := appErr.Kind()

	status, message := statusOf(kind)
	details := appErr.Message
	fields := make([]apperrors.FieldError, 0)

	switch kind {
	case apperrors.KindValidation:
		details = apperrors.ConstraintViolationText
		fields = append(fields, appErr.Fields...)
	case apperrors.KindInternal:
		if !c.ExposeInternal {
			details = ""
		} else if appErr.Err != nil {
			details = appErr.Err.Error()
		}
	}

	d := Dispatch{Status: status, Kind: kind}
	if IsAPIRequest(c.APIPrefix, path, accept) {
		now := time.Now
		if c.Now != nil {
			now = c.Now
		}
		d.API = &ErrorReport{
			Timestamp:   now().Format(TimestampLayout),
			Status:      status,
			Message:     message,
			Details:     details,
			Path:        path,
			FieldErrors: fields,
		}
		return d
	}

	d.View = &ViewError{
		Code:    status,
		Status:  fmt.Sprintf("%d - %s", status, http.StatusText(status)),
		Message: viewMessage(kind, appErr),
	}
	return d
}

func statusOf(kind apperrors.Kind) (int, string) {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound, "resource not found"
	case apperrors.KindValidation:
		return http.StatusBadRequest, "validation error"
	case apperrors.KindInvalidArgument:
		return http.StatusBadRequest, "invalid argument"
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized, "unauthorized"
	case apperrors.KindForbidden:
		return http.StatusForbidden, "forbidden"
	case apperrors.KindTooManyRequests:
		return http.StatusTooManyRequests, "too many requests"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func viewMessage(kind apperrors.Kind, appErr *apperrors.AppError) string {
	switch kind {
	case apperrors.KindValidation:
		return apperrors.ConstraintViolationText
	case apperrors.KindInternal:
		return unexpectedViewMessage
	default:
		return appErr.Message
	}
}

// IsAPIRequest 判断调用方是否需要JSON错误体
// 规则：路径以API前缀开头；或Accept包含JSON类型且不包含HTML类型
func IsAPIRequest(apiPrefix, path, accept string) bool {
	if apiPrefix != "" && strings.HasPrefix(path, apiPrefix) {
		return true
	}
	wantsJSON, wantsHTML := false, false
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch {
		case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
			wantsJSON = true
		case mediaType == "text/html" || mediaType == "application/xhtml+xml":
			wantsHTML = true
		}
	}
	return wantsJSON && !wantsHTML
}
