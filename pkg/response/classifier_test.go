package response

import (
	"encoding/json"
	stderrors "errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func fixedClassifier(expose bool) Classifier {
	c := NewClassifier("/api/", expose)
	c.Now = func() time.Time { return time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC) }
	return c
}

func TestIsAPIRequest(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		accept string
		want   bool
	}{
		{"API前缀", "/api/books/1", "text/html", true},
		{"仅JSON", "/books/1", "application/json", true},
		{"JSON带参数", "/books/1", "application/json; charset=utf-8", true},
		{"JSON后缀类型", "/books/1", "application/problem+json", true},
		{"JSON和HTML同时存在", "/books/1", "text/html,application/json", false},
		{"浏览器默认Accept", "/books/1", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", false},
		{"无Accept", "/books/1", "", false},
		{"通配", "/books", "*/*", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAPIRequest("/api/", tt.path, tt.accept))
		})
	}
}

func TestClassify_API(t *testing.T) {
	c := fixedClassifier(true)

	t.Run("资源不存在", func(t *testing.T) {
		err := apperrors.ErrNotFound.WithMessage("book not found with id: 999")
		d := c.Classify(err, "/api/books/999", "")

		require.True(t, d.IsAPI())
		assert.Equal(t, http.StatusNotFound, d.Status)
		assert.Equal(t, "resource not found", d.API.Message)
		assert.Equal(t, "book not found with id: 999", d.API.Details)
		assert.Equal(t, "/api/books/999", d.API.Path)
		assert.Equal(t, "2026-03-01T10:20:30", d.API.Timestamp)
		assert.NotNil(t, d.API.FieldErrors)
		assert.Empty(t, d.API.FieldErrors)
	})

	t.Run("校验失败带字段错误", func(t *testing.T) {
		err := apperrors.Validation(
			apperrors.FieldError{Field: "titre", Message: "must not be blank", RejectedValue: ""},
			apperrors.FieldError{Field: "prix", Message: "must be greater than 0", RejectedValue: "0"},
		)
		d := c.Classify(err, "/api/books", "application/json")

		require.True(t, d.IsAPI())
		assert.Equal(t, http.StatusBadRequest, d.Status)
		assert.Equal(t, "validation error", d.API.Message)
		assert.Equal(t, apperrors.ConstraintViolationText, d.API.Details)
		require.Len(t, d.API.FieldErrors, 2)
		assert.Equal(t, "titre", d.API.FieldErrors[0].Field)
		assert.Equal(t, "prix", d.API.FieldErrors[1].Field)
	})

	t.Run("参数错误", func(t *testing.T) {
		d := c.Classify(apperrors.InvalidArgument("prix must be a number: %q", "abc"), "/api/books/search/max-price", "")
		assert.Equal(t, http.StatusBadRequest, d.Status)
		assert.Equal(t, "invalid argument", d.API.Message)
		assert.Equal(t, `prix must be a number: "abc"`, d.API.Details)
		assert.Empty(t, d.API.FieldErrors)
	})

	t.Run("未知错误", func(t *testing.T) {
		d := c.Classify(stderrors.New("connection reset"), "/api/books", "")
		assert.Equal(t, http.StatusInternalServerError, d.Status)
		assert.Equal(t, "internal server error", d.API.Message)
		assert.Equal(t, "connection reset", d.API.Details)
	})

	t.Run("release模式隐藏内部错误", func(t *testing.T) {
		d := fixedClassifier(false).Classify(apperrors.Wrap(stderrors.New("dial tcp"), "query books"), "/api/books", "")
		assert.Equal(t, http.StatusInternalServerError, d.Status)
		assert.Empty(t, d.API.Details)
	})

	t.Run("认证失败", func(t *testing.T) {
		d := c.Classify(apperrors.ErrUnauthorized, "/api/books", "")
		assert.Equal(t, http.StatusUnauthorized, d.Status)
		assert.Equal(t, "unauthorized", d.API.Message)
	})
}

func TestClassify_View(t *testing.T) {
	c := fixedClassifier(true)

	t.Run("校验失败不暴露字段", func(t *testing.T) {
		err := apperrors.Validation(apperrors.FieldError{Field: "titre", Message: "must not be blank"})
		d := c.Classify(err, "/books/save", "text/html")

		require.False(t, d.IsAPI())
		assert.Equal(t, http.StatusBadRequest, d.Status)
		assert.Equal(t, "400 - Bad Request", d.View.Status)
		assert.Equal(t, apperrors.ConstraintViolationText, d.View.Message)
	})

	t.Run("资源不存在显示失败消息", func(t *testing.T) {
		d := c.Classify(apperrors.ErrNotFound.WithMessage("book not found with id: 5"), "/books/5", "")
		assert.Equal(t, "404 - Not Found", d.View.Status)
		assert.Equal(t, "book not found with id: 5", d.View.Message)
	})

	t.Run("500显示通用消息", func(t *testing.T) {
		d := c.Classify(stderrors.New("secret dsn"), "/books", "")
		assert.Equal(t, "500 - Internal Server Error", d.View.Status)
		assert.NotContains(t, d.View.Message, "secret")
	})
}

func newDispatchEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("error.html").Parse(`{{.Status}}|{{.Message}}`)))
	r.Use(Dispatcher(DispatcherConfig{Classifier: fixedClassifier(true)}))
	r.GET("/api/books/:id", handler)
	r.GET("/books/:id", handler)
	return r
}

func TestDispatcher(t *testing.T) {
	fail := func(c *gin.Context) {
		Error(c, apperrors.Validation(apperrors.FieldError{Field: "titre", Message: "must not be blank", RejectedValue: ""}))
	}
	r := newDispatchEngine(fail)

	t.Run("API请求返回JSON错误体", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books/1", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body ErrorReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "validation error", body.Message)
		assert.NotEmpty(t, body.FieldErrors)
	})

	t.Run("浏览器请求渲染视图", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/books/1", nil)
		req.Header.Set("Accept", "text/html")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "400 - Bad Request|"+apperrors.ConstraintViolationText, w.Body.String())
		assert.NotContains(t, w.Body.String(), "titre")
	})

	t.Run("成功请求不受影响", func(t *testing.T) {
		ok := newDispatchEngine(func(c *gin.Context) { OK(c, gin.H{"id": 1}) })
		w := httptest.NewRecorder()
		ok.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books/1", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1}`, w.Body.String())
	})
}
