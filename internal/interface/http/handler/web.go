package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// 页面模板
const (
	viewList   = "books.html"
	viewDetail = "book.html"
	viewForm   = "form.html"
)

// WebHandler 浏览器页面处理器
// 失败交给错误分发中间件渲染error.html，只有表单校验失败在本页重新渲染
type WebHandler struct {
	books *appbook.UseCases
}

// NewWebHandler 创建页面处理器
func NewWebHandler(books *appbook.UseCases) *WebHandler {
	return &WebHandler{books: books}
}

// ListView 列表页数据
type ListView struct {
	Books      []*book.Book
	TotalBooks int64
	Keyword    string
	IsAdmin    bool
}

// DetailView 详情页数据
type DetailView struct {
	Book    *book.Book
	IsAdmin bool
}

// FormView 表单页数据（回显用户输入）
type FormView struct {
	ID     uint
	Titre  string
	Auteur string
	Prix   string
	Errors map[string]string
}

// Home 首页跳转到列表
func (h *WebHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/books")
}

// List 列表页（可按关键字搜索标题或作者）
func (h *WebHandler) List(c *gin.Context) {
	result, err := h.books.Browse.Execute(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.HTML(http.StatusOK, viewList, ListView{
		Books:      result.Books,
		TotalBooks: result.TotalBooks,
		Keyword:    result.Keyword,
		IsAdmin:    middleware.IsAdmin(c),
	})
}

// Detail 详情页
func (h *WebHandler) Detail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	b, err := h.books.Get.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.HTML(http.StatusOK, viewDetail, DetailView{Book: b, IsAdmin: middleware.IsAdmin(c)})
}

// New 新建表单
func (h *WebHandler) New(c *gin.Context) {
	c.HTML(http.StatusOK, viewForm, FormView{Errors: map[string]string{}})
}

// Edit 编辑表单
func (h *WebHandler) Edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	b, err := h.books.Get.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.HTML(http.StatusOK, viewForm, FormView{
		ID:     b.ID,
		Titre:  b.Title,
		Auteur: b.Author,
		Prix:   b.Price.StringFixed(book.PriceScale),
		Errors: map[string]string{},
	})
}

// Save 保存表单：没有id时创建，有id时全量更新
// 成功跳转列表页；校验失败带字段提示重新渲染表单
func (h *WebHandler) Save(c *gin.Context) {
	form := FormView{
		Titre:  c.PostForm(book.FieldTitle),
		Auteur: c.PostForm(book.FieldAuthor),
		Prix:   strings.TrimSpace(c.PostForm(book.FieldPrice)),
		Errors: map[string]string{},
	}
	if raw := c.PostForm(book.FieldID); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, apperrors.InvalidArgument("invalid book id: %s", raw))
			return
		}
		form.ID = uint(id)
	}

	draft := book.Draft{Title: &form.Titre, Author: &form.Auteur}
	if form.Prix != "" {
		price, err := decimal.NewFromString(form.Prix)
		if err != nil {
			form.Errors[book.FieldPrice] = "must be a number"
			c.HTML(http.StatusBadRequest, viewForm, form)
			return
		}
		draft.Price = &price
	}

	var err error
	if form.ID == 0 {
		_, err = h.books.Create.Execute(c.Request.Context(), draft)
	} else {
		_, err = h.books.Update.Execute(c.Request.Context(), form.ID, draft)
	}
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindValidation {
			for _, fe := range apperrors.GetAppError(err).Fields {
				if _, seen := form.Errors[fe.Field]; !seen {
					form.Errors[fe.Field] = fe.Message
				}
			}
			c.HTML(http.StatusBadRequest, viewForm, form)
			return
		}
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/books")
}

// Delete 删除后跳转列表页
func (h *WebHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.books.Delete.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/books")
}
