package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书API处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析参数、调用用例、返回响应
// 2. 失败一律交给response.Error，由错误分发中间件分类渲染
// 3. 是否分页由请求是否带page/size/sort决定
type BookHandler struct {
	books  *appbook.UseCases
	paging dto.Paging
}

// NewBookHandler 创建图书处理器
func NewBookHandler(books *appbook.UseCases, paging dto.Paging) *BookHandler {
	return &BookHandler{books: books, paging: paging}
}

// List 图书列表
// @Summary      图书列表
// @Description  带page/size/sort任一参数时返回分页结果，否则返回全部图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        page query int    false "页码（从0开始）"
// @Param        size query int    false "每页数量（默认20，最大2000）"
// @Param        sort query string false "排序：prop[,asc|desc]，prop为id|titre|auteur|prix"
// @Success      200 {object} dto.PageResponse
// @Failure      400 {object} response.ErrorReport "分页参数非法"
// @Failure      401 {object} response.ErrorReport "未登录"
// @Router       /api/books [get]
func (h *BookHandler) List(c *gin.Context) {
	page, err := h.paging.Parse(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.books.Search.All(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewResult(result))
}

// ListAll 全部图书（不分页）
// @Summary      全部图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.BookResponse
// @Router       /api/books/all [get]
func (h *BookHandler) ListAll(c *gin.Context) {
	result, err := h.books.Search.All(c.Request.Context(), nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookList(result.Items))
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorReport "ID非法"
// @Failure      404 {object} response.ErrorReport "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
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
	response.OK(c, dto.NewBookResponse(b))
}

// Create 创建图书
// @Summary      创建图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorReport "校验失败或书名已存在"
// @Failure      403 {object} response.ErrorReport "需要管理员"
// @Router       /api/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}
	b, err := h.books.Create.Execute(c.Request.Context(), req.ToDraft())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewBookResponse(b))
}

// Update 全量更新
// @Summary      全量更新图书
// @Description  三个字段无条件覆盖后重新校验
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorReport
// @Failure      404 {object} response.ErrorReport
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}
	b, err := h.books.Update.Execute(c.Request.Context(), id, req.ToDraft())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookResponse(b))
}

// Patch 部分更新
// @Summary      部分更新图书
// @Description  titre/auteur为空白、prix不为正数时保持原值
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "要修改的字段"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorReport
// @Failure      404 {object} response.ErrorReport
// @Router       /api/books/{id} [patch]
func (h *BookHandler) Patch(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}
	b, err := h.books.Patch.Execute(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookResponse(b))
}

// Delete 删除图书
// @Summary      删除图书
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {object} response.ErrorReport
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.books.Delete.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SearchByTitle 标题查询
// @Summary      按标题查询
// @Tags         图书查询
// @Produce      json
// @Security     BearerAuth
// @Param        titre query string false "标题子串（不区分大小写）"
// @Success      200 {object} dto.PageResponse
// @Router       /api/books/search/titre [get]
func (h *BookHandler) SearchByTitle(c *gin.Context) {
	h.search(c, func(page *book.PageRequest) (*book.Result, error) {
		return h.books.Search.ByTitle(c.Request.Context(), c.Query(book.FieldTitle), page)
	})
}

// SearchByAuthor 作者查询
// @Summary      按作者查询
// @Tags         图书查询
// @Produce      json
// @Security     BearerAuth
// @Param        auteur query string false "作者子串（不区分大小写）"
// @Success      200 {object} dto.PageResponse
// @Router       /api/books/search/auteur [get]
func (h *BookHandler) SearchByAuthor(c *gin.Context) {
	h.search(c, func(page *book.PageRequest) (*book.Result, error) {
		return h.books.Search.ByAuthor(c.Request.Context(), c.Query(book.FieldAuthor), page)
	})
}

// SearchByTitleAndAuthor 标题AND作者
// @Summary      按标题和作者查询
// @Description  总是返回分页结果
// @Tags         图书查询
// @Produce      json
// @Security     BearerAuth
// @Param        titre  query string false "标题子串"
// @Param        auteur query string false "作者子串"
// @Success      200 {object} dto.PageResponse
// @Router       /api/books/search/titre-auteur [get]
func (h *BookHandler) SearchByTitleAndAuthor(c *gin.Context) {
	page, err := h.paging.ParseOrDefault(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.books.Search.ByTitleAndAuthor(c.Request.Context(),
		c.Query(book.FieldTitle), c.Query(book.FieldAuthor), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewPageResponse(result))
}

// SearchByMaxPrice 价格上限
// @Summary      按价格上限查询
// @Tags         图书查询
// @Produce      json
// @Security     BearerAuth
// @Param        prix query number true "价格上限（含）"
// @Success      200 {object} dto.PageResponse
// @Failure      400 {object} response.ErrorReport "价格非法"
// @Router       /api/books/search/max-price [get]
func (h *BookHandler) SearchByMaxPrice(c *gin.Context) {
	h.search(c, func(page *book.PageRequest) (*book.Result, error) {
		maxPrice, err := parsePrice(c)
		if err != nil {
			return nil, err
		}
		return h.books.Search.ByMaxPrice(c.Request.Context(), maxPrice, page)
	})
}

// SearchByMinPrice 价格下限
// @Summary      按价格下限查询
// @Tags         图书查询
// @Produce      json
// @Security     BearerAuth
// @Param        prix query number true "价格下限（含）"
// @Success      200 {object} dto.PageResponse
// @Failure      400 {object} response.ErrorReport "价格非法"
// @Router       /api/books/search/min-price [get]
func (h *BookHandler) SearchByMinPrice(c *gin.Context) {
	h.search(c, func(page *book.PageRequest) (*book.Result, error) {
		minPrice, err := parsePrice(c)
		if err != nil {
			return nil, err
		}
		return h.books.Search.ByMinPrice(c.Request.Context(), minPrice, page)
	})
}

// Count 图书总数
// @Summary      图书总数
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {integer} int
// @Router       /api/books/count [get]
func (h *BookHandler) Count(c *gin.Context) {
	n, err := h.books.Count.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, n)
}

func (h *BookHandler) search(c *gin.Context, run func(page *book.PageRequest) (*book.Result, error)) {
	page, err := h.paging.Parse(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := run(page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewResult(result))
}

// parseID 解析路径中的图书ID
func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.InvalidArgument("invalid book id: %s", raw)
	}
	return uint(id), nil
}

// parsePrice 解析查询参数prix
func parsePrice(c *gin.Context) (decimal.Decimal, error) {
	raw, ok := c.GetQuery(book.FieldPrice)
	if !ok || raw == "" {
		return decimal.Zero, book.ErrInvalidPrice.WithMessage("missing required parameter: %s", book.FieldPrice)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, book.ErrInvalidPrice.WithMessage("invalid price: %s", raw)
	}
	return d, nil
}
