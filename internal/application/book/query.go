package book

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// 缓存名（指标cache标签）
const (
	cacheBook  = "book"
	cacheCount = "count"
)

// GetBookUseCase 图书详情查询用例
// 缓存策略（Cache-Aside）：
// 1. 先查缓存，命中直接返回
// 2. 未命中查存储，结果写回缓存
// 3. 缓存读写失败按未命中处理
type GetBookUseCase struct {
	bookService book.Service
	cache       book.Cache
	log         *zap.Logger
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service, cache book.Cache, log *zap.Logger) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService, cache: cache, log: log}
}

// Execute 根据ID获取图书
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (b *book.Book, err error) {
	ctx, done := observe(ctx, OpGet, attribute.Int64("book.id", int64(id)))
	defer func() { done(err) }()

	cached, cerr := uc.cache.GetBook(ctx, id)
	switch {
	case cerr != nil:
		metrics.ObserveCache(cacheBook, metrics.ResultError)
		uc.log.Warn("读取图书缓存失败", zap.Uint("book_id", id), zap.Error(cerr))
	case cached != nil:
		metrics.ObserveCache(cacheBook, metrics.ResultHit)
		return cached, nil
	default:
		metrics.ObserveCache(cacheBook, metrics.ResultMiss)
	}

	b, err = uc.bookService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if serr := uc.cache.SetBook(ctx, b); serr != nil {
		uc.log.Warn("写入图书缓存失败", zap.Uint("book_id", id), zap.Error(serr))
	}
	return b, nil
}

// SearchBooksUseCase 图书查询用例
// 每个方法对应一个具名查询；page为nil时返回完整列表
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建查询用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

// All 全部图书
func (uc *SearchBooksUseCase) All(ctx context.Context, page *book.PageRequest) (res *book.Result, err error) {
	ctx, done := observe(ctx, OpSearch, attribute.String("search.by", "all"), pagedAttr(page))
	defer func() { done(err) }()
	return uc.bookService.GetAll(ctx, page)
}

// ByTitle 标题子串
func (uc *SearchBooksUseCase) ByTitle(ctx context.Context, title string, page *book.PageRequest) (res *book.Result, err error) {
	ctx, done := observe(ctx, OpSearch, attribute.String("search.by", book.FieldTitle), pagedAttr(page))
	defer func() { done(err) }()
	return uc.bookService.SearchByTitle(ctx, title, page)
}

// ByAuthor 作者子串
func (uc *SearchBooksUseCase) ByAuthor(ctx context.Context, author string, page *book.PageRequest) (res *book.Result, err error) {
	ctx, done := observe(ctx, OpSearch, attribute.String("search.by", book.FieldAuthor), pagedAttr(page))
	defer func() { done(err) }()
	return uc.bookService.SearchByAuthor(ctx, author, page)
}

// ByTitleAndAuthor 标题AND作者，总是分页
func (uc *SearchBooksUseCase) ByTitleAndAuthor(ctx context.Context, title, author string, page book.PageRequest) (res *book.Page, err error) {
	ctx, done := observe(ctx, OpSearch, attribute.String("search.by", "titre-auteur"), attribute.Bool("search.paged", true))
	defer func() { done(err) }()
	return uc.bookService.SearchByTitleAndAuthor(ctx, title, author, page)
}

// ByMaxPrice 价格上限
func (uc *SearchBooksUseCase) ByMaxPrice(ctx context.Context, maxPrice decimal.Decimal, page *book.PageRequest) (res *book.Result, err error) {
	ctx, done := observe(ctx, OpSearch, attribute.String("search.by", "max-price"), pagedAttr(page))
	defer func() { done(err) }()
	return uc.bookService.SearchByMaxPrice(ctx, maxPrice, page)
}

// ByMinPrice 价格下限
func (uc *SearchBooksUseCase) ByMinPrice(ctx context.Context, minPrice decimal.Decimal, page *book.PageRequest) (res *book.Result, err error) {
	ctx, done := observe(ctx, OpSearch, attribute.String("search.by", "min-price"), pagedAttr(page))
	defer func() { done(err) }()
	return uc.bookService.SearchByMinPrice(ctx, minPrice, page)
}

// Criteria 组合条件（gRPC ListBooks使用）
func (uc *SearchBooksUseCase) Criteria(ctx context.Context, criteria book.Criteria) (res *book.Result, err error) {
	ctx, done := observe(ctx, OpSearch, attribute.String("search.by", "criteria"), pagedAttr(criteria.Page))
	defer func() { done(err) }()
	return uc.bookService.Search(ctx, criteria)
}

func pagedAttr(page *book.PageRequest) attribute.KeyValue {
	return attribute.Bool("search.paged", page != nil)
}

// CountBooksUseCase 图书总数用例（短TTL缓存）
type CountBooksUseCase struct {
	bookService book.Service
	cache       book.Cache
	log         *zap.Logger
}

// NewCountBooksUseCase 创建计数用例
func NewCountBooksUseCase(bookService book.Service, cache book.Cache, log *zap.Logger) *CountBooksUseCase {
	return &CountBooksUseCase{bookService: bookService, cache: cache, log: log}
}

// Execute 图书总数
func (uc *CountBooksUseCase) Execute(ctx context.Context) (n int64, err error) {
	ctx, done := observe(ctx, OpCount)
	defer func() { done(err) }()

	cached, ok, cerr := uc.cache.GetCount(ctx)
	switch {
	case cerr != nil:
		metrics.ObserveCache(cacheCount, metrics.ResultError)
		uc.log.Warn("读取计数缓存失败", zap.Error(cerr))
	case ok:
		metrics.ObserveCache(cacheCount, metrics.ResultHit)
		return cached, nil
	default:
		metrics.ObserveCache(cacheCount, metrics.ResultMiss)
	}

	n, err = uc.bookService.Count(ctx)
	if err != nil {
		return 0, err
	}
	metrics.BooksInCatalog.Set(float64(n))
	if serr := uc.cache.SetCount(ctx, n); serr != nil {
		uc.log.Warn("写入计数缓存失败", zap.Error(serr))
	}
	return n, nil
}

// BrowseBooksUseCase 浏览器列表页用例
// 关键字为空时列出全部；否则标题命中在前、作者命中在后（去重）
type BrowseBooksUseCase struct {
	bookService book.Service
	count       *CountBooksUseCase
}

// NewBrowseBooksUseCase 创建列表页用例
func NewBrowseBooksUseCase(bookService book.Service, count *CountBooksUseCase) *BrowseBooksUseCase {
	return &BrowseBooksUseCase{bookService: bookService, count: count}
}

// BrowseResult 列表页数据
type BrowseResult struct {
	Books      []*book.Book
	TotalBooks int64 // 目录总数，不受关键字影响
	Keyword    string
}

// Execute 执行列表页查询
func (uc *BrowseBooksUseCase) Execute(ctx context.Context, keyword string) (res *BrowseResult, err error) {
	ctx, done := observe(ctx, OpBrowse, attribute.Bool("browse.keyword", !book.IsBlank(keyword)))
	defer func() { done(err) }()

	books, err := uc.bookService.SearchByKeyword(ctx, keyword)
	if err != nil {
		return nil, err
	}
	total, err := uc.count.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return &BrowseResult{Books: books, TotalBooks: total, Keyword: keyword}, nil
}
