package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// CreateBookUseCase 创建图书用例
type CreateBookUseCase struct {
	bookService book.Service
	notifier    *ChangeNotifier
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service, notifier *ChangeNotifier) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, notifier: notifier}
}

// Execute 创建图书
// 校验失败、书名重复都由领域服务返回校验错误
func (uc *CreateBookUseCase) Execute(ctx context.Context, draft book.Draft) (b *book.Book, err error) {
	ctx, done := observe(ctx, OpCreate)
	defer func() { done(err) }()

	b, err = uc.bookService.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	uc.notifier.BookChanged(ctx, book.EventCreated, b)
	return b, nil
}

// UpdateBookUseCase 全量更新用例
type UpdateBookUseCase struct {
	bookService book.Service
	notifier    *ChangeNotifier
}

// NewUpdateBookUseCase 创建用例
func NewUpdateBookUseCase(bookService book.Service, notifier *ChangeNotifier) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, notifier: notifier}
}

// Execute 全量更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, draft book.Draft) (b *book.Book, err error) {
	ctx, done := observe(ctx, OpUpdate, attribute.Int64("book.id", int64(id)))
	defer func() { done(err) }()

	b, err = uc.bookService.Update(ctx, id, draft)
	if err != nil {
		return nil, err
	}
	uc.notifier.BookChanged(ctx, book.EventUpdated, b)
	return b, nil
}

// PatchBookUseCase 部分更新用例
type PatchBookUseCase struct {
	bookService book.Service
	notifier    *ChangeNotifier
}

// NewPatchBookUseCase 创建用例
func NewPatchBookUseCase(bookService book.Service, notifier *ChangeNotifier) *PatchBookUseCase {
	return &PatchBookUseCase{bookService: bookService, notifier: notifier}
}

// Execute 部分更新
func (uc *PatchBookUseCase) Execute(ctx context.Context, id uint, patch book.Patch) (b *book.Book, err error) {
	ctx, done := observe(ctx, OpPatch, attribute.Int64("book.id", int64(id)))
	defer func() { done(err) }()

	b, err = uc.bookService.Patch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	uc.notifier.BookChanged(ctx, book.EventUpdated, b)
	return b, nil
}

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
	notifier    *ChangeNotifier
}

// NewDeleteBookUseCase 创建用例
func NewDeleteBookUseCase(bookService book.Service, notifier *ChangeNotifier) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, notifier: notifier}
}

// Execute 删除图书
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (err error) {
	ctx, done := observe(ctx, OpDelete, attribute.Int64("book.id", int64(id)))
	defer func() { done(err) }()

	if err = uc.bookService.Delete(ctx, id); err != nil {
		return err
	}
	uc.notifier.BookChanged(ctx, book.EventDeleted, &book.Book{ID: id})
	return nil
}

// UseCases 图书用例集合（接口层注入）
type UseCases struct {
	Get    *GetBookUseCase
	Search *SearchBooksUseCase
	Browse *BrowseBooksUseCase
	Count  *CountBooksUseCase
	Create *CreateBookUseCase
	Update *UpdateBookUseCase
	Patch  *PatchBookUseCase
	Delete *DeleteBookUseCase
}

// NewUseCases 组装全部图书用例
func NewUseCases(bookService book.Service, cache book.Cache, publisher book.EventPublisher, log *zap.Logger) *UseCases {
	notifier := NewChangeNotifier(cache, publisher, log)
	count := NewCountBooksUseCase(bookService, cache, log)
	return &UseCases{
		Get:    NewGetBookUseCase(bookService, cache, log),
		Search: NewSearchBooksUseCase(bookService),
		Browse: NewBrowseBooksUseCase(bookService, count),
		Count:  count,
		Create: NewCreateBookUseCase(bookService, notifier),
		Update: NewUpdateBookUseCase(bookService, notifier),
		Patch:  NewPatchBookUseCase(bookService, notifier),
		Delete: NewDeleteBookUseCase(bookService, notifier),
	}
}
