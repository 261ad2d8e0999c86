package rdb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// sortColumns 对外排序属性 → 数据库列
var sortColumns = map[string]string{
	book.FieldID:     "id",
	book.FieldTitle:  "title",
	book.FieldAuthor: "author",
	book.FieldPrice:  "price",
}

// bookRepository 图书仓储实现(MySQL / PostgreSQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如书名重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
// 书名唯一性由数据库UNIQUE索引保证(而非应用层SELECT再INSERT),并发创建只有一个成功
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.DuplicateTitle(b.Title)
		}
		return apperrors.ErrDatabaseError.WithCause(err)
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.NotFound(id)
		}
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return toBookEntity(&model), nil
}

// Update 覆盖保存图书的可变字段
// 不使用Save:Save会连同created_at一起覆盖
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	now := time.Now()
	err := conn(ctx, r.db).Model(&BookModel{ID: b.ID}).Updates(map[string]interface{}{
		"title":      b.Title,
		"author":     b.Author,
		"price":      b.Price,
		"updated_at": now,
	}).Error
	if err != nil {
		if isDuplicateError(err) {
			return book.DuplicateTitle(b.Title)
		}
		return apperrors.ErrDatabaseError.WithCause(err)
	}

	b.UpdatedAt = now
	return nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return book.NotFound(id)
	}
	return nil
}

// Search 按条件查询
// 1. 标题/作者使用LOWER(col) LIKE LOWER(?),用户输入中的%和_按字面匹配
// 2. 未指定排序时按id升序;指定排序时追加id作为次级排序,保证分页稳定
func (r *bookRepository) Search(ctx context.Context, filter book.Filter, page *book.PageRequest) ([]*book.Book, int64, error) {
	query := conn(ctx, r.db).Model(&BookModel{})

	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", likePattern(filter.Title))
	}
	if filter.Author != "" {
		query = query.Where("LOWER(author) LIKE LOWER(?)", likePattern(filter.Author))
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if page != nil {
		if err := query.Count(&total).Error; err != nil {
			return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
		}
		for _, o := range page.Sort {
			col, ok := sortColumns[o.Property]
			if !ok {
				return nil, 0, apperrors.InvalidArgument("unknown sort property: %s", o.Property)
			}
			query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: o.Desc})
		}
		// 偏移超出总数时不再查询，直接返回空页
		if int64(page.Offset()) >= total {
			return []*book.Book{}, total, nil
		}
		query = query.Limit(page.Size).Offset(page.Offset())
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})

	var models []BookModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	if page == nil {
		total = int64(len(books))
	}
	return books, total, nil
}

// Count 图书总数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&BookModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.ErrDatabaseError.WithCause(err)
	}
	return total, nil
}

func likePattern(s string) string {
	return "%" + book.EscapeLike(s) + "%"
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Price:  b.Price,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		Price:     model.Price,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
