package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-memdb"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现(内存)
type bookRepository struct {
	store *Store
}

// NewBookRepository 创建图书仓储
func NewBookRepository(store *Store) book.Repository {
	return &bookRepository{store: store}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	return r.store.write(ctx, func(txn *memdb.Txn) error {
		if err := checkTitleFree(txn, b.Title, 0); err != nil {
			return err
		}

		now := time.Now()
		record := b.Clone()
		record.ID = uint(r.store.bookSeq.Add(1))
		record.CreatedAt = now
		record.UpdatedAt = now

		if err := txn.Insert(tableBook, record); err != nil {
			return apperrors.Wrap(err, "create book")
		}

		// 回填ID和时间戳
		b.ID = record.ID
		b.CreatedAt = record.CreatedAt
		b.UpdatedAt = record.UpdatedAt
		return nil
	})
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	raw, err := r.store.read(ctx).First(tableBook, "id", id)
	if err != nil {
		return nil, apperrors.Wrap(err, "find book")
	}
	if raw == nil {
		return nil, book.NotFound(id)
	}
	return raw.(*book.Book).Clone(), nil
}

// Update 覆盖保存图书
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	return r.store.write(ctx, func(txn *memdb.Txn) error {
		raw, err := txn.First(tableBook, "id", b.ID)
		if err != nil {
			return apperrors.Wrap(err, "update book")
		}
		if raw == nil {
			return book.NotFound(b.ID)
		}
		if err := checkTitleFree(txn, b.Title, b.ID); err != nil {
			return err
		}

		record := b.Clone()
		record.CreatedAt = raw.(*book.Book).CreatedAt
		record.UpdatedAt = time.Now()
		if err := txn.Insert(tableBook, record); err != nil {
			return apperrors.Wrap(err, "update book")
		}
		b.UpdatedAt = record.UpdatedAt
		return nil
	})
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.store.write(ctx, func(txn *memdb.Txn) error {
		raw, err := txn.First(tableBook, "id", id)
		if err != nil {
			return apperrors.Wrap(err, "delete book")
		}
		if raw == nil {
			return book.NotFound(id)
		}
		if err := txn.Delete(tableBook, raw); err != nil {
			return apperrors.Wrap(err, "delete book")
		}
		return nil
	})
}

// Search 按条件查询
func (r *bookRepository) Search(ctx context.Context, filter book.Filter, page *book.PageRequest) ([]*book.Book, int64, error) {
	it, err := r.store.read(ctx).Get(tableBook, "id")
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "search books")
	}

	matched := make([]*book.Book, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		b := obj.(*book.Book)
		if filter.Matches(b) {
			matched = append(matched, b.Clone())
		}
	}

	var orders []book.SortOrder
	if page != nil {
		orders = page.Sort
	}
	sortBooks(matched, orders)

	total := int64(len(matched))
	if page == nil {
		return matched, total, nil
	}

	start := page.Offset()
	if start >= len(matched) {
		return []*book.Book{}, total, nil
	}
	end := len(matched)
	if page.Size < end-start {
		end = start + page.Size
	}
	return matched[start:end], total, nil
}

// Count 图书总数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	it, err := r.store.read(ctx).Get(tableBook, "id")
	if err != nil {
		return 0, apperrors.Wrap(err, "count books")
	}
	var n int64
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n, nil
}

// checkTitleFree 书名唯一性检查(exceptID为当前记录自身)
func checkTitleFree(txn *memdb.Txn, title string, exceptID uint) error {
	raw, err := txn.First(tableBook, "title", title)
	if err != nil {
		return apperrors.Wrap(err, "check title")
	}
	if raw != nil && raw.(*book.Book).ID != exceptID {
		return book.DuplicateTitle(title)
	}
	return nil
}

// sortBooks 按排序项排序,未指定或相等时按ID升序
func sortBooks(books []*book.Book, orders []book.SortOrder) {
	sort.SliceStable(books, func(i, j int) bool {
		a, b := books[i], books[j]
		for _, o := range orders {
			c := compareBy(a, b, o.Property)
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return a.ID < b.ID
	})
}

func compareBy(a, b *book.Book, property string) int {
	switch property {
	case book.FieldTitle:
		return strings.Compare(a.Title, b.Title)
	case book.FieldAuthor:
		return strings.Compare(a.Author, b.Author)
	case book.FieldPrice:
		return a.Price.Cmp(b.Price)
	default:
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	}
}
