package book_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book/mocks"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func newService(t *testing.T) book.Service {
	t.Helper()
	store := memory.MustNewStore()
	return book.NewService(memory.NewBookRepository(store), memory.NewTxManager(store))
}

func draft(title, author, price string) book.Draft {
	d := book.Draft{Title: &title, Author: &author}
	if price != "" {
		p := decimal.RequireFromString(price)
		d.Price = &p
	}
	return d
}

func seed(t *testing.T, svc book.Service, rows ...[3]string) []*book.Book {
	t.Helper()
	books := make([]*book.Book, 0, len(rows))
	for _, r := range rows {
		b, err := svc.Create(context.Background(), draft(r[0], r[1], r[2]))
		require.NoError(t, err)
		books = append(books, b)
	}
	return books
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("创建成功", func(t *testing.T) {
		svc := newService(t)
		b, err := svc.Create(ctx, draft("Dune", "Herbert", "12.50"))
		require.NoError(t, err)
		assert.NotZero(t, b.ID)

		got, err := svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)
		assert.True(t, got.Price.Equal(decimal.RequireFromString("12.5")))

		n, err := svc.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("校验失败不写入", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.Create(ctx, draft("Dune", "Herbert", "0"))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

		n, _ := svc.Count(ctx)
		assert.Zero(t, n)
	})

	t.Run("书名重复", func(t *testing.T) {
		svc := newService(t)
		seed(t, svc, [3]string{"Dune", "Herbert", "10"})

		_, err := svc.Create(ctx, draft("Dune", "Other", "20"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, book.ErrTitleDuplicate))
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

		appErr := apperrors.GetAppError(err)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, book.FieldTitle, appErr.Fields[0].Field)
	})

	t.Run("并发创建同名只有一个成功", func(t *testing.T) {
		svc := newService(t)
		const workers = 16

		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Create(ctx, draft("Same", "Author", "5"))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, errors.Is(err, book.ErrTitleDuplicate))
		}
		assert.Equal(t, 1, succeeded)

		n, _ := svc.Count(ctx)
		assert.Equal(t, int64(1), n)
	})
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newService(t)
	_, err := svc.GetByID(context.Background(), 99)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "book not found with id: 99", apperrors.GetAppError(err).Message)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("全量覆盖", func(t *testing.T) {
		svc := newService(t)
		b := seed(t, svc, [3]string{"Dune", "Herbert", "10"})[0]

		updated, err := svc.Update(ctx, b.ID, draft("Dune Messiah", "Frank Herbert", "11.99"))
		require.NoError(t, err)
		assert.Equal(t, b.ID, updated.ID)

		got, _ := svc.GetByID(ctx, b.ID)
		assert.Equal(t, "Dune Messiah", got.Title)
		assert.Equal(t, "Frank Herbert", got.Author)
	})

	t.Run("不存在优先于校验", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.Update(ctx, 42, book.Draft{})
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("校验失败记录不变", func(t *testing.T) {
		svc := newService(t)
		b := seed(t, svc, [3]string{"Dune", "Herbert", "10"})[0]

		_, err := svc.Update(ctx, b.ID, draft("", "Herbert", "10"))
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

		got, _ := svc.GetByID(ctx, b.ID)
		assert.Equal(t, "Dune", got.Title)
	})

	t.Run("改成他人书名", func(t *testing.T) {
		svc := newService(t)
		books := seed(t, svc, [3]string{"Dune", "Herbert", "10"}, [3]string{"Emma", "Austen", "8"})

		_, err := svc.Update(ctx, books[1].ID, draft("Dune", "Austen", "8"))
		assert.True(t, errors.Is(err, book.ErrTitleDuplicate))
	})

	t.Run("保留自身书名", func(t *testing.T) {
		svc := newService(t)
		b := seed(t, svc, [3]string{"Dune", "Herbert", "10"})[0]

		_, err := svc.Update(ctx, b.ID, draft("Dune", "Herbert", "15"))
		assert.NoError(t, err)
	})
}

func TestService_Patch(t *testing.T) {
	ctx := context.Background()

	t.Run("只改价格", func(t *testing.T) {
		svc := newService(t)
		b := seed(t, svc, [3]string{"Dune", "Herbert", "10"})[0]
		price := decimal.RequireFromString("99.99")

		patched, err := svc.Patch(ctx, b.ID, book.Patch{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, "Dune", patched.Title)
		assert.Equal(t, "Herbert", patched.Author)
		assert.True(t, patched.Price.Equal(price))
	})

	t.Run("空白与非正值视为不变", func(t *testing.T) {
		svc := newService(t)
		b := seed(t, svc, [3]string{"Dune", "Herbert", "10"})[0]
		blank := " "
		zero := decimal.Zero

		patched, err := svc.Patch(ctx, b.ID, book.Patch{Title: &blank, Author: &blank, Price: &zero})
		require.NoError(t, err)
		assert.Equal(t, "Dune", patched.Title)
		assert.True(t, patched.Price.Equal(decimal.NewFromInt(10)))
	})

	t.Run("空标题零价格只更新作者", func(t *testing.T) {
		svc := newService(t)
		b := seed(t, svc, [3]string{"Dune", "Herbert", "10"})[0]
		empty := ""
		author := "Frank Herbert"
		zero := decimal.Zero

		patched, err := svc.Patch(ctx, b.ID, book.Patch{Title: &empty, Author: &author, Price: &zero})
		require.NoError(t, err)
		assert.Equal(t, "Dune", patched.Title)
		assert.Equal(t, "Frank Herbert", patched.Author)
		assert.True(t, patched.Price.Equal(decimal.NewFromInt(10)))

		got, err := svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Frank Herbert", got.Author)
		assert.True(t, got.Price.Equal(decimal.NewFromInt(10)))
	})

	t.Run("合并结果仍需校验", func(t *testing.T) {
		svc := newService(t)
		b := seed(t, svc, [3]string{"Dune", "Herbert", "10"})[0]
		long := strings.Repeat("x", book.MaxTextLength+1)

		_, err := svc.Patch(ctx, b.ID, book.Patch{Title: &long})
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

		got, _ := svc.GetByID(ctx, b.ID)
		assert.Equal(t, "Dune", got.Title)
	})

	t.Run("不存在", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.Patch(ctx, 7, book.Patch{})
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	b := seed(t, svc, [3]string{"Dune", "Herbert", "10"})[0]

	require.NoError(t, svc.Delete(ctx, b.ID))

	for i := 0; i < 2; i++ {
		err := svc.Delete(ctx, b.ID)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	}
	_, err := svc.GetByID(ctx, b.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	seed(t, svc,
		[3]string{"Le Petit Prince", "Saint-Exupéry", "9.90"},
		[3]string{"Les Misérables", "Victor Hugo", "25"},
		[3]string{"Notre-Dame de Paris", "Victor Hugo", "18.5"},
		[3]string{"Prince of Persia", "Mechner", "40"},
	)

	t.Run("不分页返回列表", func(t *testing.T) {
		res, err := svc.SearchByTitle(ctx, "PRINCE", nil)
		require.NoError(t, err)
		assert.False(t, res.Paged())
		assert.Len(t, res.Items, 2)
	})

	t.Run("分页返回Page", func(t *testing.T) {
		res, err := svc.GetAll(ctx, &book.PageRequest{Page: 1, Size: 3})
		require.NoError(t, err)
		require.True(t, res.Paged())
		assert.Equal(t, int64(4), res.Page.Total)
		assert.Equal(t, 2, res.Page.TotalPages())
		assert.Len(t, res.Page.Items, 1)
	})

	t.Run("超出范围的页为空", func(t *testing.T) {
		res, err := svc.GetAll(ctx, &book.PageRequest{Page: 10, Size: 3})
		require.NoError(t, err)
		assert.Empty(t, res.Page.Items)
		assert.Equal(t, int64(4), res.Page.Total)
	})

	t.Run("按价格降序", func(t *testing.T) {
		res, err := svc.GetAll(ctx, &book.PageRequest{Size: 10, Sort: []book.SortOrder{{Property: book.FieldPrice, Desc: true}}})
		require.NoError(t, err)
		assert.Equal(t, "Prince of Persia", res.Page.Items[0].Title)
		assert.Equal(t, "Le Petit Prince", res.Page.Items[3].Title)
	})

	t.Run("价格区间含边界", func(t *testing.T) {
		res, err := svc.SearchByMaxPrice(ctx, decimal.RequireFromString("18.5"), nil)
		require.NoError(t, err)
		assert.Len(t, res.Items, 2)

		res, err = svc.SearchByMinPrice(ctx, decimal.RequireFromString("25"), nil)
		require.NoError(t, err)
		assert.Len(t, res.Items, 2)
	})

	t.Run("价格上下限同时给出", func(t *testing.T) {
		low, high := decimal.RequireFromString("10"), decimal.RequireFromString("25")
		res, err := svc.Search(ctx, book.Criteria{Filter: book.Filter{MinPrice: &low, MaxPrice: &high}})
		require.NoError(t, err)
		assert.Len(t, res.Items, 2)
	})

	t.Run("下限大于上限返回空结果", func(t *testing.T) {
		low, high := decimal.RequireFromString("30"), decimal.RequireFromString("10")
		res, err := svc.Search(ctx, book.Criteria{Filter: book.Filter{MinPrice: &low, MaxPrice: &high}})
		require.NoError(t, err)
		assert.Empty(t, res.Items)

		res, err = svc.Search(ctx, book.Criteria{
			Filter: book.Filter{MinPrice: &low, MaxPrice: &high},
			Page:   &book.PageRequest{Size: 20},
		})
		require.NoError(t, err)
		assert.Empty(t, res.Page.Items)
		assert.Zero(t, res.Page.Total)
	})

	t.Run("页码溢出返回空页", func(t *testing.T) {
		res, err := svc.GetAll(ctx, &book.PageRequest{Page: 1 << 62, Size: 2})
		require.NoError(t, err)
		assert.Empty(t, res.Page.Items)
		assert.Equal(t, int64(4), res.Page.Total)
	})

	t.Run("标题AND作者", func(t *testing.T) {
		page, err := svc.SearchByTitleAndAuthor(ctx, "prince", "saint", book.PageRequest{Size: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, "Le Petit Prince", page.Items[0].Title)
	})

	t.Run("关键字OR去重", func(t *testing.T) {
		books, err := svc.SearchByKeyword(ctx, "hugo")
		require.NoError(t, err)
		assert.Len(t, books, 2)

		books, err = svc.SearchByKeyword(ctx, "pr")
		require.NoError(t, err)
		titles := make([]string, 0, len(books))
		for _, b := range books {
			titles = append(titles, b.Title)
		}
		// 标题命中在前,作者命中(Saint-Exupéry不含pr)不重复出现
		assert.Equal(t, []string{"Le Petit Prince", "Prince of Persia"}, titles)
	})

	t.Run("空白关键字返回全部", func(t *testing.T) {
		books, err := svc.SearchByKeyword(ctx, "  ")
		require.NoError(t, err)
		assert.Len(t, books, 4)
	})

	t.Run("计数不受过滤影响", func(t *testing.T) {
		n, err := svc.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})
}

func TestService_RepositoryErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	tx := mocks.NewMockTxManager(ctrl)
	svc := book.NewService(repo, tx)
	ctx := context.Background()
	dbErr := apperrors.ErrDatabaseError.WithCause(fmt.Errorf("connection reset"))

	t.Run("查询", func(t *testing.T) {
		repo.EXPECT().Search(gomock.Any(), book.Filter{Title: "x"}, gomock.Nil()).Return(nil, int64(0), dbErr)

		_, err := svc.SearchByTitle(ctx, "x", nil)
		assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	})

	t.Run("删除在事务中执行", func(t *testing.T) {
		tx.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) },
		)
		repo.EXPECT().FindByID(gomock.Any(), uint(3)).Return(&book.Book{ID: 3}, nil)
		repo.EXPECT().Delete(gomock.Any(), uint(3)).Return(dbErr)

		err := svc.Delete(ctx, 3)
		assert.True(t, errors.Is(err, apperrors.ErrDatabaseError))
	})

	t.Run("校验失败不触达仓储", func(t *testing.T) {
		_, err := svc.Create(ctx, book.Draft{})
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})
}
