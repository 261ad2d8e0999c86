package rdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), logger.Silent)
	require.NoError(t, err)
	return db, mock
}

var bookColumns = []string{"id", "title", "author", "price", "created_at", "updated_at"}

func TestBookRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("回填ID", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO `books`").WillReturnResult(sqlmock.NewResult(7, 1))

		b := book.NewBook("Dune", "Herbert", decimal.RequireFromString("12.50"))
		require.NoError(t, NewBookRepository(db).Create(ctx, b))
		assert.Equal(t, uint(7), b.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("唯一索引冲突", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO `books`").
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'Dune' for key 'books.title'"))

		err := NewBookRepository(db).Create(ctx, book.NewBook("Dune", "Herbert", decimal.NewFromInt(1)))
		assert.True(t, errors.Is(err, book.ErrTitleDuplicate))
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("其他数据库错误", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO `books`").WillReturnError(errors.New("connection refused"))

		err := NewBookRepository(db).Create(ctx, book.NewBook("Dune", "Herbert", decimal.NewFromInt(1)))
		assert.True(t, errors.Is(err, apperrors.ErrDatabaseError))
	})
}

func TestBookRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("命中", func(t *testing.T) {
		db, mock := newMockDB(t)
		now := time.Now()
		mock.ExpectQuery("SELECT \\* FROM `books` WHERE `books`.`id` = \\?").
			WillReturnRows(sqlmock.NewRows(bookColumns).AddRow(3, "Dune", "Herbert", "12.50", now, now))

		b, err := NewBookRepository(db).FindByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Dune", b.Title)
		assert.True(t, b.Price.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("不存在", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `books`").WillReturnRows(sqlmock.NewRows(bookColumns))

		_, err := NewBookRepository(db).FindByID(ctx, 99)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		assert.Equal(t, "book not found with id: 99", apperrors.GetAppError(err).Message)
	})
}

func TestBookRepository_Update_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("UPDATE `books` SET").
		WillReturnError(errors.New("ERROR: duplicate key value violates unique constraint \"idx_books_title\" (SQLSTATE 23505)"))

	err := NewBookRepository(db).Update(context.Background(), &book.Book{ID: 1, Title: "Dune"})
	assert.True(t, errors.Is(err, book.ErrTitleDuplicate))
}

func TestBookRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM `books`").WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewBookRepository(db).Delete(context.Background(), 5)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestBookRepository_Search(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("分页+排序+转义", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `books` WHERE LOWER\\(title\\) LIKE LOWER\\(\\?\\)").
			WithArgs(`%50\%%`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery("SELECT \\* FROM `books` WHERE LOWER\\(title\\) LIKE LOWER\\(\\?\\) ORDER BY `price` DESC,`id`").
			WillReturnRows(sqlmock.NewRows(bookColumns).
				AddRow(2, "50% off", "A", "30.00", now, now).
				AddRow(1, "Save 50%", "B", "10.00", now, now))

		page := &book.PageRequest{Page: 0, Size: 2, Sort: []book.SortOrder{{Property: book.FieldPrice, Desc: true}}}
		books, total, err := NewBookRepository(db).Search(ctx, book.Filter{Title: "50%"}, page)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, books, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("不分页不查总数", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `books` WHERE price >= \\? AND price <= \\? ORDER BY `id`").
			WillReturnRows(sqlmock.NewRows(bookColumns).AddRow(1, "Dune", "Herbert", "10.00", now, now))

		min, max := decimal.NewFromInt(5), decimal.NewFromInt(20)
		books, total, err := NewBookRepository(db).Search(ctx, book.Filter{MinPrice: &min, MaxPrice: &max}, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, books, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("页码超出总数返回空页", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		page := &book.PageRequest{Page: 1 << 62, Size: 2}
		books, total, err := NewBookRepository(db).Search(ctx, book.Filter{}, page)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Empty(t, books)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("未知排序属性", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		page := &book.PageRequest{Size: 20, Sort: []book.SortOrder{{Property: "isbn"}}}
		_, _, err := NewBookRepository(db).Search(ctx, book.Filter{}, page)
		assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
	})
}

func TestTxManager_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `books`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	repo := NewBookRepository(db)
	boom := errors.New("boom")
	err := NewTxManager(db).Transaction(context.Background(), func(ctx context.Context) error {
		require.NoError(t, repo.Delete(ctx, 1))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlignTitleCollation(t *testing.T) {
	t.Run("MySQL改为二进制排序", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("ALTER TABLE `books` MODIFY `title` VARCHAR\\(255\\) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, alignTitleCollation(db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("执行失败返回错误", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("ALTER TABLE `books`").WillReturnError(errors.New("denied"))

		assert.Error(t, alignTitleCollation(db))
	})
}

func TestDialector(t *testing.T) {
	d, err := Dialector(config.DatabaseConfig{Driver: config.DriverMySQL})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(config.DatabaseConfig{Driver: config.DriverPostgres})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(config.DatabaseConfig{Driver: config.DriverMemory})
	assert.Error(t, err)
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(errors.New("Duplicate entry 'x' for key 'title'")))
	assert.False(t, isDuplicateError(errors.New("deadlock")))
}
