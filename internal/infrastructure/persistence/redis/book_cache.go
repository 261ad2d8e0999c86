package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

const (
	bookKeyPrefix = "catalog:book:"
	countKey      = "catalog:book:count"
)

// cachedBook 缓存中的图书(JSON)
// 价格以字符串保存,避免float精度损失
type cachedBook struct {
	ID        uint            `json:"id"`
	Title     string          `json:"titre"`
	Author    string          `json:"auteur"`
	Price     decimal.Decimal `json:"prix"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BookCache 图书缓存(Cache-Aside)
// 1. 单本图书:catalog:book:{id},TTL=cache.book_ttl
// 2. 图书总数:catalog:book:count,TTL=cache.count_ttl
// 3. 写操作成功后由应用层删除相关key
type BookCache struct {
	client   *redis.Client
	bookTTL  time.Duration
	countTTL time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, bookTTL, countTTL time.Duration) *BookCache {
	return &BookCache{client: client, bookTTL: bookTTL, countTTL: countTTL}
}

var _ book.Cache = (*BookCache)(nil)

// GetBook 读取缓存,未命中返回(nil, nil)
func (c *BookCache) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	data, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.ErrRedisError.WithCause(err)
	}

	var cb cachedBook
	if err := json.Unmarshal(data, &cb); err != nil {
		// 脏数据按未命中处理,随后回源覆盖
		return nil, nil
	}
	return &book.Book{
		ID:        cb.ID,
		Title:     cb.Title,
		Author:    cb.Author,
		Price:     cb.Price,
		CreatedAt: cb.CreatedAt,
		UpdatedAt: cb.UpdatedAt,
	}, nil
}

// SetBook 写入缓存
func (c *BookCache) SetBook(ctx context.Context, b *book.Book) error {
	data, err := json.Marshal(cachedBook{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	})
	if err != nil {
		return apperrors.Wrap(err, "marshal cached book")
	}
	if err := c.client.Set(ctx, bookKey(b.ID), data, c.bookTTL).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// DeleteBook 删除缓存
func (c *BookCache) DeleteBook(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// GetCount 读取总数缓存
func (c *BookCache) GetCount(ctx context.Context) (int64, bool, error) {
	n, err := c.client.Get(ctx, countKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, apperrors.ErrRedisError.WithCause(err)
	}
	return n, true, nil
}

// SetCount 写入总数缓存
func (c *BookCache) SetCount(ctx context.Context, count int64) error {
	if err := c.client.Set(ctx, countKey, count, c.countTTL).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// DeleteCount 删除总数缓存
func (c *BookCache) DeleteCount(ctx context.Context) error {
	if err := c.client.Del(ctx, countKey).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

func bookKey(id uint) string {
	return bookKeyPrefix + strconv.FormatUint(uint64(id), 10)
}
