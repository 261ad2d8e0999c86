package book

import (
	"context"
)

// Cache 图书缓存接口(Cache-Aside)
// 约定:
// 1. 未命中返回(nil, nil),调用方回源查询
// 2. 变更成功后删除缓存,而不是更新缓存
type Cache interface {
	GetBook(ctx context.Context, id uint) (*Book, error)
	SetBook(ctx context.Context, b *Book) error
	DeleteBook(ctx context.Context, id uint) error

	// GetCount 未命中时ok=false
	GetCount(ctx context.Context) (count int64, ok bool, err error)
	SetCount(ctx context.Context, count int64) error
	DeleteCount(ctx context.Context) error
}

// NopCache 不缓存(Redis未启用时使用),所有读取都视为未命中
type NopCache struct{}

func (NopCache) GetBook(context.Context, uint) (*Book, error)  { return nil, nil }
func (NopCache) SetBook(context.Context, *Book) error          { return nil }
func (NopCache) DeleteBook(context.Context, uint) error        { return nil }
func (NopCache) GetCount(context.Context) (int64, bool, error) { return 0, false, nil }
func (NopCache) SetCount(context.Context, int64) error         { return nil }
func (NopCache) DeleteCount(context.Context) error             { return nil }
