// Package memory 基于go-memdb的内存存储
//
// 设计说明:
//  1. 用于本地开发(database.driver=memory)和单元测试,不需要外部数据库
//  2. memdb的写事务全局串行,书名唯一性检查与插入在同一写事务内完成,
//     因此并发创建同名图书只有一个能成功
//  3. 存入memdb的对象不可再修改,读写都使用副本
//  4. 事务通过context传递,与rdb包的TxManager用法一致
package memory

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"
)

const (
	tableBook = "book"
	tableUser = "user"
)

// Store 内存数据库
type Store struct {
	db      *memdb.MemDB
	bookSeq atomic.Uint64
	userSeq atomic.Uint64
}

// NewStore 创建内存数据库
func NewStore() (*Store, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableBook: {
				Name: tableBook,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.UintFieldIndex{Field: "ID"},
					},
					// 书名区分大小写
					"title": {
						Name:    "title",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Title"},
					},
				},
			},
			tableUser: {
				Name: tableUser,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.UintFieldIndex{Field: "ID"},
					},
					"username": {
						Name:    "username",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Username"},
					},
				},
			},
		},
	}

	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("内存数据库schema无效: %w", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("创建内存数据库失败: %w", err)
	}
	return &Store{db: db}, nil
}

// MustNewStore 创建内存数据库,失败时panic(测试使用)
func MustNewStore() *Store {
	s, err := NewStore()
	if err != nil {
		panic(err)
	}
	return s
}

type txKey struct{}

// TxManager 内存事务管理器
type TxManager struct {
	store *Store
}

// NewTxManager 创建事务管理器
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Transaction 在一个写事务中执行fn
// fn返回error或panic时Abort,否则Commit;已在事务中时直接复用外层事务
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*memdb.Txn); ok {
		return fn(ctx)
	}

	txn := m.store.db.Txn(true)
	defer txn.Abort() // Commit之后Abort是空操作

	if err := fn(context.WithValue(ctx, txKey{}, txn)); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// write 在写事务中执行fn:优先使用context中的事务,否则单独开启并提交
func (s *Store) write(ctx context.Context, fn func(txn *memdb.Txn) error) error {
	if txn, ok := ctx.Value(txKey{}).(*memdb.Txn); ok {
		return fn(txn)
	}

	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := fn(txn); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// read 返回读事务(context中有写事务时复用,能读到未提交的修改)
func (s *Store) read(ctx context.Context) *memdb.Txn {
	if txn, ok := ctx.Value(txKey{}).(*memdb.Txn); ok {
		return txn
	}
	return s.db.Txn(false)
}
