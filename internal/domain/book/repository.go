package book

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(rdb、memory两套)
// 2. 书名唯一性由实现方原子保证,冲突时返回DuplicateTitle
// 3. 记录不存在时返回NotFound(id)
type Repository interface {
	// Create 创建图书,成功后回填ID和时间戳
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 覆盖保存图书
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除)
	Delete(ctx context.Context, id uint) error

	// Search 按条件查询
	// page为nil时返回全部命中记录,total等于len(books)
	Search(ctx context.Context, filter Filter, page *PageRequest) ([]*Book, int64, error)

	// Count 图书总数(不受任何过滤条件影响)
	Count(ctx context.Context) (int64, error)
}

// TxManager 事务管理器
// fn内通过ctx执行的Repository操作处于同一事务,fn返回error时整体回滚
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
