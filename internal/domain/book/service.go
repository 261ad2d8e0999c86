package book

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 查询引擎:按标题/作者/价格组合条件查询,根据是否带分页返回Page或完整列表
// 2. 变更引擎:创建、全量更新、部分更新、删除,变更前先确认记录存在
// 3. 不捕获错误,NotFound/校验错误/参数错误原样向上传播,由接口层统一分类
// 4. 不做权限判断,权限由外层中间件负责
type Service interface {
	// Search 通用查询:条件为空时返回全部图书
	Search(ctx context.Context, criteria Criteria) (*Result, error)

	// GetAll 全部图书(page为nil时不分页)
	GetAll(ctx context.Context, page *PageRequest) (*Result, error)

	// GetByID 根据ID获取图书
	GetByID(ctx context.Context, id uint) (*Book, error)

	// SearchByTitle 标题子串查询(不区分大小写)
	SearchByTitle(ctx context.Context, title string, page *PageRequest) (*Result, error)

	// SearchByAuthor 作者子串查询(不区分大小写)
	SearchByAuthor(ctx context.Context, author string, page *PageRequest) (*Result, error)

	// SearchByTitleAndAuthor 标题AND作者组合查询,总是分页
	SearchByTitleAndAuthor(ctx context.Context, title, author string, page PageRequest) (*Page, error)

	// SearchByMaxPrice 价格<=max
	SearchByMaxPrice(ctx context.Context, max decimal.Decimal, page *PageRequest) (*Result, error)

	// SearchByMinPrice 价格>=min
	SearchByMinPrice(ctx context.Context, min decimal.Decimal, page *PageRequest) (*Result, error)

	// SearchByKeyword 浏览器端关键字搜索:标题OR作者,去重,保持先标题后作者的顺序
	// 与SearchByTitleAndAuthor(AND)是两个不同的操作
	SearchByKeyword(ctx context.Context, keyword string) ([]*Book, error)

	// Count 图书总数(不受过滤条件影响)
	Count(ctx context.Context) (int64, error)

	// Create 创建图书
	Create(ctx context.Context, draft Draft) (*Book, error)

	// Update 全量更新
	Update(ctx context.Context, id uint, draft Draft) (*Book, error)

	// Patch 部分更新
	Patch(ctx context.Context, id uint, patch Patch) (*Book, error)

	// Delete 删除图书
	Delete(ctx context.Context, id uint) error
}

// service 领域服务实现
type service struct {
	repo Repository
	tx   TxManager
}

// NewService 创建图书领域服务
func NewService(repo Repository, tx TxManager) Service {
	return &service{repo: repo, tx: tx}
}

// =========================================
// 查询
// =========================================

// Search 通用查询
func (s *service) Search(ctx context.Context, criteria Criteria) (*Result, error) {
	books, total, err := s.repo.Search(ctx, criteria.Filter, criteria.Page)
	if err != nil {
		return nil, err
	}
	if criteria.Page == nil {
		return &Result{Items: books}, nil
	}
	return &Result{Page: &Page{
		Items:  books,
		Total:  total,
		Number: criteria.Page.Page,
		Size:   criteria.Page.Size,
	}}, nil
}

// GetAll 全部图书
func (s *service) GetAll(ctx context.Context, page *PageRequest) (*Result, error) {
	return s.Search(ctx, Criteria{Page: page})
}

// GetByID 根据ID获取图书
func (s *service) GetByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// SearchByTitle 标题查询
func (s *service) SearchByTitle(ctx context.Context, title string, page *PageRequest) (*Result, error) {
	return s.Search(ctx, Criteria{Filter: Filter{Title: title}, Page: page})
}

// SearchByAuthor 作者查询
func (s *service) SearchByAuthor(ctx context.Context, author string, page *PageRequest) (*Result, error) {
	return s.Search(ctx, Criteria{Filter: Filter{Author: author}, Page: page})
}

// SearchByTitleAndAuthor 组合查询(AND)
func (s *service) SearchByTitleAndAuthor(ctx context.Context, title, author string, page PageRequest) (*Page, error) {
	res, err := s.Search(ctx, Criteria{Filter: Filter{Title: title, Author: author}, Page: &page})
	if err != nil {
		return nil, err
	}
	return res.Page, nil
}

// SearchByMaxPrice 价格上限查询
func (s *service) SearchByMaxPrice(ctx context.Context, max decimal.Decimal, page *PageRequest) (*Result, error) {
	return s.Search(ctx, Criteria{Filter: Filter{MaxPrice: &max}, Page: page})
}

// SearchByMinPrice 价格下限查询
func (s *service) SearchByMinPrice(ctx context.Context, min decimal.Decimal, page *PageRequest) (*Result, error) {
	return s.Search(ctx, Criteria{Filter: Filter{MinPrice: &min}, Page: page})
}

// SearchByKeyword 关键字查询(OR + 去重)
func (s *service) SearchByKeyword(ctx context.Context, keyword string) ([]*Book, error) {
	if IsBlank(keyword) {
		books, _, err := s.repo.Search(ctx, Filter{}, nil)
		return books, err
	}

	byTitle, _, err := s.repo.Search(ctx, Filter{Title: keyword}, nil)
	if err != nil {
		return nil, err
	}
	byAuthor, _, err := s.repo.Search(ctx, Filter{Author: keyword}, nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{}, len(byTitle))
	result := make([]*Book, 0, len(byTitle)+len(byAuthor))
	for _, b := range append(byTitle, byAuthor...) {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		result = append(result, b)
	}
	return result, nil
}

// Count 图书总数
func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// =========================================
// 变更
// =========================================

// Create 创建图书
// 业务规则:
// 1. 字段约束不满足 → 校验错误
// 2. 书名已存在 → 校验错误(由存储层唯一约束原子判断,并发创建只有一个成功)
func (s *service) Create(ctx context.Context, draft Draft) (*Book, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	title, author, price := draft.Values()
	book := NewBook(title, author, price)

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, book)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Update 全量更新
// 业务规则:
// 1. 记录不存在 → NotFound
// 2. 三个字段无条件覆盖,然后重新校验
// 3. 校验失败时整个事务回滚,存储中的记录保持不变
func (s *service) Update(ctx context.Context, id uint, draft Draft) (*Book, error) {
	var updated *Book
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		book, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		book.Replace(draft)
		if err := ValidateDraft(draft); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, book); err != nil {
			return err
		}
		updated = book
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Patch 部分更新
// 业务规则:
// 1. 记录不存在 → NotFound
// 2. 只合并"有意义"的字段(见Book.ApplyPatch)
// 3. 合并后的结果仍需满足字段约束(例如超长标题、超过上限的价格)
func (s *service) Patch(ctx context.Context, id uint, patch Patch) (*Book, error) {
	var patched *Book
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		book, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if !book.ApplyPatch(patch) {
			patched = book
			return nil
		}
		if err := Validate(book); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, book); err != nil {
			return err
		}
		patched = book
		return nil
	})
	if err != nil {
		return nil, err
	}
	return patched, nil
}

// Delete 删除图书
// 记录不存在 → NotFound;重复删除同一ID始终返回NotFound
func (s *service) Delete(ctx context.Context, id uint) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
}
