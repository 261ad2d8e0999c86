package book

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ID由存储层在创建时分配,之后不可变
// 2. Title全局唯一(存储层唯一索引保证,区分大小写)
// 3. 价格使用decimal(精确到分,避免浮点误差),上限150000
type Book struct {
	ID        uint
	Title     string
	Author    string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
// 调用方需先通过Validate校验字段约束
func NewBook(title, author string, price decimal.Decimal) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone 返回副本(缓存和内存存储都不能共享可变实体)
func (b *Book) Clone() *Book {
	cp := *b
	return &cp
}

// Draft 创建/全量更新的输入
// 字段为nil表示调用方没有提供,校验时rejectedValue记为"null"
type Draft struct {
	Title  *string
	Author *string
	Price  *decimal.Decimal
}

// Values 取出字段值,nil按零值处理
func (d Draft) Values() (title, author string, price decimal.Decimal) {
	if d.Title != nil {
		title = *d.Title
	}
	if d.Author != nil {
		author = *d.Author
	}
	if d.Price != nil {
		price = *d.Price
	}
	return title, author, price
}

// Replace 全量更新(领域行为)
// 业务规则:无条件覆盖三个字段,即使为空也覆盖,由调用方随后重新校验
func (b *Book) Replace(d Draft) {
	b.Title, b.Author, b.Price = d.Values()
	b.UpdatedAt = time.Now()
}

// Patch 部分更新的输入
type Patch struct {
	Title  *string
	Author *string
	Price  *decimal.Decimal
}

// ApplyPatch 部分更新(领域行为)
// 业务规则:
// - title/author只有非nil且非空白时才覆盖
// - price只有非nil且>0时才覆盖
// - 其余情况一律视为"保持不变",而不是"清空"
// 返回是否有字段被修改
func (b *Book) ApplyPatch(p Patch) bool {
	changed := false
	if p.Title != nil && !IsBlank(*p.Title) {
		b.Title = *p.Title
		changed = true
	}
	if p.Author != nil && !IsBlank(*p.Author) {
		b.Author = *p.Author
		changed = true
	}
	if p.Price != nil && p.Price.IsPositive() {
		b.Price = *p.Price
		changed = true
	}
	if changed {
		b.UpdatedAt = time.Now()
	}
	return changed
}
