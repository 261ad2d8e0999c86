package book

import (
	"math"

	"github.com/shopspring/decimal"
)

// SortOrder 排序项
type SortOrder struct {
	Property string // id | titre | auteur | prix
	Desc     bool
}

// SortableProperties 允许排序的属性
var SortableProperties = map[string]bool{
	FieldID:     true,
	FieldTitle:  true,
	FieldAuthor: true,
	FieldPrice:  true,
}

// PageRequest 分页请求
// 设计说明:
// 1. Page从0开始,Size必须>0(由接口层解析时保证)
// 2. Sort为空时按id升序,保证分页稳定
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// Offset 偏移量
// 页码过大时饱和为math.MaxInt，超出总数的偏移得到空页
func (p PageRequest) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Filter 查询条件
// 每个条件独立生效,空字符串/nil表示不过滤;标题+作者同时给出时是AND关系
type Filter struct {
	Title    string           // 标题子串(不区分大小写)
	Author   string           // 作者子串(不区分大小写)
	MinPrice *decimal.Decimal // 价格下限(含)
	MaxPrice *decimal.Decimal // 价格上限(含)
}

// Matches 内存中判断是否命中(内存存储和测试共用)
func (f Filter) Matches(b *Book) bool {
	if f.Title != "" && !containsFold(b.Title, f.Title) {
		return false
	}
	if f.Author != "" && !containsFold(b.Author, f.Author) {
		return false
	}
	if f.MinPrice != nil && b.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && b.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Criteria 搜索条件:过滤条件 + 可选分页
type Criteria struct {
	Filter
	Page *PageRequest
}

// Page 分页结果
type Page struct {
	Items  []*Book
	Total  int64
	Number int
	Size   int
}

// TotalPages 总页数
func (p *Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := int(p.Total) / p.Size
	if int(p.Total)%p.Size != 0 {
		pages++
	}
	return pages
}

// Result 查询结果:分页调用方拿到Page,不分页调用方拿到完整列表
type Result struct {
	Page  *Page
	Items []*Book
}

// Paged 是否为分页结果
func (r *Result) Paged() bool {
	return r.Page != nil
}
