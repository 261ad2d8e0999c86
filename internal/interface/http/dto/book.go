package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookRequest 创建/更新请求体
// 字段使用指针：未提供与空值需要区分（校验错误中未提供记为"null"）
// 价格既可以是数字也可以是字符串（"12.50"）
type BookRequest struct {
	Titre  *string          `json:"titre" example:"Dune"`
	Auteur *string          `json:"auteur" example:"Frank Herbert"`
	Prix   *decimal.Decimal `json:"prix" swaggertype:"number" example:"12.50"`
}

// ToDraft 创建/全量更新输入
func (r BookRequest) ToDraft() book.Draft {
	return book.Draft{Title: r.Titre, Author: r.Auteur, Price: r.Prix}
}

// ToPatch 部分更新输入
func (r BookRequest) ToPatch() book.Patch {
	return book.Patch{Title: r.Titre, Author: r.Auteur, Price: r.Prix}
}

// BookResponse 图书响应
type BookResponse struct {
	ID     uint        `json:"id" example:"1"`
	Titre  string      `json:"titre" example:"Dune"`
	Auteur string      `json:"auteur" example:"Frank Herbert"`
	Prix   json.Number `json:"prix" swaggertype:"number" example:"12.50"`
}

// NewBookResponse 领域实体 → 响应
func NewBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:     b.ID,
		Titre:  b.Title,
		Auteur: b.Author,
		Prix:   json.Number(b.Price.StringFixed(book.PriceScale)),
	}
}

// NewBookList 列表响应（不分页调用方）
func NewBookList(books []*book.Book) []BookResponse {
	list := make([]BookResponse, 0, len(books))
	for _, b := range books {
		list = append(list, NewBookResponse(b))
	}
	return list
}

// PageResponse 分页响应
type PageResponse struct {
	Content          []BookResponse `json:"content"`
	TotalElements    int64          `json:"totalElements" example:"42"`
	TotalPages       int            `json:"totalPages" example:"3"`
	Number           int            `json:"number" example:"0"`
	Size             int            `json:"size" example:"20"`
	NumberOfElements int            `json:"numberOfElements" example:"20"`
	First            bool           `json:"first" example:"true"`
	Last             bool           `json:"last" example:"false"`
	Empty            bool           `json:"empty" example:"false"`
}

// NewPageResponse 分页结果 → 响应
func NewPageResponse(p *book.Page) PageResponse {
	content := NewBookList(p.Items)
	totalPages := p.TotalPages()
	return PageResponse{
		Content:          content,
		TotalElements:    p.Total,
		TotalPages:       totalPages,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: len(content),
		First:            p.Number == 0,
		Last:             p.Number >= totalPages-1,
		Empty:            len(content) == 0,
	}
}

// NewResult 分页调用方返回PageResponse，否则返回列表
func NewResult(r *book.Result) interface{} {
	if r.Paged() {
		return NewPageResponse(r.Page)
	}
	return NewBookList(r.Items)
}
