package dto

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 分页查询参数
const (
	ParamPage = "page"
	ParamSize = "size"
	ParamSort = "sort"
)

// Paging 分页默认值（来自pagination配置）
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// Requested 是否带了任一分页参数
func (p Paging) Requested(q url.Values) bool {
	return q.Has(ParamPage) || q.Has(ParamSize) || q.Has(ParamSort)
}

// Parse 解析分页参数
// 规则：
// 1. page/size/sort都没有时返回nil（不分页）
// 2. page默认0，size默认DefaultSize，超过MaxSize时截断为MaxSize
// 3. page<0、size<=0、非数字、未知排序属性 → InvalidArgument
// 4. sort=prop[,asc|desc]，可重复
func (p Paging) Parse(q url.Values) (*book.PageRequest, error) {
	if !p.Requested(q) {
		return nil, nil
	}
	req, err := p.ParseOrDefault(q)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ParseOrDefault 总是返回分页请求（组合查询使用）
func (p Paging) ParseOrDefault(q url.Values) (book.PageRequest, error) {
	req := book.PageRequest{Page: 0, Size: p.DefaultSize}

	if raw := q.Get(ParamPage); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return req, apperrors.ErrInvalidPage.WithMessage("page must be a non-negative integer: %s", raw)
		}
		req.Page = n
	}

	if raw := q.Get(ParamSize); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return req, apperrors.ErrInvalidPage.WithMessage("size must be a positive integer: %s", raw)
		}
		if p.MaxSize > 0 && n > p.MaxSize {
			n = p.MaxSize
		}
		req.Size = n
	}

	for _, raw := range q[ParamSort] {
		order, err := parseSort(raw)
		if err != nil {
			return req, err
		}
		if order != nil {
			req.Sort = append(req.Sort, *order)
		}
	}
	return req, nil
}

func parseSort(raw string) (*book.SortOrder, error) {
	parts := strings.Split(raw, ",")
	property := strings.TrimSpace(parts[0])
	if property == "" {
		return nil, nil
	}
	if !book.SortableProperties[property] {
		return nil, apperrors.ErrInvalidPage.WithMessage("unknown sort property: %s", property)
	}

	order := &book.SortOrder{Property: property}
	if len(parts) > 1 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "", "asc":
		case "desc":
			order.Desc = true
		default:
			return nil, apperrors.ErrInvalidPage.WithMessage("unknown sort direction: %s", parts[1])
		}
	}
	if len(parts) > 2 {
		return nil, apperrors.ErrInvalidPage.WithMessage("malformed sort parameter: %s", raw)
	}
	return order, nil
}
