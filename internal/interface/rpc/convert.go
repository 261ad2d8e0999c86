package rpc

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 查询条件中的价格区间键
const (
	keyMinPrice = "min_prix"
	keyMaxPrice = "max_prix"
	keyBooks    = "books"
)

// bookToStruct 图书 → Struct
// prix以字符串传输（固定两位小数），避免经过float64丢失精度
func bookToStruct(b *book.Book) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		book.FieldID:     structpb.NewNumberValue(float64(b.ID)),
		book.FieldTitle:  structpb.NewStringValue(b.Title),
		book.FieldAuthor: structpb.NewStringValue(b.Author),
		book.FieldPrice:  structpb.NewStringValue(b.Price.StringFixed(book.PriceScale)),
	}}
}

func bookList(books []*book.Book) *structpb.Value {
	values := make([]*structpb.Value, 0, len(books))
	for _, b := range books {
		values = append(values, structpb.NewStructValue(bookToStruct(b)))
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

// resultToStruct 不分页时只有books；分页时附带与HTTP分页响应相同的元数据
func resultToStruct(r *book.Result) *structpb.Struct {
	if !r.Paged() {
		return &structpb.Struct{Fields: map[string]*structpb.Value{keyBooks: bookList(r.Items)}}
	}
	p := dto.NewPageResponse(r.Page)
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyBooks:           bookList(r.Page.Items),
		"totalElements":    structpb.NewNumberValue(float64(p.TotalElements)),
		"totalPages":       structpb.NewNumberValue(float64(p.TotalPages)),
		"number":           structpb.NewNumberValue(float64(p.Number)),
		"size":             structpb.NewNumberValue(float64(p.Size)),
		"numberOfElements": structpb.NewNumberValue(float64(p.NumberOfElements)),
		"first":            structpb.NewBoolValue(p.First),
		"last":             structpb.NewBoolValue(p.Last),
		"empty":            structpb.NewBoolValue(p.Empty),
	}}
}

// structToDraft 读取titre/auteur/prix，缺失或null的字段为nil
func structToDraft(s *structpb.Struct) (book.Draft, error) {
	var d book.Draft
	var err error
	if d.Title, err = optionalString(s, book.FieldTitle); err != nil {
		return d, err
	}
	if d.Author, err = optionalString(s, book.FieldAuthor); err != nil {
		return d, err
	}
	if d.Price, err = optionalPrice(s, book.FieldPrice); err != nil {
		return d, err
	}
	return d, nil
}

func structToPatch(s *structpb.Struct) (book.Patch, error) {
	d, err := structToDraft(s)
	if err != nil {
		return book.Patch{}, err
	}
	return book.Patch{Title: d.Title, Author: d.Author, Price: d.Price}, nil
}

// structToCriteria 查询条件
// 键：titre、auteur、min_prix、max_prix、page、size、sort（字符串或字符串列表）
// page/size/sort的解析规则与HTTP查询参数一致
func structToCriteria(s *structpb.Struct, paging dto.Paging) (book.Criteria, error) {
	var c book.Criteria
	title, err := optionalString(s, book.FieldTitle)
	if err != nil {
		return c, err
	}
	author, err := optionalString(s, book.FieldAuthor)
	if err != nil {
		return c, err
	}
	if title != nil {
		c.Title = *title
	}
	if author != nil {
		c.Author = *author
	}
	if c.MinPrice, err = optionalPrice(s, keyMinPrice); err != nil {
		return c, err
	}
	if c.MaxPrice, err = optionalPrice(s, keyMaxPrice); err != nil {
		return c, err
	}

	query := make(map[string][]string)
	for _, key := range []string{dto.ParamPage, dto.ParamSize, dto.ParamSort} {
		v, ok := s.GetFields()[key]
		if !ok {
			continue
		}
		values, err := queryValues(key, v)
		if err != nil {
			return c, err
		}
		query[key] = values
	}
	if c.Page, err = paging.Parse(query); err != nil {
		return c, err
	}
	return c, nil
}

// idFrom 读取整数ID
func idFrom(s *structpb.Struct) (uint, error) {
	v, ok := s.GetFields()[book.FieldID]
	if !ok {
		return 0, apperrors.InvalidArgument("missing required field: %s", book.FieldID)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n < 1 || n != math.Trunc(n) {
			return 0, apperrors.InvalidArgument("invalid book id: %v", n)
		}
		return uint(n), nil
	case *structpb.Value_StringValue:
		n, err := strconv.ParseUint(kind.StringValue, 10, 64)
		if err != nil || n == 0 {
			return 0, apperrors.InvalidArgument("invalid book id: %s", kind.StringValue)
		}
		return uint(n), nil
	default:
		return 0, apperrors.InvalidArgument("invalid book id")
	}
}

func optionalString(s *structpb.Struct, key string) (*string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_StringValue:
		str := kind.StringValue
		return &str, nil
	default:
		return nil, apperrors.InvalidArgument("%s must be a string", key)
	}
}

// optionalPrice 价格可以是数字或字符串
func optionalPrice(s *structpb.Struct, key string) (*decimal.Decimal, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_NumberValue:
		d := decimal.NewFromFloat(kind.NumberValue)
		return &d, nil
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(strings.TrimSpace(kind.StringValue))
		if err != nil {
			return nil, book.ErrInvalidPrice.WithMessage("invalid price: %s", kind.StringValue)
		}
		return &d, nil
	default:
		return nil, book.ErrInvalidPrice.WithMessage("%s must be a number", key)
	}
}

func queryValues(key string, v *structpb.Value) ([]string, error) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return []string{strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)}, nil
	case *structpb.Value_StringValue:
		return []string{kind.StringValue}, nil
	case *structpb.Value_ListValue:
		var out []string
		for _, item := range kind.ListValue.GetValues() {
			str, ok := item.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return nil, apperrors.ErrInvalidPage.WithMessage("%s must be a list of strings", key)
			}
			out = append(out, str.StringValue)
		}
		return out, nil
	default:
		return nil, apperrors.ErrInvalidPage.WithMessage("invalid %s", key)
	}
}
