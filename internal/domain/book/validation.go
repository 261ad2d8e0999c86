package book

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 对外字段名(JSON、查询参数、字段错误共用)
const (
	FieldID     = "id"
	FieldTitle  = "titre"
	FieldAuthor = "auteur"
	FieldPrice  = "prix"
)

// 字段约束
const (
	MaxTextLength = 255
	PriceScale    = 2
)

// MaxPrice 价格上限(含)
var MaxPrice = decimal.NewFromInt(150000)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// 字段错误使用json名(titre/auteur/prix)
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimal按数值参与gt/lte比较
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return !IsBlank(fl.Field().String())
	})
}

// bookRules 图书字段约束
type bookRules struct {
	Title  string          `json:"titre" validate:"notblank,max=255"`
	Author string          `json:"auteur" validate:"notblank,max=255"`
	Price  decimal.Decimal `json:"prix" validate:"gt=0,lte=150000"`
}

// Validate 校验图书字段约束
// 规则:
// - titre/auteur非空白,1-255个字符
// - prix > 0 且 <= 150000,最多两位小数
// 返回的字段错误按titre、auteur、prix的顺序排列
func Validate(b *Book) error {
	return validateValues(b.Title, b.Author, b.Price, nil)
}

// ValidateDraft 校验创建/全量更新输入,未提供的字段rejectedValue为"null"
func ValidateDraft(d Draft) error {
	title, author, price := d.Values()
	missing := map[string]bool{
		FieldTitle:  d.Title == nil,
		FieldAuthor: d.Author == nil,
		FieldPrice:  d.Price == nil,
	}
	return validateValues(title, author, price, missing)
}

func validateValues(title, author string, price decimal.Decimal, missing map[string]bool) error {
	rejected := map[string]string{
		FieldTitle:  title,
		FieldAuthor: author,
		FieldPrice:  price.String(),
	}
	for field, isMissing := range missing {
		if isMissing {
			rejected[field] = "null"
		}
	}

	var fields []apperrors.FieldError
	priceFailed := false

	err := validate.Struct(bookRules{Title: title, Author: author, Price: price})
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperrors.Wrap(err, "validate book")
		}
		for _, fe := range verrs {
			field := fe.Field()
			if field == FieldPrice {
				priceFailed = true
			}
			fields = append(fields, apperrors.FieldError{
				Field:         field,
				Message:       messageFor(fe),
				RejectedValue: rejected[field],
			})
		}
	}

	// 精度:最多两位小数(12.50合法,12.505非法)
	if !priceFailed && !price.Equal(price.Round(PriceScale)) {
		fields = append(fields, apperrors.FieldError{
			Field:         FieldPrice,
			Message:       fmt.Sprintf("must have at most %d fractional digits", PriceScale),
			RejectedValue: rejected[FieldPrice],
		})
	}

	if len(fields) == 0 {
		return nil
	}
	return apperrors.Validation(fields...)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("size must be between 1 and %d", MaxTextLength)
	case "gt":
		return "must be greater than 0"
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", MaxPrice.String())
	default:
		return "is invalid"
	}
}
