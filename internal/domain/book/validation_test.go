package book

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestValidate(t *testing.T) {
	long := strings.Repeat("x", MaxTextLength+1)

	tests := []struct {
		name       string
		title      string
		author     string
		price      string
		wantFields []string
	}{
		{"合法", "Dune", "Herbert", "12.50", nil},
		{"最大长度", strings.Repeat("x", MaxTextLength), "a", "1", nil},
		{"价格上限", "Dune", "Herbert", "150000", nil},
		{"空白标题", "  ", "Herbert", "1", []string{FieldTitle}},
		{"标题超长", long, "Herbert", "1", []string{FieldTitle}},
		{"作者为空", "Dune", "", "1", []string{FieldAuthor}},
		{"价格为零", "Dune", "Herbert", "0", []string{FieldPrice}},
		{"负价格", "Dune", "Herbert", "-1", []string{FieldPrice}},
		{"超过上限", "Dune", "Herbert", "150000.01", []string{FieldPrice}},
		{"三位小数", "Dune", "Herbert", "12.505", []string{FieldPrice}},
		{"全部非法", "", "", "0", []string{FieldTitle, FieldAuthor, FieldPrice}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&Book{Title: tt.title, Author: tt.author, Price: decimal.RequireFromString(tt.price)})
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

			appErr := apperrors.GetAppError(err)
			var got []string
			for _, f := range appErr.Fields {
				got = append(got, f.Field)
				assert.NotEmpty(t, f.Message)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestValidateDraft_MissingFields(t *testing.T) {
	err := ValidateDraft(Draft{Author: strPtr("Herbert")})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.Len(t, appErr.Fields, 2)
	assert.Equal(t, FieldTitle, appErr.Fields[0].Field)
	assert.Equal(t, "null", appErr.Fields[0].RejectedValue)
	assert.Equal(t, FieldPrice, appErr.Fields[1].Field)
	assert.Equal(t, "null", appErr.Fields[1].RejectedValue)
}

func TestValidateDraft_RejectedValue(t *testing.T) {
	err := ValidateDraft(Draft{Title: strPtr("Dune"), Author: strPtr("Herbert"), Price: decPtr("-5")})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "-5", appErr.Fields[0].RejectedValue)
	assert.Equal(t, "must be greater than 0", appErr.Fields[0].Message)
}
