package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

func TestBookRequest_ToPatch(t *testing.T) {
	var req BookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"prix": 12.5}`), &req))

	patch := req.ToPatch()
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Author)
	require.NotNil(t, patch.Price)
	assert.True(t, decimal.RequireFromString("12.5").Equal(*patch.Price))
}

func TestBookResponse_PriceHasTwoDecimals(t *testing.T) {
	b := book.NewBook("Candide", "Voltaire", decimal.NewFromInt(7))
	b.ID = 3

	raw, err := json.Marshal(NewBookResponse(b))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"titre":"Candide","auteur":"Voltaire","prix":7.00}`, string(raw))
	assert.Contains(t, string(raw), `"prix":7.00`)
}

func TestNewPageResponse(t *testing.T) {
	tests := []struct {
		name      string
		page      book.Page
		wantPages int
		wantFirst bool
		wantLast  bool
		wantEmpty bool
	}{
		{"第一页", book.Page{Items: []*book.Book{{ID: 1}}, Total: 3, Number: 0, Size: 1}, 3, true, false, false},
		{"最后一页", book.Page{Items: []*book.Book{{ID: 3}}, Total: 3, Number: 2, Size: 1}, 3, false, true, false},
		{"超出范围的空页", book.Page{Total: 3, Number: 5, Size: 2}, 2, false, true, true},
		{"没有数据", book.Page{Total: 0, Number: 0, Size: 20}, 0, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPageResponse(&tt.page)
			assert.Equal(t, tt.wantPages, got.TotalPages)
			assert.Equal(t, tt.wantFirst, got.First)
			assert.Equal(t, tt.wantLast, got.Last)
			assert.Equal(t, tt.wantEmpty, got.Empty)
			assert.NotNil(t, got.Content)
		})
	}
}
