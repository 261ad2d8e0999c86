package book

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Matches(t *testing.T) {
	b := &Book{Title: "Le Petit Prince", Author: "Saint-Exupéry", Price: decimal.RequireFromString("9.90")}
	min := decimal.RequireFromString("9.90")
	max := decimal.RequireFromString("9.89")

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"空条件", Filter{}, true},
		{"标题忽略大小写", Filter{Title: "petit"}, true},
		{"作者子串", Filter{Author: "exup"}, true},
		{"标题AND作者", Filter{Title: "prince", Author: "hugo"}, false},
		{"价格下限含边界", Filter{MinPrice: &min}, true},
		{"价格上限不满足", Filter{MaxPrice: &max}, false},
		{"价格区间包含", Filter{MinPrice: &max, MaxPrice: &min}, true},
		{"下限大于上限", Filter{MinPrice: &min, MaxPrice: &max}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(b))
		})
	}
}

func TestPage_TotalPages(t *testing.T) {
	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		p := &Page{Total: tt.total, Size: tt.size}
		assert.Equal(t, tt.want, p.TotalPages(), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 2, Size: 20}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: 1 << 62, Size: 2}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt, Size: 2000}.Offset())
	assert.Equal(t, 0, PageRequest{Page: 3, Size: 0}.Offset())
}
