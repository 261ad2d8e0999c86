package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestPaging_Parse(t *testing.T) {
	paging := Paging{DefaultSize: 20, MaxSize: 100}

	tests := []struct {
		name    string
		query   string
		want    *book.PageRequest
		wantErr bool
	}{
		{"没有分页参数不分页", "titre=x", nil, false},
		{"只有page", "page=2", &book.PageRequest{Page: 2, Size: 20}, false},
		{"只有sort也视为分页", "sort=titre", &book.PageRequest{Size: 20, Sort: []book.SortOrder{{Property: "titre"}}}, false},
		{"size超过上限截断", "size=5000", &book.PageRequest{Size: 100}, false},
		{"多个排序", "sort=prix,desc&sort=id", &book.PageRequest{Size: 20, Sort: []book.SortOrder{
			{Property: "prix", Desc: true}, {Property: "id"},
		}}, false},
		{"page极大仍合法", "page=4611686018427387904&size=2", &book.PageRequest{Page: 1 << 62, Size: 2}, false},
		{"page超出整数范围", "page=99999999999999999999", nil, true},
		{"page为负数", "page=-1", nil, true},
		{"size为0", "size=0", nil, true},
		{"size非数字", "size=abc", nil, true},
		{"未知排序属性", "sort=isbn", nil, true},
		{"未知排序方向", "sort=prix,up", nil, true},
		{"排序参数格式错误", "sort=prix,asc,x", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := paging.Parse(q)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaging_ParseOrDefault(t *testing.T) {
	got, err := Paging{DefaultSize: 20}.ParseOrDefault(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, book.PageRequest{Page: 0, Size: 20}, got)
}
