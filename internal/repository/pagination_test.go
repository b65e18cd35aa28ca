package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	p := Pagination{}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = Pagination{Page: 3, PageSize: 500}
	assert.Equal(t, MaxPageSize, p.Limit())
	assert.Equal(t, 200, p.Offset())

	assert.Equal(t, 20, Pagination{Page: 2, PageSize: 20}.Offset())
}

func TestValidTemplateOrdering(t *testing.T) {
	for _, o := range []string{"created_at", "-created_at", "usage_count", "-usage_count"} {
		assert.True(t, ValidTemplateOrdering(o), o)
	}
	assert.False(t, ValidTemplateOrdering("name"))
	assert.False(t, ValidTemplateOrdering("created_at; DROP TABLE templates"))
}
