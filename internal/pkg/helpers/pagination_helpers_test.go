package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Size: DefaultPageSize}, NewPage(0, 0))
	assert.Equal(t, Page{Number: 3, Size: 5}, NewPage(3, 5))
	assert.Equal(t, Page{Number: 1, Size: MaxPageSize}, NewPage(-4, 1000))
}

func TestPageOffsetAndInfo(t *testing.T) {
	p := NewPage(3, 20)
	offset, limit := p.OffsetLimit()
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, limit)

	info := p.Info(41)
	assert.Equal(t, 3, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, int64(41), info.TotalItems)

	assert.Zero(t, NewPage(1, 10).Info(0).TotalPages)
	assert.Equal(t, 1, NewPage(1, 10).Info(10).TotalPages)
}
