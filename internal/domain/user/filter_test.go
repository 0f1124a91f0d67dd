package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFilter_Offset(t *testing.T) {
	assert.Equal(t, int64(0), ListFilter{}.Offset())
	assert.Equal(t, int64(0), ListFilter{Page: 3}.Offset())
	assert.Equal(t, int64(0), ListFilter{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, int64(20), ListFilter{Page: 3, Limit: 10}.Offset())
}
