package response

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageResponse_NilItemsRenderAsArray(t *testing.T) {
	b, err := json.Marshal(NewPageResponse[int](nil, 1, 20, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"page":1,"page_size":20,"total":0}`, string(b))
}

func TestMapPage(t *testing.T) {
	p := MapPage([]int{1, 2}, strconv.Itoa, 2, 2, 7)
	assert.Equal(t, []string{"1", "2"}, p.Items)
	assert.Equal(t, 7, p.Total)
	assert.Equal(t, 2, p.Page)

	empty := MapPage[int, string](nil, strconv.Itoa, 1, 20, 0)
	assert.NotNil(t, empty.Items)
}
