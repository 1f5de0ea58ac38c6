package response

import (
	"encoding/json"
	"testing"

	"weeskitten/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorOmitsData(t *testing.T) {
	b, err := json.Marshal(Error(404, "Cat not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","status_code":404,"error":"Cat not found"}`, string(b))
}

func TestPaginated(t *testing.T) {
	res := Paginated(200, []int{1, 2}, 41, pagination.New(2, 20))
	page, ok := res.Data.(Page)
	require.True(t, ok)
	assert.Equal(t, 3, page.Pages)
	assert.EqualValues(t, 41, page.Total)

	empty := Paginated(200, []int{}, 0, pagination.New(1, 20)).Data.(Page)
	assert.Zero(t, empty.Pages)
}
