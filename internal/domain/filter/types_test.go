package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	item, err := Parse("status:eq:confirmed")
	require.NoError(t, err)
	assert.Equal(t, Item{Field: "status", Operator: Equal, Value: "confirmed"}, item)

	item, err = Parse("status:in:pending,confirmed")
	require.NoError(t, err)
	assert.Equal(t, []string{"pending", "confirmed"}, item.Value)

	item, err = Parse("paid_at:null")
	require.NoError(t, err)
	assert.Nil(t, item.Value)

	item, err = Parse("guest_name:contains:a:b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", item.Value)

	for _, bad := range []string{"status", ":eq:x", "status:like:x", "status:eq"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}
