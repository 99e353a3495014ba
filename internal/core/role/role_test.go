package role

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "SUPER_ADMIN", want: SuperAdmin},
		{in: "staff", want: Staff},
		{in: "  Manager ", want: Manager},
		{in: "admin", want: Admin},
		{in: "owner", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Role Role `json:"role"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"role":"guest"}`), &payload))
	assert.Equal(t, Guest, payload.Role)

	err := json.Unmarshal([]byte(`{"role":"root"}`), &payload)
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	var empty Set
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.Contains(Staff))

	s := NewSet(Staff, Admin)
	assert.False(t, s.IsEmpty())
	assert.True(t, s.Contains(Staff))
	assert.False(t, s.Contains(Guest))
	assert.Equal(t, []Role{Admin, Staff}, s.Roles())
}

func TestIsSuperuser(t *testing.T) {
	for _, r := range All {
		assert.Equal(t, r == SuperAdmin, r.IsSuperuser(), r)
	}
}
