package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stayhub/internal/core/entity"
	"stayhub/internal/core/id"
	"stayhub/internal/core/types"
)

type mockResource struct {
	entity.Base
	entity.Priced
	Name    string `db:"name" json:"name"`
	Comment string `json:"comment"`
	Skipped string `db:"-"`
}

func TestExtractDBColumns_EmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[mockResource]()

	for _, expected := range []string{
		"id", "tenant_id", "version", "created_at", "updated_at",
		"created_by", "updated_by", "deleted_at", "amount", "currency", "name",
	} {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "comment")
	assert.NotContains(t, cols, "-")
}

func TestExtractDBColumns_Pointer(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[mockResource](), ExtractDBColumns[*mockResource]())
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	actor := id.New()
	r := &mockResource{
		Base: entity.Base{
			ID:        id.New(),
			TenantID:  id.New(),
			Version:   5,
			CreatedBy: &actor,
			DeletedAt: &now,
		},
		Priced: entity.Priced{Amount: types.MustMoney("12.50"), Currency: "EUR"},
		Name:   "Sea View",
	}

	m := StructToMap(r)

	assert.Equal(t, r.ID, m["id"])
	assert.Equal(t, r.TenantID, m["tenant_id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, &actor, m["created_by"])
	assert.Equal(t, &now, m["deleted_at"])
	assert.Equal(t, types.Currency("EUR"), m["currency"])
	assert.True(t, types.MustMoney("12.50").Equal(m["amount"].(types.Money)))
	assert.Equal(t, "Sea View", m["name"])
	assert.NotContains(t, m, "comment")
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}

func TestPickColumns(t *testing.T) {
	values := map[string]any{"id": 1, "name": "x", "deleted_at": nil}
	got := PickColumns(values, []string{"id", "name", "missing"})
	assert.Equal(t, map[string]any{"id": 1, "name": "x"}, got)
}

type withOptionalPrice struct {
	*entity.Priced
	Name string `db:"name"`
}

func TestExtractDBColumns_DeclarationOrder(t *testing.T) {
	cols := ExtractDBColumns[mockResource]()
	assert.Equal(t, "id", cols[0])
	assert.Equal(t, "name", cols[len(cols)-1])
}

func TestStructToMap_NilEmbeddedPointer(t *testing.T) {
	m := StructToMap(withOptionalPrice{Name: "Loft"})
	assert.Equal(t, map[string]any{"name": "Loft"}, m)

	m = StructToMap(&withOptionalPrice{Priced: &entity.Priced{Currency: "EUR"}, Name: "Loft"})
	assert.Equal(t, types.Currency("EUR"), m["currency"])
}
