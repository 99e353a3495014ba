package entity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/id"
	"stayhub/internal/core/types"
)

func TestBase_Stamp(t *testing.T) {
	b := NewBase()
	creator := id.New()
	editor := id.New()
	now := time.Now().UTC()

	b.Stamp(creator, now)
	require.NotNil(t, b.CreatedBy)
	assert.Equal(t, creator, *b.CreatedBy)
	assert.Equal(t, creator, *b.UpdatedBy)

	later := now.Add(time.Minute)
	b.Stamp(editor, later)
	assert.Equal(t, creator, *b.CreatedBy)
	assert.Equal(t, editor, *b.UpdatedBy)
	assert.Equal(t, later, b.UpdatedAt)
}

func TestBase_StampWithoutActor(t *testing.T) {
	b := NewBase()
	b.Stamp(id.Nil(), time.Now())
	assert.Nil(t, b.CreatedBy)
	assert.Nil(t, b.UpdatedBy)
}

func TestPriced_ValidatePrice(t *testing.T) {
	p := Priced{Amount: types.MustMoney("120.50"), Currency: "eur"}
	require.NoError(t, p.ValidatePrice(context.Background()))
	assert.Equal(t, types.Currency("EUR"), p.Currency)

	p = Priced{Amount: types.MustMoney("-1"), Currency: "EUR"}
	assert.True(t, apperror.HasCode(p.ValidatePrice(context.Background()), apperror.CodeValidation))

	p = Priced{Amount: types.MustMoney("1"), Currency: "EURO"}
	assert.True(t, apperror.HasCode(p.ValidatePrice(context.Background()), apperror.CodeValidation))
}
