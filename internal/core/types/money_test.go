package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(MustMoney("120.50")))
	assert.NoError(t, ValidateAmount(Zero()))
	assert.Error(t, ValidateAmount(MustMoney("-1")))
	assert.Error(t, ValidateAmount(MustMoney("10.005")))
}

func TestRoundMoney(t *testing.T) {
	assert.True(t, MustMoney("2.12").Equal(RoundMoney(MustMoney("2.125"))))
	assert.True(t, MustMoney("2.14").Equal(RoundMoney(MustMoney("2.135"))))
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" eur ")
	require.NoError(t, err)
	assert.Equal(t, Currency("EUR"), c)

	_, err = ParseCurrency("EURO")
	assert.Error(t, err)
}
