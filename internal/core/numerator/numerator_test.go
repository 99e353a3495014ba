package numerator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/core/id"
)

func TestConfig_KeyAndFormat(t *testing.T) {
	period := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	cfg := DefaultConfig("INV")
	assert.Equal(t, "INV_2026", cfg.Key(period))
	assert.Equal(t, "INV-2026-00042", cfg.Format(period, 42))

	cfg.ResetPeriod = ResetMonth
	assert.Equal(t, "INV_2026_03", cfg.Key(period))

	cfg = Config{Prefix: "PAY", ResetPeriod: ResetNever, PadWidth: 3}
	assert.Equal(t, "PAY", cfg.Key(period))
	assert.Equal(t, "PAY-007", cfg.Format(period, 7))
}

func TestMemory_PerTenantSequences(t *testing.T) {
	gen := NewMemory()
	ctx := context.Background()
	period := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := DefaultConfig("INV")
	t1, t2 := id.New(), id.New()

	n, err := gen.GetNextNumber(ctx, t1, cfg, period)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", n)

	n, _ = gen.GetNextNumber(ctx, t1, cfg, period)
	assert.Equal(t, "INV-2026-00002", n)

	n, _ = gen.GetNextNumber(ctx, t2, cfg, period)
	assert.Equal(t, "INV-2026-00001", n)
}
