// Package numerator provides domain contracts for per-tenant document numbering.
package numerator

import (
	"fmt"
	"time"
)

// ResetPeriod controls when a sequence restarts from 1.
type ResetPeriod string

const (
	ResetNever ResetPeriod = "never"
	ResetYear  ResetPeriod = "year"
	ResetMonth ResetPeriod = "month"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "INV")
	Prefix string

	// IncludeYear adds year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	ResetPeriod ResetPeriod
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: ResetYear,
	}
}

// Key returns the sequence key for period.
func (c Config) Key(period time.Time) string {
	switch c.ResetPeriod {
	case ResetMonth:
		return fmt.Sprintf("%s_%s", c.Prefix, period.Format("2006_01"))
	case ResetYear:
		return fmt.Sprintf("%s_%s", c.Prefix, period.Format("2006"))
	default:
		return c.Prefix
	}
}

// Format renders num, e.g. INV-2026-00001.
func (c Config) Format(period time.Time, num int64) string {
	padWidth := c.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}
	if c.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", c.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", c.Prefix, padWidth, num)
}
