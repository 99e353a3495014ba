// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/domain/filter"
)

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// ErrorResponse documents the error body rendered by middleware.ErrorHandler.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- List Query ---

// ListQuery contains list query parameters shared by resource endpoints.
//
//	GET /bookings?status=confirmed&filter=check_in:gte:2026-01-01&orderBy=-check_in&limit=20
type ListQuery struct {
	Limit   int      `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset  int      `form:"offset" binding:"omitempty,min=0"`
	OrderBy string   `form:"orderBy"`
	Status  string   `form:"status"`
	Filter  []string `form:"filter"`
}

// ToListFilter converts query parameters to a domain list filter.
func (q ListQuery) ToListFilter() (domain.ListFilter, error) {
	f := domain.DefaultListFilter()
	if q.Limit > 0 {
		f.Limit = q.Limit
	}
	f.Offset = q.Offset
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}

	if q.Status != "" {
		f.Filters = append(f.Filters, filter.Item{Field: "status", Operator: filter.Equal, Value: q.Status})
	}
	for _, raw := range q.Filter {
		item, err := filter.Parse(raw)
		if err != nil {
			return f, err
		}
		f.Filters = append(f.Filters, item)
	}
	return f, nil
}

// --- Optimistic locking ---

// Versioned is embedded by update requests. The version must match the
// stored one.
type Versioned struct {
	Version int `json:"version" binding:"required,min=1"`
}

// ExpectedVersion returns the version the client based its changes on.
func (v Versioned) ExpectedVersion() int {
	return v.Version
}

// --- Dates ---

// Date is a calendar day encoded as "2006-01-02". RFC 3339 timestamps are
// accepted and truncated to their UTC day.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t.UTC().Truncate(24 * time.Hour)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}
