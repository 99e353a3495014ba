package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
)

type stamped struct {
	actor id.ID
	at    time.Time
}

func (s *stamped) Stamp(actor id.ID, now time.Time) {
	s.actor = actor
	s.at = now
}

func TestEnrich(t *testing.T) {
	caller := &appctx.Caller{IdentityID: id.New(), Role: role.Staff}
	ctx := appctx.WithCaller(context.Background(), caller)

	var s stamped
	Enrich(ctx, &s)
	assert.Equal(t, caller.IdentityID, s.actor)
	assert.False(t, s.at.IsZero())

	var anon stamped
	Enrich(context.Background(), &anon)
	assert.True(t, id.IsNil(anon.actor))
}

func TestDiff(t *testing.T) {
	changes := Diff(
		map[string]any{"status": "pending", "guest": "Ann", "note": "x"},
		map[string]any{"status": "confirmed", "guest": "Ann", "room": 4},
	)

	assert.Equal(t, map[string]any{
		"status": map[string]any{"old": "pending", "new": "confirmed"},
		"note":   map[string]any{"old": "x", "new": nil},
		"room":   map[string]any{"old": nil, "new": 4},
	}, changes)
}
