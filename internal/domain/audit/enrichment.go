package audit

import (
	"context"
	"time"

	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
)

// Stampable is implemented by entities that track who changed them.
type Stampable interface {
	Stamp(actor id.ID, now time.Time)
}

// Enrich stamps e with the calling identity and the current time.
// Without a caller in ctx only the timestamp moves.
func Enrich(ctx context.Context, e Stampable) {
	var actor id.ID
	if c := appctx.GetCaller(ctx); c != nil {
		actor = c.IdentityID
	}
	e.Stamp(actor, time.Now().UTC())
}
