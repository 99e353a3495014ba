// Package audit defines how domain services record changes to tenant data.
package audit

import (
	"context"

	"stayhub/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionRoleChange Action = "role_change"
	ActionActivate   Action = "activate"
	ActionDeactivate Action = "deactivate"
)

// Recorder persists a change made by the current caller.
// The actor and tenant are taken from ctx.
type Recorder interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
}

// Nop discards every change.
type Nop struct{}

func (Nop) LogChange(context.Context, string, id.ID, Action, map[string]any) error { return nil }
