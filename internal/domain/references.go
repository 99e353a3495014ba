package domain

import (
	"context"
	"errors"
	"fmt"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/id"
	"stayhub/internal/core/security"
)

// RequireSameTenant checks that the resource refID, resolved through lookup,
// belongs to tenantID. References to another tenant's rows are reported
// exactly like missing rows.
func RequireSameTenant(ctx context.Context, lookup security.TenantRefLookup, refID, tenantID id.ID, field string) error {
	if id.IsNil(refID) {
		return apperror.NewValidation(field+" is required").WithDetail("field", field)
	}

	owner, err := lookup.TenantRef(ctx, refID)
	if errors.Is(err, security.ErrResourceNotFound) || (err == nil && owner != tenantID) {
		return apperror.NewValidation(field+" does not reference an existing resource").
			WithDetail("field", field).
			WithDetail("value", refID.String())
	}
	if err != nil {
		return fmt.Errorf("resolve %s: %w", field, err)
	}
	return nil
}
