package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
	"stayhub/internal/core/numerator"
	"stayhub/internal/core/role"
	"stayhub/internal/core/security"
	"stayhub/internal/core/tx"
	"stayhub/internal/core/types"
	"stayhub/internal/domain"
	"stayhub/internal/domain/audit"
)

type stubRepo struct {
	created []*Invoice
}

func (r *stubRepo) Create(_ context.Context, inv *Invoice) error {
	r.created = append(r.created, inv)
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, iid id.ID) (*Invoice, error) {
	return nil, apperror.NewNotFound("invoice", iid)
}

func (r *stubRepo) Update(context.Context, *Invoice) error { return nil }

func (r *stubRepo) Delete(context.Context, id.ID) error { return nil }

func (r *stubRepo) List(context.Context, domain.ListFilter) (domain.ListResult[*Invoice], error) {
	return domain.ListResult[*Invoice]{}, nil
}

func TestService_NumbersPerTenant(t *testing.T) {
	t1 := id.New()
	booking := id.New()
	bookings := security.TenantRefLookupFunc(func(context.Context, id.ID) (id.ID, error) {
		return t1, nil
	})

	repo := &stubRepo{}
	svc := NewService(repo, tx.Passthrough, audit.Nop{}, bookings, numerator.NewMemory())
	ctx := appctx.WithCaller(context.Background(), &appctx.Caller{IdentityID: id.New(), Role: role.Manager, TenantID: t1})

	year := time.Now().UTC().Year()
	for i := 1; i <= 2; i++ {
		inv := NewInvoice(booking)
		inv.Amount = types.MustMoney("99.90")
		inv.Currency = "usd"
		require.NoError(t, svc.Create(ctx, inv))
		assert.Equal(t, fmt.Sprintf("INV-%d-%05d", year, i), inv.Number)
		assert.Equal(t, types.Currency("USD"), inv.Currency)
	}

	manual := NewInvoice(booking)
	manual.Number = "LEGACY-7"
	manual.Amount = types.MustMoney("1")
	manual.Currency = "USD"
	require.NoError(t, svc.Create(ctx, manual))
	assert.Equal(t, "LEGACY-7", manual.Number)
}

func TestInvoice_Validate(t *testing.T) {
	inv := NewInvoice(id.New())
	inv.Amount = types.MustMoney("10.005")
	inv.Currency = "EUR"
	assert.True(t, apperror.HasCode(inv.Validate(context.Background()), apperror.CodeValidation))

	inv.Amount = types.MustMoney("10.00")
	inv.Status = "sent"
	assert.True(t, apperror.HasCode(inv.Validate(context.Background()), apperror.CodeValidation))
}
