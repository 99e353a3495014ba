package security

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
)

type fakeRefs struct {
	owners map[id.ID]id.ID
	err    error
	calls  int
}

func (f *fakeRefs) TenantRef(_ context.Context, resourceID id.ID) (id.ID, error) {
	f.calls++
	if f.err != nil {
		return id.Nil(), f.err
	}
	owner, ok := f.owners[resourceID]
	if !ok {
		return id.Nil(), ErrResourceNotFound
	}
	return owner, nil
}

type gateFixture struct {
	t1, t2   id.ID
	bookingB id.ID
	bookingC id.ID
	bookings *fakeRefs
	gate     *TenantGate
}

func newGateFixture(opts ...GateOption) *gateFixture {
	f := &gateFixture{
		t1:       id.New(),
		t2:       id.New(),
		bookingB: id.New(),
		bookingC: id.New(),
	}
	f.bookings = &fakeRefs{owners: map[id.ID]id.ID{
		f.bookingB: f.t2,
		f.bookingC: f.t1,
	}}
	empty := &fakeRefs{owners: map[id.ID]id.ID{}}
	f.gate = NewTenantGate(map[ResourceKind]TenantRefLookup{
		ResourceBooking:  f.bookings,
		ResourceProperty: empty,
		ResourcePayment:  empty,
		ResourceInvoice:  empty,
	}, opts...)
	return f
}

func (f *gateFixture) caller(r role.Role, tenant id.ID) *appctx.Caller {
	return &appctx.Caller{IdentityID: id.New(), Role: r, TenantID: tenant}
}

func TestTenantGate_ForeignBookingForbidden(t *testing.T) {
	f := newGateFixture()

	d := f.gate.Check(context.Background(), f.caller(role.Staff, f.t1), GateRequest{
		Path:       "/api/v1/bookings/" + f.bookingB.String(),
		ResourceID: f.bookingB.String(),
	})

	assert.False(t, d.Allowed())
	assert.Equal(t, StateNeedsResourceID, d.Branch)
	assert.Equal(t, ResourceBooking, d.Kind)
	assert.True(t, apperror.IsForbidden(d.Err))
	assert.Equal(t, []GateState{StateStart, StateRoleChecked, StateNeedsResourceID, StateResolved}, d.Trail())
}

func TestTenantGate_OwnBookingAllowed(t *testing.T) {
	f := newGateFixture()

	d := f.gate.Check(context.Background(), f.caller(role.Staff, f.t1), GateRequest{
		Path:       "/api/v1/bookings/" + f.bookingC.String(),
		ResourceID: f.bookingC.String(),
	})

	assert.True(t, d.Allowed())
	assert.Equal(t, StateNeedsResourceID, d.Branch)
}

func TestTenantGate_MissingResourceNotFound(t *testing.T) {
	f := newGateFixture()

	for _, tenant := range []id.ID{f.t1, f.t2} {
		for _, raw := range []string{"does-not-exist", id.New().String()} {
			d := f.gate.Check(context.Background(), f.caller(role.Manager, tenant), GateRequest{
				Path:       "/api/v1/bookings/" + raw,
				ResourceID: raw,
			})
			require.False(t, d.Allowed())
			assert.True(t, apperror.IsNotFound(d.Err), raw)
		}
	}
}

func TestTenantGate_SuperuserBypass(t *testing.T) {
	f := newGateFixture()

	for _, target := range []string{f.bookingB.String(), f.bookingC.String(), "does-not-exist"} {
		d := f.gate.Check(context.Background(), f.caller(role.SuperAdmin, id.Nil()), GateRequest{
			Path:       "/api/v1/bookings/" + target,
			ResourceID: target,
		})
		assert.True(t, d.Allowed())
		assert.Equal(t, StateSuperuserBypass, d.Branch)
	}
	assert.Zero(t, f.bookings.calls)
}

func TestTenantGate_NoResourceID(t *testing.T) {
	f := newGateFixture()

	for _, r := range []role.Role{role.Admin, role.Manager, role.Staff, role.Guest} {
		d := f.gate.Check(context.Background(), f.caller(r, f.t1), GateRequest{Path: "/api/v1/bookings"})
		assert.True(t, d.Allowed())
		assert.Equal(t, StateNoResourceCheckNeeded, d.Branch)
	}
	assert.Zero(t, f.bookings.calls)
}

func TestTenantGate_UnclassifiedPath(t *testing.T) {
	f := newGateFixture()

	d := f.gate.Check(context.Background(), f.caller(role.Admin, f.t1), GateRequest{
		Path:       "/api/v1/users/" + id.New().String(),
		ResourceID: id.New().String(),
	})

	assert.True(t, d.Allowed())
	assert.Equal(t, ResourceNone, d.Kind)
}

func TestTenantGate_LookupFailureIsInternal(t *testing.T) {
	f := newGateFixture()
	f.bookings.err = errors.New("connection reset")

	d := f.gate.Check(context.Background(), f.caller(role.Staff, f.t1), GateRequest{
		Path:       "/api/v1/bookings/" + f.bookingC.String(),
		ResourceID: f.bookingC.String(),
	})

	require.False(t, d.Allowed())
	assert.True(t, apperror.HasCode(d.Err, apperror.CodeInternal))
}

func TestTenantGate_UnregisteredKind(t *testing.T) {
	gate := NewTenantGate(map[ResourceKind]TenantRefLookup{})

	d := gate.Check(context.Background(), &appctx.Caller{Role: role.Staff, TenantID: id.New()}, GateRequest{
		Path:       "/api/v1/invoices/x",
		ResourceID: id.New().String(),
	})

	assert.True(t, apperror.HasCode(d.Err, apperror.CodeInternal))
}

func TestTenantGate_HideForeign(t *testing.T) {
	f := newGateFixture(WithHiddenForeignResources(true))

	d := f.gate.Check(context.Background(), f.caller(role.Staff, f.t1), GateRequest{
		Path:       "/api/v1/bookings/" + f.bookingB.String(),
		ResourceID: f.bookingB.String(),
	})

	assert.True(t, apperror.IsNotFound(d.Err))
}

func TestTenantGate_CallerWithoutTenant(t *testing.T) {
	f := newGateFixture()

	d := f.gate.Check(context.Background(), f.caller(role.Staff, id.Nil()), GateRequest{
		Path:       "/api/v1/bookings/" + f.bookingC.String(),
		ResourceID: f.bookingC.String(),
	})

	assert.True(t, apperror.IsForbidden(d.Err))
}

func TestTenantGate_NilCaller(t *testing.T) {
	f := newGateFixture()

	d := f.gate.Check(context.Background(), nil, GateRequest{Path: "/api/v1/bookings"})
	assert.True(t, apperror.IsUnauthorized(d.Err))
}

func TestTenantRefLookupFunc(t *testing.T) {
	owner := id.New()
	var lookup TenantRefLookup = TenantRefLookupFunc(func(context.Context, id.ID) (id.ID, error) {
		return owner, nil
	})

	got, err := lookup.TenantRef(context.Background(), id.New())
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}

func TestDecision_Trail(t *testing.T) {
	f := newGateFixture()

	d := f.gate.Check(context.Background(), f.caller(role.SuperAdmin, id.Nil()), GateRequest{
		Path:       "/api/v1/bookings/" + f.bookingB.String(),
		ResourceID: f.bookingB.String(),
	})
	assert.Equal(t, []GateState{StateStart, StateRoleChecked, StateSuperuserBypass, StateResolved}, d.Trail())

	d = f.gate.Check(context.Background(), nil, GateRequest{Path: "/api/v1/bookings"})
	assert.Equal(t, []GateState{StateStart}, d.Trail())
}
