package main

import (
	"context"
	"fmt"

	"stayhub/internal/config"
	"stayhub/internal/core/entity"
	"stayhub/internal/core/security"
	"stayhub/internal/domain"
	"stayhub/internal/domain/audit"
	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/invoice"
	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/property"
	"stayhub/internal/infrastructure/cache"
	"stayhub/internal/infrastructure/numerator"
	"stayhub/internal/infrastructure/storage/postgres"
	"stayhub/internal/infrastructure/storage/postgres/resource_repo"
	"stayhub/pkg/logger"
)

// resources holds the tenant-owned resource services and the ownership
// lookups the tenant scope gate consults.
type resources struct {
	properties *property.Service
	bookings   *booking.Service
	payments   *payment.Service
	invoices   *invoice.Service

	lookups     map[security.ResourceKind]security.TenantRefLookup
	invalidator *cache.Invalidator
	remote      *cache.Remote
	local       *cache.Local
}

// buildResources wires repositories, the tenant reference cache and services.
func buildResources(
	ctx context.Context,
	cfg *config.Config,
	pool *postgres.Pool,
	txm *postgres.TxManager,
	rec audit.Recorder,
	log *logger.Logger,
) (*resources, error) {
	propertyRepo := resource_repo.NewPropertyRepo(txm)
	bookingRepo := resource_repo.NewBookingRepo(txm)
	paymentRepo := resource_repo.NewPaymentRepo(txm)
	invoiceRepo := resource_repo.NewInvoiceRepo(txm)

	res := &resources{
		lookups: map[security.ResourceKind]security.TenantRefLookup{
			security.ResourceProperty: propertyRepo,
			security.ResourceBooking:  bookingRepo,
			security.ResourcePayment:  paymentRepo,
			security.ResourceInvoice:  invoiceRepo,
		},
	}

	refs := map[security.ResourceKind]*cache.TenantRefs{}
	if cfg.Cache.Enabled {
		store, err := res.openStore(ctx, cfg.Cache, log)
		if err != nil {
			return nil, err
		}

		res.invalidator = cache.NewInvalidator(pool.Unwrap())
		for kind, next := range res.lookups {
			r := cache.NewTenantRefs(kind, next, store, cfg.Cache.TTL)
			refs[kind] = r
			res.lookups[kind] = r
			res.invalidator.Register(kind, r)
		}
	}

	numbers := numerator.New(numerator.QuerierProviderFunc(func(ctx context.Context) numerator.Querier {
		return txm.GetQuerier(ctx)
	}))

	res.properties = property.NewService(propertyRepo, txm, rec)
	res.bookings = booking.NewService(bookingRepo, txm, rec, res.lookups[security.ResourceProperty])
	res.payments = payment.NewService(paymentRepo, txm, rec, res.lookups[security.ResourceBooking])
	res.invoices = invoice.NewService(invoiceRepo, txm, rec, res.lookups[security.ResourceBooking], numbers)

	onDeleted(res.properties.Hooks(), security.ResourceProperty, refs[security.ResourceProperty], txm)
	onDeleted(res.bookings.Hooks(), security.ResourceBooking, refs[security.ResourceBooking], txm)
	onDeleted(res.payments.Hooks(), security.ResourcePayment, refs[security.ResourcePayment], txm)
	onDeleted(res.invoices.Hooks(), security.ResourceInvoice, refs[security.ResourceInvoice], txm)

	return res, nil
}

// openStore builds the L1 cache, stacked over Redis when an address is configured.
func (r *resources) openStore(ctx context.Context, cfg config.Cache, log *logger.Logger) (cache.Store, error) {
	local, err := cache.NewLocal(cfg.L1MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("create local cache: %w", err)
	}
	r.local = local

	if cfg.RedisAddr == "" {
		log.Infow("tenant ref cache enabled", "levels", "l1")
		return local, nil
	}

	remote, err := cache.DialRemote(ctx, cfg)
	if err != nil {
		local.Close()
		return nil, err
	}
	r.remote = remote

	log.Infow("tenant ref cache enabled", "levels", "l1+l2", "redis", cfg.RedisAddr)
	return cache.NewTiered(local, remote, cfg.TTL), nil
}

// onDeleted evicts the local cache entry and tells other instances to do the same.
func onDeleted[T entity.TenantOwned](hooks *domain.HookRegistry[T], kind security.ResourceKind, refs *cache.TenantRefs, txm *postgres.TxManager) {
	hooks.On(domain.AfterDelete, func(ctx context.Context, e T) error {
		if refs == nil {
			return nil
		}
		if err := refs.Evict(ctx, e.GetID()); err != nil {
			return fmt.Errorf("evict %s: %w", kind, err)
		}
		return cache.PublishDeleted(ctx, txm.GetQuerier(ctx), kind, e.GetID())
	})
}

func (r *resources) close() {
	if r.invalidator != nil {
		r.invalidator.Stop()
	}
	if r.remote != nil {
		_ = r.remote.Close()
	}
	if r.local != nil {
		r.local.Close()
	}
}
