package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayhub/internal/core/id"
	"stayhub/internal/core/security"
	"stayhub/pkg/logger"
)

// DeletedChannel is the NOTIFY channel carrying "<kind>:<id>" of deleted resources.
const DeletedChannel = "stayhub_resource_deleted"

// Evictor drops cached state of one resource.
type Evictor interface {
	Evict(ctx context.Context, resourceID id.ID) error
}

// Execer runs a statement; satisfied by pools and transactions.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PublishDeleted tells every instance that a resource is gone.
// Inside a transaction the notification is delivered on commit.
func PublishDeleted(ctx context.Context, q Execer, kind security.ResourceKind, resourceID id.ID) error {
	if _, err := q.Exec(ctx, "SELECT pg_notify($1, $2)", DeletedChannel, string(kind)+":"+resourceID.String()); err != nil {
		return fmt.Errorf("notify %s: %w", DeletedChannel, err)
	}
	return nil
}

// Invalidator evicts cached tenant references when any instance deletes a
// resource, using PostgreSQL LISTEN/NOTIFY.
type Invalidator struct {
	pool     *pgxpool.Pool
	mu       sync.RWMutex
	evictors map[security.ResourceKind]Evictor

	// Lifecycle
	lifecycleMu sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	started     bool
}

// NewInvalidator creates an invalidator; pool may be nil in tests that only
// exercise notification handling.
func NewInvalidator(pool *pgxpool.Pool) *Invalidator {
	return &Invalidator{
		pool:     pool,
		evictors: make(map[security.ResourceKind]Evictor),
		ctx:      context.Background(),
	}
}

// Register routes notifications for kind to ev.
func (inv *Invalidator) Register(kind security.ResourceKind, ev Evictor) {
	inv.mu.Lock()
	inv.evictors[kind] = ev
	inv.mu.Unlock()
}

// Start begins listening in the background. It is safe to call twice.
func (inv *Invalidator) Start(ctx context.Context) {
	inv.lifecycleMu.Lock()
	defer inv.lifecycleMu.Unlock()
	if inv.started {
		return
	}
	inv.ctx, inv.cancel = context.WithCancel(ctx)
	inv.started = true

	inv.wg.Add(1)
	go inv.listenLoop()
	logger.Info(inv.ctx, "cache invalidator started", "channel", DeletedChannel)
}

// Stop terminates the listener and waits for it to exit.
func (inv *Invalidator) Stop() {
	inv.lifecycleMu.Lock()
	if !inv.started {
		inv.lifecycleMu.Unlock()
		return
	}
	cancel := inv.cancel
	inv.started = false
	inv.cancel = nil
	inv.lifecycleMu.Unlock()

	cancel()
	inv.wg.Wait()
	logger.Info(context.Background(), "cache invalidator stopped")
}

// listenLoop holds one connection in LISTEN mode, reconnecting on failure.
func (inv *Invalidator) listenLoop() {
	defer inv.wg.Done()

	for inv.ctx.Err() == nil {
		conn, err := inv.pool.Acquire(inv.ctx)
		if err != nil {
			logger.Error(inv.ctx, "failed to acquire connection for LISTEN", "error", err)
			inv.sleep(time.Second)
			continue
		}

		if _, err := conn.Exec(inv.ctx, "LISTEN "+DeletedChannel); err != nil {
			logger.Error(inv.ctx, "failed to LISTEN", "error", err)
			conn.Release()
			inv.sleep(time.Second)
			continue
		}

		inv.waitForNotifications(conn)
		conn.Release()
	}
}

func (inv *Invalidator) waitForNotifications(conn *pgxpool.Conn) {
	for {
		ctx, cancel := context.WithTimeout(inv.ctx, 30*time.Second)
		notification, err := conn.Conn().WaitForNotification(ctx)
		cancel()

		if err != nil {
			if inv.ctx.Err() != nil {
				return
			}
			if ctx.Err() != nil {
				continue // idle timeout, keep listening
			}
			logger.Warn(inv.ctx, "LISTEN connection lost", "error", err)
			return
		}

		inv.handleNotification(notification.Payload)
	}
}

func (inv *Invalidator) sleep(d time.Duration) {
	select {
	case <-inv.ctx.Done():
	case <-time.After(d):
	}
}

// handleNotification evicts the resource named by payload ("<kind>:<id>").
func (inv *Invalidator) handleNotification(payload string) {
	kind, rawID, ok := strings.Cut(payload, ":")
	if !ok {
		logger.Warn(inv.ctx, "malformed invalidation payload", "payload", payload)
		return
	}
	resourceID, err := id.Parse(rawID)
	if err != nil {
		logger.Warn(inv.ctx, "malformed invalidation payload", "payload", payload)
		return
	}

	inv.mu.RLock()
	ev, ok := inv.evictors[security.ResourceKind(kind)]
	inv.mu.RUnlock()
	if !ok {
		return
	}

	if err := ev.Evict(inv.ctx, resourceID); err != nil {
		logger.Warn(inv.ctx, "cache eviction failed", "kind", kind, "id", resourceID, "error", err)
	}
}
