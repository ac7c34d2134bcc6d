// Package events provides the in-process identity event bus. The remote
// pub/sub systems this pattern usually fronts would be wrong here: cart and
// wishlist must observe an identity transition before the triggering call
// returns, so delivery is synchronous and in-process.
package events

import (
	"context"
	"log/slog"
	"sync"

	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"

	"go.uber.org/fx"
)

type subscription struct {
	name string
	fn   service.IdentitySubscriber
}

// Bus implements IdentityPublisher with ordered, synchronous fan-out.
type Bus struct {
	logger *slog.Logger

	mu   sync.Mutex
	subs []subscription
}

// NewBus is the constructor for Bus.
func NewBus(logger *slog.Logger) service.IdentityPublisher {
	return &Bus{logger: logger}
}

// Subscribe registers fn under name. Registration order is delivery order;
// the cart is wired before the wishlist so its snapshot is re-keyed first.
func (b *Bus) Subscribe(name string, fn service.IdentitySubscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs = append(b.subs, subscription{name: name, fn: fn})
	b.logger.Debug("Identity subscriber registered", slog.String("subscriber", name))
}

// Publish delivers the new identity to every subscriber, in order, before
// returning. Each subscriber sees each transition exactly once.
func (b *Bus) Publish(ctx context.Context, identity *entity.Identity) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	userID := "guest"
	if identity != nil {
		userID = identity.ID
	}

	for _, sub := range subs {
		b.logger.Debug("Delivering identity transition",
			slog.String("subscriber", sub.name), slog.String("user_id", userID))
		sub.fn(ctx, identity)
	}
}

// Module provides the identity bus FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewBus),
)
