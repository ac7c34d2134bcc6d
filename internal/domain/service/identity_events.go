package service

import (
	"context"

	"bijou/internal/domain/entity"
)

// IdentitySubscriber is invoked with the new current identity on every
// identity transition. A nil identity means the session reverted to guest.
// Delivery is synchronous: the subscriber has run before the publishing
// call returns, which is what lets the cart and wishlist re-key their state
// before the caller observes the new session.
type IdentitySubscriber func(ctx context.Context, identity *entity.Identity)

// IdentityPublisher fans identity transitions out to the registered
// subscribers, in registration order, exactly once per transition.
type IdentityPublisher interface {
	// Subscribe registers fn under a stable name used for logging.
	// Subscription order determines delivery order.
	Subscribe(name string, fn IdentitySubscriber)

	// Publish delivers identity to every subscriber before returning.
	Publish(ctx context.Context, identity *entity.Identity)
}
