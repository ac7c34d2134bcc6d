package impl

import (
	"context"
	"log/slog"
	"sync"

	"bijou/internal/appctx"
	"bijou/internal/domain/entity"
	domainerrors "bijou/internal/domain/errors"
	"bijou/internal/domain/service"
	"bijou/internal/usecase"

	"github.com/pkg/errors"
)

// wishlistService implements the WishlistUsecase interface. Unlike the
// cart, the wishlist's authoritative copy lives on the remote API: the
// local set is only a mirror, refetched on identity change and flipped
// after, never before, a confirmed toggle.
type wishlistService struct {
	api    service.WishlistAPI
	logger *slog.Logger

	mu       sync.RWMutex
	resolved bool // false until the first identity transition arrives
	identity *entity.Identity
	items    entity.Wishlist
}

// NewWishlistService is the constructor for wishlistService.
func NewWishlistService(api service.WishlistAPI, logger *slog.Logger) usecase.WishlistUsecase {
	return &wishlistService{
		api:    api,
		logger: logger,
		items:  entity.Wishlist{},
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *wishlistService) log(ctx context.Context) *slog.Logger {
	return appctx.GetLoggerOrDefault(ctx, srv.logger)
}

// OnIdentityChange clears the mirror and, for a signed-in identity,
// refetches it from the API. Guests have no wishlist at all: without the
// server copy it has no offline value.
func (srv *wishlistService) OnIdentityChange(ctx context.Context, identity *entity.Identity) {
	srv.mu.Lock()
	srv.resolved = true
	srv.identity = identity
	srv.items = entity.Wishlist{}
	srv.mu.Unlock()

	if identity == nil {
		return
	}

	if err := srv.Refresh(ctx); err != nil {
		// An unreachable wishlist renders as empty; it self-heals on the
		// next refresh.
		srv.log(ctx).Warn("Wishlist fetch failed on identity change",
			slog.String("user_id", identity.ID), slog.Any("error", err))
	}
}

// Refresh replaces the mirror with the server's current set.
func (srv *wishlistService) Refresh(ctx context.Context) error {
	srv.mu.RLock()
	resolved := srv.resolved
	identity := srv.identity
	srv.mu.RUnlock()

	if err := sessionGuard(resolved, identity); err != nil {
		return err
	}

	products, err := srv.api.Fetch(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch wishlist")
	}

	fresh := entity.Wishlist{}
	for _, p := range products {
		fresh.Put(p)
	}

	srv.mu.Lock()
	srv.items = fresh
	srv.mu.Unlock()

	srv.log(ctx).Debug("Wishlist refreshed",
		slog.String("user_id", identity.ID), slog.Int("count", len(fresh)))

	return nil
}

// Toggle flips membership server-side first and mirrors the flip locally
// only on success, so a failed call leaves the mirror exactly as the user
// saw it before.
func (srv *wishlistService) Toggle(ctx context.Context, product entity.Product) (bool, error) {
	srv.mu.RLock()
	resolved := srv.resolved
	identity := srv.identity
	wasMember := srv.items.Has(product.ID)
	srv.mu.RUnlock()

	if err := sessionGuard(resolved, identity); err != nil {
		return false, err
	}

	if err := srv.api.Toggle(ctx, product.ID); err != nil {
		srv.log(ctx).Warn("Wishlist toggle failed, membership unchanged",
			slog.String("product_id", product.ID), slog.Any("error", err))

		return wasMember, domainerrors.NewRemoteCallError(err, "wishlist toggle for product "+product.ID)
	}

	srv.mu.Lock()
	if wasMember {
		srv.items.Remove(product.ID)
	} else {
		srv.items.Put(product)
	}
	member := srv.items.Has(product.ID)
	srv.mu.Unlock()

	return member, nil
}

// IsMember is an O(1) membership test against the in-memory mirror.
func (srv *wishlistService) IsMember(productID string) bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.items.Has(productID)
}

// Items returns the mirrored products in unspecified order.
func (srv *wishlistService) Items() []entity.Product {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.items.Items()
}
