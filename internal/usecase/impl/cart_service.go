package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"

	"bijou/internal/appctx"
	"bijou/internal/domain/entity"
	domainerrors "bijou/internal/domain/errors"
	"bijou/internal/domain/repository"
	"bijou/internal/domain/service"
	"bijou/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// cartService implements the CartUsecase interface. The cart is
// client-authoritative: the in-memory lines are the source of truth for
// totals and quantities, persisted synchronously with every mutation under
// keys namespaced by the owning identity.
type cartService struct {
	store  repository.SessionStore
	mirror service.CartMirrorAPI
	logger *slog.Logger

	mu       sync.Mutex
	resolved bool // false until the first identity transition arrives
	identity *entity.Identity
	cart     entity.Cart
	discount int
}

// NewCartService is the constructor for cartService.
func NewCartService(
	store repository.SessionStore,
	mirror service.CartMirrorAPI,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		store:  store,
		mirror: mirror,
		logger: logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return appctx.GetLoggerOrDefault(ctx, srv.logger)
}

// OnIdentityChange swaps the whole cart to the new identity's persisted
// snapshot. One identity's lines are never visible under another.
func (srv *cartService) OnIdentityChange(ctx context.Context, identity *entity.Identity) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.resolved = true
	srv.identity = identity
	srv.cart = entity.Cart{}
	srv.discount = 0

	if identity == nil {
		return
	}

	// Restore the snapshot for this identity, if any. A corrupt snapshot is
	// discarded rather than poisoning the session.
	if raw, err := srv.store.Get(ctx, repository.CartKey(identity.ID)); err == nil {
		var lines []entity.CartLine
		if err := json.Unmarshal([]byte(raw), &lines); err != nil {
			srv.log(ctx).Warn("Discarding unreadable cart snapshot",
				slog.String("user_id", identity.ID), slog.Any("error", err))
		} else {
			srv.cart.Lines = lines
		}
	}

	if raw, err := srv.store.Get(ctx, repository.DiscountKey(identity.ID)); err == nil {
		if pct, err := strconv.Atoi(raw); err == nil && pct >= 0 && pct <= 100 {
			srv.discount = pct
		}
	}

	srv.log(ctx).Debug("Cart re-keyed",
		slog.String("user_id", identity.ID),
		slog.Int("lines", len(srv.cart.Lines)),
		slog.Int("discount", srv.discount))
}

// AddLine adds quantity units of the product, snapshotting its effective
// price on first add. The server mirror is told afterwards; a mirror
// failure is returned to the caller but the local line stays, unlike the
// wishlist there is no revert here.
func (srv *cartService) AddLine(ctx context.Context, product entity.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	srv.mu.Lock()
	if err := srv.sessionGuardLocked(); err != nil {
		srv.mu.Unlock()

		return err
	}

	idx := srv.cart.IndexOf(product.ID)
	if idx >= 0 {
		srv.cart.Lines[idx].Quantity += quantity
	} else {
		line := entity.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.EffectivePrice(),
			Quantity:  quantity,
		}
		if len(product.Images) > 0 {
			line.ImageURL = product.Images[0]
		}
		srv.cart.Lines = append(srv.cart.Lines, line)
		idx = len(srv.cart.Lines) - 1
	}
	line := srv.cart.Lines[idx]
	err := srv.persistLocked(ctx)
	srv.mu.Unlock()

	if err != nil {
		return err
	}

	if err := srv.mirror.AddItem(ctx, line); err != nil {
		srv.log(ctx).Warn("Cart mirror add failed, keeping local line",
			slog.String("product_id", product.ID), slog.Any("error", err))

		return domainerrors.NewRemoteCallError(err, "cart mirror add for product "+product.ID)
	}

	return nil
}

// UpdateQuantity sets the line's quantity to max(1, quantity). A request
// for zero or less clamps to one, it never removes the line.
func (srv *cartService) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.sessionGuardLocked(); err != nil {
		return err
	}

	idx := srv.cart.IndexOf(productID)
	if idx < 0 {
		return nil
	}

	if quantity < 1 {
		quantity = 1
	}
	srv.cart.Lines[idx].Quantity = quantity

	return srv.persistLocked(ctx)
}

// RemoveLine deletes the line for productID if present.
func (srv *cartService) RemoveLine(ctx context.Context, productID string) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.sessionGuardLocked(); err != nil {
		return err
	}

	idx := srv.cart.IndexOf(productID)
	if idx < 0 {
		return nil
	}
	srv.cart.Lines = append(srv.cart.Lines[:idx], srv.cart.Lines[idx+1:]...)

	return srv.persistLocked(ctx)
}

// Clear empties the cart, resets the discount and removes the persisted
// snapshot, leaving no trace until the next mutation.
func (srv *cartService) Clear(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if !srv.resolved {
		return domainerrors.ErrSessionResolving
	}

	srv.cart = entity.Cart{}
	srv.discount = 0

	if srv.identity == nil {
		return nil
	}

	if err := srv.store.Delete(ctx, repository.CartKey(srv.identity.ID)); err != nil {
		return errors.Wrap(err, "failed to delete cart snapshot")
	}
	if err := srv.store.Delete(ctx, repository.DiscountKey(srv.identity.ID)); err != nil {
		return errors.Wrap(err, "failed to delete discount snapshot")
	}

	return nil
}

// SetDiscount applies a coupon percentage to the subtotal.
func (srv *cartService) SetDiscount(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return domainerrors.ErrValidation.WithDetails("discount percent must be between 0 and 100")
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.sessionGuardLocked(); err != nil {
		return err
	}

	srv.discount = percent

	return srv.persistLocked(ctx)
}

// Discount returns the currently applied percentage.
func (srv *cartService) Discount() int {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.discount
}

// Subtotal recomputes sum(price x quantity) on every call; it is never
// cached independently of the lines.
func (srv *cartService) Subtotal() decimal.Decimal {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.cart.Subtotal()
}

// Lines returns a copy of the cart lines in insertion order.
func (srv *cartService) Lines() []entity.CartLine {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	lines := make([]entity.CartLine, len(srv.cart.Lines))
	copy(lines, srv.cart.Lines)

	return lines
}

// sessionGuardLocked rejects mutations while the session outcome is still
// unknown, and afterwards rejects guests. Callers hold the mutex.
func (srv *cartService) sessionGuardLocked() error {
	return sessionGuard(srv.resolved, srv.identity)
}

// persistLocked re-serializes the full cart+discount snapshot under the
// current identity's keys. Callers hold the mutex and have already checked
// that an identity is present.
func (srv *cartService) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(srv.cart.Lines)
	if err != nil {
		return errors.Wrap(err, "failed to serialize cart snapshot")
	}

	if err := srv.store.Set(ctx, repository.CartKey(srv.identity.ID), string(raw)); err != nil {
		return errors.Wrap(err, "failed to persist cart snapshot")
	}
	if err := srv.store.Set(ctx, repository.DiscountKey(srv.identity.ID), strconv.Itoa(srv.discount)); err != nil {
		return errors.Wrap(err, "failed to persist discount snapshot")
	}

	return nil
}
