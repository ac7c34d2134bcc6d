// Package bijou wires the session-scoped commerce state managers into an
// fx module an embedding application can mount. The managers, their
// session store and the remote API client are assembled here in the order
// the session discipline requires: the cart re-keys before the wishlist on
// every identity transition, and startup resolution runs as a lifecycle
// hook so dependents see loading, not guest, until it completes.
package bijou

import (
	"context"

	"bijou/config"
	"bijou/internal/domain/service"
	"bijou/internal/infra/api"
	"bijou/internal/infra/events"
	logs "bijou/internal/infra/log"
	"bijou/internal/infra/session"
	"bijou/internal/usecase"
	"bijou/internal/usecase/impl"

	"go.uber.org/fx"
)

// Module assembles the whole SDK.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	injectInfra(),
	injectAPI(),
	injectUsecase(),
	fx.Invoke(
		registerSubscribers,
		resolveSessionOnStart,
	),
)

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			noopResetHook,
		),
		session.Module,
		events.Module,
	)
}

func injectAPI() fx.Option {
	return fx.Provide(
		api.NewStoreTokenSource,
		func(s *api.StoreTokenSource) api.TokenSource { return s },
		api.NewClient,
		(*api.Client).Auth,
		(*api.Client).Profile,
		(*api.Client).CartMirror,
		(*api.Client).Wishlist,
		(*api.Client).Catalog,
		(*api.Client).Orders,
		(*api.Client).Coupons,
		(*api.Client).Reviews,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewAuthSessionService,
		impl.NewCartService,
		impl.NewWishlistService,
		impl.NewCatalogService,
		impl.NewOrderService,
		impl.NewCouponService,
		impl.NewReviewService,
		impl.NewPreferenceService,
	)
}

// noopResetHook is the default session-reset hook. Embedding applications
// decorate this to navigate back to their public entry point on logout.
func noopResetHook() impl.SessionResetHook {
	return func() {}
}

// registerSubscribers wires the identity bus in delivery order: the cart
// swaps to the new identity's snapshot before the wishlist refetches.
func registerSubscribers(
	bus service.IdentityPublisher,
	cart usecase.CartUsecase,
	wishlist usecase.WishlistUsecase,
) {
	bus.Subscribe("cart", cart.OnIdentityChange)
	bus.Subscribe("wishlist", wishlist.OnIdentityChange)
}

// resolveSessionOnStart runs startup identity resolution. Resolution never
// fails the app: a dead token just demotes the session to guest.
func resolveSessionOnStart(lc fx.Lifecycle, auth usecase.AuthSessionUsecase) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return auth.Initialize(ctx)
		},
	})
}
