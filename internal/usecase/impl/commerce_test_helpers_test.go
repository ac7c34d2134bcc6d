package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"bijou/config"
	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"
	"bijou/internal/infra/events"
	"bijou/internal/infra/session"
	"bijou/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCheckoutConfig(shippingFee, freeOver float64) *config.Config {
	return &config.Config{
		Checkout: &config.CheckoutConfig{
			ShippingFee:      shippingFee,
			FreeShippingOver: freeOver,
		},
	}
}

func testCustomer() *entity.Identity {
	return &entity.Identity{ID: "user-1", Name: "Alice", Email: "alice@example.com", Role: entity.RoleCustomer}
}

func testAdmin() *entity.Identity {
	return &entity.Identity{ID: "admin-1", Name: "Root", Email: "root@example.com", Role: entity.RoleAdmin}
}

func testRing() entity.Product {
	return entity.Product{
		ID:     "ring-1",
		Name:   "Solitaire Ring",
		Price:  decimal.NewFromInt(1200),
		Stock:  3,
		Images: []string{"ring-1.jpg"},
	}
}

func testNecklace() entity.Product {
	return entity.Product{
		ID:        "necklace-1",
		Name:      "Pearl Necklace",
		Price:     decimal.NewFromInt(400),
		OnSale:    true,
		SalePrice: decimal.NewFromInt(300),
		Stock:     5,
	}
}

func authResultFor(identity *entity.Identity, token string) *service.AuthResult {
	return &service.AuthResult{Token: token, Identity: *identity}
}

func registerInput(name, email, password string) usecase.RegisterInput {
	return usecase.RegisterInput{Name: name, Email: email, Password: password}
}

// signedJWT builds a real HS256 token carrying the given expiry, for the
// startup expiry precheck which parses without verifying.
func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

type fakeAuthAPI struct {
	result    *service.AuthResult
	err       error
	lastCreds service.Credentials
	lastReg   service.Registration
}

func (f *fakeAuthAPI) Login(_ context.Context, creds service.Credentials) (*service.AuthResult, error) {
	f.lastCreds = creds

	return f.result, f.err
}

func (f *fakeAuthAPI) Register(_ context.Context, reg service.Registration) (*service.AuthResult, error) {
	f.lastReg = reg

	return f.result, f.err
}

type fakeProfileAPI struct {
	identity   *entity.Identity
	fetchErr   error
	updateResp []byte
	updateErr  error
	fetchCalls int
	lastUpdate *service.ProfileUpdate
}

func (f *fakeProfileAPI) FetchProfile(_ context.Context) (*entity.Identity, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	return f.identity, nil
}

func (f *fakeProfileAPI) UpdateProfile(_ context.Context, update service.ProfileUpdate) ([]byte, error) {
	f.lastUpdate = &update

	return f.updateResp, f.updateErr
}

type fakeCartMirror struct {
	err   error
	added []entity.CartLine
}

func (f *fakeCartMirror) AddItem(_ context.Context, line entity.CartLine) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, line)

	return nil
}

type fakeWishlistAPI struct {
	products  []entity.Product
	fetchErr  error
	toggleErr error
	toggled   []string
}

func (f *fakeWishlistAPI) Fetch(_ context.Context) ([]entity.Product, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	return f.products, nil
}

func (f *fakeWishlistAPI) Toggle(_ context.Context, productID string) error {
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.toggled = append(f.toggled, productID)

	return nil
}

type fakeOrderAPI struct {
	created   *entity.Order
	createErr error
	orders    []entity.Order
	listErr   error
	deleteErr error
	drafts    []service.OrderDraft
	statuses  []entity.OrderStatus
	deleted   []string
}

func (f *fakeOrderAPI) Create(_ context.Context, draft service.OrderDraft) (*entity.Order, error) {
	f.drafts = append(f.drafts, draft)
	if f.createErr != nil {
		return nil, f.createErr
	}

	return f.created, nil
}

func (f *fakeOrderAPI) ListMine(_ context.Context) ([]entity.Order, error) {
	return f.orders, f.listErr
}

func (f *fakeOrderAPI) ListAll(_ context.Context) ([]entity.Order, error) {
	return f.orders, f.listErr
}

func (f *fakeOrderAPI) UpdateStatus(_ context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	f.statuses = append(f.statuses, status)

	return &entity.Order{ID: orderID, Status: status}, nil
}

func (f *fakeOrderAPI) Delete(_ context.Context, orderID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, orderID)

	return nil
}

type fakeCouponAPI struct {
	latest     *entity.Coupon
	latestErr  error
	percent    int
	applyErr   error
	created    *entity.Coupon
	createErr  error
	coupons    []entity.Coupon
	listErr    error
	lastCode   string
	lastDrafts []service.CouponDraft
}

func (f *fakeCouponAPI) LatestActive(_ context.Context) (*entity.Coupon, error) {
	return f.latest, f.latestErr
}

func (f *fakeCouponAPI) Apply(_ context.Context, code string) (int, error) {
	f.lastCode = code
	if f.applyErr != nil {
		return 0, f.applyErr
	}

	return f.percent, nil
}

func (f *fakeCouponAPI) Create(_ context.Context, draft service.CouponDraft) (*entity.Coupon, error) {
	f.lastDrafts = append(f.lastDrafts, draft)
	if f.createErr != nil {
		return nil, f.createErr
	}

	return f.created, nil
}

func (f *fakeCouponAPI) List(_ context.Context) ([]entity.Coupon, error) {
	return f.coupons, f.listErr
}

type fakeReviewAPI struct {
	reviews    []entity.Review
	review     *entity.Review
	err        error
	deleted    []string
	approved   []string
	lastDrafts []service.ReviewDraft
}

func (f *fakeReviewAPI) ApprovedForProduct(_ context.Context, _ string) ([]entity.Review, error) {
	return f.reviews, f.err
}

func (f *fakeReviewAPI) Create(_ context.Context, draft service.ReviewDraft) (*entity.Review, error) {
	f.lastDrafts = append(f.lastDrafts, draft)
	if f.err != nil {
		return nil, f.err
	}

	return f.review, nil
}

func (f *fakeReviewAPI) Delete(_ context.Context, reviewID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, reviewID)

	return nil
}

func (f *fakeReviewAPI) ListAll(_ context.Context) ([]entity.Review, error) {
	return f.reviews, f.err
}

func (f *fakeReviewAPI) Approve(_ context.Context, reviewID string) (*entity.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.approved = append(f.approved, reviewID)

	return &entity.Review{ID: reviewID, Approved: true}, nil
}

// commerceFixture wires the real session chain: auth session over a memory
// store, the identity bus, and the cart and wishlist subscribed in delivery
// order. Tests drive it through SetIdentity exactly as login does.
type commerceFixture struct {
	store    *session.MemoryStore
	authAPI  *fakeAuthAPI
	profile  *fakeProfileAPI
	mirror   *fakeCartMirror
	wishAPI  *fakeWishlistAPI
	auth     usecase.AuthSessionUsecase
	cart     usecase.CartUsecase
	wishlist usecase.WishlistUsecase
	resets   int
}

func newCommerceFixture(t *testing.T) *commerceFixture {
	t.Helper()

	logger := newDiscardLogger()
	f := &commerceFixture{
		store:   session.NewMemoryStore(),
		authAPI: &fakeAuthAPI{},
		profile: &fakeProfileAPI{},
		mirror:  &fakeCartMirror{},
		wishAPI: &fakeWishlistAPI{},
	}

	bus := events.NewBus(logger)
	f.auth = NewAuthSessionService(f.store, f.authAPI, f.profile, bus, func() { f.resets++ }, logger)
	f.cart = NewCartService(f.store, f.mirror, logger)
	f.wishlist = NewWishlistService(f.wishAPI, logger)
	bus.Subscribe("cart", f.cart.OnIdentityChange)
	bus.Subscribe("wishlist", f.wishlist.OnIdentityChange)

	return f
}

// signIn resolves the session as a guest first, then assumes identity, the
// same sequence a startup-then-login run produces.
func (f *commerceFixture) signIn(t *testing.T, identity *entity.Identity) {
	t.Helper()

	ctx := context.Background()
	if f.auth.Loading() {
		require.NoError(t, f.auth.Initialize(ctx))
	}
	require.NoError(t, f.auth.SetIdentity(ctx, identity))
}
