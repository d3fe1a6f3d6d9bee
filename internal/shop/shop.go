// Package shop is the storefront controller: one struct owning the catalog,
// cart, orders, and session, with every mutation going through an operation
// that keeps the in-memory model consistent and then mirrors the affected
// documents to durable storage best-effort.
package shop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"DragonMart/internal/blob"
	"DragonMart/internal/cart"
	"DragonMart/internal/catalog"
	"DragonMart/internal/order"
	"DragonMart/internal/session"
)

var (
	// ErrNeedsAuth means the operation requires a signed-in session. The
	// caller is expected to prompt login and retry; no state changed.
	ErrNeedsAuth = errors.New("sign in required")

	// ErrForbidden means the session's role does not allow the operation.
	ErrForbidden = errors.New("admin role required")
)

type Deps struct {
	Store blob.Store
	Log   *zap.Logger
}

// Shop serializes all engine operations behind one mutex: each runs to
// completion before the next, so no caller ever observes a half-applied
// transition even though the HTTP facade is concurrent.
type Shop struct {
	mu sync.Mutex

	catalog *catalog.Repo
	cart    *cart.Cart
	orders  []order.Order
	gate    *session.Gate

	store blob.Store
	log   *zap.Logger
}

// New restores all four state documents, substituting defaults for anything
// absent or corrupt.
func New(ctx context.Context, deps Deps) *Shop {
	return &Shop{
		catalog: catalog.SeedOrRestore(ctx, deps.Store, deps.Log),
		cart:    cart.FromStored(blob.Load(ctx, deps.Store, deps.Log, blob.KeyCart, map[string]int{})),
		orders:  blob.Load(ctx, deps.Store, deps.Log, blob.KeyOrders, []order.Order{}),
		gate:    session.Restore(blob.Load(ctx, deps.Store, deps.Log, blob.KeySession, (*session.Session)(nil))),
		store:   deps.Store,
		log:     deps.Log,
	}
}

func (s *Shop) Ping(ctx context.Context) error { return s.store.Ping(ctx) }

// Results runs the derivation pipeline over the current catalog.
func (s *Shop) Results(c catalog.Criteria) []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.Apply(s.catalog.List())
}

func (s *Shop) Catalog() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List()
}

func (s *Shop) Orders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]order.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Shop) CurrentSession() (session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.Current()
}

// CartView is the priced cart snapshot the rendering layer consumes.
type CartView struct {
	Items    []cart.LineItem `json:"items"`
	Subtotal float64         `json:"subtotal"`
	Count    int             `json:"count"`
}

func (s *Shop) CartView() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked()
}

func (s *Shop) cartViewLocked() CartView {
	products := s.catalog.List()
	return CartView{
		Items:    s.cart.LineItems(products),
		Subtotal: s.cart.Subtotal(products),
		Count:    s.cart.Count(),
	}
}

func (s *Shop) AddToCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(productID)
	s.saveCartLocked(ctx)
}

func (s *Shop) IncrementCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Increment(productID)
	s.saveCartLocked(ctx)
}

func (s *Shop) DecrementCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Decrement(productID)
	s.saveCartLocked(ctx)
}

func (s *Shop) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID)
	s.saveCartLocked(ctx)
}

// Checkout converts the current cart into an immutable order, prepends it
// to the order history, and clears the cart. With no active session it
// fails with ErrNeedsAuth and changes nothing; repeated failed calls keep
// returning the same result. The in-memory transition happens entirely
// under the lock, so callers never see an order without a cleared cart.
func (s *Shop) Checkout(ctx context.Context) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.gate.Current()
	if !ok {
		return order.Order{}, ErrNeedsAuth
	}

	products := s.catalog.List()
	lines := s.cart.LineItems(products)

	o := order.Order{
		ID:        "o_" + uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Status:    order.StatusProcessing,
		Total:     s.cart.Subtotal(products),
		Items:     make([]order.Line, 0, len(lines)),
		UserEmail: sess.Email,
	}
	for _, li := range lines {
		o.Items = append(o.Items, order.Line{
			ProductID: li.Product.ID,
			Title:     li.Product.Title,
			Qty:       li.Qty,
			Price:     li.Product.Price,
		})
	}

	s.orders = order.Prepend(s.orders, o)
	s.cart.Clear()

	blob.Save(ctx, s.store, s.log, blob.KeyOrders, s.orders)
	s.saveCartLocked(ctx)

	if s.log != nil {
		s.log.Info("checkout complete",
			zap.String("order_id", o.ID),
			zap.Int("lines", len(o.Items)),
			zap.Float64("total", o.Total),
		)
	}
	return o, nil
}

// CreateProduct is admin-gated inside the engine rather than trusting the
// caller to have checked the role.
func (s *Shop) CreateProduct(ctx context.Context, in catalog.CreateInput) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminLocked(); err != nil {
		return catalog.Product{}, err
	}
	return s.catalog.Create(ctx, in)
}

// DeleteProduct removes a product and sweeps its cart entry in the same
// mutation, so storage never keeps a quantity for a product that no longer
// exists. Unknown ids are a no-op.
func (s *Shop) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminLocked(); err != nil {
		return err
	}

	s.catalog.Delete(ctx, id)
	s.cart.Remove(id)
	s.saveCartLocked(ctx)
	return nil
}

// Login replaces any current session; the supplied identity is taken as
// given, including its role.
func (s *Shop) Login(ctx context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gate.Login(sess); err != nil {
		return err
	}
	blob.Save(ctx, s.store, s.log, blob.KeySession, &sess)
	return nil
}

func (s *Shop) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gate.Logout()
	blob.Save(ctx, s.store, s.log, blob.KeySession, (*session.Session)(nil))
}

func (s *Shop) requireAdminLocked() error {
	sess, ok := s.gate.Current()
	if !ok {
		return ErrNeedsAuth
	}
	if sess.Role != session.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *Shop) saveCartLocked(ctx context.Context) {
	blob.Save(ctx, s.store, s.log, blob.KeyCart, s.cart.Quantities())
}
