package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritemedical/storefront-service/internal/coupon"
	"github.com/ritemedical/storefront-service/internal/models"
)

const testDeliveryFee = 2.99

var (
	testUser = &models.User{ID: "user-1", Name: "Jordan Lee", Email: "jordan@example.com", Phone: "+1 555 0100"}
	testCard = &models.PaymentMethod{ID: "mastercard", Name: "Mastercard"}

	paracetamol = &models.Product{ID: "P001", Name: "Paracetamol 500mg", Price: 9.99}
	sanitizer   = &models.Product{ID: "P005", Name: "Hand Sanitizer 500ml", Price: 4.99}
	monitor     = &models.Product{ID: "P012", Name: "Blood Pressure Monitor", Price: 89.99}
)

type mockStore struct {
	mu       sync.Mutex
	orders   map[string]*models.Order
	err      error
	onCreate func()
}

func newMockStore() *mockStore {
	return &mockStore{orders: make(map[string]*models.Order)}
}

func (m *mockStore) Create(_ context.Context, order *models.Order) error {
	if m.onCreate != nil {
		m.onCreate()
	}
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *order
	clone.Items = append([]models.OrderItem(nil), order.Items...)
	m.orders[order.OrderID] = &clone
	return nil
}

func (m *mockStore) Get(_ context.Context, orderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[orderID]; ok {
		return o, nil
	}
	return nil, errors.New("order not found")
}

func (m *mockStore) ListByUser(_ context.Context, _ string) ([]models.Order, error) { return nil, nil }
func (m *mockStore) ListAll(_ context.Context) ([]models.Order, error)              { return nil, nil }

func (m *mockStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

// mockGateway records webhook calls; gate (when set) blocks deliveries so
// tests can observe state while notifications are still pending.
type mockGateway struct {
	err   error
	gate  chan struct{}
	calls chan string
}

func newMockGateway() *mockGateway {
	return &mockGateway{calls: make(chan string, 3)}
}

func (m *mockGateway) deliver(name string) error {
	if m.gate != nil {
		<-m.gate
	}
	m.calls <- name
	return m.err
}

func (m *mockGateway) NotifyCustomer(*models.Order) error         { return m.deliver("customer") }
func (m *mockGateway) TriggerProcessing(*models.Order) error      { return m.deliver("processing") }
func (m *mockGateway) TriggerInventoryUpdate(*models.Order) error { return m.deliver("inventory") }

func (m *mockGateway) waitForCalls(t *testing.T, n int) []string {
	t.Helper()
	var got []string
	for i := 0; i < n; i++ {
		select {
		case name := <-m.calls:
			got = append(got, name)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for webhook call %d of %d", i+1, n)
		}
	}
	return got
}

func setup() (*Checkout, *mockStore, *mockGateway) {
	store := newMockStore()
	gateway := newMockGateway()
	ck := New(coupon.NewEvaluator(coupon.SeedCoupons()), store, gateway, testDeliveryFee)
	return ck, store, gateway
}

func TestSubmitGuards(t *testing.T) {
	t.Run("empty cart fails without submitting", func(t *testing.T) {
		ck, store, _ := setup()

		_, err := ck.Submit(context.Background(), testUser, testCard, "12 Main St")

		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Equal(t, PhaseFailed, ck.State().Phase)
		assert.Zero(t, store.count(), "store must never be reached")
	})

	t.Run("unauthenticated fails and leaves cart untouched", func(t *testing.T) {
		ck, store, _ := setup()
		ck.Cart().Add(paracetamol)

		_, err := ck.Submit(context.Background(), nil, testCard, "12 Main St")

		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Equal(t, PhaseFailed, ck.State().Phase)
		assert.Equal(t, 1, ck.Cart().ItemCount())
		assert.Zero(t, store.count())
	})
}

func TestSubmitSuccess(t *testing.T) {
	ck, store, gateway := setup()
	gateway.gate = make(chan struct{})

	ck.Cart().Add(paracetamol)
	ck.Cart().Add(paracetamol)
	ck.Cart().Add(sanitizer)

	order, err := ck.Submit(context.Background(), testUser, testCard, "12 Main St")
	require.NoError(t, err)

	state := ck.State()
	assert.Equal(t, PhaseSucceeded, state.Phase)
	assert.Equal(t, order.OrderID, state.OrderID)
	assert.True(t, strings.HasPrefix(order.OrderID, "ORDER_"))

	// Cart is empty immediately, with all three notifications still blocked
	assert.True(t, ck.Cart().Empty())

	persisted, err := store.Get(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, persisted.Status)
	assert.Equal(t, "user-1", persisted.UserID)
	assert.Equal(t, "Jordan Lee", persisted.CustomerName)
	assert.Equal(t, "jordan@example.com", persisted.CustomerEmail)
	assert.Equal(t, "Mastercard", persisted.PaymentMethod)
	assert.Equal(t, "12 Main St", persisted.DeliveryAddress)
	require.Len(t, persisted.Items, 2)
	// (9.99 * 2) + 4.99 + delivery fee
	assert.InDelta(t, 24.97+testDeliveryFee, persisted.TotalAmount, 1e-9)

	close(gateway.gate)
	calls := gateway.waitForCalls(t, 3)
	assert.ElementsMatch(t, []string{"customer", "processing", "inventory"}, calls)
}

func TestSubmitSuccessWithFailingNotifications(t *testing.T) {
	ck, _, gateway := setup()
	gateway.err = errors.New("webhook down")

	ck.Cart().Add(sanitizer)

	order, err := ck.Submit(context.Background(), testUser, testCard, "")
	require.NoError(t, err)

	gateway.waitForCalls(t, 3)

	// Notification failures never disturb the terminal state
	assert.Equal(t, PhaseSucceeded, ck.State().Phase)
	assert.Equal(t, order.OrderID, ck.State().OrderID)
	assert.True(t, ck.Cart().Empty())
}

func TestSubmitPersistFailure(t *testing.T) {
	ck, store, gateway := setup()
	store.err = errors.New("connection refused")

	ck.Cart().Add(paracetamol)

	_, err := ck.Submit(context.Background(), testUser, testCard, "12 Main St")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyCart)

	state := ck.State()
	assert.Equal(t, PhaseFailed, state.Phase)
	assert.Contains(t, state.Reason, "connection refused")

	// Cart is left intact for a retry, and nothing was notified
	assert.Equal(t, 1, ck.Cart().ItemCount())
	assert.Empty(t, gateway.calls)
}

func TestRetryAfterPersistFailure(t *testing.T) {
	ck, store, gateway := setup()
	store.err = errors.New("transient outage")

	ck.Cart().Add(monitor)

	_, err := ck.Submit(context.Background(), testUser, testCard, "")
	require.Error(t, err)

	store.err = nil
	order, err := ck.Submit(context.Background(), testUser, testCard, "")
	require.NoError(t, err)
	assert.Equal(t, PhaseSucceeded, ck.State().Phase)
	assert.True(t, ck.Cart().Empty())

	gateway.waitForCalls(t, 3)
	persisted, err := store.Get(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.InDelta(t, 89.99+testDeliveryFee, persisted.TotalAmount, 1e-9)
}

func TestSubmitNotReentrant(t *testing.T) {
	ck, store, _ := setup()
	ck.Cart().Add(paracetamol)

	var nested error
	store.onCreate = func() {
		// A second submit while the first is persisting must be refused
		// without disturbing the in-flight attempt
		_, nested = ck.Submit(context.Background(), testUser, testCard, "")
	}

	_, err := ck.Submit(context.Background(), testUser, testCard, "")
	require.NoError(t, err)
	assert.ErrorIs(t, nested, ErrSubmissionInFlight)
	assert.Equal(t, PhaseSucceeded, ck.State().Phase)
	assert.Equal(t, 1, store.count())
}

func TestReset(t *testing.T) {
	ck, _, _ := setup()

	_, err := ck.Submit(context.Background(), testUser, testCard, "")
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Equal(t, PhaseFailed, ck.State().Phase)

	ck.Reset()
	assert.Equal(t, State{Phase: PhaseIdle}, ck.State())
}

func TestSubmitWithCoupon(t *testing.T) {
	ck, store, gateway := setup()

	// Ten monitors bring the subtotal to 899.90; SAVE10 caps at $50
	for i := 0; i < 10; i++ {
		ck.Cart().Add(monitor)
	}
	_, discount, err := ck.ApplyCoupon("SAVE10")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, discount, 1e-9)

	order, err := ck.Submit(context.Background(), testUser, testCard, "")
	require.NoError(t, err)

	persisted, err := store.Get(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.InDelta(t, 899.90-50.0+testDeliveryFee, persisted.TotalAmount, 1e-9)

	// The applied coupon is consumed along with the cart
	assert.Nil(t, ck.AppliedCoupon())
	gateway.waitForCalls(t, 3)
}

func TestCouponDroppedWhenNoLongerEligible(t *testing.T) {
	ck, store, gateway := setup()

	ck.Cart().Add(paracetamol)
	ck.Cart().Add(sanitizer)
	_, _, err := ck.ApplyCoupon("FIRST5") // minimum $15, subtotal 14.98 fails
	require.Error(t, err)

	ck.Cart().Add(sanitizer) // subtotal 19.97
	_, discount, err := ck.ApplyCoupon("FIRST5")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, discount, 1e-9)

	// Shrink the cart below the minimum again; the discount must not survive
	ck.Cart().RemoveLine("P005")

	order, err := ck.Submit(context.Background(), testUser, testCard, "")
	require.NoError(t, err)

	persisted, err := store.Get(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.InDelta(t, 9.99+testDeliveryFee, persisted.TotalAmount, 1e-9)
	gateway.waitForCalls(t, 3)
}

func TestOrderSnapshotIsImmutable(t *testing.T) {
	ck, store, gateway := setup()
	ck.Cart().Add(paracetamol)

	order, err := ck.Submit(context.Background(), testUser, testCard, "")
	require.NoError(t, err)
	gateway.waitForCalls(t, 3)

	// New cart activity after the order is placed
	ck.Reset()
	ck.Cart().Add(sanitizer)
	ck.Cart().Add(sanitizer)

	persisted, err := store.Get(context.Background(), order.OrderID)
	require.NoError(t, err)
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, "P001", persisted.Items[0].ProductID)
	assert.Equal(t, 1, persisted.Items[0].Quantity)
}

func TestSummary(t *testing.T) {
	ck, _, _ := setup()

	t.Run("empty cart", func(t *testing.T) {
		summary := ck.Summary()
		assert.Zero(t, summary.Subtotal)
		assert.Zero(t, summary.ItemCount)
		assert.Zero(t, summary.DeliveryFee, "no delivery fee on an empty cart")
		assert.Zero(t, summary.Total)
	})

	t.Run("with items and coupon", func(t *testing.T) {
		ck.Cart().Add(paracetamol)
		ck.Cart().Add(paracetamol)
		ck.Cart().Add(sanitizer)
		_, _, err := ck.ApplyCoupon("SAVE10")
		require.NoError(t, err)

		summary := ck.Summary()
		assert.InDelta(t, 24.97, summary.Subtotal, 1e-9)
		assert.Equal(t, 3, summary.ItemCount)
		assert.InDelta(t, 2.497, summary.Discount, 1e-9)
		assert.InDelta(t, testDeliveryFee, summary.DeliveryFee, 1e-9)
		assert.InDelta(t, 24.97-2.497+testDeliveryFee, summary.Total, 1e-9)
	})

	t.Run("discount vanishes when cart shrinks below minimum", func(t *testing.T) {
		ck.Cart().RemoveLine("P001") // subtotal now 4.99, below SAVE10's $20
		summary := ck.Summary()
		assert.Zero(t, summary.Discount)
		assert.NotNil(t, summary.Coupon, "coupon stays applied, it just yields nothing")
	})
}
