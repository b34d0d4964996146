package cart

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "carts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddToCartCoalescesProducts(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddToCart("c1", Item{Type: ItemTypeProduct, ItemID: 7, Title: "Body Oil", Price: 24.5, Quantity: 2})
	require.NoError(t, err)
	_, err = s.AddToCart("c1", Item{Type: ItemTypeProduct, ItemID: 7, Title: "Body Oil", Price: 24.5})
	require.NoError(t, err)
	_, err = s.AddToCart("c1", Item{Type: ItemTypeProduct, ItemID: 7, Title: "Body Oil", Price: 24.5, Quantity: 3})
	require.NoError(t, err)

	items, err := s.Items("c1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
	assert.NotEmpty(t, items[0].ID)
}

func TestAddToCartNeverCoalescesBookings(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.AddToCart("c1", Item{
			Type: ItemTypeBooking, ItemID: 12, Title: "Classic Massage",
			Price: 69, Date: "2026-09-01", Time: "14:00", Duration: 60,
		})
		require.NoError(t, err)
	}

	items, err := s.Items("c1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	// every booking line keeps its own id
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.NotEqual(t, items[1].ID, items[2].ID)
}

func TestTotalPriceIsPreTaxSubtotal(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddToCart("c1", Item{Type: ItemTypeProduct, ItemID: 1, Title: "Oil", Price: 10, Quantity: 2})
	require.NoError(t, err)
	_, err = s.AddToCart("c1", Item{Type: ItemTypeBooking, ItemID: 2, Title: "Facial", Price: 59})
	require.NoError(t, err)

	total, err := s.TotalPrice("c1")
	require.NoError(t, err)
	assert.InDelta(t, 79.0, total, 1e-9)

	count, err := s.TotalItems("c1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestUpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	s := newTestStore(t)

	a, err := s.AddToCart("c1", Item{Type: ItemTypeProduct, ItemID: 1, Title: "Oil", Price: 10})
	require.NoError(t, err)
	b, err := s.AddToCart("c1", Item{Type: ItemTypeProduct, ItemID: 2, Title: "Mask", Price: 19})
	require.NoError(t, err)

	require.NoError(t, s.UpdateQuantity("c1", a.ID, 0))
	require.NoError(t, s.UpdateQuantity("c1", b.ID, -1))

	items, err := s.Items("c1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateQuantitySetsExactly(t *testing.T) {
	s := newTestStore(t)

	a, err := s.AddToCart("c1", Item{Type: ItemTypeProduct, ItemID: 1, Title: "Oil", Price: 10, Quantity: 4})
	require.NoError(t, err)
	require.NoError(t, s.UpdateQuantity("c1", a.ID, 2))

	items, err := s.Items("c1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	a, err := s.AddToCart("c1", Item{Type: ItemTypeProduct, ItemID: 1, Title: "Oil", Price: 10})
	require.NoError(t, err)

	require.NoError(t, s.RemoveFromCart("c1", a.ID))
	require.NoError(t, s.RemoveFromCart("c1", a.ID))
	require.NoError(t, s.RemoveFromCart("c1", "no-such-id"))

	items, err := s.Items("c1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartsAreIsolatedAndClearable(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddToCart("c1", Item{Type: ItemTypeProduct, ItemID: 1, Title: "Oil", Price: 10})
	require.NoError(t, err)
	_, err = s.AddToCart("c2", Item{Type: ItemTypeProduct, ItemID: 1, Title: "Oil", Price: 10})
	require.NoError(t, err)

	require.NoError(t, s.ClearCart("c1"))

	items1, err := s.Items("c1")
	require.NoError(t, err)
	assert.Empty(t, items1)

	items2, err := s.Items("c2")
	require.NoError(t, err)
	assert.Len(t, items2, 1)
}

func TestCartSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carts.db")
	s, err := NewStore(path)
	require.NoError(t, err)

	_, err = s.AddToCart("c1", Item{Type: ItemTypeProduct, ItemID: 9, Title: "Oil", Price: 10, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()

	items, err := s.Items("c1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(9), items[0].ItemID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestPurgeStale(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddToCart("old", Item{Type: ItemTypeProduct, ItemID: 1, Title: "Oil", Price: 10})
	require.NoError(t, err)

	// nothing is stale yet
	purged, err := s.PurgeStale(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, purged)

	// everything written before now is stale at age zero
	time.Sleep(10 * time.Millisecond)
	purged, err = s.PurgeStale(0)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	items, err := s.Items("old")
	require.NoError(t, err)
	assert.Empty(t, items)
}
