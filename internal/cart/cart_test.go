package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritemedical/storefront-service/internal/models"
)

var (
	paracetamol = &models.Product{ID: "P001", Name: "Paracetamol 500mg", Price: 9.99, Stock: 50}
	sanitizer   = &models.Product{ID: "P005", Name: "Hand Sanitizer 500ml", Price: 4.99, Stock: 100}
)

func TestAddMergesLines(t *testing.T) {
	c := New()

	c.Add(paracetamol)
	c.Add(paracetamol)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "P001", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, c.ItemCount())
}

func TestDecreaseOne(t *testing.T) {
	t.Run("decrements above one", func(t *testing.T) {
		c := New()
		c.Add(paracetamol)
		c.Add(paracetamol)

		c.DecreaseOne("P001")

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
	})

	t.Run("removes line at quantity one", func(t *testing.T) {
		c := New()
		c.Add(paracetamol)

		c.DecreaseOne("P001")

		assert.True(t, c.Empty())
	})

	t.Run("no-op for absent product", func(t *testing.T) {
		c := New()
		c.Add(paracetamol)

		c.DecreaseOne("P999")

		assert.Equal(t, 1, c.ItemCount())
	})
}

func TestRemoveLine(t *testing.T) {
	c := New()
	c.Add(paracetamol)
	c.Add(paracetamol)
	c.Add(sanitizer)

	c.RemoveLine("P001")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "P005", lines[0].ProductID)
}

func TestSubtotalAndItemCount(t *testing.T) {
	c := New()
	assert.Zero(t, c.Subtotal())
	assert.Zero(t, c.ItemCount())

	c.Add(paracetamol)
	c.Add(paracetamol)
	c.Add(sanitizer)

	// (9.99 * 2) + (4.99 * 1)
	assert.InDelta(t, 24.97, c.Subtotal(), 1e-9)
	assert.Equal(t, 3, c.ItemCount())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(paracetamol)
	c.Add(sanitizer)

	c.Clear()

	assert.True(t, c.Empty())
	assert.Zero(t, c.Subtotal())
	assert.Empty(t, c.Lines())
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New()
	c.Add(paracetamol)

	items := c.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, "Paracetamol 500mg", items[0].ProductName)
	assert.InDelta(t, 9.99, items[0].Price, 1e-9)

	c.Add(paracetamol)
	c.Clear()

	// The snapshot taken earlier is unaffected by later cart mutation
	assert.Equal(t, 1, items[0].Quantity)
}

func TestLinesSnapshotPrices(t *testing.T) {
	c := New()
	p := *paracetamol
	c.Add(&p)

	// A later catalog price change does not reach lines already in the cart
	p.Price = 99.99

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.InDelta(t, 9.99, lines[0].UnitPrice, 1e-9)
}
