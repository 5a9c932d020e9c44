package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locatorWarehouse(t *testing.T, code string, lat, lon float64) *Warehouse {
	t.Helper()
	w, err := NewWarehouse(code, "Warehouse "+code, WarehouseAddress{
		Latitude:  lat,
		Longitude: lon,
	})
	require.NoError(t, err)
	return w
}

func TestHaversine(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(-6.2, 106.8, -6.2, 106.8))
	})

	t.Run("jakarta to surabaya", func(t *testing.T) {
		// Known pair roughly 660 km apart
		d := Haversine(-6.2088, 106.8456, -7.2575, 112.7521)
		assert.InDelta(t, 663, d, 10)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Haversine(-6.2, 106.8, -7.25, 112.75)
		b := Haversine(-7.25, 112.75, -6.2, 106.8)
		assert.InDelta(t, a, b, 1e-9)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := Haversine(0, 0, 1, 0)
		assert.InDelta(t, 111.19, d, 0.5)
	})
}

func TestWarehouseLocator_Nearest(t *testing.T) {
	locator := NewWarehouseLocator()
	origin := locatorWarehouse(t, "JKT", -6.2088, 106.8456)
	bandung := locatorWarehouse(t, "BDG", -6.9175, 107.6191)   // ~120 km from origin
	semarang := locatorWarehouse(t, "SMG", -6.9667, 110.4167)  // ~400 km
	surabaya := locatorWarehouse(t, "SBY", -7.2575, 112.7521)  // ~660 km

	t.Run("picks the nearest with enough stock", func(t *testing.T) {
		candidates := []StockedWarehouse{
			{Warehouse: surabaya, Stock: 100},
			{Warehouse: bandung, Stock: 100},
			{Warehouse: semarang, Stock: 100},
		}

		best := locator.Nearest(origin.Address.Latitude, origin.Address.Longitude, candidates, 10, origin.ID)
		require.NotNil(t, best)
		assert.Equal(t, bandung.ID, best.Warehouse.ID)
		assert.InDelta(t, 118, best.Distance, 10)
	})

	t.Run("skips nearer warehouses that cannot cover the quantity", func(t *testing.T) {
		candidates := []StockedWarehouse{
			{Warehouse: bandung, Stock: 5},
			{Warehouse: semarang, Stock: 9},
			{Warehouse: surabaya, Stock: 10},
		}

		best := locator.Nearest(origin.Address.Latitude, origin.Address.Longitude, candidates, 10, origin.ID)
		require.NotNil(t, best)
		assert.Equal(t, surabaya.ID, best.Warehouse.ID)
	})

	t.Run("excludes the requesting warehouse", func(t *testing.T) {
		candidates := []StockedWarehouse{
			{Warehouse: origin, Stock: 100},
			{Warehouse: semarang, Stock: 100},
		}

		best := locator.Nearest(origin.Address.Latitude, origin.Address.Longitude, candidates, 10, origin.ID)
		require.NotNil(t, best)
		assert.Equal(t, semarang.ID, best.Warehouse.ID)
	})

	t.Run("nil uuid disables exclusion", func(t *testing.T) {
		candidates := []StockedWarehouse{
			{Warehouse: origin, Stock: 100},
			{Warehouse: semarang, Stock: 100},
		}

		best := locator.Nearest(origin.Address.Latitude, origin.Address.Longitude, candidates, 10, uuid.Nil)
		require.NotNil(t, best)
		assert.Equal(t, origin.ID, best.Warehouse.ID)
	})

	t.Run("ties resolve to the first candidate", func(t *testing.T) {
		first := locatorWarehouse(t, "TIE1", -6.9175, 107.6191)
		second := locatorWarehouse(t, "TIE2", -6.9175, 107.6191)
		candidates := []StockedWarehouse{
			{Warehouse: first, Stock: 100},
			{Warehouse: second, Stock: 100},
		}

		best := locator.Nearest(origin.Address.Latitude, origin.Address.Longitude, candidates, 10, origin.ID)
		require.NotNil(t, best)
		assert.Equal(t, first.ID, best.Warehouse.ID)
	})

	t.Run("nil when no candidate qualifies", func(t *testing.T) {
		candidates := []StockedWarehouse{
			{Warehouse: bandung, Stock: 3},
			{Warehouse: semarang, Stock: 0},
		}

		assert.Nil(t, locator.Nearest(origin.Address.Latitude, origin.Address.Longitude, candidates, 10, origin.ID))
		assert.Nil(t, locator.Nearest(origin.Address.Latitude, origin.Address.Longitude, nil, 10, origin.ID))
	})

	t.Run("exact stock qualifies", func(t *testing.T) {
		candidates := []StockedWarehouse{
			{Warehouse: bandung, Stock: 10},
		}

		best := locator.Nearest(origin.Address.Latitude, origin.Address.Longitude, candidates, 10, origin.ID)
		require.NotNil(t, best)
		assert.Equal(t, int64(10), best.Stock)
	})
}
