package partner

import (
	"math"

	"github.com/google/uuid"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula
const earthRadiusKm = 6371.0

// StockedWarehouse pairs a warehouse with its current stock of one product,
// pre-fetched by the caller. The locator itself performs no I/O.
type StockedWarehouse struct {
	Warehouse *Warehouse
	Stock     int64
}

// Candidate is a locator result: the chosen donor and its distance in
// kilometers from the origin.
type Candidate struct {
	Warehouse *Warehouse
	Stock     int64
	Distance  float64
}

// WarehouseLocator resolves the nearest warehouse able to donate stock.
// It is a stateless domain service.
type WarehouseLocator struct{}

// NewWarehouseLocator creates a new WarehouseLocator
func NewWarehouseLocator() *WarehouseLocator {
	return &WarehouseLocator{}
}

// Nearest returns, among candidates holding at least requiredStock, the one
// with minimum great-circle distance from (originLat, originLon). The
// requesting warehouse passes its own ID as excludeID so it cannot donate to
// itself; uuid.Nil disables the exclusion. Ties on distance resolve
// first-found-wins in candidate order, so callers pass candidates in a
// deterministic order (creation time). Returns nil when no candidate
// qualifies.
func (l *WarehouseLocator) Nearest(originLat, originLon float64, candidates []StockedWarehouse, requiredStock int64, excludeID uuid.UUID) *Candidate {
	var best *Candidate
	for i := range candidates {
		c := candidates[i]
		if c.Warehouse == nil {
			continue
		}
		if excludeID != uuid.Nil && c.Warehouse.ID == excludeID {
			continue
		}
		if c.Stock < requiredStock {
			continue
		}
		d := Haversine(originLat, originLon, c.Warehouse.Address.Latitude, c.Warehouse.Address.Longitude)
		if best == nil || d < best.Distance {
			best = &Candidate{
				Warehouse: c.Warehouse,
				Stock:     c.Stock,
				Distance:  d,
			}
		}
	}
	return best
}

// Haversine computes the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	centralAngle := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * centralAngle
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
