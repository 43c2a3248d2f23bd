// Package pricing computes the cost of a reservation from its duration, the
// court surface, and the party size.
package pricing

import "courtside/pkg/model"

// UnconfiguredRate is the per-minute rate charged for a surface the price
// list has no entry for. A deliberate contract, not an accident: unknown
// surfaces bill at 1.0 per minute rather than free.
const UnconfiguredRate = 1.0

// PriceList maps surfaces to per-minute rates. It is built once from
// configuration and read-only afterwards.
type PriceList struct {
	rates map[model.Surface]float64
}

func NewPriceList(rates map[model.Surface]float64) *PriceList {
	copied := make(map[model.Surface]float64, len(rates))
	for surface, rate := range rates {
		copied[surface] = rate
	}
	return &PriceList{rates: copied}
}

// Rate returns the per-minute rate for a surface, falling back to
// UnconfiguredRate when the surface has no configured entry.
func (p *PriceList) Rate(surface model.Surface) float64 {
	if rate, ok := p.rates[surface]; ok {
		return rate
	}
	return UnconfiguredRate
}
