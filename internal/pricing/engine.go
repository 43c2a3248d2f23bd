package pricing

import "courtside/pkg/model"

// FourPlayerMultiplier is the surcharge factor for doubles reservations.
const FourPlayerMultiplier = 1.5

type Engine struct {
	prices *PriceList
}

func NewEngine(prices *PriceList) *Engine {
	return &Engine{prices: prices}
}

// Quote prices a reservation: minutes times the surface rate, times the
// doubles surcharge when four players play. No rounding is applied; callers
// round for display only.
func (e *Engine) Quote(surface model.Surface, minutes int64, fourPlayers bool) float64 {
	price := float64(minutes) * e.prices.Rate(surface)
	if fourPlayers {
		price *= FourPlayerMultiplier
	}
	return price
}
