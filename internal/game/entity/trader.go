package entity

// traderReserve is the hit points and gold every trader starts with.
const traderReserve = 9999

// Trader buys and sells items at a location.
type Trader struct {
	Living

	ID int
}

// NewTrader creates a trader with an empty inventory.
func NewTrader(id int, name string) *Trader {
	return &Trader{
		Living: newLiving(name, false, traderReserve, traderReserve, traderReserve, nil),
		ID:     id,
	}
}
