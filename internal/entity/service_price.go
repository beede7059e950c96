package entity

// ServicePrice is a named price list entry. Prices are mutable by staff with
// no history: balance math always uses the live price, while each Payment row
// snapshots the price it was charged against in Amount.
type ServicePrice struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
