package farm

import "math"

// Pricing holds the multipliers applied to a crop's sell price
type Pricing struct {
	Quality float64
	Market  float64
}

// Payout is floor(sellPrice * quality * market), never negative
func (p Pricing) Payout(sellPrice int64) int64 {
	v := math.Floor(float64(sellPrice) * p.Quality * p.Market)
	if v < 0 {
		return 0
	}
	return int64(v)
}
