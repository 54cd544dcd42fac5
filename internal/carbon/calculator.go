package carbon

// Calculate converts an activity amount in category to kg CO2e.
// Unknown categories have a factor of 0. The amount is not validated or
// clamped; callers reject non-positive input before it gets here.
func Calculate(category string, amount float64) float64 {
	return FactorOf(category) * amount
}
