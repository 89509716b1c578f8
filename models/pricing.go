package models

// PricingQuote is a derived cost breakdown. It is recomputed from the item
// list and duration on demand and never cached independently of its inputs.
type PricingQuote struct {
	Duration        int     `json:"duration"`
	MonthlySubtotal float64 `json:"monthlySubtotal"`
	HandlingFee     float64 `json:"handlingFee"`
	Total           float64 `json:"total"`
	ItemCount       int     `json:"itemCount"`
	PhotoCount      int     `json:"photoCount"`
	OtherCount      int     `json:"otherCount"`
}
