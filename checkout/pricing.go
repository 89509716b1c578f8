package checkout

import (
	"github.com/DC111-ui/hss-storage-platform/config"
	"github.com/DC111-ui/hss-storage-platform/models"
)

// Calculator turns an item list and a storage duration into a cost
// breakdown. It is pure: inputs are sanitized to valid defaults instead of
// rejected, and no call can fail.
type Calculator struct {
	Table models.PriceTable
}

// NewCalculator builds a calculator from the loaded configuration.
func NewCalculator() Calculator {
	return Calculator{Table: PriceTableFromConfig()}
}

// PriceTableFromConfig assembles the price table from AppConfig values.
func PriceTableFromConfig() models.PriceTable {
	cfg := config.AppConfig
	return models.PriceTable{
		Monthly: map[models.ItemType]float64{
			models.ItemBed:      cfg.PriceBed,
			models.ItemFridge:   cfg.PriceFridge,
			models.ItemBox:      cfg.PriceBox,
			models.ItemSuitcase: cfg.PriceSuitcase,
			models.ItemOther:    cfg.PriceOther,
		},
		HandlingFee: cfg.HandlingFee,
	}
}

// Quote computes the cost breakdown for the given items and duration in
// months. Duration is floored at 1; the handling fee is charged once and
// never prorated.
func (c Calculator) Quote(items []models.Item, duration int) models.PricingQuote {
	if duration < 1 {
		duration = 1
	}

	var subtotal float64
	photoCount := 0
	otherCount := 0
	for _, item := range items {
		subtotal += c.Table.Price(item.Type)
		if item.PhotoRef != "" {
			photoCount++
		}
		if item.Type == models.ItemOther {
			otherCount++
		}
	}

	return models.PricingQuote{
		Duration:        duration,
		MonthlySubtotal: subtotal,
		HandlingFee:     c.Table.HandlingFee,
		Total:           subtotal*float64(duration) + c.Table.HandlingFee,
		ItemCount:       len(items),
		PhotoCount:      photoCount,
		OtherCount:      otherCount,
	}
}
