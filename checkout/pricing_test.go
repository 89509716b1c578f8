package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DC111-ui/hss-storage-platform/config"
	"github.com/DC111-ui/hss-storage-platform/models"
)

func testTable() models.PriceTable {
	return models.PriceTable{
		Monthly: map[models.ItemType]float64{
			models.ItemBed:      250,
			models.ItemFridge:   300,
			models.ItemBox:      60,
			models.ItemSuitcase: 80,
			models.ItemOther:    120,
		},
		HandlingFee: 350,
	}
}

func TestQuoteBreakdown(t *testing.T) {
	calc := Calculator{Table: testTable()}

	items := []models.Item{
		{ID: "1", Type: models.ItemBed},
		{ID: "2", Type: models.ItemFridge},
		{ID: "3", Type: models.ItemBox},
	}

	quote := calc.Quote(items, 3)
	assert.Equal(t, 3, quote.Duration)
	assert.Equal(t, 610.0, quote.MonthlySubtotal)
	assert.Equal(t, 350.0, quote.HandlingFee)
	assert.Equal(t, 2180.0, quote.Total)
	assert.Equal(t, 3, quote.ItemCount)
	assert.Equal(t, 0, quote.PhotoCount)
	assert.Equal(t, 0, quote.OtherCount)
}

func TestQuoteOtherTier(t *testing.T) {
	calc := Calculator{Table: testTable()}

	items := []models.Item{{ID: "1", Type: models.ItemOther, Name: "lamp"}}
	quote := calc.Quote(items, 1)
	assert.Equal(t, 120.0, quote.MonthlySubtotal)
	assert.Equal(t, 470.0, quote.Total)
	assert.Equal(t, 1, quote.OtherCount)
}

func TestQuoteUnknownTypeFallsBackToOtherPrice(t *testing.T) {
	calc := Calculator{Table: testTable()}

	quote := calc.Quote([]models.Item{{ID: "1", Type: "piano"}}, 1)
	assert.Equal(t, 120.0, quote.MonthlySubtotal)
	// The fallback prices the item, it does not reclassify it.
	assert.Equal(t, 0, quote.OtherCount)
}

func TestQuoteDurationFloor(t *testing.T) {
	calc := Calculator{Table: testTable()}
	items := []models.Item{{ID: "1", Type: models.ItemBox}}

	for _, duration := range []int{0, -5} {
		assert.Equal(t, calc.Quote(items, 1), calc.Quote(items, duration), "duration %d", duration)
	}
}

func TestQuoteTotalInvariant(t *testing.T) {
	calc := Calculator{Table: testTable()}

	cases := []struct {
		items    []models.Item
		duration int
	}{
		{[]models.Item{{Type: models.ItemBed}}, 1},
		{[]models.Item{{Type: models.ItemBed}, {Type: models.ItemSuitcase}}, 6},
		{[]models.Item{{Type: models.ItemBox}, {Type: models.ItemBox}, {Type: models.ItemOther}}, 12},
	}
	for _, tc := range cases {
		quote := calc.Quote(tc.items, tc.duration)
		assert.Equal(t, quote.MonthlySubtotal*float64(tc.duration)+quote.HandlingFee, quote.Total)
	}
}

func TestQuoteCountsPhotosAndOthers(t *testing.T) {
	calc := Calculator{Table: testTable()}

	items := []models.Item{
		{ID: "1", Type: models.ItemBed, PhotoRef: "s3://bucket/orders/1-bed.jpg"},
		{ID: "2", Type: models.ItemOther, Name: "lamp", PhotoRef: "s3://bucket/orders/2-lamp.jpg"},
		{ID: "3", Type: models.ItemOther},
	}
	quote := calc.Quote(items, 2)
	assert.Equal(t, 2, quote.PhotoCount)
	assert.Equal(t, 2, quote.OtherCount)
	assert.Equal(t, 3, quote.ItemCount)
}

func TestQuoteEmptyItems(t *testing.T) {
	calc := Calculator{Table: testTable()}

	quote := calc.Quote(nil, 4)
	assert.Equal(t, 0.0, quote.MonthlySubtotal)
	assert.Equal(t, 350.0, quote.Total)
	assert.Equal(t, 0, quote.ItemCount)
}

func TestPriceTableFromConfig(t *testing.T) {
	config.AppConfig = config.Config{
		PriceBed:      250,
		PriceFridge:   300,
		PriceBox:      60,
		PriceSuitcase: 80,
		PriceOther:    120,
		HandlingFee:   350,
	}

	table := PriceTableFromConfig()
	require.Equal(t, 350.0, table.HandlingFee)
	assert.Equal(t, 250.0, table.Price(models.ItemBed))
	assert.Equal(t, 120.0, table.Price("unknown"))
}
