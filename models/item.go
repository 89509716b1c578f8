package models

// ItemType classifies a stored item and selects its monthly price tier.
type ItemType string

const (
	ItemBed      ItemType = "bed"
	ItemFridge   ItemType = "fridge"
	ItemBox      ItemType = "box"
	ItemSuitcase ItemType = "suitcase"
	ItemOther    ItemType = "other"
)

// KnownItemTypes lists every accepted item type in display order.
var KnownItemTypes = []ItemType{ItemBed, ItemFridge, ItemBox, ItemSuitcase, ItemOther}

// IsKnown reports whether the type is one of the accepted tiers.
func (t ItemType) IsKnown() bool {
	switch t {
	case ItemBed, ItemFridge, ItemBox, ItemSuitcase, ItemOther:
		return true
	}
	return false
}

// Item is one physical object in a booking.
// Name is only meaningful for ItemOther; PhotoRef is an opaque object key.
type Item struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type"`
	Name     string   `json:"name,omitempty"`
	PhotoRef string   `json:"s3Key,omitempty"`
}

// PriceTable maps item types to monthly prices plus the one-time handling fee.
type PriceTable struct {
	Monthly     map[ItemType]float64
	HandlingFee float64
}

// Price resolves the monthly price for an item type.
// Unknown or missing types fall back to the "other" tier.
func (p PriceTable) Price(t ItemType) float64 {
	if v, ok := p.Monthly[t]; ok {
		return v
	}
	return p.Monthly[ItemOther]
}
