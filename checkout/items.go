package checkout

import (
	"strings"

	"github.com/google/uuid"

	"github.com/DC111-ui/hss-storage-platform/models"
)

// ItemList is the ordered collection of items a draft booking accumulates.
// Ordering is insertion order and ids are never reused. Mutations do not
// recompute pricing; callers re-derive a quote after any change.
//
// An ItemList is confined to one checkout session and is not safe for
// concurrent use.
type ItemList struct {
	items []models.Item
}

// NewItemList returns an empty list.
func NewItemList() *ItemList {
	return &ItemList{}
}

// AddItem appends a new item of the given type and returns it.
// Unknown types are kept as-is; pricing later resolves them to the
// "other" tier.
func (l *ItemList) AddItem(t models.ItemType) models.Item {
	item := models.Item{
		ID:   uuid.New().String(),
		Type: t,
	}
	l.items = append(l.items, item)
	return item
}

// RemoveItem deletes the item with the given id. It returns false without
// changes when the id is absent or when removal would empty the list: a
// draft booking must always retain at least one item.
func (l *ItemList) RemoveItem(id string) bool {
	if len(l.items) <= 1 {
		return false
	}
	for i, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateType changes an item's type. Leaving the "other" type clears the
// free-text name, which is only meaningful for "other" items.
func (l *ItemList) UpdateType(id string, t models.ItemType) bool {
	item := l.find(id)
	if item == nil {
		return false
	}
	item.Type = t
	if t != models.ItemOther {
		item.Name = ""
	}
	return true
}

// UpdateName sets the free-text description of an item.
func (l *ItemList) UpdateName(id, name string) bool {
	item := l.find(id)
	if item == nil {
		return false
	}
	item.Name = strings.TrimSpace(name)
	return true
}

// AttachPhoto records an opaque photo reference on an item.
func (l *ItemList) AttachPhoto(id, photoRef string) bool {
	item := l.find(id)
	if item == nil {
		return false
	}
	item.PhotoRef = photoRef
	return true
}

// Items returns a snapshot copy in insertion order.
func (l *ItemList) Items() []models.Item {
	out := make([]models.Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *ItemList) Len() int {
	return len(l.items)
}

func (l *ItemList) find(id string) *models.Item {
	for i := range l.items {
		if l.items[i].ID == id {
			return &l.items[i]
		}
	}
	return nil
}
