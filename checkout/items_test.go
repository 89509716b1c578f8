package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DC111-ui/hss-storage-platform/models"
)

func TestItemListInsertionOrderAndUniqueIDs(t *testing.T) {
	list := NewItemList()
	bed := list.AddItem(models.ItemBed)
	fridge := list.AddItem(models.ItemFridge)
	box := list.AddItem(models.ItemBox)

	items := list.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{bed.ID, fridge.ID, box.ID}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.NotEqual(t, bed.ID, fridge.ID)
	assert.NotEqual(t, fridge.ID, box.ID)
}

func TestRemoveItemKeepsAtLeastOne(t *testing.T) {
	list := NewItemList()
	only := list.AddItem(models.ItemBed)

	assert.False(t, list.RemoveItem(only.ID), "removing the last item must be rejected")
	assert.Equal(t, 1, list.Len())

	second := list.AddItem(models.ItemBox)
	assert.True(t, list.RemoveItem(only.ID))
	assert.Equal(t, 1, list.Len())
	assert.False(t, list.RemoveItem(second.ID))
	assert.Equal(t, 1, list.Len())
}

func TestRemoveItemUnknownID(t *testing.T) {
	list := NewItemList()
	list.AddItem(models.ItemBed)
	list.AddItem(models.ItemBox)

	assert.False(t, list.RemoveItem("no-such-id"))
	assert.Equal(t, 2, list.Len())
}

func TestUpdateTypeClearsNameWhenLeavingOther(t *testing.T) {
	list := NewItemList()
	item := list.AddItem(models.ItemOther)
	require.True(t, list.UpdateName(item.ID, "Study lamp"))
	assert.Equal(t, "Study lamp", list.Items()[0].Name)

	require.True(t, list.UpdateType(item.ID, models.ItemBox))
	assert.Empty(t, list.Items()[0].Name)

	// Moving back to "other" does not resurrect the old name.
	require.True(t, list.UpdateType(item.ID, models.ItemOther))
	assert.Empty(t, list.Items()[0].Name)
}

func TestAttachPhoto(t *testing.T) {
	list := NewItemList()
	item := list.AddItem(models.ItemSuitcase)

	key := PhotoKey("Holiday Bag.JPG")
	require.True(t, list.AttachPhoto(item.ID, key))
	assert.Equal(t, key, list.Items()[0].PhotoRef)
	assert.Contains(t, key, "s3://hss-storage-item-photos/orders/")
	assert.Contains(t, key, "holiday-bag.jpg")

	assert.False(t, list.AttachPhoto("missing", key))
}

func TestItemsReturnsSnapshot(t *testing.T) {
	list := NewItemList()
	list.AddItem(models.ItemBed)

	snapshot := list.Items()
	snapshot[0].Name = "mutated"
	assert.Empty(t, list.Items()[0].Name)
}
