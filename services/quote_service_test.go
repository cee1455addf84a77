package services

import (
	"testing"

	"estimator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoItemQuote() models.Quote {
	return models.Quote{
		ID:         "q1",
		BaseNumber: "24061401",
		JobName:    "Desert Ridge Phase 2",
		LineItems: []models.QuoteLineItem{
			{ID: "li1", Description: "Silt Fence", Quantity: 100, Unit: "LF", UnitPrice: 3.25, UnitCost: 2.28},
			{ID: "li2", Description: "Curb Inlet Protection", Quantity: 4, Unit: "EA", UnitPrice: 85, UnitCost: 60},
		},
	}
}

func TestLockCreatesVersionWithSnapshot(t *testing.T) {
	editor := NewQuoteEditor(twoItemQuote(), "")
	require.Equal(t, models.QuoteStatusDraft, editor.Status())

	editor.Lock()

	require.Len(t, editor.Versions(), 1)
	v := editor.Versions()[0]
	assert.Equal(t, 1, v.VersionNumber)
	assert.Equal(t, models.QuoteStatusLocked, v.Status)
	assert.Equal(t, editor.Quote(), v.Snapshot)
	assert.NotNil(t, v.LockedAt)
	assert.Equal(t, models.QuoteStatusLocked, editor.Status())
}

func TestLockIsNoOpWhenAlreadyLocked(t *testing.T) {
	editor := NewQuoteEditor(twoItemQuote(), "")
	editor.Lock()
	editor.Lock()
	assert.Len(t, editor.Versions(), 1)
}

func TestLockSnapshotIsIsolatedFromLaterEdits(t *testing.T) {
	editor := NewQuoteEditor(twoItemQuote(), "")
	editor.Lock()
	editor.StartAmendment()
	editor.UpdateQuote(func(q models.Quote) models.Quote {
		q.LineItems[0].Quantity = 999
		return q
	})

	assert.Equal(t, 100.0, editor.Versions()[0].Snapshot.LineItems[0].Quantity)
}

func TestAmendmentRoundTrip(t *testing.T) {
	editor := NewQuoteEditor(twoItemQuote(), "")
	editor.Lock()

	editor.StartAmendment()
	require.True(t, editor.IsAmending())

	editor.UpdateQuote(func(q models.Quote) models.Quote {
		items := make([]models.QuoteLineItem, len(q.LineItems))
		copy(items, q.LineItems)
		items[0].Quantity = 150
		q.LineItems = items
		return q
	})

	editor.FinalizeAmendment()
	require.Len(t, editor.Versions(), 2)
	assert.Equal(t, models.QuoteStatusLocked, editor.Status())

	v2 := editor.Versions()[1]
	assert.Equal(t, 2, v2.VersionNumber)

	var quantityChanges []models.ChangeRecord
	for _, c := range v2.Changes {
		if c.Field == "quantity" {
			quantityChanges = append(quantityChanges, c)
		}
	}
	require.Len(t, quantityChanges, 1)
	assert.Equal(t, models.ChangeModified, quantityChanges[0].Type)
	assert.Equal(t, "li1", quantityChanges[0].LineItemID)
	assert.Equal(t, 100.0, quantityChanges[0].PreviousValue)
	assert.Equal(t, 150.0, quantityChanges[0].NewValue)
}

func TestDiscardRestoresExactly(t *testing.T) {
	editor := NewQuoteEditor(twoItemQuote(), "")
	editor.Lock()
	before := editor.Quote()

	editor.StartAmendment()
	editor.UpdateQuote(func(q models.Quote) models.Quote {
		items := make([]models.QuoteLineItem, len(q.LineItems))
		copy(items, q.LineItems)
		items[1].Quantity = 40
		q.LineItems = items
		return q
	})
	require.NotEmpty(t, editor.PendingChanges())

	editor.DiscardAmendment()

	assert.Equal(t, before, editor.Quote())
	assert.Equal(t, models.QuoteStatusLocked, editor.Status())
	assert.Empty(t, editor.PendingChanges())
	assert.Nil(t, editor.PreviousSnapshot())
	// No version was created by the discard.
	assert.Len(t, editor.Versions(), 1)
}

func TestUpdateQuoteRejectedWhileLocked(t *testing.T) {
	editor := NewQuoteEditor(twoItemQuote(), "")
	editor.Lock()
	before := editor.Quote()

	editor.UpdateQuote(func(q models.Quote) models.Quote {
		q.JobName = "changed"
		return q
	})

	assert.Equal(t, before, editor.Quote())
}

func TestAmendmentTransitionsRejectedFromWrongState(t *testing.T) {
	editor := NewQuoteEditor(twoItemQuote(), "")

	// Draft: nothing to amend yet.
	editor.StartAmendment()
	assert.False(t, editor.IsAmending())

	editor.FinalizeAmendment()
	editor.DiscardAmendment()
	assert.Empty(t, editor.Versions())
	assert.Equal(t, models.QuoteStatusDraft, editor.Status())
}

func TestPendingChangesAreSnapshotVsCurrent(t *testing.T) {
	editor := NewQuoteEditor(twoItemQuote(), "")
	editor.Lock()
	editor.StartAmendment()

	// Change then change back: full recompute leaves no pending changes.
	mutate := func(quantity float64) {
		editor.UpdateQuote(func(q models.Quote) models.Quote {
			items := make([]models.QuoteLineItem, len(q.LineItems))
			copy(items, q.LineItems)
			items[0].Quantity = quantity
			q.LineItems = items
			return q
		})
	}
	mutate(150)
	require.NotEmpty(t, editor.PendingChanges())
	mutate(100)
	assert.Empty(t, editor.PendingChanges())
}

func TestChangeQueryHelpers(t *testing.T) {
	editor := NewQuoteEditor(twoItemQuote(), "")
	editor.Lock()
	editor.StartAmendment()
	editor.UpdateQuote(func(q models.Quote) models.Quote {
		items := make([]models.QuoteLineItem, len(q.LineItems))
		copy(items, q.LineItems)
		items[0].Description = "Silt Fence (reinforced)"
		q.LineItems = items
		return q
	})

	assert.NotEmpty(t, editor.LineItemChanges("li1"))
	assert.Empty(t, editor.LineItemChanges("li2"))
	assert.True(t, editor.HasFieldChanged("li1", "description"))
	assert.False(t, editor.HasFieldChanged("li1", "unit"))

	prev, ok := editor.PreviousValue("li1", "description")
	require.True(t, ok)
	assert.Equal(t, "Silt Fence", prev)
}

func TestDiffLineItemsAddedRemovedModifiedOrdering(t *testing.T) {
	oldItems := []models.QuoteLineItem{
		{ID: "keep", Description: "Keep", Quantity: 1, Unit: "EA", UnitPrice: 10},
		{ID: "gone", Description: "Gone", Quantity: 1, Unit: "EA", UnitPrice: 5},
	}
	newItems := []models.QuoteLineItem{
		{ID: "keep", Description: "Keep", Quantity: 2, Unit: "EA", UnitPrice: 10},
		{ID: "new", Description: "New", Quantity: 1, Unit: "EA", UnitPrice: 7},
	}

	changes := DiffLineItems(oldItems, newItems)
	require.Len(t, changes, 4)

	assert.Equal(t, models.ChangeAdded, changes[0].Type)
	assert.Equal(t, "new", changes[0].LineItemID)
	assert.Equal(t, models.ChangeRemoved, changes[1].Type)
	assert.Equal(t, "gone", changes[1].LineItemID)

	// quantity then derived total, both on the surviving item.
	assert.Equal(t, models.ChangeModified, changes[2].Type)
	assert.Equal(t, "quantity", changes[2].Field)
	assert.Equal(t, models.ChangeModified, changes[3].Type)
	assert.Equal(t, "total", changes[3].Field)
	assert.Equal(t, 10.0, changes[3].PreviousValue)
	assert.Equal(t, 20.0, changes[3].NewValue)
}

func TestDiffDetectsChangesToZero(t *testing.T) {
	oldItems := []models.QuoteLineItem{{ID: "a", Quantity: 5, UnitPrice: 10}}
	newItems := []models.QuoteLineItem{{ID: "a", Quantity: 0, UnitPrice: 10}}

	changes := DiffLineItems(oldItems, newItems)
	var fields []string
	for _, c := range changes {
		fields = append(fields, c.Field)
	}
	// Zero is a legitimate value, not an absence: both quantity and total move.
	assert.Contains(t, fields, "quantity")
	assert.Contains(t, fields, "total")
}

func TestDiffIdenticalListsIsEmpty(t *testing.T) {
	items := twoItemQuote().LineItems
	assert.Empty(t, DiffLineItems(items, items))
}

func TestExcludedLineItemTotalsZero(t *testing.T) {
	li := models.QuoteLineItem{Quantity: 10, UnitPrice: 5, IsExcluded: true}
	assert.Equal(t, 0.0, li.Total())
	li.IsExcluded = false
	assert.Equal(t, 50.0, li.Total())
}

func TestCloneQuoteIsDeep(t *testing.T) {
	original := twoItemQuote()
	sid := "s1"
	original.Sections = []models.QuoteSection{{ID: sid, Name: "Erosion Control"}}
	original.LineItems[0].SectionID = &sid

	clone := CloneQuote(original)
	require.Equal(t, original, clone)

	clone.LineItems[0].Quantity = 999
	*clone.LineItems[0].SectionID = "other"
	clone.Sections[0].Name = "changed"

	assert.Equal(t, 100.0, original.LineItems[0].Quantity)
	assert.Equal(t, "s1", *original.LineItems[0].SectionID)
	assert.Equal(t, "Erosion Control", original.Sections[0].Name)
}
