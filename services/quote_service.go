package services

import (
	"log"
	"time"

	"estimator/models"
)

// Fields compared by the line item differ, in emission order.
var diffFields = []string{"description", "quantity", "unit", "unit_price", "total"}

// QuoteEditor owns one quote's draft/locked/amended lifecycle for a single
// editing session. All transitions are synchronous and atomic; illegal
// transitions are rejected with a logged warning and leave state untouched.
type QuoteEditor struct {
	quote            models.Quote
	status           string
	versions         []models.QuoteVersion
	pendingChanges   []models.ChangeRecord
	previousSnapshot *models.Quote
}

// NewQuoteEditor starts an editing session. An empty status means draft.
func NewQuoteEditor(initial models.Quote, status string) *QuoteEditor {
	if status == "" {
		status = models.QuoteStatusDraft
	}
	return &QuoteEditor{quote: initial, status: status}
}

// Quote returns the current quote value.
func (e *QuoteEditor) Quote() models.Quote {
	return e.quote
}

// Status returns the current lifecycle status.
func (e *QuoteEditor) Status() string {
	return e.status
}

// Versions returns the locked versions created so far, oldest first.
func (e *QuoteEditor) Versions() []models.QuoteVersion {
	return e.versions
}

// CurrentVersion returns the number of the latest locked version, 0 when
// the quote has never been locked.
func (e *QuoteEditor) CurrentVersion() int {
	return len(e.versions)
}

// PendingChanges returns the change records accumulated during the active
// amendment.
func (e *QuoteEditor) PendingChanges() []models.ChangeRecord {
	return e.pendingChanges
}

// PreviousSnapshot returns the pre-edit snapshot captured when the active
// amendment started, or nil.
func (e *QuoteEditor) PreviousSnapshot() *models.Quote {
	return e.previousSnapshot
}

// IsLocked reports whether the quote is currently locked.
func (e *QuoteEditor) IsLocked() bool {
	return e.status == models.QuoteStatusLocked
}

// IsAmending reports whether an amendment is active.
func (e *QuoteEditor) IsAmending() bool {
	return e.status == models.QuoteStatusAmended && e.previousSnapshot != nil
}

// UpdateQuote applies an updater to produce the next quote value. Rejected
// while locked. During an amendment the pending changes are recomputed as
// the full diff of the amendment snapshot against the updated line items,
// never incrementally.
func (e *QuoteEditor) UpdateQuote(updater func(models.Quote) models.Quote) {
	if e.IsLocked() {
		log.Println("quote: cannot modify a locked quote, start an amendment first")
		return
	}

	e.quote = updater(e.quote)

	if e.previousSnapshot != nil {
		e.pendingChanges = DiffLineItems(e.previousSnapshot.LineItems, e.quote.LineItems)
	}
}

// Lock freezes the quote into a new immutable version and flips the status
// to locked. Allowed from draft or amended; a no-op when already locked.
func (e *QuoteEditor) Lock() {
	if e.status == models.QuoteStatusLocked {
		return
	}

	now := time.Now()
	version := models.QuoteVersion{
		VersionNumber: len(e.versions) + 1,
		Status:        models.QuoteStatusLocked,
		CreatedAt:     now,
		LockedAt:      &now,
		Snapshot:      CloneQuote(e.quote),
	}
	if len(e.pendingChanges) > 0 {
		version.Changes = e.pendingChanges
	}

	e.versions = append(e.versions, version)
	e.status = models.QuoteStatusLocked
	e.pendingChanges = nil
	e.previousSnapshot = nil
}

// StartAmendment reopens a locked quote for editing, capturing a pre-edit
// snapshot to diff against. Rejected when the quote is not locked.
func (e *QuoteEditor) StartAmendment() {
	if e.status != models.QuoteStatusLocked {
		log.Println("quote: can only amend a locked quote")
		return
	}

	snapshot := CloneQuote(e.quote)
	e.previousSnapshot = &snapshot
	e.status = models.QuoteStatusAmended
	e.pendingChanges = nil
}

// FinalizeAmendment creates the next locked version carrying the amendment's
// change records. Rejected unless an amendment is active.
func (e *QuoteEditor) FinalizeAmendment() {
	if !e.IsAmending() {
		log.Println("quote: no active amendment to finalize")
		return
	}

	now := time.Now()
	e.versions = append(e.versions, models.QuoteVersion{
		VersionNumber: len(e.versions) + 1,
		Status:        models.QuoteStatusLocked,
		CreatedAt:     now,
		LockedAt:      &now,
		Snapshot:      CloneQuote(e.quote),
		Changes:       e.pendingChanges,
	})
	e.status = models.QuoteStatusLocked
	e.pendingChanges = nil
	e.previousSnapshot = nil
}

// DiscardAmendment restores the pre-edit snapshot exactly and returns to
// locked without creating a version. Rejected unless an amendment is active.
func (e *QuoteEditor) DiscardAmendment() {
	if !e.IsAmending() {
		log.Println("quote: no active amendment to discard")
		return
	}

	e.quote = *e.previousSnapshot
	e.status = models.QuoteStatusLocked
	e.pendingChanges = nil
	e.previousSnapshot = nil
}

// LineItemChanges returns the pending change records for one line item.
func (e *QuoteEditor) LineItemChanges(lineItemID string) []models.ChangeRecord {
	var changes []models.ChangeRecord
	for _, c := range e.pendingChanges {
		if c.LineItemID == lineItemID {
			changes = append(changes, c)
		}
	}
	return changes
}

// HasFieldChanged reports whether a line item field has a pending change.
// Added and removed records count as a change to every field.
func (e *QuoteEditor) HasFieldChanged(lineItemID, field string) bool {
	for _, c := range e.pendingChanges {
		if c.LineItemID != lineItemID {
			continue
		}
		if c.Type == models.ChangeAdded || c.Type == models.ChangeRemoved {
			return true
		}
		if c.Type == models.ChangeModified && c.Field == field {
			return true
		}
	}
	return false
}

// PreviousValue returns the pre-amendment value of a modified field.
func (e *QuoteEditor) PreviousValue(lineItemID, field string) (interface{}, bool) {
	for _, c := range e.pendingChanges {
		if c.LineItemID == lineItemID && c.Type == models.ChangeModified && c.Field == field {
			return c.PreviousValue, true
		}
	}
	return nil, false
}

func lineItemField(li models.QuoteLineItem, field string) interface{} {
	switch field {
	case "description":
		return li.Description
	case "quantity":
		return li.Quantity
	case "unit":
		return li.Unit
	case "unit_price":
		return li.UnitPrice
	case "total":
		return li.Total()
	}
	return nil
}

// DiffLineItems computes the added/removed/modified change set between two
// snapshots of a line item collection. Additions come first, then removals,
// then per-field modifications, each group in input order. Field values are
// compared with strict inequality; zero is a legitimate value and must
// never be coerced away.
func DiffLineItems(oldItems, newItems []models.QuoteLineItem) []models.ChangeRecord {
	timestamp := time.Now()
	oldMap := make(map[string]models.QuoteLineItem, len(oldItems))
	for _, item := range oldItems {
		oldMap[item.ID] = item
	}
	newMap := make(map[string]models.QuoteLineItem, len(newItems))
	for _, item := range newItems {
		newMap[item.ID] = item
	}

	var changes []models.ChangeRecord

	for _, item := range newItems {
		if _, ok := oldMap[item.ID]; !ok {
			changes = append(changes, models.ChangeRecord{
				Type:       models.ChangeAdded,
				LineItemID: item.ID,
				Timestamp:  timestamp,
			})
		}
	}

	for _, item := range oldItems {
		if _, ok := newMap[item.ID]; !ok {
			changes = append(changes, models.ChangeRecord{
				Type:       models.ChangeRemoved,
				LineItemID: item.ID,
				Timestamp:  timestamp,
			})
		}
	}

	for _, newItem := range newItems {
		oldItem, ok := oldMap[newItem.ID]
		if !ok {
			continue
		}
		for _, field := range diffFields {
			prev := lineItemField(oldItem, field)
			next := lineItemField(newItem, field)
			if prev != next {
				changes = append(changes, models.ChangeRecord{
					Type:          models.ChangeModified,
					LineItemID:    newItem.ID,
					Field:         field,
					PreviousValue: prev,
					NewValue:      next,
					Timestamp:     timestamp,
				})
			}
		}
	}

	return changes
}

// CloneQuote makes a structural deep copy of a quote. Field-by-field, not a
// serialization round trip, so nothing non-JSON-safe is silently dropped.
func CloneQuote(q models.Quote) models.Quote {
	clone := q
	if q.Sections != nil {
		clone.Sections = make([]models.QuoteSection, len(q.Sections))
		copy(clone.Sections, q.Sections)
	}
	if q.LineItems != nil {
		clone.LineItems = make([]models.QuoteLineItem, len(q.LineItems))
		for i, li := range q.LineItems {
			copied := li
			if li.SectionID != nil {
				sid := *li.SectionID
				copied.SectionID = &sid
			}
			clone.LineItems[i] = copied
		}
	}
	return clone
}
