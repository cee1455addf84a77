package services

import (
	"estimator/models"
)

// CatalogResolver is a static lookup from a takeoff item id to pricing and
// classification metadata. The registry is a closed set known at load time;
// an unknown id is an expected outcome, not an error.
type CatalogResolver struct {
	entries map[string]models.CatalogEntry
}

// NewCatalogResolver builds a resolver from catalog rows. The section name
// prefers the subcategory when one is set, matching how the catalog screens
// group items.
func NewCatalogResolver(items []models.CatalogItemGorm) *CatalogResolver {
	entries := make(map[string]models.CatalogEntry, len(items))
	for _, item := range items {
		section := item.CategoryName
		if item.SubcategoryName != "" {
			section = item.SubcategoryName
		}
		entries[item.ID] = models.CatalogEntry{
			CatalogCode: item.Code,
			Name:        item.Label,
			Description: item.Description,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			UnitCost:    item.UnitCost,
			SectionName: section,
		}
	}
	return &CatalogResolver{entries: entries}
}

// NewCatalogResolverFromEntries builds a resolver from an already keyed map.
func NewCatalogResolverFromEntries(entries map[string]models.CatalogEntry) *CatalogResolver {
	copied := make(map[string]models.CatalogEntry, len(entries))
	for id, entry := range entries {
		copied[id] = entry
	}
	return &CatalogResolver{entries: copied}
}

// Resolve looks up the catalog entry for a takeoff item id. The second
// return value reports whether the id is known.
func (r *CatalogResolver) Resolve(itemID string) (models.CatalogEntry, bool) {
	entry, ok := r.entries[itemID]
	return entry, ok
}

// Len returns the number of registered catalog entries.
func (r *CatalogResolver) Len() int {
	return len(r.entries)
}
