package scoreboarddomain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCategory is returned for identifiers outside the registry.
var ErrUnknownCategory = errors.New("invalid categoryId")

// Category is a game mode both players are scored against.
type Category struct {
	ID    string
	Label string
	Group string
	Order int
}

// DefaultCategories is the built-in category table.
func DefaultCategories() []Category {
	return []Category{
		{ID: "classic", Label: "Classic", Group: "Arcade", Order: 1},
		{ID: "gates", Label: "Gates", Group: "Arcade", Order: 2},
		{ID: "assault", Label: "Assault", Group: "Arcade", Order: 3},
		{ID: "surge", Label: "Surge", Group: "Arcade", Order: 4},
		{ID: "crash", Label: "Crash", Group: "Arcade", Order: 5},
		{ID: "boss_rush", Label: "Boss Rush", Group: "Arcade", Order: 6},
		{ID: "campaign_experience_ship_a", Label: "Experience - Defier", Group: "Campaign", Order: 7},
		{ID: "campaign_experience_ship_b", Label: "Experience - Redeemer", Group: "Campaign", Order: 8},
		{ID: "campaign_experience_ship_c", Label: "Experience - Sentinel", Group: "Campaign", Order: 9},
		{ID: "campaign_challenge_ship_a", Label: "Challenge - Defier", Group: "Campaign", Order: 10},
		{ID: "campaign_challenge_ship_b", Label: "Challenge - Redeemer", Group: "Campaign", Order: 11},
		{ID: "campaign_challenge_ship_c", Label: "Challenge - Sentinel", Group: "Campaign", Order: 12},
		{ID: "campaign_revolution_ship_a", Label: "Revolution - Defier", Group: "Campaign", Order: 13},
		{ID: "campaign_revolution_ship_b", Label: "Revolution - Redeemer", Group: "Campaign", Order: 14},
		{ID: "campaign_revolution_ship_c", Label: "Revolution - Sentinel", Group: "Campaign", Order: 15},
	}
}

// Registry is the immutable set of known categories, built once at startup.
type Registry struct {
	ordered []Category
	byID    map[string]Category
}

// NewRegistry validates the table and indexes it by identifier.
// Identifiers must be non-empty and unique; the result is sorted by Order, then ID.
func NewRegistry(categories []Category) (*Registry, error) {
	if len(categories) == 0 {
		return nil, errors.New("category registry is empty")
	}

	byID := make(map[string]Category, len(categories))
	ordered := make([]Category, 0, len(categories))
	for i, c := range categories {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return nil, fmt.Errorf("category at index %d has an empty id", i)
		}
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", c.ID)
		}
		if c.Label == "" {
			c.Label = c.ID
		}
		byID[c.ID] = c
		ordered = append(ordered, c)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Order == ordered[j].Order {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Order < ordered[j].Order
	})

	return &Registry{ordered: ordered, byID: byID}, nil
}

// Lookup resolves a (trimmed) category identifier.
func (r *Registry) Lookup(id string) (Category, error) {
	c, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return Category{}, ErrUnknownCategory
	}
	return c, nil
}

// Categories returns a copy of the table in display order.
func (r *Registry) Categories() []Category {
	out := make([]Category, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len is the number of categories.
func (r *Registry) Len() int {
	return len(r.ordered)
}
