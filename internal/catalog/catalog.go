package catalog

import (
	"sort"
	"strings"
)

type Category string

const (
	Proteins   Category = "Proteins"
	Vegetables Category = "Vegetables"
	Liquids    Category = "Liquids"
)

// Entry is one ingredient with its unit weight in grams. Discrete items
// such as eggs carry the weight of a single piece.
type Entry struct {
	Name     string
	Weight   float64
	Category Category
}

// Catalog is an immutable ingredient table. Lookups of unknown names
// return a zero weight instead of failing.
type Catalog struct {
	entries []Entry
	index   map[string]int
	folded  map[string]int
}

func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
		folded:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.index[e.Name]; dup {
			continue
		}
		c.index[e.Name] = len(c.entries)
		c.folded[strings.ToLower(e.Name)] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

var defaultEntries = []Entry{
	{Name: "Carrots", Weight: 100, Category: Vegetables},
	{Name: "Potatoes", Weight: 150, Category: Vegetables},
	{Name: "Onions", Weight: 80, Category: Vegetables},
	{Name: "Chicken", Weight: 200, Category: Proteins},
	{Name: "Eggs", Weight: 50, Category: Proteins},
	{Name: "Fish", Weight: 180, Category: Proteins},
	{Name: "Water", Weight: 500, Category: Liquids},
	{Name: "Broth", Weight: 500, Category: Liquids},
	{Name: "Milk", Weight: 250, Category: Liquids},
	{Name: "Coconut Milk", Weight: 250, Category: Liquids},
	{Name: "Cream", Weight: 100, Category: Liquids},
	{Name: "Tofu", Weight: 200, Category: Proteins},
	{Name: "Peas", Weight: 100, Category: Vegetables},
	{Name: "Tomatoes", Weight: 100, Category: Vegetables},
}

var defaultCatalog = New(defaultEntries)

// Default returns the process-wide catalog the estimator is trained against.
func Default() *Catalog {
	return defaultCatalog
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Weight returns the unit weight of name, or 0 when name is not listed.
func (c *Catalog) Weight(name string) float64 {
	i, ok := c.index[name]
	if !ok {
		return 0
	}
	return c.entries[i].Weight
}

func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Lookup resolves a case-insensitive name to its catalog spelling.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.folded[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Names returns ingredient names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByCategory groups entries per category, each group sorted by name.
func (c *Catalog) ByCategory() map[Category][]Entry {
	groups := make(map[Category][]Entry)
	for _, e := range c.entries {
		groups[e.Category] = append(groups[e.Category], e)
	}
	for _, g := range groups {
		sort.Slice(g, func(i, j int) bool { return g[i].Name < g[j].Name })
	}
	return groups
}

// Categories lists the display order of categories.
func Categories() []Category {
	return []Category{Proteins, Vegetables, Liquids}
}
