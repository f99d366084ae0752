// Package catalog is the authoritative table of purchasable items.
//
// Both deployments (the client cart model and the checkout handler) read
// this one table, so the price shown before checkout and the price charged
// can never diverge. Unit amounts are in øre.
package catalog

// Entry describes one purchasable menu item.
type Entry struct {
	ID          string
	Name        string
	UnitAmount  int64
	Description string
	Tag         string
	Allergens   []string
}

// The menu, in display order.
var entries = []Entry{
	{
		ID:          "kebab_tallerken",
		Name:        "Kebabtallerken",
		UnitAmount:  17900,
		Description: "Kebabkjøtt, fries, salat, dressing. Klassikeren.",
		Tag:         "Bestselger",
		Allergens:   []string{"Gluten (hvete)", "Melk"},
	},
	{
		ID:          "kebab_i_pita",
		Name:        "Kebab i pita",
		UnitAmount:  14900,
		Description: "Kebabkjøtt i pita med salat og valgfri dressing.",
		Tag:         "Rask",
		Allergens:   []string{"Gluten (hvete)", "Melk"},
	},
	{
		ID:          "rull",
		Name:        "Kebab rull",
		UnitAmount:  16900,
		Description: "Stor rull med kebabkjøtt, salat og dressing.",
		Tag:         "Stor",
		Allergens:   []string{"Gluten (hvete)", "Melk"},
	},
	{
		ID:          "falafel_rull",
		Name:        "Falafel rull",
		UnitAmount:  15900,
		Description: "Sprø falafel, salat og tahini/dressing.",
		Tag:         "Vegetar",
		Allergens:   []string{"Gluten (hvete)", "Sesam"},
	},
	{
		ID:          "loaded_fries",
		Name:        "Loaded fries",
		UnitAmount:  13900,
		Description: "Fries toppet med kebabkjøtt, ost og chilisaus.",
		Tag:         "Spicy",
		Allergens:   []string{"Melk"},
	},
	{
		ID:          "drikke",
		Name:        "Brus",
		UnitAmount:  4500,
		Description: "Coca-Cola / Fanta / Sprite (0,5L).",
		Tag:         "Kald",
		Allergens:   nil,
	},
}

var byID = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}()

// Lookup returns the entry for id, if it exists.
func Lookup(id string) (Entry, bool) {
	e, ok := byID[id]
	return e, ok
}

// Entries returns the menu in display order. The returned entries are
// copies, allergen lists included, so callers cannot mutate the table.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		if len(e.Allergens) > 0 {
			e.Allergens = append([]string(nil), e.Allergens...)
		}
		out[i] = e
	}
	return out
}

// Len returns the number of catalog entries.
func Len() int {
	return len(entries)
}
