package catalog

import "laraibcreative.com/store-web/internal/format"

// Chip is one removable entry in the active-filters row. Remove holds the
// state that results from clearing just this chip, so callers can turn it
// into a link without reimplementing the removal rules.
type Chip struct {
	Field  Field
	Value  string
	Label  string
	Remove FilterState
}

// Chips derives the removable chips for every active filter value. Set
// values produce one chip each; a narrowed price range produces a single
// chip whose removal restores the full range.
func Chips(state FilterState) []Chip {
	var chips []Chip
	for _, field := range SetFields {
		for _, value := range state.Values(field) {
			chips = append(chips, Chip{
				Field:  field,
				Value:  value,
				Label:  FieldLabel(field) + ": " + OptionLabel(field, value),
				Remove: Reduce(state, RemoveValue{Field: field, Value: value}),
			})
		}
	}
	if state.PriceNarrowed() {
		chips = append(chips, Chip{
			Field:  "price",
			Label:  "Price: " + format.Rupees(state.MinPrice) + " – " + format.Rupees(state.MaxPrice),
			Remove: Reduce(state, ResetPrice{}),
		})
	}
	return chips
}
