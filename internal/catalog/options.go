package catalog

import "strings"

// Field identifies one of the multi-valued filter dimensions.
type Field string

const (
	FieldFabric       Field = "fabric"
	FieldOccasion     Field = "occasion"
	FieldColor        Field = "color"
	FieldSize         Field = "size"
	FieldAvailability Field = "availability"
)

// SetFields lists the multi-valued dimensions in display order.
var SetFields = []Field{FieldFabric, FieldOccasion, FieldColor, FieldSize, FieldAvailability}

// Availability tokens. Slugs rather than labels so they read cleanly in URLs.
const (
	AvailabilityInStock    = "in-stock"
	AvailabilityOutOfStock = "out-of-stock"
)

// Canonical option lists. The source data carried these values with
// inconsistent casing ("Lawn" vs "lawn"); these lists are the single
// authority, and input tokens normalize against them case-insensitively.
var (
	Fabrics        = []string{"Lawn", "Cotton", "Silk", "Chiffon", "Organza", "Velvet", "Khaddar", "Linen"}
	Occasions      = []string{"Casual", "Formal", "Party", "Wedding", "Eid"}
	Colors         = []string{"Black", "White", "Red", "Blue", "Green", "Pink", "Maroon", "Beige"}
	Sizes          = []string{"XS", "S", "M", "L", "XL", "XXL"}
	Availabilities = []string{AvailabilityInStock, AvailabilityOutOfStock}
)

// Options returns the canonical value list for a field.
func Options(field Field) []string {
	switch field {
	case FieldFabric:
		return Fabrics
	case FieldOccasion:
		return Occasions
	case FieldColor:
		return Colors
	case FieldSize:
		return Sizes
	case FieldAvailability:
		return Availabilities
	default:
		return nil
	}
}

// FieldLabel returns the storefront heading for a filter section.
func FieldLabel(field Field) string {
	switch field {
	case FieldFabric:
		return "Fabric"
	case FieldOccasion:
		return "Occasion"
	case FieldColor:
		return "Color"
	case FieldSize:
		return "Size"
	case FieldAvailability:
		return "Availability"
	default:
		return ""
	}
}

// OptionLabel returns the display label for a canonical token.
func OptionLabel(field Field, value string) string {
	if field == FieldAvailability {
		switch value {
		case AvailabilityInStock:
			return "In Stock"
		case AvailabilityOutOfStock:
			return "Out of Stock"
		}
	}
	return value
}

// canonicalValue resolves a raw token to its canonical form for the field.
// Unknown tokens resolve to "" and are dropped by callers.
func canonicalValue(field Field, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, opt := range Options(field) {
		if strings.EqualFold(opt, raw) {
			return opt
		}
	}
	return ""
}

// canonicalValues maps raw tokens onto the canonical option list, dropping
// unknowns and duplicates and preserving the option-list order.
func canonicalValues(field Field, raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := map[string]bool{}
	for _, v := range raw {
		if c := canonicalValue(field, v); c != "" {
			seen[c] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for _, opt := range Options(field) {
		if seen[opt] {
			out = append(out, opt)
		}
	}
	return out
}
