package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Encode serializes the non-default parts of a filter state into query
// parameters. Set fields are comma-joined; default values are omitted so
// equivalent states always share one canonical URL. The page size is never
// written — it is not part of the query-string contract.
func Encode(state FilterState) url.Values {
	state = state.normalize()
	values := url.Values{}
	for _, field := range SetFields {
		if selected := state.Values(field); len(selected) > 0 {
			values.Set(string(field), strings.Join(selected, ","))
		}
	}
	if state.MinPrice > 0 {
		values.Set("minPrice", strconv.Itoa(state.MinPrice))
	}
	if state.MaxPrice < PriceCeiling {
		values.Set("maxPrice", strconv.Itoa(state.MaxPrice))
	}
	if state.Sort != SortNewest {
		values.Set("sort", string(state.Sort))
	}
	if state.Page > 1 {
		values.Set("page", strconv.Itoa(state.Page))
	}
	return values
}

// Decode hydrates a filter state from query parameters. Malformed input is
// treated as absent rather than surfaced: unknown tokens drop out of the
// sets, non-numeric prices and pages fall back to defaults, and the price
// bounds clamp and reorder. A bad link degrades to a broader listing
// instead of an error page.
func Decode(values url.Values) FilterState {
	state := DefaultFilterState()
	for _, field := range SetFields {
		if raw := values.Get(string(field)); raw != "" {
			state.setValues(field, strings.Split(raw, ","))
		}
	}
	if v, ok := parseIntParam(values.Get("minPrice")); ok {
		state.MinPrice = v
	}
	if v, ok := parseIntParam(values.Get("maxPrice")); ok {
		state.MaxPrice = v
	}
	if raw := values.Get("sort"); raw != "" {
		state.Sort = ParseSort(raw)
	}
	if v, ok := parseIntParam(values.Get("page")); ok && v >= 1 {
		state.Page = v
	}
	return state.normalize()
}

func parseIntParam(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CanonicalPath renders the canonical storefront URL for a state: the bare
// base path when everything is default, otherwise base plus the encoded
// query. Fragment responses push this value so the address bar always
// reflects the displayed filters.
func CanonicalPath(base string, state FilterState) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = "/products"
	}
	if encoded := Encode(state).Encode(); encoded != "" {
		return base + "?" + encoded
	}
	return base
}

// APIQuery builds the parameter set sent to the product-listing API: the
// canonical query parameters plus explicit page and limit, which the
// collaborator always expects.
func APIQuery(state FilterState) url.Values {
	state = state.normalize()
	values := Encode(state)
	values.Set("page", strconv.Itoa(state.Page))
	values.Set("limit", strconv.Itoa(state.Limit))
	return values
}
