package catalog

import (
	"slices"
	"sync"
)

const (
	// PriceCeiling is the inclusive upper bound of the price range filter.
	PriceCeiling = 50000
	// DefaultPageSize is the grid page size when none is configured.
	DefaultPageSize = 12
	// MaxPageSize caps the page size accepted from configuration.
	MaxPageSize = 60
)

// FilterState is the complete browsing state for the product listing:
// the selected filter sets, the price range, sort and pagination. Set
// fields hold canonical tokens sorted in option-list order; an empty set
// means no constraint on that dimension.
type FilterState struct {
	Fabric       []string
	Occasion     []string
	Color        []string
	Size         []string
	Availability []string
	MinPrice     int
	MaxPrice     int
	Sort         Sort
	Page         int
	Limit        int
}

// DefaultFilterState returns the state a freshly mounted listing starts from.
func DefaultFilterState() FilterState {
	return FilterState{
		MinPrice: 0,
		MaxPrice: PriceCeiling,
		Sort:     SortNewest,
		Page:     1,
		Limit:    DefaultPageSize,
	}
}

// Values returns the selected tokens for a set field.
func (f FilterState) Values(field Field) []string {
	switch field {
	case FieldFabric:
		return f.Fabric
	case FieldOccasion:
		return f.Occasion
	case FieldColor:
		return f.Color
	case FieldSize:
		return f.Size
	case FieldAvailability:
		return f.Availability
	default:
		return nil
	}
}

func (f *FilterState) setValues(field Field, values []string) {
	values = canonicalValues(field, values)
	switch field {
	case FieldFabric:
		f.Fabric = values
	case FieldOccasion:
		f.Occasion = values
	case FieldColor:
		f.Color = values
	case FieldSize:
		f.Size = values
	case FieldAvailability:
		f.Availability = values
	}
}

// Has reports whether the given token is selected for the field.
func (f FilterState) Has(field Field, value string) bool {
	c := canonicalValue(field, value)
	return c != "" && slices.Contains(f.Values(field), c)
}

// PriceNarrowed reports whether the price range differs from the full range.
func (f FilterState) PriceNarrowed() bool {
	return f.MinPrice > 0 || f.MaxPrice < PriceCeiling
}

// ActiveCount is the number of active filters: the sum of set sizes plus
// one when the price range is narrowed. Sort, page and limit do not count.
func (f FilterState) ActiveCount() int {
	n := len(f.Fabric) + len(f.Occasion) + len(f.Color) + len(f.Size) + len(f.Availability)
	if f.PriceNarrowed() {
		n++
	}
	return n
}

// IsDefault reports whether the state equals DefaultFilterState.
func (f FilterState) IsDefault() bool {
	return f.Equal(DefaultFilterState())
}

// Equal compares two states field by field.
func (f FilterState) Equal(other FilterState) bool {
	return slices.Equal(f.Fabric, other.Fabric) &&
		slices.Equal(f.Occasion, other.Occasion) &&
		slices.Equal(f.Color, other.Color) &&
		slices.Equal(f.Size, other.Size) &&
		slices.Equal(f.Availability, other.Availability) &&
		f.MinPrice == other.MinPrice &&
		f.MaxPrice == other.MaxPrice &&
		f.Sort == other.Sort &&
		f.Page == other.Page &&
		f.Limit == other.Limit
}

// normalize clamps the state into its invariants: canonical set tokens,
// 0 <= min <= max <= ceiling, known sort, page >= 1, sane limit.
func (f FilterState) normalize() FilterState {
	for _, field := range SetFields {
		f.setValues(field, f.Values(field))
	}
	f.MinPrice = clampPrice(f.MinPrice)
	f.MaxPrice = clampPrice(f.MaxPrice)
	if f.MinPrice > f.MaxPrice {
		f.MinPrice, f.MaxPrice = f.MaxPrice, f.MinPrice
	}
	f.Sort = ParseSort(string(f.Sort))
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

func clampPrice(v int) int {
	if v < 0 {
		return 0
	}
	if v > PriceCeiling {
		return PriceCeiling
	}
	return v
}

// Action is a single intent against the filter state. Reduce applies it as
// a pure function, which keeps the update paths testable without wiring
// handler closures together.
type Action interface {
	apply(FilterState) FilterState
	// resetsPage reports whether applying the action returns the user to
	// page 1. Everything except an explicit page change does.
	resetsPage() bool
}

// ToggleValue adds the value to the field's set when absent, removes it
// when present.
type ToggleValue struct {
	Field Field
	Value string
}

func (a ToggleValue) apply(f FilterState) FilterState {
	c := canonicalValue(a.Field, a.Value)
	if c == "" {
		return f
	}
	values := slices.Clone(f.Values(a.Field))
	if i := slices.Index(values, c); i >= 0 {
		values = slices.Delete(values, i, i+1)
	} else {
		values = append(values, c)
	}
	f.setValues(a.Field, values)
	return f
}

func (ToggleValue) resetsPage() bool { return true }

// RemoveValue removes a single value from the field's set (chip removal).
type RemoveValue struct {
	Field Field
	Value string
}

func (a RemoveValue) apply(f FilterState) FilterState {
	c := canonicalValue(a.Field, a.Value)
	if c == "" {
		return f
	}
	values := slices.Clone(f.Values(a.Field))
	if i := slices.Index(values, c); i >= 0 {
		values = slices.Delete(values, i, i+1)
		f.setValues(a.Field, values)
	}
	return f
}

func (RemoveValue) resetsPage() bool { return true }

// SetValues replaces the field's set wholesale.
type SetValues struct {
	Field  Field
	Values []string
}

func (a SetValues) apply(f FilterState) FilterState {
	f.setValues(a.Field, a.Values)
	return f
}

func (SetValues) resetsPage() bool { return true }

// SetPriceRange replaces both price bounds. Out-of-range values clamp and
// an inverted pair swaps, so the min <= max invariant holds regardless of
// the order the bounds arrive in.
type SetPriceRange struct {
	Min int
	Max int
}

func (a SetPriceRange) apply(f FilterState) FilterState {
	f.MinPrice = clampPrice(a.Min)
	f.MaxPrice = clampPrice(a.Max)
	if f.MinPrice > f.MaxPrice {
		f.MinPrice, f.MaxPrice = f.MaxPrice, f.MinPrice
	}
	return f
}

func (SetPriceRange) resetsPage() bool { return true }

// ResetPrice restores the full price range (price chip removal).
type ResetPrice struct{}

func (ResetPrice) apply(f FilterState) FilterState {
	f.MinPrice = 0
	f.MaxPrice = PriceCeiling
	return f
}

func (ResetPrice) resetsPage() bool { return true }

// SetSort changes the ordering.
type SetSort struct {
	Sort Sort
}

func (a SetSort) apply(f FilterState) FilterState {
	f.Sort = ParseSort(string(a.Sort))
	return f
}

func (SetSort) resetsPage() bool { return true }

// SetPage navigates to a page. The only action that does not reset paging.
type SetPage struct {
	Page int
}

func (a SetPage) apply(f FilterState) FilterState {
	f.Page = a.Page
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

func (SetPage) resetsPage() bool { return false }

// SetLimit changes the page size.
type SetLimit struct {
	Limit int
}

func (a SetLimit) apply(f FilterState) FilterState {
	f.Limit = a.Limit
	return f
}

func (SetLimit) resetsPage() bool { return true }

// Replace swaps in a whole new state, normalized. Used for the drawer's
// batched "Apply Filters" commit.
type Replace struct {
	State FilterState
}

func (a Replace) apply(FilterState) FilterState { return a.State }

func (Replace) resetsPage() bool { return false }

// ClearAll resets every field to its default, including page and sort.
type ClearAll struct{}

func (ClearAll) apply(FilterState) FilterState { return DefaultFilterState() }

func (ClearAll) resetsPage() bool { return false }

// Reduce applies an action and re-establishes the state invariants. Any
// action other than SetPage resets the page to 1 so a narrower result set
// cannot strand the user on an out-of-range page.
func Reduce(state FilterState, action Action) FilterState {
	next := action.apply(state)
	if action.resetsPage() {
		next.Page = 1
	}
	return next.normalize()
}

// Store is the single writer for a FilterState. Updates run through the
// reducer; when the state changes the onChange hook fires (URL sync).
// A nil hook gives the detached store used for the drawer's staged copy.
type Store struct {
	mu       sync.Mutex
	state    FilterState
	onChange func(FilterState)
}

// NewStore builds a store seeded with the given state.
func NewStore(initial FilterState, onChange func(FilterState)) *Store {
	return &Store{state: initial.normalize(), onChange: onChange}
}

// State returns the current filter state.
func (s *Store) State() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies an action through the reducer and returns the new state.
func (s *Store) Update(action Action) FilterState {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, action)
	s.state = next
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil && !next.Equal(prev) {
		hook(next)
	}
	return next
}

// ClearAll resets the store to defaults.
func (s *Store) ClearAll() FilterState {
	return s.Update(ClearAll{})
}

// Staging holds the mobile drawer's working copy. Changes accumulate
// against the copy and only reach the base store on Commit; closing the
// drawer without applying discards them.
type Staging struct {
	base   *Store
	staged *Store
}

// BeginStaging snapshots the base store into a detached working copy.
func BeginStaging(base *Store) *Staging {
	return &Staging{
		base:   base,
		staged: NewStore(base.State(), nil),
	}
}

// Update applies an action to the staged copy only.
func (st *Staging) Update(action Action) FilterState {
	return st.staged.Update(action)
}

// Staged returns the current working copy.
func (st *Staging) Staged() FilterState {
	return st.staged.State()
}

// Commit pushes the staged state into the base store as one batched
// replace, landing on page 1.
func (st *Staging) Commit() FilterState {
	staged := st.staged.State()
	staged.Page = 1
	return st.base.Update(Replace{State: staged})
}

// Discard drops the staged changes; the base store is untouched.
func (st *Staging) Discard() FilterState {
	st.staged = NewStore(st.base.State(), nil)
	return st.base.State()
}
