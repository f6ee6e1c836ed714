package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeOmitsDefaults(t *testing.T) {
	t.Parallel()

	require.Empty(t, Encode(DefaultFilterState()), "default state encodes to nothing")

	state := DefaultFilterState()
	state.Fabric = []string{"Silk"}
	state.MinPrice = 5000
	state.MaxPrice = 20000
	values := Encode(state)
	require.Equal(t, "Silk", values.Get("fabric"))
	require.Equal(t, "5000", values.Get("minPrice"))
	require.Equal(t, "20000", values.Get("maxPrice"))
	require.Empty(t, values.Get("sort"), "default sort is omitted")
	require.Empty(t, values.Get("page"), "page 1 is omitted")
	require.Empty(t, values.Get("limit"), "limit is never part of the URL")
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	states := []FilterState{
		DefaultFilterState(),
		Reduce(DefaultFilterState(), ToggleValue{Field: FieldFabric, Value: "Silk"}),
		func() FilterState {
			s := DefaultFilterState()
			s.Fabric = []string{"Lawn", "Silk"}
			s.Occasion = []string{"Wedding"}
			s.Color = []string{"Maroon", "Beige"}
			s.Size = []string{"S", "M"}
			s.Availability = []string{"in-stock"}
			s.MinPrice = 2500
			s.MaxPrice = 30000
			s.Sort = SortPriceDesc
			s.Page = 7
			return s.normalize()
		}(),
	}

	for _, state := range states {
		decoded := Decode(Encode(state))
		require.True(t, decoded.Equal(state), "round trip must be lossless: %#v", state)
	}
}

func TestDecodeToleratesMalformedInput(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("fabric=Silk,Nylon&minPrice=abc&maxPrice=999999&sort=cheapest&page=-3")
	require.NoError(t, err)

	state := Decode(values)
	require.Equal(t, []string{"Silk"}, state.Fabric, "unknown tokens drop out")
	require.Equal(t, 0, state.MinPrice, "non-numeric price treated as absent")
	require.Equal(t, PriceCeiling, state.MaxPrice, "out-of-range price clamps")
	require.Equal(t, SortNewest, state.Sort, "unknown sort falls back")
	require.Equal(t, 1, state.Page, "bad page falls back")
}

func TestDecodeSwapsInvertedPriceBounds(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("minPrice=20000&maxPrice=5000")
	require.NoError(t, err)

	state := Decode(values)
	require.Equal(t, 5000, state.MinPrice)
	require.Equal(t, 20000, state.MaxPrice)
}

func TestCanonicalPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/products", CanonicalPath("/products", DefaultFilterState()))

	state := DefaultFilterState()
	state.Fabric = []string{"Silk"}
	state.MinPrice = 5000
	state.MaxPrice = 20000
	require.Equal(t, "/products?fabric=Silk&maxPrice=20000&minPrice=5000",
		CanonicalPath("/products", state))
}

func TestDecodeIsCaseInsensitiveOnTokens(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("fabric=silk&color=BLACK,white")
	require.NoError(t, err)

	state := Decode(values)
	require.Equal(t, []string{"Silk"}, state.Fabric)
	require.Equal(t, []string{"Black", "White"}, state.Color)

	// Re-encoding yields the canonical casing, so sloppy inbound links
	// normalize to one URL.
	require.Equal(t, "Black,White", Encode(state).Get("color"))
}

func TestAPIQueryAlwaysCarriesPageAndLimit(t *testing.T) {
	t.Parallel()

	values := APIQuery(DefaultFilterState())
	require.Equal(t, "1", values.Get("page"))
	require.Equal(t, "12", values.Get("limit"))

	state := Reduce(DefaultFilterState(), SetPage{Page: 3})
	state.Limit = 24
	values = APIQuery(state)
	require.Equal(t, "3", values.Get("page"))
	require.Equal(t, "24", values.Get("limit"))
}
