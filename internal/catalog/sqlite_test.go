package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openSeededSQLite(t *testing.T) *SQLiteCatalog {
	t.Helper()
	ctx := context.Background()

	db, err := OpenSQLiteCatalog(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	empty, err := db.Empty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, db.Seed(ctx, NewStaticCatalog().Products()))
	return db
}

func TestSQLiteCatalogMatchesStaticListing(t *testing.T) {
	t.Parallel()

	db := openSeededSQLite(t)
	ctx := context.Background()

	static := NewStaticCatalog()
	states := []FilterState{
		DefaultFilterState(),
		func() FilterState {
			s := DefaultFilterState()
			s.Fabric = []string{"Silk"}
			s.MinPrice = 5000
			s.MaxPrice = 20000
			return s
		}(),
		func() FilterState {
			s := DefaultFilterState()
			s.Color = []string{"Maroon"}
			s.Sort = SortPriceAsc
			return s
		}(),
		func() FilterState {
			s := DefaultFilterState()
			s.Availability = []string{AvailabilityOutOfStock}
			return s
		}(),
	}

	for _, state := range states {
		want, err := static.List(ctx, state)
		require.NoError(t, err)
		got, err := db.List(ctx, state)
		require.NoError(t, err)

		require.Equal(t, want.Total, got.Total, "state %#v", state)
		require.Len(t, got.Products, len(want.Products))
		for i := range want.Products {
			require.Equal(t, want.Products[i].Slug, got.Products[i].Slug)
		}
	}
}

func TestSQLiteCatalogVariantsRoundTrip(t *testing.T) {
	t.Parallel()

	db := openSeededSQLite(t)

	p, err := db.Get(context.Background(), "garden-lawn-two-piece")
	require.NoError(t, err)
	require.Equal(t, []string{"White", "Green"}, p.Colors, "colors come back in option order")
	require.Equal(t, []string{"XS", "S", "M", "L", "XL"}, p.Sizes)
	require.True(t, p.InStock)
}

func TestSQLiteCatalogGetMissing(t *testing.T) {
	t.Parallel()

	db := openSeededSQLite(t)

	_, err := db.Get(context.Background(), "no-such-slug")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestSQLiteCatalogSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	db := openSeededSQLite(t)
	ctx := context.Background()

	require.NoError(t, db.Seed(ctx, NewStaticCatalog().Products()))

	result, err := db.List(ctx, DefaultFilterState())
	require.NoError(t, err)
	require.Equal(t, 14, result.Total, "reseeding must not duplicate rows")
}
