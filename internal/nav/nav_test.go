package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMarksActiveSection(t *testing.T) {
	t.Parallel()

	items := Build("/products/midnight-silk-gown")
	require.Len(t, items, len(Main))
	for _, item := range items {
		require.Equal(t, item.Href == "/products", item.Active)
	}

	items = Build("/productsabc")
	for _, item := range items {
		require.False(t, item.Active, "prefix match needs a path boundary")
	}
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs("/")
	require.Len(t, crumbs, 1)
	require.True(t, crumbs[0].Active)

	crumbs = Breadcrumbs("/products/midnight-silk-gown")
	require.Len(t, crumbs, 3)
	require.Equal(t, "Home", crumbs[0].Label)
	require.Equal(t, "Shop", crumbs[1].Label, "top-level sections use nav labels")
	require.Equal(t, "Midnight silk gown", crumbs[2].Label)
	require.True(t, crumbs[2].Active)

	crumbs = Breadcrumbs("/blog")
	require.Len(t, crumbs, 2)
	require.Equal(t, "Journal", crumbs[1].Label)
	require.True(t, crumbs[1].Active)
}
