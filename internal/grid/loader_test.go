package grid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"laraibcreative.com/store-web/internal/catalog"
)

type fakeService struct {
	listFn func(ctx context.Context, state catalog.FilterState) (catalog.ListResult, error)
}

func (f *fakeService) List(ctx context.Context, state catalog.FilterState) (catalog.ListResult, error) {
	return f.listFn(ctx, state)
}

func (f *fakeService) Get(context.Context, string) (catalog.Product, error) {
	return catalog.Product{}, catalog.ErrProductNotFound
}

func resultWithTotal(total int) catalog.ListResult {
	products := make([]catalog.Product, 0, total)
	for i := 0; i < total; i++ {
		products = append(products, catalog.Product{Slug: "p"})
	}
	return catalog.ListResult{Products: products, Total: total, Page: 1, Limit: 12}
}

func TestLoaderClassifiesPhases(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	loader := NewLoader(svc)
	ctx := context.Background()
	state := catalog.DefaultFilterState()

	svc.listFn = func(context.Context, catalog.FilterState) (catalog.ListResult, error) {
		return resultWithTotal(3), nil
	}
	snap, ok := loader.Load(ctx, state)
	require.True(t, ok)
	require.Equal(t, PhasePopulated, snap.Phase)
	require.Equal(t, 3, snap.Result.Total)

	svc.listFn = func(context.Context, catalog.FilterState) (catalog.ListResult, error) {
		return catalog.ListResult{Page: 1, Limit: 12}, nil
	}
	snap, ok = loader.Load(ctx, state)
	require.True(t, ok)
	require.Equal(t, PhaseEmpty, snap.Phase)

	svc.listFn = func(context.Context, catalog.FilterState) (catalog.ListResult, error) {
		return catalog.ListResult{}, errors.New("backend down")
	}
	snap, ok = loader.Load(ctx, state)
	require.True(t, ok)
	require.Equal(t, PhaseError, snap.Phase)
	require.Error(t, snap.Err)
	require.Equal(t, snap, loader.Current())
}

func TestLoaderDiscardsSupersededResult(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	svc := &fakeService{
		listFn: func(_ context.Context, state catalog.FilterState) (catalog.ListResult, error) {
			if state.Page == 1 {
				close(started)
				<-release
			}
			return resultWithTotal(state.Page), nil
		},
	}
	loader := NewLoader(svc)
	ctx := context.Background()

	type outcome struct {
		snap Snapshot
		ok   bool
	}
	slow := make(chan outcome, 1)
	go func() {
		snap, ok := loader.Load(ctx, catalog.DefaultFilterState())
		slow <- outcome{snap, ok}
	}()
	<-started

	fast := catalog.Reduce(catalog.DefaultFilterState(), catalog.SetPage{Page: 2})
	fastSnap, ok := loader.Load(ctx, fast)
	require.True(t, ok, "the newer request wins")
	require.Equal(t, 2, fastSnap.Result.Total)

	close(release)
	got := <-slow
	require.False(t, got.ok, "the superseded request must not render")
	require.Equal(t, 2, got.snap.Result.Total, "superseded caller sees the newer snapshot")
	require.Equal(t, 2, loader.Current().Result.Total)
}

func TestLoaderCancelsSupersededFetch(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	svc := &fakeService{
		listFn: func(ctx context.Context, state catalog.FilterState) (catalog.ListResult, error) {
			if state.Page == 1 {
				close(started)
				<-ctx.Done()
				return catalog.ListResult{}, ctx.Err()
			}
			return resultWithTotal(state.Page), nil
		},
	}
	loader := NewLoader(svc)
	ctx := context.Background()

	done := make(chan bool, 1)
	go func() {
		_, ok := loader.Load(ctx, catalog.DefaultFilterState())
		done <- ok
	}()
	<-started

	_, ok := loader.Load(ctx, catalog.Reduce(catalog.DefaultFilterState(), catalog.SetPage{Page: 2}))
	require.True(t, ok)

	select {
	case ok := <-done:
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded fetch was not cancelled")
	}

	require.Equal(t, PhasePopulated, loader.Current().Phase,
		"the cancelled fetch must not overwrite the newer result with an error")
}

func TestRegistryScopesLoadersPerVisitor(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		listFn: func(context.Context, catalog.FilterState) (catalog.ListResult, error) {
			return resultWithTotal(1), nil
		},
	}
	registry := NewRegistry(svc)

	a := registry.For("visitor-a")
	require.Same(t, a, registry.For("visitor-a"))
	require.NotSame(t, a, registry.For("visitor-b"))
	require.NotSame(t, registry.For(""), registry.For(""), "anonymous requests get throwaway loaders")
}
