package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCheckerAllHealthy(t *testing.T) {
	t.Parallel()

	checker := NewChecker(time.Second, time.Minute)
	checker.Register("catalog", func(context.Context) error { return nil })
	checker.Register("redis", func(context.Context) error { return nil })

	summary := checker.Check(context.Background())
	require.Equal(t, StateOK, summary.Status)
	require.Len(t, summary.Components, 2)
	require.Equal(t, "catalog", summary.Components[0].Name, "report follows registration order")
	require.Equal(t, "redis", summary.Components[1].Name)
}

func TestCheckerReportsDegradedComponent(t *testing.T) {
	t.Parallel()

	checker := NewChecker(time.Second, time.Minute)
	checker.Register("catalog", func(context.Context) error { return nil })
	checker.Register("cart", func(context.Context) error { return errors.New("connection refused") })

	summary := checker.Check(context.Background())
	require.Equal(t, StateDegraded, summary.Status)
	require.Equal(t, StateOK, summary.Components[0].Status)
	require.Equal(t, StateDegraded, summary.Components[1].Status)
	require.Contains(t, summary.Components[1].Error, "connection refused")
}

func TestCheckerCachesResults(t *testing.T) {
	t.Parallel()

	var calls int
	checker := NewChecker(time.Second, time.Minute)
	checker.Register("catalog", func(context.Context) error {
		calls++
		return nil
	})

	checker.Check(context.Background())
	checker.Check(context.Background())
	require.Equal(t, 1, calls, "fresh summaries are served from cache")
}

func TestCheckerTimesOutSlowProbes(t *testing.T) {
	t.Parallel()

	checker := NewChecker(50*time.Millisecond, time.Minute)
	checker.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	done := make(chan Summary, 1)
	go func() { done <- checker.Check(context.Background()) }()

	select {
	case summary := <-done:
		require.Equal(t, StateDegraded, summary.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("check did not respect the probe timeout")
	}
}
