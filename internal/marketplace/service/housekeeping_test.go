package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/estate/internal/marketplace/otp"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

func TestHousekeepingSweep(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	hk := NewHousekeepingService(f.auth.Ledger, slogx.Discard(), 0)
	require.Equal(t, otp.DefaultSweepInterval, hk.Interval)

	_, err := f.auth.RequestCode(ctx, buyerPhone, "buyer")
	require.NoError(t, err)
	_, err = f.auth.RequestCode(ctx, "9123456789", "buyer")
	require.NoError(t, err)

	require.Equal(t, 0, hk.Sweep(ctx))

	f.clock.Advance(otp.DefaultTTL + time.Second)
	require.Equal(t, 2, hk.Sweep(ctx))
	require.Equal(t, 0, hk.Sweep(ctx))
}

func TestHousekeepingStartStop(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	hk := NewHousekeepingService(f.auth.Ledger, slogx.Discard(), time.Hour)
	hk.Start()
	hk.Stop()
}
