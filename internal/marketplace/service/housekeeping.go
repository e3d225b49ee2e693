package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/otp"
)

// HousekeepingService periodically sweeps expired codes out of the OTP
// ledger so abandoned logins do not accumulate.
type HousekeepingService struct {
	Ledger   *otp.Ledger
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a sweeper. A non-positive interval falls
// back to otp.DefaultSweepInterval.
func NewHousekeepingService(ledger *otp.Ledger, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = otp.DefaultSweepInterval
	}

	return &HousekeepingService{
		Ledger:   ledger,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweeper in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep removes expired codes once and returns how many were removed.
func (s *HousekeepingService) Sweep(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.Interval)
	defer cancel()

	n, err := s.Ledger.Sweep(ctx)
	if err != nil {
		s.Logger.Error("failed to sweep expired otp entries", "error", err)
		return n
	}
	if n > 0 {
		s.Logger.Info("swept expired otp entries", "deleted", n)
	} else {
		s.Logger.Debug("otp sweep found nothing to delete")
	}
	return n
}
