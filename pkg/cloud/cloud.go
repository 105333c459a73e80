// Package cloud simulates the Google account used for backup sync. No data
// leaves the machine; login fabricates an account and sync only advances its
// timestamp after a delay.
package cloud

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/nova/pkg/errs"
	"tableflip.dev/nova/pkg/profile"
	"tableflip.dev/nova/pkg/timeutil"
)

const (
	DefaultLatency = 2 * time.Second

	// DisplayName replaces the profile name on login.
	DisplayName = "Jane Doe"
	demoEmail   = "jane.doe@gmail.com"
)

// Service is the account collaborator used by the app.
type Service interface {
	Login(ctx context.Context) (profile.CloudAccount, error)
	Sync(ctx context.Context, acct profile.CloudAccount) (timeutil.Timestamp, error)
}

// Simulated answers immediately on login and after Latency on sync.
type Simulated struct {
	Latency time.Duration
	Now     func() time.Time
	Log     *zap.Logger
}

var _ Service = (*Simulated)(nil)

func NewSimulated(latency time.Duration, log *zap.Logger) *Simulated {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulated{Latency: latency, Now: time.Now, Log: log.With(zap.String("module", "cloud"))}
}

func (s *Simulated) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Simulated) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Login returns a verified account stamped as synced now.
func (s *Simulated) Login(ctx context.Context) (profile.CloudAccount, error) {
	if err := ctx.Err(); err != nil {
		return profile.CloudAccount{}, errs.External("cloud.login", err)
	}
	now := s.now()
	acct := profile.CloudAccount{
		ID:           fmt.Sprintf("google_%d", now.UnixMilli()),
		Email:        demoEmail,
		Verified:     true,
		LastSyncedAt: timeutil.At(now),
	}
	s.log().Info("linked account", zap.String("account", acct.ID))
	return acct, nil
}

// Sync waits for the simulated round trip and returns the completion time.
// A cancelled context leaves the account untouched.
func (s *Simulated) Sync(ctx context.Context, acct profile.CloudAccount) (timeutil.Timestamp, error) {
	if acct.ID == "" {
		return timeutil.Timestamp{}, errs.External("cloud.sync", fmt.Errorf("no linked account"))
	}
	if s.Latency > 0 {
		t := time.NewTimer(s.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return timeutil.Timestamp{}, errs.External("cloud.sync", ctx.Err())
		case <-t.C:
		}
	}
	at := timeutil.At(s.now())
	s.log().Info("synced", zap.String("account", acct.ID), zap.Time("at", at.Time))
	return at, nil
}
