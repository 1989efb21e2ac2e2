package services

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/yeremiapane/intranet-portal/utils"
)

// SessionSweeper periodically drops expired entries from the logout
// blacklist.
type SessionSweeper struct {
	Interval time.Duration
	StopChan chan struct{}

	done     chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

func NewSessionSweeper(interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		Interval: interval,
		StopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (ss *SessionSweeper) Start() {
	if !ss.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(ss.done)

		ticker := time.NewTicker(ss.Interval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				ss.sweep(now)
			case <-ss.StopChan:
				return
			}
		}
	}()
}

// Stop ends the sweeper and waits for its goroutine. Safe to call twice.
func (ss *SessionSweeper) Stop() {
	ss.stopOnce.Do(func() {
		close(ss.StopChan)
	})
	if ss.started.Load() {
		<-ss.done
	}
}

func (ss *SessionSweeper) sweep(now time.Time) {
	if removed := utils.PurgeExpiredTokens(now); removed > 0 {
		utils.InfoLogger.Printf("Removed %d expired sessions from blacklist", removed)
	}
}
