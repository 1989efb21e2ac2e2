package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/intranet-portal/utils"
	"go.uber.org/goleak"
)

func TestSessionSweeperPurgesExpiredTokens(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	utils.BlacklistToken("sweeper-expired", time.Now().Add(-time.Second))
	utils.BlacklistToken("sweeper-live", time.Now().Add(time.Hour))

	sweeper := NewSessionSweeper(5 * time.Millisecond)
	sweeper.Start()
	sweeper.Start()

	assert.Eventually(t, func() bool {
		return utils.BlacklistSize() == 1
	}, time.Second, 5*time.Millisecond)
	assert.True(t, utils.IsTokenBlacklisted("sweeper-live"))

	sweeper.Stop()
	sweeper.Stop()
}

func TestSessionSweeperStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sweeper := NewSessionSweeper(time.Minute)
	sweeper.Stop()
}
