package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGetRemoveJob(t *testing.T) {
	s := NewEventScheduler()

	require.NoError(t, s.AddJob("cleanup", "0 4 * * *", func() {}))
	assert.Error(t, s.AddJob("cleanup", "0 4 * * *", func() {}))

	info, ok := s.GetJob("cleanup")
	require.True(t, ok)
	assert.Equal(t, "0 4 * * *", info.CronExpr)
	assert.NotNil(t, info.NextRun)
	assert.Nil(t, info.LastRun)

	require.NoError(t, s.RemoveJob("cleanup"))
	_, ok = s.GetJob("cleanup")
	assert.False(t, ok)
	assert.Error(t, s.RemoveJob("cleanup"))
}

func TestStartStop(t *testing.T) {
	s := NewEventScheduler()
	assert.False(t, s.IsRunning())
	s.Start()
	assert.True(t, s.IsRunning())
	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestValidateCronExpression(t *testing.T) {
	assert.NoError(t, ValidateCronExpression("*/5 * * * *"))
	assert.Error(t, ValidateCronExpression("not a cron"))
}
