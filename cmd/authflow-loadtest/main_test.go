package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	samples := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, time.Duration(1), percentile(samples, 0))
	assert.Equal(t, time.Duration(5), percentile(samples, 50))
	assert.Equal(t, time.Duration(10), percentile(samples, 100))
	assert.Zero(t, percentile(nil, 50))
}

func TestComputeStatsEmpty(t *testing.T) {
	s := computeStats(time.Second, nil, 0)
	assert.Zero(t, s.ops)
	assert.Equal(t, time.Second, s.total)
}

func TestLoadtestSmallRun(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--sessions", "20", "--ops", "50", "--signups", "5", "--concurrency", "4"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "using miniredis")
	assert.Contains(t, out.String(), "session get: ops=50 failures=0")
	assert.Contains(t, out.String(), "sign-up: ops=5 failures=0")
}

func TestLoadtestRejectsBadFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--concurrency", "0"})
	require.Error(t, cmd.Execute())
}
