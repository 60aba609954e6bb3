package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoll_ImmediateSuccess(t *testing.T) {
	calls := 0
	v, err := Poll(context.Background(), time.Millisecond, time.Second, func() (int, bool, error) {
		calls++
		return 42, true, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestPoll_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	v, err := Poll(context.Background(), time.Millisecond, time.Second, func() (string, bool, error) {
		calls++
		if calls < 3 {
			return "", false, nil
		}
		return "ready", true, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ready", v)
	assert.Equal(t, 3, calls)
}

func TestPoll_Timeout(t *testing.T) {
	_, err := Poll(context.Background(), time.Millisecond, 20*time.Millisecond, func() (int, bool, error) {
		return 0, false, nil
	})

	assert.ErrorIs(t, err, ErrPollTimeout)
}

func TestPoll_ErrorStopsPolling(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := Poll(context.Background(), time.Millisecond, time.Second, func() (int, bool, error) {
		calls++
		return 0, false, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestPoll_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Poll(ctx, time.Millisecond, time.Second, func() (int, bool, error) {
		return 0, false, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}
