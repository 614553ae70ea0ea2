// ABOUTME: Tests for the JSON-lines replay source
// ABOUTME: Covers parsing, filtering, and cancellation

package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, ch <-chan Fix) []Fix {
	t.Helper()
	var fixes []Fix
	timeout := time.After(2 * time.Second)
	for {
		select {
		case fix, ok := <-ch:
			if !ok {
				return fixes
			}
			fixes = append(fixes, fix)
		case <-timeout:
			t.Fatal("timed out draining fix stream")
		}
	}
}

func TestReplaySourceParsesLines(t *testing.T) {
	input := `{"latitude": 41.8902, "longitude": 12.4922, "recorded_at": "2026-08-30T09:00:00Z"}
{"latitude": 41.9000, "longitude": 12.5000, "recorded_at": "2026-08-30T09:01:00Z"}
`
	src := NewReplaySource(strings.NewReader(input))
	ch, err := src.Subscribe(context.Background(), SubscribeOptions{})
	require.NoError(t, err)

	fixes := collect(t, ch)
	require.Len(t, fixes, 2)
	assert.Equal(t, 41.8902, fixes[0].Latitude)
	assert.Equal(t, 12.5000, fixes[1].Longitude)
	assert.Equal(t, time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC), fixes[0].RecordedAt)
}

func TestReplaySourceSkipsMalformedLines(t *testing.T) {
	input := `{"latitude": 41.8902, "longitude": 12.4922, "recorded_at": "2026-08-30T09:00:00Z"}
not json at all

{"latitude": "nope"}
{"latitude": 41.9000, "longitude": 12.5000, "recorded_at": "2026-08-30T09:01:00Z"}
`
	src := NewReplaySource(strings.NewReader(input))
	ch, err := src.Subscribe(context.Background(), SubscribeOptions{})
	require.NoError(t, err)

	fixes := collect(t, ch)
	require.Len(t, fixes, 2, "bad records must not end the stream")
}

func TestReplaySourceMinInterval(t *testing.T) {
	// Second fix arrives 2 s after the first, below the 5 s floor.
	input := `{"latitude": 41.8902, "longitude": 12.4922, "recorded_at": "2026-08-30T09:00:00Z"}
{"latitude": 41.9000, "longitude": 12.5000, "recorded_at": "2026-08-30T09:00:02Z"}
{"latitude": 41.9100, "longitude": 12.5100, "recorded_at": "2026-08-30T09:00:10Z"}
`
	src := NewReplaySource(strings.NewReader(input))
	ch, err := src.Subscribe(context.Background(), SubscribeOptions{MinInterval: 5 * time.Second})
	require.NoError(t, err)

	fixes := collect(t, ch)
	require.Len(t, fixes, 2)
	assert.Equal(t, 41.8902, fixes[0].Latitude)
	assert.Equal(t, 41.9100, fixes[1].Latitude)
}

func TestReplaySourceMinDisplacement(t *testing.T) {
	// Middle fix is about half a meter from the first, below a 10 m floor.
	input := `{"latitude": 41.890200, "longitude": 12.4922, "recorded_at": "2026-08-30T09:00:00Z"}
{"latitude": 41.890205, "longitude": 12.4922, "recorded_at": "2026-08-30T09:01:00Z"}
{"latitude": 41.900000, "longitude": 12.5000, "recorded_at": "2026-08-30T09:02:00Z"}
`
	src := NewReplaySource(strings.NewReader(input))
	ch, err := src.Subscribe(context.Background(), SubscribeOptions{MinDisplacementM: 10})
	require.NoError(t, err)

	fixes := collect(t, ch)
	require.Len(t, fixes, 2)
	assert.Equal(t, 41.900000, fixes[1].Latitude)
}

func TestReplaySourceCancellation(t *testing.T) {
	// An endless reader; cancellation is the only way out.
	input := strings.NewReader(strings.Repeat(
		`{"latitude": 41.89, "longitude": 12.49, "recorded_at": "2026-08-30T09:00:00Z"}`+"\n", 10000))
	src := NewReplaySource(input)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := src.Subscribe(ctx, SubscribeOptions{})
	require.NoError(t, err)

	<-ch
	cancel()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("stream did not close after cancellation")
		}
	}
}

func TestReplaySourceStampsMissingTimestamps(t *testing.T) {
	input := `{"latitude": 41.8902, "longitude": 12.4922}
`
	src := NewReplaySource(strings.NewReader(input))
	ch, err := src.Subscribe(context.Background(), SubscribeOptions{})
	require.NoError(t, err)

	fixes := collect(t, ch)
	require.Len(t, fixes, 1)
	assert.False(t, fixes[0].RecordedAt.IsZero())
}
