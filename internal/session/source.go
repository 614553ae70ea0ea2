// ABOUTME: Location stream source interface and JSON-lines replay implementation
// ABOUTME: Decouples the session controller from any platform location service

package session

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/dmarchetti/viaggio/internal/geo"
)

// Fix is one raw position report from a location source.
type Fix struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Altitude   *float64  `json:"altitude,omitempty"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	Speed      *float64  `json:"speed,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SubscribeOptions mirror the knobs platform location services expose:
// a minimum time between updates and a minimum displacement.
type SubscribeOptions struct {
	// MinInterval is the minimum time between delivered fixes.
	MinInterval time.Duration
	// MinDisplacementM is the minimum movement in meters between delivered fixes.
	MinDisplacementM float64
}

// Source is a stream of position fixes. Subscribe returns a channel that is
// closed when the source ends or the context is cancelled; cancellation is
// the unsubscribe operation. A source that stops delivering (lost permission,
// no signal) simply goes quiet - silence means "no update", not an error.
type Source interface {
	Subscribe(ctx context.Context, opts SubscribeOptions) (<-chan Fix, error)
}

// ReplaySource delivers fixes parsed from JSON-lines input, one object per
// line. It applies the subscription's interval and displacement filters
// against the recorded timestamps and coordinates, the way a platform
// service would, and is the production twin of the test fake.
type ReplaySource struct {
	r io.Reader

	// Pace, when set, sleeps between fixes to reproduce the recorded
	// timing instead of delivering as fast as the consumer reads.
	Pace bool
}

// NewReplaySource creates a source reading JSON-lines fixes from r.
func NewReplaySource(r io.Reader) *ReplaySource {
	return &ReplaySource{r: r}
}

// Subscribe starts a goroutine that parses and delivers fixes until the
// input ends or ctx is cancelled. Malformed lines are skipped: a location
// feed is noisy by nature and one bad record must not end the session.
func (s *ReplaySource) Subscribe(ctx context.Context, opts SubscribeOptions) (<-chan Fix, error) {
	ch := make(chan Fix)

	go func() {
		defer close(ch)

		scanner := bufio.NewScanner(s.r)
		var last *Fix
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			var fix Fix
			if err := json.Unmarshal(line, &fix); err != nil {
				continue
			}
			if fix.RecordedAt.IsZero() {
				fix.RecordedAt = time.Now()
			}

			if last != nil {
				if opts.MinInterval > 0 && fix.RecordedAt.Sub(last.RecordedAt) < opts.MinInterval {
					continue
				}
				if opts.MinDisplacementM > 0 {
					moved := geo.Haversine(last.Latitude, last.Longitude, fix.Latitude, fix.Longitude) * 1000
					if moved < opts.MinDisplacementM {
						continue
					}
				}
				if s.Pace {
					gap := fix.RecordedAt.Sub(last.RecordedAt)
					if gap > 0 {
						select {
						case <-time.After(gap):
						case <-ctx.Done():
							return
						}
					}
				}
			}

			select {
			case ch <- fix:
				f := fix
				last = &f
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
