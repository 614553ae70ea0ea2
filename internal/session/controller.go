// ABOUTME: Trip tracking session controller and replay reconciliation
// ABOUTME: Bridges a live fix stream into persisted waypoints for one active trip

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmarchetti/viaggio/internal/geo"
	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Default tracking parameters, matching what a high-accuracy platform
// location request would be configured with.
const (
	DefaultUpdateInterval   = 5 * time.Second
	DefaultMinDisplacementM = 10.0
	DefaultNoiseFloorKM     = 0.001
)

// State is the controller's lifecycle state.
type State string

// Controller states. There is no paused state: stopping fully ends tracking.
const (
	StateIdle     State = "idle"
	StateTracking State = "tracking"
)

// Store is the slice of the trip store the session controller needs.
// *storage.SQLiteStore satisfies it; tests substitute fakes.
type Store interface {
	GetTrip(id uuid.UUID) (*models.Trip, error)
	ActivateTrip(id uuid.UUID) error
	AppendLocation(point *models.LocationPoint) error
	LocationsByTrip(tripID uuid.UUID) ([]*models.LocationPoint, error)
	FinalizeTrip(id uuid.UUID, endedAt time.Time, distanceKM float64) error
}

// Options configure a tracking session.
type Options struct {
	// UpdateInterval is the minimum time between location updates.
	UpdateInterval time.Duration
	// MinDisplacementM is the minimum movement in meters between updates.
	MinDisplacementM float64
	// NoiseFloorKM is the minimum incremental distance for a fix to count
	// toward the running total. Sub-floor fixes are still persisted.
	NoiseFloorKM float64
}

func (o Options) withDefaults() Options {
	if o.UpdateInterval <= 0 {
		o.UpdateInterval = DefaultUpdateInterval
	}
	if o.MinDisplacementM <= 0 {
		o.MinDisplacementM = DefaultMinDisplacementM
	}
	if o.NoiseFloorKM <= 0 {
		o.NoiseFloorKM = DefaultNoiseFloorKM
	}
	return o
}

// Status is a point-in-time snapshot of the session, the observable surface
// a presentation layer polls. The controller never depends on observers.
type Status struct {
	State      State
	TripID     uuid.UUID
	StartedAt  time.Time
	Elapsed    time.Duration
	DistanceKM float64
	Waypoints  int
	LastFix    *Fix
}

// Controller owns the lifecycle of one tracking session: it activates the
// trip, consumes the location stream, filters and accumulates distance, and
// persists every fix as a waypoint. The running total is advisory; the
// authoritative distance is always re-derived from persisted waypoints when
// the session stops, so process death loses nothing but the live readout.
type Controller struct {
	store  Store
	source Source
	opts   Options
	log    zerolog.Logger

	mu         sync.Mutex
	state      State
	tripID     uuid.UUID
	startedAt  time.Time
	distanceKM float64
	waypoints  int
	lastFix    *Fix
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewController creates an idle controller over the given store and source.
func NewController(store Store, source Source, opts Options, log zerolog.Logger) *Controller {
	return &Controller{
		store:  store,
		source: source,
		opts:   opts.withDefaults(),
		log:    log,
		state:  StateIdle,
	}
}

// Start activates the trip and begins consuming the location stream.
// Idempotent: starting while already tracking is a no-op, not an error.
// The subscription context is owned by the controller, not the caller, so
// tracking survives whatever scope issued the call.
func (c *Controller) Start(tripID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateTracking {
		c.log.Debug().Stringer("trip_id", c.tripID).Msg("already tracking")
		return nil
	}

	if _, err := c.store.GetTrip(tripID); err != nil {
		return fmt.Errorf("start tracking: %w", err)
	}
	if err := c.store.ActivateTrip(tripID); err != nil {
		return fmt.Errorf("activate trip: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	fixes, err := c.source.Subscribe(ctx, SubscribeOptions{
		MinInterval:      c.opts.UpdateInterval,
		MinDisplacementM: c.opts.MinDisplacementM,
	})
	if err != nil {
		cancel()
		return fmt.Errorf("subscribe: %w", err)
	}

	c.state = StateTracking
	c.tripID = tripID
	c.startedAt = time.Now()
	c.distanceKM = 0
	c.waypoints = 0
	c.lastFix = nil
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.consume(fixes)

	c.log.Info().
		Stringer("trip_id", tripID).
		Dur("update_interval", c.opts.UpdateInterval).
		Float64("min_displacement_m", c.opts.MinDisplacementM).
		Msg("tracking started")
	return nil
}

// Stop unsubscribes from the location stream, waits for in-flight persistence
// to complete, and finalizes the trip with the distance replayed end-to-end
// from persisted waypoints. Idempotent: stopping while idle is a no-op.
// On a store failure the trip stays active and the controller stays in
// tracking state, so the caller can retry without losing tracked data.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state == StateIdle {
		c.mu.Unlock()
		c.log.Debug().Msg("not tracking")
		return nil
	}
	tripID := c.tripID
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	// Cancel the subscription but let dispatched writes finish: the last
	// few waypoints matter.
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	finalKM, err := Reconcile(c.store, tripID, time.Now())
	if err != nil {
		c.log.Error().Err(err).Stringer("trip_id", tripID).Msg("finalize failed, trip left active")
		return err
	}

	c.mu.Lock()
	c.state = StateIdle
	c.cancel = nil
	c.done = nil
	c.lastFix = nil
	c.mu.Unlock()

	c.log.Info().
		Stringer("trip_id", tripID).
		Float64("distance_km", finalKM).
		Msg("tracking stopped")
	return nil
}

// Status returns a snapshot of the session.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		State:      c.state,
		TripID:     c.tripID,
		StartedAt:  c.startedAt,
		DistanceKM: c.distanceKM,
		Waypoints:  c.waypoints,
	}
	if c.state == StateTracking {
		st.Elapsed = time.Since(c.startedAt)
	}
	if c.lastFix != nil {
		f := *c.lastFix
		st.LastFix = &f
	}
	return st
}

// Done is closed when the fix stream ends, whether by Stop or because the
// source ran out. Nil before the first Start.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// consume drains the fix channel until the subscription ends.
func (c *Controller) consume(fixes <-chan Fix) {
	defer close(c.done)
	for fix := range fixes {
		c.handleFix(fix)
	}
	c.log.Debug().Msg("fix stream ended")
}

// handleFix folds one fix into the running total and persists it.
// Increments below the noise floor are not accumulated, but the fix is still
// written and becomes the new reference point, so noise does not compound.
func (c *Controller) handleFix(fix Fix) {
	c.mu.Lock()
	tripID := c.tripID
	if c.lastFix != nil {
		increment := geo.Haversine(c.lastFix.Latitude, c.lastFix.Longitude, fix.Latitude, fix.Longitude)
		if increment > c.opts.NoiseFloorKM {
			c.distanceKM += increment
		}
	}
	f := fix
	c.lastFix = &f
	c.mu.Unlock()

	point := models.NewLocationPointAt(tripID, fix.Latitude, fix.Longitude, fix.RecordedAt)
	point.Altitude = fix.Altitude
	point.Accuracy = fix.Accuracy
	point.Speed = fix.Speed

	err := c.store.AppendLocation(point)
	if err != nil {
		// One retry; the replay at stop reconciles anything still lost.
		err = c.store.AppendLocation(point)
	}
	if err != nil {
		c.log.Error().Err(err).
			Stringer("trip_id", tripID).
			Float64("lat", fix.Latitude).
			Float64("lng", fix.Longitude).
			Msg("waypoint dropped")
		return
	}

	c.mu.Lock()
	c.waypoints++
	c.mu.Unlock()
}

// Reconcile recomputes a trip's authoritative distance by replaying its
// persisted waypoints end-to-end and finalizes the trip with it. It is the
// stop path for sessions whose in-memory state died with a previous process:
// everything needed is in the store.
func Reconcile(store Store, tripID uuid.UUID, endedAt time.Time) (float64, error) {
	points, err := store.LocationsByTrip(tripID)
	if err != nil {
		return 0, fmt.Errorf("replay locations: %w", err)
	}

	path := make([]geo.Point, len(points))
	for i, p := range points {
		path[i] = geo.Point{Latitude: p.Latitude, Longitude: p.Longitude}
	}
	total := geo.PathDistance(path)

	if err := store.FinalizeTrip(tripID, endedAt, total); err != nil {
		return 0, fmt.Errorf("finalize trip: %w", err)
	}
	return total, nil
}
