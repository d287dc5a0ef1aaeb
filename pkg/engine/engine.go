// Package engine ties the isovist pipeline into an interactive session: one
// viewer, one obstacle set, recomputed at most once per host tick no matter
// how many position or parameter events arrive in between.
package engine

import (
	"github.com/Nodal-Works/isovist/pkg/analytics"
	"github.com/Nodal-Works/isovist/pkg/geo"
	"github.com/Nodal-Works/isovist/pkg/isovist"
	"github.com/Nodal-Works/isovist/pkg/obstacle"
)

const (
	// followThreshold is the distance below which the viewer stops chasing
	// the follow target.
	followThreshold = 0.5
	// followFraction is the share of the remaining distance covered per tick.
	// Exponential approach: never overshoots, never quite arrives.
	followFraction = 0.15
	// placementSearchRadius bounds the outward search for an open viewer
	// position when a move lands inside a building.
	placementSearchRadius = 100.0
)

// State is the update coordinator's scheduling state.
type State int

const (
	// StateIdle means no recomputation is queued.
	StateIdle State = iota
	// StatePending means state changed since the last computation and the
	// next Tick will recompute. Further changes coalesce into this one.
	StatePending
	// StateComputing is only observable from within a computation.
	StateComputing
)

// Viewer is the current viewpoint.
type Viewer struct {
	Position    geo.Point2D `json:"position"`
	LookBearing float64     `json:"look_bearing"`
}

// Result is the output of one visibility computation.
type Result struct {
	Viewer  Viewer                    `json:"viewer"`
	Hits    []isovist.RayHit          `json:"-"`
	Polygon geo.Ring                  `json:"polygon"`
	Bands   []geo.Ring                `json:"bands"`
	Stats   analytics.VisibilityStats `json:"stats"`
	// Degraded is set when the viewer could not be placed outside all
	// obstacles within the search bound; the geometry is still computed from
	// the uncorrected position.
	Degraded bool `json:"degraded"`
}

// Engine owns the obstacle index, the active parameters, and the viewer state
// for one interactive session. It is deliberately single-threaded: the host
// calls it from one goroutine and decides the tick cadence. The obstacle set
// is read-only and may be shared between engines; the viewer is exclusively
// owned.
type Engine struct {
	index  *obstacle.Index
	params isovist.Params
	caster *isovist.Caster

	viewer       Viewer
	hasViewer    bool
	degraded     bool
	followTarget *geo.Point2D

	state     State
	bandCount int
}

// New creates an engine. Parameters are validated before anything is computed.
func New(index *obstacle.Index, params isovist.Params) (*Engine, error) {
	caster, err := isovist.NewCaster(index, params)
	if err != nil {
		return nil, err
	}
	return &Engine{
		index:     index,
		params:    params,
		caster:    caster,
		bandCount: isovist.DefaultBandCount,
	}, nil
}

// Params returns the active parameters.
func (e *Engine) Params() isovist.Params {
	return e.params
}

// Viewer returns the current viewer state.
func (e *Engine) Viewer() Viewer {
	return e.viewer
}

// State returns the coordinator state.
func (e *Engine) State() State {
	return e.state
}

// SetParams replaces the active parameters. Invalid parameters are rejected
// and the previous configuration stays in effect.
func (e *Engine) SetParams(params isovist.Params) error {
	caster, err := isovist.NewCaster(e.index, params)
	if err != nil {
		return err
	}
	e.params = params
	e.caster = caster
	e.markPending()
	return nil
}

// MoveViewer places the viewer. A position inside a building is corrected to
// the nearest open point; if none exists within the search bound the position
// is kept and the next result is flagged degraded.
func (e *Engine) MoveViewer(p geo.Point2D) {
	pos, ok := e.index.NearestOpenPosition(p, placementSearchRadius)
	e.viewer.Position = pos
	e.degraded = !ok
	e.hasViewer = true
	e.markPending()
}

// LookAt sets the viewer's look bearing in degrees.
func (e *Engine) LookAt(bearing float64) {
	e.viewer.LookBearing = geo.NormalizeBearing(bearing)
	e.markPending()
}

// SetFollowTarget starts moving the viewer toward the target a fraction per
// tick. The approach is asymptotic and re-validated against obstacles on
// every step.
func (e *Engine) SetFollowTarget(p geo.Point2D) {
	target := p
	e.followTarget = &target
}

// ClearFollowTarget stops follow mode.
func (e *Engine) ClearFollowTarget() {
	e.followTarget = nil
}

// markPending queues a recomputation unless one is already queued or running;
// later events coalesce because Tick always reads the latest viewer state.
func (e *Engine) markPending() {
	if e.state == StateIdle {
		e.state = StatePending
	}
}

// Tick is the per-frame entry point. It advances follow interpolation, then
// recomputes visibility if any state changed since the last computation.
// Returns nil when there is nothing to do.
func (e *Engine) Tick() *Result {
	e.stepFollow()
	if e.state != StatePending || !e.hasViewer {
		return nil
	}
	e.state = StateComputing
	defer func() { e.state = StateIdle }()

	// Always the latest viewer state: events between Pending and here have
	// already overwritten it (last write wins).
	hits := e.caster.Cast(e.viewer.Position, e.viewer.LookBearing)
	return &Result{
		Viewer:   e.viewer,
		Hits:     hits,
		Polygon:  isovist.BuildPolygon(e.viewer.Position, hits, e.params.Omnidirectional),
		Bands:    isovist.BuildBands(e.viewer.Position, hits, e.params, e.bandCount),
		Stats:    analytics.Aggregate(hits),
		Degraded: e.degraded,
	}
}

// stepFollow moves the viewer a fixed fraction of the remaining distance
// toward the follow target, then re-validates placement.
func (e *Engine) stepFollow() {
	if e.followTarget == nil || !e.hasViewer {
		return
	}
	remaining := e.viewer.Position.Distance(*e.followTarget)
	if remaining <= followThreshold {
		return
	}
	next := e.viewer.Position.Lerp(*e.followTarget, followFraction)
	pos, ok := e.index.NearestOpenPosition(next, placementSearchRadius)
	e.viewer.Position = pos
	e.degraded = !ok
	e.markPending()
}
