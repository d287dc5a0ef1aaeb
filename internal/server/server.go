// Package server hosts an isovist scene over HTTP: one-shot computations and
// scene inspection as JSON endpoints, live viewer sessions over WebSocket,
// and Prometheus metrics.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Nodal-Works/isovist/internal/observability"
	"github.com/Nodal-Works/isovist/pkg/analytics"
	"github.com/Nodal-Works/isovist/pkg/engine"
	"github.com/Nodal-Works/isovist/pkg/geo"
	"github.com/Nodal-Works/isovist/pkg/isovist"
	"github.com/Nodal-Works/isovist/pkg/obstacle"
	"github.com/Nodal-Works/isovist/pkg/scene"
	"github.com/Nodal-Works/isovist/pkg/validation"
)

// DefaultTickInterval is the cadence of WebSocket session recomputation,
// roughly one visual frame at 30fps.
const DefaultTickInterval = 33 * time.Millisecond

// Config configures a Server.
type Config struct {
	Port int
	// Params is the default computation configuration for new sessions.
	Params isovist.Params
	// TickInterval overrides the WebSocket session cadence when positive.
	TickInterval time.Duration
	// Registerer receives the Prometheus collectors; nil means the global
	// registry.
	Registerer prometheus.Registerer
}

// Server hosts one scene. The obstacle set is shared read-only across all
// requests and sessions; each WebSocket connection owns its own engine and
// viewer.
type Server struct {
	def    *scene.SceneDef
	index  *obstacle.Index
	cfg    Config
	tick   time.Duration
	stats  *observability.Collector
	router *mux.Router
}

// New builds a server for a loaded scene definition.
func New(def *scene.SceneDef, cfg Config) (*Server, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("server params: %w", err)
	}
	set, err := scene.ToSet(def)
	if err != nil {
		return nil, fmt.Errorf("building obstacle set: %w", err)
	}
	collector, err := observability.NewCollector(cfg.Registerer)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	tick := cfg.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}

	s := &Server{
		def:   def,
		index: obstacle.NewIndex(set),
		cfg:   cfg,
		tick:  tick,
		stats: collector,
	}
	s.router = s.routes()
	return s, nil
}

// Router returns the HTTP handler, for embedding and tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Printf("isovist server starting on http://localhost%s", addr)
	log.Printf("scene: %s (%d buildings, %d trees)",
		s.def.Name, len(s.def.Buildings), len(s.def.Trees))
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/scene", s.handleScene).Methods(http.MethodGet)
	r.HandleFunc("/api/isovist", s.handleIsovist).Methods(http.MethodGet)
	r.HandleFunc("/api/validation", s.handleValidation).Methods(http.MethodGet)
	r.Handle("/metrics", s.stats.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebSocket)
	return r
}

// sceneSummary is the /api/scene response body.
type sceneSummary struct {
	Name         string        `json:"name"`
	SceneVersion string        `json:"scene_version"`
	Buildings    int           `json:"buildings"`
	Trees        int           `json:"trees"`
	Bounds       obstacle.BBox `json:"bounds"`
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	set := s.index.Set()
	var bounds obstacle.BBox
	first := true
	extend := func(b obstacle.BBox) {
		if first {
			bounds = b
			first = false
			return
		}
		if b.Min.X < bounds.Min.X {
			bounds.Min.X = b.Min.X
		}
		if b.Min.Y < bounds.Min.Y {
			bounds.Min.Y = b.Min.Y
		}
		if b.Max.X > bounds.Max.X {
			bounds.Max.X = b.Max.X
		}
		if b.Max.Y > bounds.Max.Y {
			bounds.Max.Y = b.Max.Y
		}
	}
	for i := range set.Polygons {
		extend(set.Polygons[i].Box)
	}
	for i := range set.Circles {
		extend(set.Circles[i].Box)
	}

	writeJSON(w, http.StatusOK, sceneSummary{
		Name:         s.def.Name,
		SceneVersion: s.def.SceneVersion,
		Buildings:    len(set.Polygons),
		Trees:        len(set.Circles),
		Bounds:       bounds,
	})
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, validation.ValidateScene(s.def))
}

// isovistResponse is the /api/isovist response body.
type isovistResponse struct {
	Viewer  engine.Viewer             `json:"viewer"`
	Polygon geo.Ring                  `json:"polygon"`
	Bands   []geo.Ring                `json:"bands"`
	Stats   analytics.VisibilityStats `json:"stats"`
}

func (s *Server) handleIsovist(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := parseFloat(q.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter x: %w", err))
		return
	}
	y, err := parseFloat(q.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter y: %w", err))
		return
	}

	params := s.cfg.Params
	bearing := 0.0
	if v := q.Get("bearing"); v != "" {
		if bearing, err = parseFloat(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter bearing: %w", err))
			return
		}
	}
	if v := q.Get("omni"); v != "" {
		if params.Omnidirectional, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter omni: %w", err))
			return
		}
	}
	if v := q.Get("rays"); v != "" {
		if params.RayCount, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter rays: %w", err))
			return
		}
	}
	if v := q.Get("max_distance"); v != "" {
		if params.MaxDistance, err = parseFloat(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter max_distance: %w", err))
			return
		}
	}
	if v := q.Get("fov"); v != "" {
		if params.FOVDegrees, err = parseFloat(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter fov: %w", err))
			return
		}
	}

	caster, err := isovist.NewCaster(s.index, params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	viewer := geo.Pt(x, y)
	start := time.Now()
	hits := caster.Cast(viewer, bearing)
	stats := analytics.Aggregate(hits)
	s.stats.RecordComputation(time.Since(start).Seconds(), stats)

	writeJSON(w, http.StatusOK, isovistResponse{
		Viewer:  engine.Viewer{Position: viewer, LookBearing: geo.NormalizeBearing(bearing)},
		Polygon: isovist.BuildPolygon(viewer, hits, params.Omnidirectional),
		Bands:   isovist.BuildBands(viewer, hits, params, isovist.DefaultBandCount),
		Stats:   stats,
	})
}

func parseFloat(v string) (float64, error) {
	if v == "" {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseFloat(v, 64)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
