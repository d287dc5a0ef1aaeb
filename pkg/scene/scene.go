// Package scene loads obstacle scene definitions from YAML and converts them
// into the engine's obstacle set. It also generates synthetic city-block
// scenes for demos and benchmarks.
package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Nodal-Works/isovist/pkg/geo"
	"github.com/Nodal-Works/isovist/pkg/obstacle"
)

// Load reads a scene definition from a YAML file. Obstacles without an ID are
// assigned a fresh one so every RayHit can carry a stable obstacle reference.
func Load(path string) (*SceneDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	var def SceneDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing scene YAML: %w", err)
	}

	assignIDs(&def)
	return &def, nil
}

// LoadProject loads a scene from a project directory.
// It looks for scene.yaml in the given directory.
func LoadProject(projectDir string) (*SceneDef, error) {
	return Load(filepath.Join(projectDir, "scene.yaml"))
}

// Save writes a scene definition as YAML.
func Save(def *SceneDef, path string) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("encoding scene YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scene file: %w", err)
	}
	return nil
}

func assignIDs(def *SceneDef) {
	for i := range def.Buildings {
		if def.Buildings[i].ID == "" {
			def.Buildings[i].ID = uuid.NewString()
		}
	}
	for i := range def.Trees {
		if def.Trees[i].ID == "" {
			def.Trees[i].ID = uuid.NewString()
		}
	}
}

// ToSet converts a scene definition into the engine's obstacle set. Geometry
// errors that validation would flag (short footprints, non-positive radii)
// are rejected here too so an unvalidated scene cannot corrupt a computation.
func ToSet(def *SceneDef) (*obstacle.Set, error) {
	polygons := make([]obstacle.Polygon, 0, len(def.Buildings))
	for _, b := range def.Buildings {
		if len(b.Footprint) < 3 {
			return nil, fmt.Errorf("building %s: footprint needs at least 3 points, got %d", b.ID, len(b.Footprint))
		}
		polygons = append(polygons, obstacle.NewPolygon(b.ID, b.Category, geo.NewRing(b.Footprint...)))
	}

	circles := make([]obstacle.Circle, 0, len(def.Trees))
	for _, tr := range def.Trees {
		if tr.CanopyRadius <= 0 {
			return nil, fmt.Errorf("tree %s: canopy radius must be positive, got %g", tr.ID, tr.CanopyRadius)
		}
		circles = append(circles, obstacle.NewCircle(tr.ID, tr.Label, geo.Pt(tr.X, tr.Y), tr.CanopyRadius))
	}

	return obstacle.NewSet(polygons, circles), nil
}
