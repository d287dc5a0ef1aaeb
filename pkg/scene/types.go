package scene

import "github.com/Nodal-Works/isovist/pkg/geo"

// SceneDef is the top-level scene definition: the obstacle geometry one
// isovist session runs against. All coordinates share a single planar unit;
// the engine never mixes coordinate systems.
type SceneDef struct {
	SceneVersion string        `yaml:"scene_version" json:"scene_version"`
	Name         string        `yaml:"name" json:"name"`
	Buildings    []BuildingDef `yaml:"buildings" json:"buildings"`
	Trees        []TreeDef     `yaml:"trees" json:"trees"`
}

// BuildingDef is a polygonal obstacle definition.
type BuildingDef struct {
	ID       string        `yaml:"id" json:"id"`
	Category string        `yaml:"category" json:"category"`
	// Footprint is the closed ring of the building outline, >= 3 points.
	// The first point does not need to be repeated at the end.
	Footprint []geo.Point2D `yaml:"footprint" json:"footprint"`
}

// TreeDef is a circular canopy obstacle definition.
type TreeDef struct {
	ID           string  `yaml:"id" json:"id"`
	Label        string  `yaml:"label" json:"label"`
	X            float64 `yaml:"x" json:"x"`
	Y            float64 `yaml:"y" json:"y"`
	CanopyRadius float64 `yaml:"canopy_radius" json:"canopy_radius"`
}
