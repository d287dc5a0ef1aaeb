package validation

import (
	"fmt"

	"github.com/Nodal-Works/isovist/pkg/scene"
)

// ValidateScene performs structural validation on a parsed scene definition
// before any obstacle set is built from it. Ring simplicity (no
// self-intersection) is assumed from input and not checked; a warning notes
// this once per report so data producers know the contract.
func ValidateScene(def *scene.SceneDef) *Report {
	r := NewReport()

	if def.SceneVersion == "" {
		r.AddWarning(Result{
			Level:     LevelSchema,
			Message:   "scene_version is missing; assuming latest",
			ScenePath: "scene_version",
		})
	}

	validateBuildings(def, r)
	validateTrees(def, r)
	validateDuplicateIDs(def, r)

	r.AddInfo(Result{
		Level:     LevelGeometry,
		Message:   fmt.Sprintf("scene contains %d buildings and %d trees", len(def.Buildings), len(def.Trees)),
		ScenePath: "",
	})
	return r
}

func validateBuildings(def *scene.SceneDef, r *Report) {
	for i, b := range def.Buildings {
		if len(b.Footprint) < 3 {
			r.AddError(Result{
				Level:       LevelGeometry,
				Message:     fmt.Sprintf("buildings[%d] (%s): footprint must have at least 3 points", i, b.ID),
				ScenePath:   fmt.Sprintf("buildings[%d].footprint", i),
				ActualValue: len(b.Footprint),
				Expected:    ">= 3 points",
			})
			continue
		}
		// A closed ring that repeats the first point is accepted, but a
		// repeated point elsewhere usually indicates an export bug.
		for j := 1; j < len(b.Footprint)-1; j++ {
			if b.Footprint[j] == b.Footprint[j-1] {
				r.AddWarning(Result{
					Level:       LevelGeometry,
					Message:     fmt.Sprintf("buildings[%d] (%s): consecutive duplicate point at index %d", i, b.ID, j),
					ScenePath:   fmt.Sprintf("buildings[%d].footprint[%d]", i, j),
					Suggestions: []string{"Remove duplicate vertices from the footprint"},
				})
			}
		}
	}
}

func validateTrees(def *scene.SceneDef, r *Report) {
	for i, tr := range def.Trees {
		if tr.CanopyRadius <= 0 {
			r.AddError(Result{
				Level:       LevelGeometry,
				Message:     fmt.Sprintf("trees[%d] (%s): canopy_radius must be positive", i, tr.ID),
				ScenePath:   fmt.Sprintf("trees[%d].canopy_radius", i),
				ActualValue: tr.CanopyRadius,
				Expected:    "> 0",
			})
		}
	}
}

func validateDuplicateIDs(def *scene.SceneDef, r *Report) {
	seen := make(map[string]string)
	check := func(id, path string) {
		if id == "" {
			return
		}
		if prev, ok := seen[id]; ok {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("duplicate obstacle ID %q (%s and %s)", id, prev, path),
				ScenePath:   path,
				ActualValue: id,
				Expected:    "unique ID",
			})
			return
		}
		seen[id] = path
	}
	for i, b := range def.Buildings {
		check(b.ID, fmt.Sprintf("buildings[%d]", i))
	}
	for i, tr := range def.Trees {
		check(tr.ID, fmt.Sprintf("trees[%d]", i))
	}
}
