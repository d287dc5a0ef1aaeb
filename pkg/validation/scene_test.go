package validation

import (
	"testing"

	"github.com/Nodal-Works/isovist/pkg/geo"
	"github.com/Nodal-Works/isovist/pkg/scene"
)

func validScene() *scene.SceneDef {
	return &scene.SceneDef{
		SceneVersion: "1",
		Name:         "valid",
		Buildings: []scene.BuildingDef{{
			ID:       "b1",
			Category: "office",
			Footprint: []geo.Point2D{
				geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10),
			},
		}},
		Trees: []scene.TreeDef{{ID: "t1", Label: "oak", X: 20, Y: 20, CanopyRadius: 3}},
	}
}

func TestValidateSceneAccepted(t *testing.T) {
	report := ValidateScene(validScene())
	if !report.Valid {
		t.Errorf("expected valid scene, got errors: %+v", report.Errors)
	}
	if len(report.Info) == 0 {
		t.Error("expected summary info entry")
	}
}

func TestValidateSceneShortFootprint(t *testing.T) {
	def := validScene()
	def.Buildings[0].Footprint = def.Buildings[0].Footprint[:2]
	report := ValidateScene(def)
	if report.Valid {
		t.Error("expected error for 2-point footprint")
	}
}

func TestValidateSceneBadCanopy(t *testing.T) {
	def := validScene()
	def.Trees[0].CanopyRadius = -1
	report := ValidateScene(def)
	if report.Valid {
		t.Error("expected error for negative canopy radius")
	}
}

func TestValidateSceneDuplicateIDs(t *testing.T) {
	def := validScene()
	def.Trees[0].ID = "b1"
	report := ValidateScene(def)
	if report.Valid {
		t.Error("expected error for duplicate ID across buildings and trees")
	}
}

func TestValidateSceneMissingVersionWarns(t *testing.T) {
	def := validScene()
	def.SceneVersion = ""
	report := ValidateScene(def)
	if !report.Valid {
		t.Error("missing version should be a warning, not an error")
	}
	if len(report.Warnings) == 0 {
		t.Error("expected a warning for missing scene_version")
	}
}

func TestReportMerge(t *testing.T) {
	a := NewReport()
	b := NewReport()
	b.AddError(Result{Level: LevelSchema, Message: "boom"})
	a.Merge(b)
	if a.Valid {
		t.Error("merging an invalid report must invalidate the target")
	}
	if len(a.Errors) != 1 {
		t.Errorf("expected 1 error after merge, got %d", len(a.Errors))
	}
}
