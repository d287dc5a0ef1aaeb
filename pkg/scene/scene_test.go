package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nodal-Works/isovist/pkg/geo"
)

const sampleYAML = `scene_version: "1"
name: test scene
buildings:
  - id: bldg_1
    category: office
    footprint:
      - {x: 5, y: -1}
      - {x: 5, y: 1}
      - {x: 7, y: 1}
      - {x: 7, y: -1}
  - category: residential
    footprint:
      - {x: -10, y: -10}
      - {x: -8, y: -10}
      - {x: -8, y: -8}
trees:
  - id: tree_1
    label: oak
    x: 0
    y: 5
    canopy_radius: 3
  - label: elm
    x: 2
    y: -8
    canopy_radius: 2
`

func writeScene(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadProject(t *testing.T) {
	dir := writeScene(t, sampleYAML)
	def, err := LoadProject(dir)
	if err != nil {
		t.Fatal(err)
	}
	if def.Name != "test scene" {
		t.Errorf("expected name %q, got %q", "test scene", def.Name)
	}
	if len(def.Buildings) != 2 || len(def.Trees) != 2 {
		t.Fatalf("expected 2 buildings and 2 trees, got %d/%d", len(def.Buildings), len(def.Trees))
	}
	if def.Buildings[0].ID != "bldg_1" {
		t.Errorf("expected explicit ID preserved, got %q", def.Buildings[0].ID)
	}
	if def.Buildings[1].ID == "" {
		t.Error("expected generated ID for building without one")
	}
	if def.Trees[1].ID == "" {
		t.Error("expected generated ID for tree without one")
	}
	if def.Buildings[0].Footprint[0] != geo.Pt(5, -1) {
		t.Errorf("unexpected first footprint point: %+v", def.Buildings[0].Footprint[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadProject(t.TempDir()); err == nil {
		t.Error("expected error for missing scene.yaml")
	}
}

func TestLoadBadYAML(t *testing.T) {
	dir := writeScene(t, "buildings: [not a mapping")
	if _, err := LoadProject(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestToSet(t *testing.T) {
	dir := writeScene(t, sampleYAML)
	def, err := LoadProject(dir)
	if err != nil {
		t.Fatal(err)
	}
	set, err := ToSet(def)
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Polygons) != 2 || len(set.Circles) != 2 {
		t.Fatalf("expected 2 polygons and 2 circles, got %d/%d", len(set.Polygons), len(set.Circles))
	}
	if set.Polygons[0].Category != "office" {
		t.Errorf("expected category office, got %q", set.Polygons[0].Category)
	}
	if set.Circles[0].Radius != 3 {
		t.Errorf("expected radius 3, got %f", set.Circles[0].Radius)
	}
	// Bounding boxes are precomputed.
	if set.Polygons[0].Box.Min != geo.Pt(5, -1) || set.Polygons[0].Box.Max != geo.Pt(7, 1) {
		t.Errorf("unexpected building bbox: %+v", set.Polygons[0].Box)
	}
}

func TestToSetRejectsShortFootprint(t *testing.T) {
	def := &SceneDef{Buildings: []BuildingDef{{
		ID: "b", Footprint: []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 1)},
	}}}
	if _, err := ToSet(def); err == nil {
		t.Error("expected error for 2-point footprint")
	}
}

func TestToSetRejectsNonPositiveRadius(t *testing.T) {
	def := &SceneDef{Trees: []TreeDef{{ID: "t", CanopyRadius: 0}}}
	if _, err := ToSet(def); err == nil {
		t.Error("expected error for zero canopy radius")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	def := Generate(DefaultGenerateOptions())
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := Save(def, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Buildings) != len(def.Buildings) || len(loaded.Trees) != len(def.Trees) {
		t.Errorf("round trip changed counts: %d/%d vs %d/%d",
			len(loaded.Buildings), len(loaded.Trees), len(def.Buildings), len(def.Trees))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(DefaultGenerateOptions())
	b := Generate(DefaultGenerateOptions())
	if len(a.Buildings) != len(b.Buildings) {
		t.Fatal("generation is not deterministic")
	}
	for i := range a.Buildings {
		if a.Buildings[i].Footprint[0] != b.Buildings[i].Footprint[0] {
			t.Fatalf("building %d differs between runs", i)
		}
	}
}

func TestGenerateBlockCount(t *testing.T) {
	opts := DefaultGenerateOptions()
	opts.Blocks = 3
	def := Generate(opts)
	if len(def.Buildings) != 9 {
		t.Errorf("expected 9 buildings for 3x3 blocks, got %d", len(def.Buildings))
	}
	if len(def.Trees) == 0 {
		t.Error("expected street trees")
	}
	if _, err := ToSet(def); err != nil {
		t.Errorf("generated scene must convert cleanly: %v", err)
	}
}
