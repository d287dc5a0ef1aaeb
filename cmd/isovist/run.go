package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Nodal-Works/isovist/pkg/engine"
	"github.com/Nodal-Works/isovist/pkg/geo"
	"github.com/Nodal-Works/isovist/pkg/isovist"
	"github.com/Nodal-Works/isovist/pkg/obstacle"
	"github.com/Nodal-Works/isovist/pkg/scene"
	"github.com/Nodal-Works/isovist/pkg/validation"
)

// loadAndValidate loads the scene and runs structural validation.
func loadAndValidate(projectPath string) (*scene.SceneDef, *validation.Report, error) {
	def, err := scene.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading scene: %w", err)
	}
	report := validation.ValidateScene(def)
	return def, report, nil
}

func runValidate(projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runCompute(projectPath string, x, y, bearing float64, params isovist.Params, summary bool) error {
	def, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("scene has validation errors; fix before computing")
	}

	set, err := scene.ToSet(def)
	if err != nil {
		return err
	}
	eng, err := engine.New(obstacle.NewIndex(set), params)
	if err != nil {
		return err
	}

	eng.MoveViewer(geo.Pt(x, y))
	eng.LookAt(bearing)
	start := time.Now()
	result := eng.Tick()
	elapsed := time.Since(start)
	if result == nil {
		return fmt.Errorf("computation produced no result")
	}

	if summary {
		printStatsReport(result, elapsed)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runDemo(projectPath string, opts scene.GenerateOptions) error {
	def := scene.Generate(opts)
	if err := os.MkdirAll(projectPath, 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	path := filepath.Join(projectPath, "scene.yaml")
	if err := scene.Save(def, path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s: %d buildings, %d trees\n", path, len(def.Buildings), len(def.Trees))
	return nil
}
