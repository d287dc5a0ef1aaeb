package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/Nodal-Works/isovist/pkg/engine"
	"github.com/Nodal-Works/isovist/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.ScenePath != "" {
				fmt.Printf("    -> %s = %v\n", e.ScenePath, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.ScenePath != "" {
				fmt.Printf("    -> %s = %v\n", w.ScenePath, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printStatsReport(result *engine.Result, elapsed time.Duration) {
	stats := result.Stats

	fmt.Println("Visibility Summary")
	fmt.Println("==================")
	fmt.Println()
	fmt.Printf("  Viewer:            (%.2f, %.2f) bearing %.1f\n",
		result.Viewer.Position.X, result.Viewer.Position.Y, result.Viewer.LookBearing)
	fmt.Printf("  Compute time:      %s\n", elapsed)
	if result.Degraded {
		fmt.Println("  Placement:         DEGRADED (no open position found nearby)")
	}
	fmt.Println()

	fmt.Printf("%-22s %8s %8s\n", "Termination", "Rays", "Share")
	fmt.Printf("%-22s %8s %8s\n", "----------------------", "--------", "--------")
	printStatsRow("open", stats.OpenRays, stats.TotalRays)
	printStatsRow("vegetation", stats.VegetationRays, stats.TotalRays)

	categories := make([]string, 0, len(stats.BuildingRaysByCategory))
	for category := range stats.BuildingRaysByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		label := "building"
		if category != "" {
			label = "building/" + category
		}
		printStatsRow(label, stats.BuildingRaysByCategory[category], stats.TotalRays)
	}

	fmt.Println()
	fmt.Printf("  Open:              %.1f%%\n", stats.OpenPercent)
	fmt.Printf("  Green view factor: %.3f\n", stats.GreenViewFactor)
	fmt.Printf("  Buildings seen:    %d\n", stats.DistinctBuildings)
	fmt.Printf("  Trees seen:        %d\n", stats.DistinctVegetation)
}

func printStatsRow(label string, rays, total int) {
	share := 0.0
	if total > 0 {
		share = 100 * float64(rays) / float64(total)
	}
	fmt.Printf("%-22s %8d %7.1f%%\n", label, rays, share)
}
