package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Nodal-Works/isovist/internal/server"
	"github.com/Nodal-Works/isovist/pkg/isovist"
	"github.com/Nodal-Works/isovist/pkg/scene"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "isovist",
		Short: "Real-time visibility polygon engine for 2D urban scenes",
	}

	rootCmd.AddCommand(computeCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(demoCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func computeCmd() *cobra.Command {
	var (
		x, y    float64
		bearing float64
		omni    bool
		rays    int
		maxDist float64
		fov     float64
		noVeg   bool
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "compute [project-path]",
		Short: "Compute one visibility polygon and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			params := isovist.Params{
				MaxDistance:       maxDist,
				RayCount:          rays,
				FOVDegrees:        fov,
				Omnidirectional:   omni,
				IncludeVegetation: !noVeg,
			}
			return runCompute(args[0], x, y, bearing, params, summary)
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "viewer x coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "viewer y coordinate")
	cmd.Flags().Float64Var(&bearing, "bearing", 0, "look bearing in degrees clockwise from north")
	cmd.Flags().BoolVar(&omni, "omni", false, "cast a full 360-degree fan")
	cmd.Flags().IntVar(&rays, "rays", isovist.DefaultRayCount, "number of rays in the fan")
	cmd.Flags().Float64Var(&maxDist, "max-distance", isovist.DefaultMaxDistance, "view radius in scene units")
	cmd.Flags().Float64Var(&fov, "fov", isovist.DefaultFOVDegrees, "cone angle in degrees")
	cmd.Flags().BoolVar(&noVeg, "no-vegetation", false, "ignore tree canopies")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a statistics table instead of JSON")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a scene definition without computing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server with live WebSocket sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			def, err := scene.LoadProject(args[0])
			if err != nil {
				return err
			}
			srv, err := server.New(def, server.Config{
				Port:   port,
				Params: isovist.DefaultParams(),
			})
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}

func demoCmd() *cobra.Command {
	opts := scene.DefaultGenerateOptions()

	cmd := &cobra.Command{
		Use:   "demo [project-path]",
		Short: "Generate a synthetic city-block scene into a project directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDemo(args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.Blocks, "blocks", opts.Blocks, "blocks per side of the grid")
	cmd.Flags().Float64Var(&opts.BlockSize, "block-size", opts.BlockSize, "block edge length in scene units")
	cmd.Flags().Float64Var(&opts.StreetWidth, "street-width", opts.StreetWidth, "street width in scene units")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "generation seed")
	return cmd
}
