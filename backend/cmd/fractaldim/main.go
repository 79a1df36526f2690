// Command fractaldim sweeps grid spacing to regress the volume and surface
// fractal dimensions of a single probe radius against an atom list.
// Its flag set intentionally diverges from the shared config.RunConfig
// schema (-g1/-g2/-gn instead of a single -g) since this pipeline varies
// spacing itself rather than taking it as a fixed parameter.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/pipeline"
)

func main() {
	fs := flag.NewFlagSet("fractaldim", flag.ExitOnError)
	input := fs.String("i", "", "structure input path (XYZR format)")
	probe := fs.Float64("p", 10.0, "probe radius in Angstroms (0 = VDW accessible volume)")
	grid1 := fs.Float64("g1", 0.4, "finer grid spacing in Angstroms")
	grid2 := fs.Float64("g2", 0.8, "coarser grid spacing in Angstroms")
	numSteps := fs.Float64("gn", 10, "number of geometric spacing steps")
	quiet := fs.Bool("quiet", false, "suppress diagnostic logging")
	fs.Parse(os.Args[1:])

	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing required -i <path>")
		fs.Usage()
		os.Exit(1)
	}
	logger := log.New(os.Stderr, "vossgeom: ", log.Ltime)
	if *quiet {
		logger.SetOutput(io.Discard)
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("opening input: %v", err)
	}
	atoms, err := atom.ParseXYZR(f)
	f.Close()
	if err != nil {
		log.Fatalf("parsing input: %v", err)
	}
	if err := atoms.Validate(); err != nil {
		log.Fatalf("validating atoms: %v", err)
	}

	logger.Printf("fractal dimension sweep: %s probe=%.2f spacing %.3f..%.3f", *input, *probe, *grid1, *grid2)
	result, err := pipeline.RunFractalDim(context.Background(), atoms, pipeline.FractalDimConfig{
		Probe:    *probe,
		Spacing1: *grid1,
		Spacing2: *grid2,
		NumSteps: *numSteps,
	})
	if err != nil {
		log.Fatalf("fractal dimension pipeline: %v", err)
	}

	fmt.Printf("%v\t%v\t%v\n", *probe, result.VolumeSlope, result.SurfaceSlope)
}
