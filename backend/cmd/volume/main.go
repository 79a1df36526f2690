// Command volume runs the single-probe volume/surface pipeline:
// the simplest possible way to turn an atom list into a voxel count and a
// surface area at one probe radius.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/config"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/format"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/pipeline"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/secondary"
)

func main() {
	fs := flag.NewFlagSet("volume", flag.ExitOnError)
	cfg := config.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(1)
	}
	logger := cfg.Logger()

	f, err := os.Open(cfg.Input)
	if err != nil {
		log.Fatalf("opening input: %v", err)
	}
	atoms, err := atom.ParseXYZR(f)
	f.Close()
	if err != nil {
		log.Fatalf("parsing input: %v", err)
	}

	probe := cfg.BigProbe
	ctx, err := pipeline.NewContext(atoms, cfg.Spacing, probe, logger)
	if err != nil {
		log.Fatalf("building grid context: %v", err)
	}

	result, err := ctx.RunVolume(context.Background(), pipeline.VolumeConfig{
		Probe:  probe,
		MRCOut: cfg.MRCOut,
	})
	if err != nil {
		log.Fatalf("volume pipeline: %v", err)
	}

	if err := secondary.WritePDB(cfg.PDBOut); err != nil {
		logger.Printf("%v", err)
	}
	if err := secondary.WriteEZD(cfg.EZDOut); err != nil {
		logger.Printf("%v", err)
	}

	fmt.Println(format.ScalarLine(probe, cfg.Spacing, result.Voxels, result.VoxelVolume, result.SurfaceArea, result.NumAtoms, cfg.Input))
}
