// Command fsv sweeps the probe radius from 0 up to the big probe and reports
// the fractional solvent volume inside the trimmed excluded shell at each
// step. Its -s flag diverges from the shared config.RunConfig schema (probe
// step rather than a single solvent probe) since the whole point of this
// pipeline is to vary the solvent probe.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/format"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/pipeline"
)

func main() {
	fs := flag.NewFlagSet("fsv", flag.ExitOnError)
	input := fs.String("i", "", "structure input path (XYZR format)")
	spacing := fs.Float64("g", 0.5, "grid spacing in Angstroms")
	bigProbe := fs.Float64("b", 10.0, "maximum probe radius in Angstroms")
	probeStep := fs.Float64("s", 0.1, "probe radius increment in Angstroms")
	trimProbe := fs.Float64("t", 1.5, "trim radius applied to the shell in Angstroms")
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

	ctx, err := pipeline.NewContext(atoms, *spacing, *bigProbe, logger)
	if err != nil {
		log.Fatalf("building grid context: %v", err)
	}

	samples, err := ctx.RunFSV(context.Background(), pipeline.FSVConfig{
		BigProbe:  *bigProbe,
		ProbeStep: *probeStep,
		TrimProbe: *trimProbe,
	})
	if err != nil {
		log.Fatalf("fsv pipeline: %v", err)
	}

	vv := ctx.Domain.VoxelVolume()
	fmt.Println("probe\tshell_vol\tsolvent_vol\tfsv\tfile")
	for _, s := range samples {
		fmt.Printf("%v\t%s\t%s\t%v\t%s\n",
			s.Probe, format.VoxelsCompact(s.ShellVoxels, vv), format.VoxelsCompact(s.SolventVoxels, vv), s.FSV, *input)
	}
}
