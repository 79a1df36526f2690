// Command tunnel runs ribosome exit tunnel extraction, flood-filling
// the channel space from a fixed set of world-space anchor points.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/config"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/pipeline"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/vosserr"
)

func main() {
	fs := flag.NewFlagSet("tunnel", flag.ExitOnError)
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

	ctx, err := pipeline.NewContext(atoms, cfg.Spacing, cfg.BigProbe, logger)
	if err != nil {
		log.Fatalf("building grid context: %v", err)
	}

	result, err := ctx.RunTunnel(context.Background(), pipeline.TunnelConfig{
		ShellProbe:  cfg.BigProbe,
		TunnelProbe: cfg.SmallProbe,
		TrimProbe:   cfg.TrimProbe,
		MRCOut:      cfg.MRCOut,
	})
	if errors.Is(err, vosserr.ErrPlausibilityExceeded) {
		// An implausible volume is reported as a diagnostic, not a failure:
		// the run completes with exit 0 and emits no output.
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if err != nil {
		log.Fatalf("tunnel pipeline: %v", err)
	}

	fmt.Printf("tunnel_voxels=%d surface_area=%.2f accessible_voxels=%d channel_voxels=%d\n",
		result.TunnelVoxels, result.TunnelSurfaceArea, result.AccessibleVoxels, result.ChannelVoxels)
}
