// Package config holds the RunConfig value every cmd/ wrapper builds from
// its flags and threads into a pipeline constructor.
package config

import (
	"flag"
	"io"
	"log"
	"os"
)

// RunConfig is the option schema shared by every pipeline executable.
// RegisterFlags binds the whole set for every wrapper; each wrapper reads
// only the fields relevant to the pipeline it fronts.
type RunConfig struct {
	Input string // -i, required

	Spacing float64 // -g

	BigProbe   float64 // -b
	SmallProbe float64 // -s
	TrimProbe  float64 // -t

	PDBOut string // -o
	EZDOut string // -e
	MRCOut string // -m

	MinVolumeAng3 float64 // -v
	MinPercent    float64 // -p
	NumChannels   int     // -n

	Quiet bool
	Debug bool
}

// RegisterFlags binds fs's flags to a new RunConfig and returns it. Callers
// invoke fs.Parse(os.Args[1:]) themselves after registering any
// pipeline-specific flags beyond this common set.
func RegisterFlags(fs *flag.FlagSet) *RunConfig {
	c := &RunConfig{}
	fs.StringVar(&c.Input, "i", "", "structure input path (XYZR format)")
	fs.Float64Var(&c.Spacing, "g", 0.5, "grid spacing in Angstroms")
	fs.Float64Var(&c.BigProbe, "b", 10.0, "big probe radius in Angstroms")
	fs.Float64Var(&c.SmallProbe, "s", 1.4, "small/solvent probe radius in Angstroms")
	fs.Float64Var(&c.TrimProbe, "t", 0.0, "trim probe radius in Angstroms")
	fs.StringVar(&c.PDBOut, "o", "", "output PDB surface-point path")
	fs.StringVar(&c.EZDOut, "e", "", "output EZD density path")
	fs.StringVar(&c.MRCOut, "m", "", "output MRC density path")
	fs.Float64Var(&c.MinVolumeAng3, "v", 0, "explicit minimum channel volume in cubic Angstroms")
	fs.Float64Var(&c.MinPercent, "p", 0, "minimum channel volume as a percent of the big-probe volume")
	fs.IntVar(&c.NumChannels, "n", 0, "number of largest channels to isolate (0 = size-threshold mode)")
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress diagnostic logging")
	fs.BoolVar(&c.Debug, "debug", false, "verbose diagnostic logging")
	return c
}

// Validate enforces the one precondition every cmd/ wrapper shares: an
// input path must be given.
func (c *RunConfig) Validate() error {
	if c.Input == "" {
		return errMissingInput
	}
	return nil
}

var errMissingInput = flagError("missing required -i <path>")

type flagError string

func (e flagError) Error() string { return string(e) }

// Logger builds the diagnostic logger gated by Quiet/Debug. Diagnostics go
// to stderr, never stdout. Quiet drops everything; Debug only changes
// verbosity at call sites that check it explicitly.
func (c *RunConfig) Logger() *log.Logger {
	if c.Quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "vossgeom: ", log.Ltime)
}
