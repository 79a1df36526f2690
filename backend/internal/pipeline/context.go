// Package pipeline composes the grid, morphology, connectivity, cavity, and
// surface kernels into end-to-end runs: single- and two-probe volumes,
// cavity analysis, channel extraction, tunnel extraction, the
// fractional-solvent-volume sweep, and the fractal-dimension sweep. Each run
// is a Config/Result pair plus a shared orchestration context.
package pipeline

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/atom"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/griddomain"
)

// Context carries the shared, per-run state every pipeline in this package
// threads through: the validated atom list, the domain sized for the
// largest probe any stage will use, a run identifier for log correlation,
// and the diagnostic logger. Built once by NewContext and passed into each
// pipeline entry point.
type Context struct {
	Atoms  atom.List
	Domain griddomain.Domain
	RunID  uuid.UUID
	Log    *log.Logger
}

// NewContext validates atoms, derives the shared Domain sized for maxProbe,
// and stamps a fresh run identifier, which prefixes every line written
// through the Context's Log. logger may be nil, in which case diagnostics
// are discarded.
func NewContext(atoms atom.List, spacing, maxProbe float64, logger *log.Logger) (*Context, error) {
	if err := atoms.Validate(); err != nil {
		return nil, err
	}
	d, err := griddomain.New(atoms, spacing, maxProbe)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(discard{}, "", 0)
	}
	runID := uuid.New()
	logger = log.New(logger.Writer(), logger.Prefix()+"run="+runID.String()+" ", logger.Flags())
	return &Context{
		Atoms:  atoms,
		Domain: d,
		RunID:  runID,
		Log:    logger,
	}, nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// checkCancel reports ctx's cancellation error, if any, between pipeline
// stages. Kernels themselves run to completion once started; cancellation
// is observed only at the stage boundaries each Run* method calls it from.
func checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
