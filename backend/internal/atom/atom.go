// Package atom defines the sphere model consumed by the grid morphology
// engine: a finite, immutable list of (center, radius) pairs in Ångströms.
//
// BIOCHEMIST: an atom list is the output of a structure-file-to-radii lookup
// (PDB/mmCIF + a van-der-Waals table) that lives upstream of this package.
// This package never parses structure files; it only validates and holds the
// spheres once they've been produced.
package atom

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/vosserr"
)

// MinRadius and MaxRadius bound the accepted atom radius, in Å. Atoms
// outside this range are silently dropped during ingestion.
const (
	MinRadius = 0.0
	MaxRadius = 100.0
)

// MinAtomCount is the fewest accepted atoms a pipeline will run on.
const MinAtomCount = 3

// Atom is a single sphere: a center in R^3 and a radius in Å.
type Atom struct {
	Center mgl64.Vec3
	Radius float64
}

// X, Y, Z are convenience accessors so call sites that think in coordinates
// rather than vectors don't have to spell out .Center.X().
func (a Atom) X() float64 { return a.Center.X() }
func (a Atom) Y() float64 { return a.Center.Y() }
func (a Atom) Z() float64 { return a.Center.Z() }

// Valid reports whether the atom's radius falls within the accepted range.
func (a Atom) Valid() bool {
	return a.Radius > MinRadius && a.Radius < MaxRadius
}

// List is an immutable (by convention; callers must not mutate in place)
// sequence of atoms that has already been filtered to valid radii.
type List []Atom

// NewList filters raw atoms down to the accepted radius range. It never
// mutates the input slice.
func NewList(raw []Atom) List {
	out := make(List, 0, len(raw))
	for _, a := range raw {
		if a.Valid() {
			out = append(out, a)
		}
	}
	return out
}

// Validate enforces the minimum-atom-count precondition shared by every
// pipeline.
func (l List) Validate() error {
	if len(l) < MinAtomCount {
		return fmt.Errorf("%w: need at least %d atoms, got %d", vosserr.ErrInvalidInput, MinAtomCount, len(l))
	}
	return nil
}

// MaxRadiusIn returns the largest radius present in the list, used by grid
// domain setup to size the enclosing box (FACT = max_vdw + max_probe +
// 2*spacing).
func (l List) MaxRadiusIn() float64 {
	var max float64
	for _, a := range l {
		if a.Radius > max {
			max = a.Radius
		}
	}
	return max
}

// ParseXYZR reads the plain whitespace-delimited XYZR text format: one atom
// per line as "x y z r", blank lines and lines starting with '#' ignored.
// This is the one atom-list ingestion path this module owns; richer
// structure-file parsing lives upstream.
func ParseXYZR(r io.Reader) (List, error) {
	scanner := bufio.NewScanner(r)
	var raw []Atom
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w: line %d: expected 4 fields (x y z r), got %d", vosserr.ErrInvalidInput, lineNo, len(fields))
		}
		vals := make([]float64, 4)
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: field %d: %v", vosserr.ErrInvalidInput, lineNo, i, err)
			}
			vals[i] = v
		}
		raw = append(raw, Atom{Center: mgl64.Vec3{vals[0], vals[1], vals[2]}, Radius: vals[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", vosserr.ErrIoFailure, err)
	}
	return NewList(raw), nil
}
