// Package mrc writes the IMOD-dialect MRC volumetric density file: a
// 1024-byte little-endian header followed by one byte per voxel. Viewers key
// on the "MAP " magic at byte 208 and mode 0 byte payloads, so the header
// layout here is fixed field-for-field.
package mrc

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarat-asymmetrica/vossgeom/backend/internal/griddomain"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/voxelgrid"
	"github.com/sarat-asymmetrica/vossgeom/backend/internal/vosserr"
)

// mapMagic is "MAP " read as a little-endian uint32, i.e. 0x2050414D.
const mapMagic uint32 = 0x2050414D

const (
	modeByte   = 0
	numUsers   = 25
	numLabels  = 10
	labelBytes = 80
)

// header is the 1024-byte MRC header in wire order. encoding/binary
// serializes struct fields in declaration order using each field's natural
// width, so this struct's Go memory layout (which may differ from the wire
// layout due to alignment) never matters, only field order does.
type header struct {
	NX, NY, NZ         int32
	Mode               int32
	NXStart            int32
	NYStart            int32
	NZStart            int32
	MX, MY, MZ         int32
	XLength            float32
	YLength            float32
	ZLength            float32
	Alpha, Beta, Gamma float32
	MapC, MapR, MapS   int32
	AMin, AMax, AMean  float32
	ISpg               int32
	NSymBT             int32
	Extra              [numUsers]int32
	XOrigin            float32
	YOrigin            float32
	ZOrigin            float32
	Map                uint32
	Mach               int32
	RMS                float32
	NLabl              int32
	Label              [numLabels][labelBytes]byte
}

func newHeader(nx, ny, nz int, spacing float64, origin [3]float64, nxstartBasis [3]int) header {
	return header{
		NX: int32(nx), NY: int32(ny), NZ: int32(nz),
		Mode:    modeByte,
		NXStart: int32(nxstartBasis[0] / -2),
		NYStart: int32(nxstartBasis[1] / -2),
		NZStart: int32(nxstartBasis[2] / -2),
		MX:      int32(nx), MY: int32(ny), MZ: int32(nz),
		XLength: float32(float64(nx) * spacing),
		YLength: float32(float64(ny) * spacing),
		ZLength: float32(float64(nz) * spacing),
		Alpha:   90, Beta: 90, Gamma: 90,
		MapC: 1, MapR: 2, MapS: 3,
		AMin: 0, AMax: 0, AMean: 0,
		ISpg:    0,
		NSymBT:  0,
		XOrigin: float32(origin[0]),
		YOrigin: float32(origin[1]),
		ZOrigin: float32(origin[2]),
		Map:     mapMagic,
		Mach:    int32(time.Now().Unix()),
		RMS:     0,
		NLabl:   0,
	}
}

func writeHeader(w io.Writer, h header) error {
	return binary.Write(w, binary.LittleEndian, h)
}

func writePayload(w io.Writer, bits []bool) error {
	buf := make([]byte, len(bits))
	for i, v := range bits {
		if v {
			buf[i] = 1
		}
	}
	_, err := w.Write(buf)
	return err
}

// Write emits the full (uncropped) MRC file for g: a 1024-byte header sized
// to g's whole domain, followed by num_bins payload bytes.
func Write(w io.Writer, g *voxelgrid.Grid) error {
	if g.Count() == 0 {
		return fmt.Errorf("%w: cannot write MRC from a grid with no filled voxels", vosserr.ErrEmptyVolume)
	}
	d := g.Domain
	origin := [3]float64{d.Origin.X(), d.Origin.Y(), d.Origin.Z()}
	h := newHeader(d.NX, d.NY, d.NZ, d.Spacing, origin, [3]int{d.NX, d.NY, d.NZ})
	if err := writeHeader(w, h); err != nil {
		return fmt.Errorf("%w: mrc header: %v", vosserr.ErrIoFailure, err)
	}
	if err := writePayload(w, g.Bits[:d.NumBins]); err != nil {
		return fmt.Errorf("%w: mrc payload: %v", vosserr.ErrIoFailure, err)
	}
	return nil
}

// WriteFile opens path and writes the full MRC file to it.
func WriteFile(path string, g *voxelgrid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", vosserr.ErrIoFailure, path, err)
	}
	defer f.Close()
	return Write(f, g)
}

// WriteSmall emits the tight-crop MRC variant: the i/j/k extrema of g's
// filled voxels, padded by a 1-voxel halo and rounded back up to a multiple
// of 4, with the payload recopied into a new, typically much smaller buffer
// at a shifted origin.
//
// nxstart/nystart/nzstart are computed from the pre-crop extent
// (g.Domain.NX/NY/NZ), not the new cropped extent, even though nx/ny/nz in
// the same header describe the cropped buffer. Downstream consumers read
// nxstart+xorigin that way; changing the basis here would silently shift
// every map they place.
func WriteSmall(w io.Writer, g *voxelgrid.Grid) error {
	if g.Count() == 0 {
		return fmt.Errorf("%w: cannot write MRC from a grid with no filled voxels", vosserr.ErrEmptyVolume)
	}
	d := g.Domain

	imin, jmin, kmin := d.NX, d.NY, d.NZ
	imax, jmax, kmax := -1, -1, -1
	for k := 0; k < d.NZ; k++ {
		for j := 0; j < d.NY; j++ {
			for i := 0; i < d.NX; i++ {
				if !g.Get(d.Index(i, j, k)) {
					continue
				}
				if i < imin {
					imin = i
				}
				if j < jmin {
					jmin = j
				}
				if k < kmin {
					kmin = k
				}
				if i > imax {
					imax = i
				}
				if j > jmax {
					jmax = j
				}
				if k > kmax {
					kmax = k
				}
			}
		}
	}
	imin--
	jmin--
	kmin--
	imax++
	jmax++
	kmax++

	xdim := griddomain.RoundUp4(float64(imax - imin))
	ydim := griddomain.RoundUp4(float64(jmax - jmin))
	zdim := griddomain.RoundUp4(float64(kmax - kmin))

	newNXY := xdim * ydim
	newNXYZ := newNXY * zdim
	smallBits := make([]bool, newNXYZ+newNXY+xdim+1)

	for k := 0; k < d.NZ; k++ {
		for j := 0; j < d.NY; j++ {
			for i := 0; i < d.NX; i++ {
				if !g.Get(d.Index(i, j, k)) {
					continue
				}
				ni, nj, nk := i-imin, j-jmin, k-kmin
				if ni < 0 || ni >= xdim || nj < 0 || nj >= ydim || nk < 0 || nk >= zdim {
					continue
				}
				smallBits[ni+nj*xdim+nk*newNXY] = true
			}
		}
	}

	origin := [3]float64{
		d.Origin.X() + d.Spacing*float64(imin),
		d.Origin.Y() + d.Spacing*float64(jmin),
		d.Origin.Z() + d.Spacing*float64(kmin),
	}
	h := newHeader(xdim, ydim, zdim, d.Spacing, origin, [3]int{d.NX, d.NY, d.NZ})
	if err := writeHeader(w, h); err != nil {
		return fmt.Errorf("%w: mrc header: %v", vosserr.ErrIoFailure, err)
	}
	if err := writePayload(w, smallBits[:newNXYZ]); err != nil {
		return fmt.Errorf("%w: mrc payload: %v", vosserr.ErrIoFailure, err)
	}
	return nil
}

// WriteSmallFile opens path and writes the tight-crop MRC variant to it.
func WriteSmallFile(path string, g *voxelgrid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", vosserr.ErrIoFailure, path, err)
	}
	defer f.Close()
	return WriteSmall(f, g)
}
