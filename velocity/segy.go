package velocity

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/seismic-data/meshsize/grid"
)

// SEG-Y layout constants. All multi-byte header fields are big-endian.
const (
	segyTextHeaderLen   = 3200
	segyBinHeaderLen    = 400
	segyTraceHeaderLen  = 240
	segySamplesOffset   = segyTextHeaderLen + 20 // samples per trace, uint16
	segyFormatOffset    = segyTextHeaderLen + 24 // sample format code, uint16
	segyFormatIBMFloat  = 1
	segyFormatIEEEFloat = 5
)

// readSEGY reads a 2D velocity section from a SEG-Y file. Each trace is
// one column of the model; sample 0 is the shallowest node, so columns are
// flipped to put the deepest row at iz = 0. Supports IBM float (format 1)
// and IEEE float32 (format 5) sample data.
func readSEGY(path string) (*grid.Grid, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("velocity: reading %s: %w", path, err)
	}
	if len(raw) < segyTextHeaderLen+segyBinHeaderLen {
		return nil, fmt.Errorf("velocity: %s is too short for a SEG-Y header", path)
	}

	nz := int(binary.BigEndian.Uint16(raw[segySamplesOffset:]))
	if nz == 0 {
		return nil, fmt.Errorf("velocity: %s declares zero samples per trace", path)
	}
	format := int(binary.BigEndian.Uint16(raw[segyFormatOffset:]))
	if format != segyFormatIBMFloat && format != segyFormatIEEEFloat {
		return nil, fmt.Errorf("velocity: %s uses unsupported SEG-Y sample format %d", path, format)
	}

	traceLen := segyTraceHeaderLen + 4*nz
	body := len(raw) - segyTextHeaderLen - segyBinHeaderLen
	nx := body / traceLen
	if nx == 0 || body%traceLen != 0 {
		return nil, fmt.Errorf("velocity: %s trace data length %d is not a multiple of trace size %d",
			path, body, traceLen)
	}

	vp, err := grid.New(2, nz, nx, 0)
	if err != nil {
		return nil, err
	}
	for t := 0; t < nx; t++ {
		samples := raw[segyTextHeaderLen+segyBinHeaderLen+t*traceLen+segyTraceHeaderLen:]
		for j := 0; j < nz; j++ {
			bits := binary.BigEndian.Uint32(samples[4*j:])
			var v float64
			if format == segyFormatIBMFloat {
				v = ibmFloat(bits)
			} else {
				v = float64(math.Float32frombits(bits))
			}
			vp.Set(nz-1-j, t, 0, v)
		}
	}
	return vp, nil
}

// ibmFloat decodes an IBM System/360 hexadecimal float: sign bit, 7-bit
// excess-64 base-16 exponent, 24-bit fraction.
func ibmFloat(bits uint32) float64 {
	if bits == 0 {
		return 0
	}
	sign := 1.0
	if bits&0x80000000 != 0 {
		sign = -1
	}
	exp := int(bits>>24&0x7f) - 64
	frac := float64(bits&0x00ffffff) / float64(1<<24)
	return sign * frac * math.Pow(16, float64(exp))
}
