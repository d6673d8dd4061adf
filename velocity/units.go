// Package velocity ingests subsurface P-wave velocity models from SEG-Y
// and raw binary files and normalises them to metres per second.
package velocity

import (
	"encoding/binary"
	"fmt"
)

// Unit identifies the velocity unit declared for a source file.
type Unit int

const (
	// MetersPerSecond is the native unit; no conversion is applied.
	MetersPerSecond Unit = iota
	// KilometersPerSecond sources are scaled by 1000 once at ingestion.
	KilometersPerSecond
)

// ParseUnit maps the configuration strings m-s and km-s onto the closed
// Unit set.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "m-s":
		return MetersPerSecond, nil
	case "km-s":
		return KilometersPerSecond, nil
	default:
		return 0, fmt.Errorf("unknown velocity unit %q (want m-s or km-s)", s)
	}
}

func (u Unit) String() string {
	switch u {
	case MetersPerSecond:
		return "m-s"
	case KilometersPerSecond:
		return "km-s"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Endianness identifies the byte order of a raw binary source.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

// ParseEndianness maps the configuration strings little and big onto the
// closed Endianness set.
func ParseEndianness(s string) (Endianness, error) {
	switch s {
	case "little":
		return LittleEndian, nil
	case "big":
		return BigEndian, nil
	default:
		return 0, fmt.Errorf("unknown endianness %q (want little or big)", s)
	}
}

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return fmt.Sprintf("Endianness(%d)", int(e))
	}
}

// ByteOrder returns the encoding/binary order for e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
