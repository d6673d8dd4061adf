package grid

import "fmt"

// PadStyle selects how padded nodes are filled during domain extension.
type PadStyle int

const (
	// PadEdge replicates the nearest boundary node.
	PadEdge PadStyle = iota
	// PadConstant fills padded nodes with the pre-extension maximum value.
	PadConstant
	// PadLinearRamp interpolates linearly from the boundary value to the
	// pre-extension maximum across the padded region.
	PadLinearRamp
)

// ParsePadStyle maps the configuration strings edge, constant and
// linear_ramp onto the closed PadStyle set.
func ParsePadStyle(s string) (PadStyle, error) {
	switch s {
	case "edge":
		return PadEdge, nil
	case "constant":
		return PadConstant, nil
	case "linear_ramp":
		return PadLinearRamp, nil
	default:
		return 0, fmt.Errorf("unknown pad style %q (want edge, constant or linear_ramp)", s)
	}
}

func (p PadStyle) String() string {
	switch p {
	case PadEdge:
		return "edge"
	case PadConstant:
		return "constant"
	case PadLinearRamp:
		return "linear_ramp"
	default:
		return fmt.Sprintf("PadStyle(%d)", int(p))
	}
}
