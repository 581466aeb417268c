package stac

import (
	"encoding/json"
	"fmt"
	"math"
)

// Bbox is a spatial bounding box, either 2D (4 numbers) or 3D (6 numbers).
// It deserializes from either a 4-element or 6-element JSON array.
type Bbox struct {
	Xmin, Ymin, Xmax, Ymax float64
	Zmin, Zmax             float64
	Is3D                   bool
}

// NewBbox2D builds a 2D bounding box.
func NewBbox2D(xmin, ymin, xmax, ymax float64) Bbox {
	return Bbox{Xmin: xmin, Ymin: ymin, Xmax: xmax, Ymax: ymax}
}

// NewBbox3D builds a 3D bounding box.
func NewBbox3D(xmin, ymin, zmin, xmax, ymax, zmax float64) Bbox {
	return Bbox{Xmin: xmin, Ymin: ymin, Zmin: zmin, Xmax: xmax, Ymax: ymax, Zmax: zmax, Is3D: true}
}

// EmptyBbox returns the validity sentinel whose min exceeds max on every
// axis, so that repeated calls to Update converge to the correct envelope.
func EmptyBbox() Bbox {
	inf := math.Inf(1)
	return Bbox{
		Xmin: inf, Ymin: inf, Zmin: inf,
		Xmax: -inf, Ymax: -inf, Zmax: -inf,
	}
}

// IsValid reports whether min <= max holds on every present axis.
func (b Bbox) IsValid() bool {
	if b.Xmin > b.Xmax || b.Ymin > b.Ymax {
		return false
	}
	if b.Is3D && b.Zmin > b.Zmax {
		return false
	}
	return true
}

// Update extends the bbox's envelope to include a point.
func (b Bbox) Update(x, y float64) Bbox {
	if x < b.Xmin {
		b.Xmin = x
	}
	if x > b.Xmax {
		b.Xmax = x
	}
	if y < b.Ymin {
		b.Ymin = y
	}
	if y > b.Ymax {
		b.Ymax = y
	}
	return b
}

// Update3D extends the bbox's envelope, including the z axis, and marks it 3D.
func (b Bbox) Update3D(x, y, z float64) Bbox {
	b = b.Update(x, y)
	b.Is3D = true
	if z < b.Zmin {
		b.Zmin = z
	}
	if z > b.Zmax {
		b.Zmax = z
	}
	return b
}

// Slice returns the bbox as a 6-element slice when Is3D is set, else 4 elements.
func (b Bbox) Slice() []float64 {
	if b.Is3D {
		return []float64{b.Xmin, b.Ymin, b.Zmin, b.Xmax, b.Ymax, b.Zmax}
	}
	return []float64{b.Xmin, b.Ymin, b.Xmax, b.Ymax}
}

// MarshalJSON encodes the bbox as a 4- or 6-element JSON array.
func (b Bbox) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Slice())
}

// ErrInvalidBboxLength is returned when a bbox array has neither 4 nor 6 elements.
var ErrInvalidBboxLength = fmt.Errorf("bbox must have exactly 4 or 6 elements")

// UnmarshalJSON decodes a bbox from a 4- or 6-element JSON array.
func (b *Bbox) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding bbox: %w", err)
	}
	switch len(raw) {
	case 4:
		*b = NewBbox2D(raw[0], raw[1], raw[2], raw[3])
	case 6:
		*b = NewBbox3D(raw[0], raw[1], raw[2], raw[3], raw[4], raw[5])
	default:
		return fmt.Errorf("%w, got %d", ErrInvalidBboxLength, len(raw))
	}
	return nil
}
