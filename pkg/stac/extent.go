package stac

// SpatialExtent is a list of bbox rows: index 0 is the overall extent,
// subsequent entries describe per-sub-region extents.
type SpatialExtent struct {
	Bbox [][]float64 `json:"bbox"`
}

// Interval is a [start, end] RFC3339 pair; either end may be null for open.
type Interval [2]*string

// TemporalExtent is a list of interval rows: index 0 is the overall
// interval, subsequent entries describe per-sub-region intervals.
type TemporalExtent struct {
	Interval []Interval `json:"interval"`
}

// Extent combines the spatial and temporal extent of a Collection.
type Extent struct {
	Spatial  SpatialExtent  `json:"spatial"`
	Temporal TemporalExtent `json:"temporal"`
}

// NewExtent builds an Extent from a single overall bbox and interval.
func NewExtent(bbox []float64, start, end *string) Extent {
	return Extent{
		Spatial:  SpatialExtent{Bbox: [][]float64{bbox}},
		Temporal: TemporalExtent{Interval: []Interval{{start, end}}},
	}
}
