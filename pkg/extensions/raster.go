package extensions

// Raster identifiers, per spec.md §4.1.
const (
	RasterIdentifier       = "https://stac-extensions.github.io/raster/v1.1.0/schema.json"
	RasterIdentifierPrefix = "https://stac-extensions.github.io/raster/"
	RasterPrefix           = "raster"
)

// RasterStatistics summarizes a band's sample distribution.
type RasterStatistics struct {
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
	Mean    *float64 `json:"mean,omitempty"`
	Stddev  *float64 `json:"stddev,omitempty"`
	ValidPercent *float64 `json:"valid_percent,omitempty"`
}

// RasterBand describes one band of a raster asset.
type RasterBand struct {
	Nodata            any              `json:"nodata,omitempty"`
	Sampling          string           `json:"sampling,omitempty"`
	DataType          string           `json:"data_type,omitempty"`
	BitsPerSample     int              `json:"bits_per_sample,omitempty"`
	SpatialResolution float64          `json:"spatial_resolution,omitempty"`
	Statistics        *RasterStatistics `json:"statistics,omitempty"`
	Unit              string           `json:"unit,omitempty"`
	Scale             float64          `json:"scale,omitempty"`
	Offset            float64          `json:"offset,omitempty"`
	Histogram         any              `json:"histogram,omitempty"`
}

// Raster is the typed payload view of the Raster extension.
type Raster struct {
	Bands []RasterBand `json:"bands,omitempty"`
}

func (Raster) Identifier() string       { return RasterIdentifier }
func (Raster) IdentifierPrefix() string { return RasterIdentifierPrefix }
func (Raster) Prefix() string           { return RasterPrefix }
