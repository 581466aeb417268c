package extensions

// Projection identifiers, per spec.md §4.1.
const (
	ProjectionIdentifier       = "https://stac-extensions.github.io/projection/v2.0.0/schema.json"
	ProjectionIdentifierPrefix = "https://stac-extensions.github.io/projection/"
	ProjectionPrefix           = "proj"
)

// Projection is the typed payload view of the Projection extension.
type Projection struct {
	Code      string     `json:"code,omitempty"`
	Epsg      *int       `json:"epsg,omitempty"`
	Wkt2      string     `json:"wkt2,omitempty"`
	Projjson  any        `json:"projjson,omitempty"`
	Geometry  any        `json:"geometry,omitempty"`
	Bbox      []float64  `json:"bbox,omitempty"`
	Centroid  *Centroid  `json:"centroid,omitempty"`
	Shape     []int      `json:"shape,omitempty"`
	Transform []float64  `json:"transform,omitempty"`
}

// Centroid is the proj:centroid payload, a lat/lon pair.
type Centroid struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (Projection) Identifier() string       { return ProjectionIdentifier }
func (Projection) IdentifierPrefix() string { return ProjectionIdentifierPrefix }
func (Projection) Prefix() string           { return ProjectionPrefix }
