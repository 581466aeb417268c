package extensions

// EO identifiers, per spec.md §4.1.
const (
	EOIdentifier       = "https://stac-extensions.github.io/eo/v1.1.0/schema.json"
	EOIdentifierPrefix = "https://stac-extensions.github.io/eo/"
	EOPrefix           = "eo"
)

// EOBand describes one band of an Electro-Optical asset.
type EOBand struct {
	Name        string  `json:"name,omitempty"`
	CommonName  string  `json:"common_name,omitempty"`
	Description string  `json:"description,omitempty"`
	CenterWavelength float64 `json:"center_wavelength,omitempty"`
	FullWidthHalfMax float64 `json:"full_width_half_max,omitempty"`
}

// EO is the typed payload view of the Electro-Optical extension.
type EO struct {
	Bands      []EOBand `json:"bands,omitempty"`
	CloudCover *float64 `json:"cloud_cover,omitempty"`
	SnowCover  *float64 `json:"snow_cover,omitempty"`
}

func (EO) Identifier() string       { return EOIdentifier }
func (EO) IdentifierPrefix() string { return EOIdentifierPrefix }
func (EO) Prefix() string           { return EOPrefix }
