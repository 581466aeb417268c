package extensions

// Authentication identifiers, per spec.md §4.1.
const (
	AuthIdentifier       = "https://stac-extensions.github.io/authentication/v1.1.0/schema.json"
	AuthIdentifierPrefix = "https://stac-extensions.github.io/authentication/"
	AuthPrefix           = "auth"
)

// AuthScheme describes one named authentication mechanism.
type AuthScheme struct {
	Type            string   `json:"type"`
	Description     string   `json:"description,omitempty"`
	Scheme          string   `json:"scheme,omitempty"`
	In              string   `json:"in,omitempty"`
	Name            string   `json:"name,omitempty"`
	Flows           any      `json:"flows,omitempty"`
	OpenIDConnectURL string  `json:"openIdConnectUrl,omitempty"`
}

// Auth is the typed payload view of the Authentication extension.
type Auth struct {
	Schemes map[string]AuthScheme `json:"schemes,omitempty"`
	Refs    []string              `json:"refs,omitempty"`
}

func (Auth) Identifier() string       { return AuthIdentifier }
func (Auth) IdentifierPrefix() string { return AuthIdentifierPrefix }
func (Auth) Prefix() string           { return AuthPrefix }
