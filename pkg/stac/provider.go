package stac

// Provider roles recognized by the Collection.Providers list.
const (
	ProviderRoleLicensor  = "licensor"
	ProviderRoleProducer  = "producer"
	ProviderRoleProcessor = "processor"
	ProviderRoleHost      = "host"
)

// Provider describes an organization that captured, processed, or hosts data.
type Provider struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	URL         string   `json:"url,omitempty"`
}
