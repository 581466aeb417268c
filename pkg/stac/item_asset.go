package stac

// ItemAssetDefinition describes the shape of an asset items of a Collection
// are expected to expose, keyed by asset key in Collection.ItemAssets.
type ItemAssetDefinition struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}
