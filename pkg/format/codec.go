package format

import (
	"fmt"

	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// Encode dispatches to the codec named by f.
func Encode(entity stac.Entity, f Format) ([]byte, error) {
	switch f.Kind {
	case KindJSON:
		return EncodeJSON(entity, f.Pretty)
	case KindNDJSON:
		return EncodeNDJSON(entity)
	case KindGeoparquet:
		return EncodeGeoparquet(entity, f.Compression)
	default:
		return nil, fmt.Errorf("format: unknown format kind %d", f.Kind)
	}
}

// Decode dispatches to the codec named by f.
func Decode(data []byte, f Format) (stac.Entity, error) {
	switch f.Kind {
	case KindJSON:
		return DecodeJSON(data)
	case KindNDJSON:
		return DecodeNDJSON(data)
	case KindGeoparquet:
		return DecodeGeoparquet(data)
	default:
		return nil, fmt.Errorf("format: unknown format kind %d", f.Kind)
	}
}
