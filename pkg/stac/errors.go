package stac

import "errors"

// Structural errors, named per the taxonomy in spec §7.
var (
	ErrMissingID        = errors.New("stac: missing id")
	ErrMissingType      = errors.New("stac: missing type")
	ErrUnknownType      = errors.New("stac: unknown type value")
	ErrWrongDiscriminant = errors.New("stac: type discriminant does not match entity kind")
	ErrInvalidAttrName  = errors.New("stac: invalid attribute name")
	ErrMissingGeometry  = errors.New("stac: missing geometry")
	ErrInvalidDatetime  = errors.New("stac: invalid datetime interval")
)
