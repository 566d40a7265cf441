package scene

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/fbxscene/pkg/document"
)

// Conversion failures carry one of these sentinel errors in their chain so
// hosts can classify outcomes without parsing messages. Wrapped context is
// added at each pipeline stage with github.com/pkg/errors.
var (
	// ErrUnsupportedVersion reports a document version outside 7.4/7.5.
	ErrUnsupportedVersion = errors.New("unsupported document version")

	// ErrMissingGeometry reports an absent polygon, layer or attribute.
	ErrMissingGeometry = errors.New("missing geometry data")

	// ErrAttributeLength reports vertex attribute buffers of unequal length.
	ErrAttributeLength = errors.New("mismatched length of buffers")

	// ErrMaterialSlot reports a per-polygon material index outside the
	// material list of the owning model.
	ErrMaterialSlot = errors.New("material index out of range")

	// ErrTangentGeneration reports a failed tangent pass.
	ErrTangentGeneration = errors.New("failed to generate tangents")

	// ErrNoMaterialLoader reports that every configured material loader
	// declined a material.
	ErrNoMaterialLoader = errors.New("none of the material loaders could load this material")

	// ErrTextureData reports a texture without usable image data.
	ErrTextureData = errors.New("no image data for texture object")

	// ErrImageDecode reports undecodable image bytes.
	ErrImageDecode = errors.New("failed to decode image")

	// ErrAssetRead reports a failed read of an external file.
	ErrAssetRead = errors.New("failed to read asset file")
)

// Kind is the coarse classification of a conversion failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnsupportedVersion
	KindMissingGeometry
	KindAttributeLength
	KindMaterialSlot
	KindTangentGeneration
	KindNoMaterialLoader
	KindTextureData
	KindImageDecode
	KindAssetRead
)

// String returns a stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnsupportedVersion:
		return "unsupported version"
	case KindMissingGeometry:
		return "missing geometry"
	case KindAttributeLength:
		return "attribute length mismatch"
	case KindMaterialSlot:
		return "material slot out of range"
	case KindTangentGeneration:
		return "tangent generation"
	case KindNoMaterialLoader:
		return "no material loader"
	case KindTextureData:
		return "texture data unavailable"
	case KindImageDecode:
		return "image decode"
	case KindAssetRead:
		return "asset read"
	default:
		return "unknown"
	}
}

// KindOf classifies an error returned by Load. Layer resolution errors
// from the document package count as missing geometry.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrUnsupportedVersion):
		return KindUnsupportedVersion
	case errors.Is(err, ErrMissingGeometry),
		errors.Is(err, document.ErrUnsupportedMapping),
		errors.Is(err, document.ErrLayerOutOfRange):
		return KindMissingGeometry
	case errors.Is(err, ErrAttributeLength):
		return KindAttributeLength
	case errors.Is(err, ErrMaterialSlot):
		return KindMaterialSlot
	case errors.Is(err, ErrTangentGeneration):
		return KindTangentGeneration
	case errors.Is(err, ErrNoMaterialLoader):
		return KindNoMaterialLoader
	case errors.Is(err, ErrTextureData):
		return KindTextureData
	case errors.Is(err, ErrImageDecode):
		return KindImageDecode
	case errors.Is(err, ErrAssetRead):
		return KindAssetRead
	default:
		return KindUnknown
	}
}
