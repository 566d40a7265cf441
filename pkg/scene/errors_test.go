package scene

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/Faultbox/fbxscene/pkg/document"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"unrelated", errors.New("boom"), KindUnknown},
		{"version", ErrUnsupportedVersion, KindUnsupportedVersion},
		{"wrapped version", errors.Wrap(ErrUnsupportedVersion, "6.1"), KindUnsupportedVersion},
		{"missing geometry", errors.Wrap(ErrMissingGeometry, "model"), KindMissingGeometry},
		{"unsupported mapping", document.ErrUnsupportedMapping, KindMissingGeometry},
		{"layer out of range", errors.Wrap(document.ErrLayerOutOfRange, "uv"), KindMissingGeometry},
		{"attribute length", ErrAttributeLength, KindAttributeLength},
		{"material slot", ErrMaterialSlot, KindMaterialSlot},
		{"tangent", ErrTangentGeneration, KindTangentGeneration},
		{"no loader", ErrNoMaterialLoader, KindNoMaterialLoader},
		{"texture data", ErrTextureData, KindTextureData},
		{"image decode", errors.Wrap(ErrImageDecode, "clip"), KindImageDecode},
		{"asset read", ErrAssetRead, KindAssetRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	seen := make(map[string]Kind)
	for k := KindUnknown; k <= KindAssetRead; k++ {
		s := k.String()
		if s == "" {
			t.Errorf("kind %d has empty name", int(k))
		}
		if prev, ok := seen[s]; ok {
			t.Errorf("kinds %d and %d share the name %q", int(prev), int(k), s)
		}
		seen[s] = k
	}
}
