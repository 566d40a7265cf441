package scene

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/fbxscene/pkg/asset"
	"github.com/Faultbox/fbxscene/pkg/document"
)

// Texture slot names shared by the built-in material loaders.
const (
	SlotDiffuseColor     = "DiffuseColor"
	SlotNormalMap        = "NormalMap"
	SlotSpecularColor    = "SpecularColor"
	SlotEmissiveColor    = "EmissiveColor"
	SlotTransparentColor = "TransparentColor"
)

// MaterialLoader converts raw materials it recognizes into Materials.
// Loaders run in order; the first whose Build returns a non-nil material
// wins.
//
// Textures reach Build keyed by slot name. Slots listed in DynamicSlots
// are decoded up front and handed to Preprocess, which may adjust,
// replace or synthesize images; the results are registered per material.
// Slots listed in StaticSlots resolve to shared textures, cached by
// texture object, and are skipped silently when the material leaves them
// unbound.
type MaterialLoader struct {
	Name string

	StaticSlots  []string
	DynamicSlots []string

	// Preprocess runs after the dynamic slots are decoded and before any
	// image is registered. Optional.
	Preprocess func(mat *document.Material, images map[string]*Image)

	// Build produces the material, or nil to pass to the next loader.
	Build func(mat *document.Material, textures map[string]asset.Handle) *Material
}

// resolveMaterial returns the handle for a raw material, converting it on
// first sight and reusing the registered handle afterwards.
func (l *loader) resolveMaterial(ctx context.Context, mat *document.Material) (asset.Handle, error) {
	label := materialLabel(mat)
	if handle, ok := l.scene.Materials[label]; ok {
		l.log.Debug("already encountered material", zap.String("label", label))
		return handle, nil
	}
	l.log.Debug("loading material", zap.String("label", label))

	var built *Material
	for _, ml := range l.materialLoaders {
		m, err := l.runMaterialLoader(ctx, mat, ml)
		if err != nil {
			return asset.Handle{}, errors.Wrapf(err, "material loader %q failed", ml.Name)
		}
		if m != nil {
			built = m
			break
		}
	}
	if built == nil {
		return asset.Handle{}, errors.Wrapf(ErrNoMaterialLoader, "material %q", label)
	}

	handle := l.registry.Register(label, built)
	l.scene.Materials[label] = handle
	l.log.Debug("successfully loaded material", zap.String("label", label))
	return handle, nil
}

func (l *loader) runMaterialLoader(ctx context.Context, mat *document.Material, ml MaterialLoader) (*Material, error) {
	images := make(map[string]*Image)
	for _, slot := range ml.DynamicSlots {
		tex := mat.Texture(slot)
		if tex == nil {
			continue
		}
		img, err := l.resolveTexture(ctx, tex)
		if err != nil {
			return nil, err
		}
		images[slot] = img
	}
	if ml.Preprocess != nil {
		ml.Preprocess(mat, images)
	}

	textures := make(map[string]asset.Handle, len(images)+len(ml.StaticSlots))
	for _, slot := range orderedSlots(ml.DynamicSlots, images) {
		label := processedTextureLabel(mat, slot)
		handle, ok := l.scene.Textures[label]
		if !ok {
			handle = l.registry.Register(label, images[slot])
			l.scene.Textures[label] = handle
		}
		textures[slot] = handle
	}

	for _, slot := range ml.StaticSlots {
		tex := mat.Texture(slot)
		if tex == nil {
			continue
		}
		label := textureLabel(tex)
		handle, ok := l.scene.Textures[label]
		if !ok {
			img, err := l.resolveTexture(ctx, tex)
			if err != nil {
				return nil, err
			}
			handle = l.registry.Register(label, img)
			l.scene.Textures[label] = handle
		}
		textures[slot] = handle
	}

	return ml.Build(mat, textures), nil
}

// orderedSlots returns the keys of images with the declared dynamic slots
// first and any slot synthesized by preprocessing after them, sorted.
func orderedSlots(declared []string, images map[string]*Image) []string {
	out := make([]string, 0, len(images))
	seen := make(map[string]bool, len(images))
	for _, slot := range declared {
		if _, ok := images[slot]; ok && !seen[slot] {
			out = append(out, slot)
			seen[slot] = true
		}
	}
	var extra []string
	for slot := range images {
		if !seen[slot] {
			extra = append(extra, slot)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// StandardLoader converts lambert and phong materials, binding the
// diffuse and normal map slots.
func StandardLoader() MaterialLoader {
	return MaterialLoader{
		Name:        "standard",
		StaticSlots: []string{SlotDiffuseColor, SlotNormalMap},
		Build: func(mat *document.Material, textures map[string]asset.Handle) *Material {
			switch mat.ShadingModel {
			case document.ShadingLambert, document.ShadingPhong:
			default:
				return nil
			}
			return &Material{
				Name: mat.Name(),
				BaseColor: [4]float32{
					float32(mat.DiffuseColor[0]),
					float32(mat.DiffuseColor[1]),
					float32(mat.DiffuseColor[2]),
					float32(mat.Opacity),
				},
				EmissiveColor: [3]float32{
					float32(mat.EmissiveColor[0]),
					float32(mat.EmissiveColor[1]),
					float32(mat.EmissiveColor[2]),
				},
				BaseColorTexture: textures[SlotDiffuseColor],
				NormalMapTexture: textures[SlotNormalMap],
			}
		},
	}
}

// FallbackLoader accepts any material, keeping only its diffuse slot over
// a flat white base color.
func FallbackLoader() MaterialLoader {
	return MaterialLoader{
		Name:        "fallback",
		StaticSlots: []string{SlotDiffuseColor},
		Build: func(mat *document.Material, textures map[string]asset.Handle) *Material {
			return &Material{
				Name:             mat.Name(),
				BaseColor:        [4]float32{1, 1, 1, 1},
				BaseColorTexture: textures[SlotDiffuseColor],
			}
		},
	}
}

// DefaultMaterialLoaders is the loader chain used when none is configured.
func DefaultMaterialLoaders() []MaterialLoader {
	return []MaterialLoader{StandardLoader(), FallbackLoader()}
}
