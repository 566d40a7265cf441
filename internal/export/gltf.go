// Package export writes converted scenes out as glTF 2.0 documents.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/fbxscene/pkg/asset"
	"github.com/Faultbox/fbxscene/pkg/document"
	"github.com/Faultbox/fbxscene/pkg/math"
	"github.com/Faultbox/fbxscene/pkg/scene"
)

// Export errors.
var (
	ErrNilTree        = errors.New("scene tree has no root node")
	ErrUnknownFormat  = errors.New("unknown export format")
	ErrMissingAsset   = errors.New("handle does not resolve to an asset")
	ErrWrongAssetType = errors.New("handle resolves to an unexpected asset type")
)

// Format selects the container written by Write.
type Format string

const (
	// FormatGLTF is the JSON container with embedded buffers.
	FormatGLTF Format = "gltf"
	// FormatGLB is the single-file binary container.
	FormatGLB Format = "glb"
)

// ParseFormat maps a configuration string onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatGLTF:
		return FormatGLTF, nil
	case FormatGLB:
		return FormatGLB, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// Ext returns the file extension for the format, dot included.
func (f Format) Ext() string {
	return "." + string(f)
}

// OutputPath places the export for input under outDir, swapping the input
// extension for the format's one.
func OutputPath(outDir, input string, format Format) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+format.Ext())
}

// Options configure one export.
type Options struct {
	// Format is the container written by Write, FormatGLTF when empty.
	Format Format

	Logger *zap.Logger
}

// Build converts a loaded scene tree into an in-memory glTF document.
// Mesh, material and image assets referenced by the tree are resolved
// through the registry they were loaded into.
func Build(sc *scene.Scene, tree *scene.Tree, registry asset.Registry, opts Options) (*gltf.Document, error) {
	if tree == nil || tree.Root == nil {
		return nil, ErrNilTree
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	b := &builder{
		registry:   registry,
		log:        log,
		doc:        gltf.NewDocument(),
		imageNames: imageNames(sc),
		meshes:     make(map[[2]asset.Handle]int),
		materials:  make(map[asset.Handle]int),
		textures:   make(map[asset.Handle]int),
		samplers:   make(map[[2]document.WrapMode]int),
	}
	b.doc.Asset.Generator = "fbxscene"

	root, err := b.addNode(tree.Root)
	if err != nil {
		return nil, err
	}
	b.doc.Scenes[0].Name = tree.Root.Name
	b.doc.Scenes[0].Nodes = []int{root}

	log.Debug("built gltf document",
		zap.Int("nodes", len(b.doc.Nodes)),
		zap.Int("meshes", len(b.doc.Meshes)),
		zap.Int("materials", len(b.doc.Materials)),
		zap.Int("images", len(b.doc.Images)))
	return b.doc, nil
}

// Write builds the glTF document for the tree and saves it to path in the
// configured format.
func Write(sc *scene.Scene, tree *scene.Tree, registry asset.Registry, path string, opts Options) error {
	format := opts.Format
	if format == "" {
		format = FormatGLTF
	}
	if format != FormatGLTF && format != FormatGLB {
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}

	doc, err := Build(sc, tree, registry, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create output directory %q", dir)
		}
	}

	if format == FormatGLB {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to save %q", path)
	}
	return nil
}

// builder accumulates one glTF document, deduplicating meshes, materials
// and textures shared between tree nodes.
type builder struct {
	registry   asset.Registry
	log        *zap.Logger
	doc        *gltf.Document
	imageNames map[asset.Handle]string

	meshes    map[[2]asset.Handle]int // primitive and material pair
	materials map[asset.Handle]int
	textures  map[asset.Handle]int
	samplers  map[[2]document.WrapMode]int

	defaultMaterial *int
}

func (b *builder) addNode(tn *scene.TreeNode) (int, error) {
	node := &gltf.Node{Name: tn.Name}
	applyTransform(node, tn.Transform)

	if !tn.Mesh.IsZero() {
		meshIndex, err := b.addMesh(tn)
		if err != nil {
			return 0, err
		}
		node.Mesh = gltf.Index(meshIndex)
	}

	index := len(b.doc.Nodes)
	b.doc.Nodes = append(b.doc.Nodes, node)

	for _, child := range tn.Children {
		childIndex, err := b.addNode(child)
		if err != nil {
			return 0, err
		}
		node.Children = append(node.Children, childIndex)
	}
	return index, nil
}

// applyTransform stores the node transform as translation, rotation and
// scale when the matrix decomposes cleanly, and as a raw matrix otherwise.
func applyTransform(node *gltf.Node, m math.Mat4) {
	if m == math.Identity() {
		return
	}
	if t, r, s, ok := m.Decompose(); ok {
		node.Translation = [3]float64{float64(t.X), float64(t.Y), float64(t.Z)}
		node.Rotation = [4]float64{float64(r.X), float64(r.Y), float64(r.Z), float64(r.W)}
		node.Scale = [3]float64{float64(s.X), float64(s.Y), float64(s.Z)}
		return
	}
	for i, v := range m {
		node.Matrix[i] = float64(v)
	}
}

func (b *builder) addMesh(tn *scene.TreeNode) (int, error) {
	key := [2]asset.Handle{tn.Mesh, tn.Material}
	if index, ok := b.meshes[key]; ok {
		return index, nil
	}

	prim, err := resolve[*scene.Primitive](b.registry, tn.Mesh)
	if err != nil {
		return 0, errors.Wrapf(err, "mesh %q", tn.Name)
	}
	materialIndex, err := b.addMaterial(tn.Material)
	if err != nil {
		return 0, errors.Wrapf(err, "mesh %q", tn.Name)
	}

	attributes := map[string]int{
		gltf.POSITION: modeler.WritePosition(b.doc, prim.Positions),
	}
	if len(prim.Normals) > 0 {
		attributes[gltf.NORMAL] = modeler.WriteNormal(b.doc, prim.Normals)
	}
	if len(prim.UVs) > 0 {
		attributes[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(b.doc, prim.UVs)
	}
	if len(prim.Tangents) > 0 {
		attributes[gltf.TANGENT] = modeler.WriteTangent(b.doc, prim.Tangents)
	}

	index := len(b.doc.Meshes)
	b.doc.Meshes = append(b.doc.Meshes, &gltf.Mesh{
		Name: tn.Name,
		Primitives: []*gltf.Primitive{{
			Attributes: attributes,
			Indices:    gltf.Index(modeler.WriteIndices(b.doc, prim.Indices)),
			Material:   gltf.Index(materialIndex),
		}},
	})
	b.meshes[key] = index
	return index, nil
}

func (b *builder) addMaterial(h asset.Handle) (int, error) {
	if h.IsZero() {
		return b.defaultMaterialIndex(), nil
	}
	if index, ok := b.materials[h]; ok {
		return index, nil
	}

	mat, err := resolve[*scene.Material](b.registry, h)
	if err != nil {
		return 0, err
	}

	gm := &gltf.Material{
		Name: mat.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{
				float64(mat.BaseColor[0]),
				float64(mat.BaseColor[1]),
				float64(mat.BaseColor[2]),
				float64(mat.BaseColor[3]),
			},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
		EmissiveFactor: [3]float64{
			float64(mat.EmissiveColor[0]),
			float64(mat.EmissiveColor[1]),
			float64(mat.EmissiveColor[2]),
		},
	}
	if mat.BaseColor[3] < 1 {
		gm.AlphaMode = gltf.AlphaBlend
	}

	if !mat.BaseColorTexture.IsZero() {
		texIndex, err := b.addTexture(mat.BaseColorTexture)
		if err != nil {
			return 0, errors.Wrapf(err, "material %q", mat.Name)
		}
		gm.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: texIndex}
	}
	if !mat.NormalMapTexture.IsZero() {
		texIndex, err := b.addTexture(mat.NormalMapTexture)
		if err != nil {
			return 0, errors.Wrapf(err, "material %q", mat.Name)
		}
		gm.NormalTexture = &gltf.NormalTexture{Index: gltf.Index(texIndex)}
	}

	index := len(b.doc.Materials)
	b.doc.Materials = append(b.doc.Materials, gm)
	b.materials[h] = index
	return index, nil
}

// defaultMaterialIndex lazily creates the plain white material substituted
// for placeholder material handles.
func (b *builder) defaultMaterialIndex() int {
	if b.defaultMaterial != nil {
		return *b.defaultMaterial
	}
	index := len(b.doc.Materials)
	b.doc.Materials = append(b.doc.Materials, &gltf.Material{
		Name: "Default",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	})
	b.defaultMaterial = &index
	return index
}

func (b *builder) addTexture(h asset.Handle) (int, error) {
	if index, ok := b.textures[h]; ok {
		return index, nil
	}

	img, err := resolve[*scene.Image](b.registry, h)
	if err != nil {
		return 0, err
	}

	name := b.imageNames[h]
	if name == "" {
		name = fmt.Sprintf("Image%d", len(b.doc.Images))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Pixels); err != nil {
		return 0, errors.Wrapf(err, "failed to encode image %q", name)
	}
	imageIndex, err := modeler.WriteImage(b.doc, name, "image/png", &buf)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to embed image %q", name)
	}

	index := len(b.doc.Textures)
	b.doc.Textures = append(b.doc.Textures, &gltf.Texture{
		Name:    name,
		Sampler: gltf.Index(b.samplerIndex(img.WrapU, img.WrapV)),
		Source:  gltf.Index(imageIndex),
	})
	b.textures[h] = index
	return index, nil
}

func (b *builder) samplerIndex(wrapU, wrapV document.WrapMode) int {
	key := [2]document.WrapMode{wrapU, wrapV}
	if index, ok := b.samplers[key]; ok {
		return index
	}
	index := len(b.doc.Samplers)
	b.doc.Samplers = append(b.doc.Samplers, &gltf.Sampler{
		WrapS: wrappingMode(wrapU),
		WrapT: wrappingMode(wrapV),
	})
	b.samplers[key] = index
	return index
}

func wrappingMode(w document.WrapMode) gltf.WrappingMode {
	if w == document.WrapClamp {
		return gltf.WrapClampToEdge
	}
	return gltf.WrapRepeat
}

// imageNames reverses the scene's texture label table so exported images
// keep their source labels. Labels are visited in sorted order, so a
// handle registered under several labels gets a stable name.
func imageNames(sc *scene.Scene) map[asset.Handle]string {
	if sc == nil {
		return nil
	}
	labels := make([]string, 0, len(sc.Textures))
	for label := range sc.Textures {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	names := make(map[asset.Handle]string, len(labels))
	for _, label := range labels {
		h := sc.Textures[label]
		if _, ok := names[h]; !ok {
			names[h] = label
		}
	}
	return names
}

func resolve[T any](registry asset.Registry, h asset.Handle) (T, error) {
	var zero T
	value, ok := registry.Get(h)
	if !ok {
		return zero, errors.Wrapf(ErrMissingAsset, "%s", h)
	}
	typed, ok := value.(T)
	if !ok {
		return zero, errors.Wrapf(ErrWrongAssetType, "%s holds %T", h, value)
	}
	return typed, nil
}
