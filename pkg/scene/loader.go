// Package scene converts parsed documents into renderer-agnostic scenes:
// a pruned node hierarchy, mesh primitives with resolved vertex
// attributes, materials and decoded textures, all registered as labeled
// assets.
package scene

import (
	"context"
	"io/fs"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/fbxscene/pkg/asset"
	"github.com/Faultbox/fbxscene/pkg/document"
	"github.com/Faultbox/fbxscene/pkg/math"
)

// Asset labels of the two top-level outputs of a load.
const (
	// TreeAssetLabel names the assembled render tree.
	TreeAssetLabel = "Scene"
	// SceneAssetLabel names the scene aggregate.
	SceneAssetLabel = "FbxScene"
)

// sceneUnitScale converts document units, which default to centimeters,
// into the meter based output space.
const sceneUnitScale = 0.01

// Options configure one document load. The zero value works: assets land
// in a fresh in-memory registry, materials go through the default loader
// chain, polygons fan-triangulate and logging is off.
type Options struct {
	// Files resolves external texture reads, rooted at the directory of
	// the source document. Nil disables external reads.
	Files fs.FS

	// MaterialLoaders overrides the default material loader chain.
	MaterialLoaders []MaterialLoader

	// Triangulate overrides the fan triangulation strategy.
	Triangulate Triangulate

	// UnitScaleFactor overrides the document's unit scale factor when
	// positive. Zero keeps the document's own setting.
	UnitScaleFactor float64

	// Registry receives every produced asset.
	Registry asset.Registry

	// Logger receives progress at debug level.
	Logger *zap.Logger
}

type loader struct {
	registry        asset.Registry
	files           fs.FS
	materialLoaders []MaterialLoader
	triangulate     Triangulate
	unitScale       float64
	log             *zap.Logger
	scene           *Scene
}

// Load converts one parsed document into a Scene and its render Tree.
// Both are also registered in the registry, under SceneAssetLabel and
// TreeAssetLabel. Loads of independent documents may run in parallel;
// sharing a registry across loads is the caller's concern.
func Load(ctx context.Context, doc *document.Document, opts Options) (*Scene, *Tree, error) {
	if v := doc.Version(); !v.Supported() {
		return nil, nil, errors.Wrapf(ErrUnsupportedVersion, "%s", v)
	}

	l := &loader{
		registry:        opts.Registry,
		files:           opts.Files,
		materialLoaders: opts.MaterialLoaders,
		triangulate:     opts.Triangulate,
		unitScale:       opts.UnitScaleFactor,
		log:             opts.Logger,
		scene:           newScene(),
	}
	if l.registry == nil {
		l.registry = asset.NewMemoryRegistry()
	}
	if len(l.materialLoaders) == 0 {
		l.materialLoaders = DefaultMaterialLoaders()
	}
	if l.triangulate == nil {
		l.triangulate = FanTriangulate
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	return l.load(ctx, doc)
}

func (l *loader) load(ctx context.Context, doc *document.Document) (*Scene, *Tree, error) {
	l.log.Info("started loading scene")

	roots := doc.Roots()
	for _, root := range roots {
		collectHierarchy(root, nil, l.scene.Hierarchy)
		l.scene.Roots = append(l.scene.Roots, root.ID())
	}
	l.log.Debug("collected hierarchy", zap.Int("nodes", len(l.scene.Hierarchy)))

	for _, obj := range doc.Objects() {
		model, ok := obj.(*document.Model)
		if !ok || !model.IsMesh() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if err := l.loadMesh(ctx, model); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to load mesh of model %d", model.ID())
		}
	}

	unitScale := doc.GlobalSettings().UnitScaleFactor
	if l.unitScale > 0 {
		unitScale = l.unitScale
	}
	tree := l.assembleTree(unitScale)
	l.registry.Register(TreeAssetLabel, tree)
	l.registry.Register(SceneAssetLabel, l.scene)

	l.log.Info("successfully loaded scene",
		zap.Int("nodes", len(l.scene.Hierarchy)),
		zap.Int("meshes", len(l.scene.Meshes)),
		zap.Int("materials", len(l.scene.Materials)),
		zap.Int("textures", len(l.scene.Textures)))
	return l.scene, tree, nil
}

// assembleTree instantiates the retained hierarchy under a single root
// that applies the document's unit scale.
func (l *loader) assembleTree(unitScale float64) *Tree {
	scale := float32(unitScale) * sceneUnitScale
	root := &TreeNode{
		Name:      SceneAssetLabel,
		Transform: math.Scale(scale, scale, scale),
	}
	for _, id := range l.scene.Roots {
		l.spawnNode(id, root)
	}
	return &Tree{Root: root}
}

// spawnNode adds the tree node for one retained hierarchy node: its mesh
// primitives as leaves first, then its children. Pruned ids are absent
// from the hierarchy and produce nothing.
func (l *loader) spawnNode(id document.ObjectID, parent *TreeNode) {
	node, ok := l.scene.Hierarchy[id]
	if !ok {
		return
	}
	tn := &TreeNode{Name: node.Name, Transform: node.Local}

	if meshHandle, ok := l.scene.Meshes[id]; ok {
		if value, ok := l.registry.Get(meshHandle); ok {
			if mesh, ok := value.(*Mesh); ok {
				for i := range mesh.Primitives {
					tn.Children = append(tn.Children, &TreeNode{
						Name:      mesh.Name,
						Transform: math.Identity(),
						Mesh:      mesh.Primitives[i],
						Material:  mesh.Materials[i],
					})
				}
			}
		}
	}

	for _, cid := range node.Children {
		l.spawnNode(cid, tn)
	}
	parent.Children = append(parent.Children, tn)
}
