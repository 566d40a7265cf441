package scene

import (
	"image"

	"github.com/Faultbox/fbxscene/pkg/asset"
	"github.com/Faultbox/fbxscene/pkg/document"
	"github.com/Faultbox/fbxscene/pkg/math"
)

// Node is one retained node of the pruned hierarchy.
type Node struct {
	Name string
	// Local is the transform relative to the parent node, with rotation
	// and scaling pivots already folded in.
	Local math.Mat4
	// Children lists the ids of every raw child model, including ones
	// pruned from the hierarchy for having no meshes beneath them.
	Children []document.ObjectID
}

// Primitive is one renderable part of a mesh: the shared vertex buffers of
// the whole mesh plus the triangle indices of one material slot.
type Primitive struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Tangents  [][4]float32
	Indices   []uint32
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of a primitive.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh groups the primitives of one mesh-bearing model with the material
// of each. Primitives and Materials run parallel; a zero material handle
// marks a slot the document assigned no material to.
type Mesh struct {
	Name       string
	Primitives []asset.Handle
	Materials  []asset.Handle
}

// Image is a decoded texture with its sampler state.
type Image struct {
	Pixels *image.RGBA
	WrapU  document.WrapMode
	WrapV  document.WrapMode
}

// Material is the renderer-agnostic surface description produced by a
// material loader. Zero texture handles mean the slot is unbound.
type Material struct {
	Name             string
	BaseColor        [4]float32
	EmissiveColor    [3]float32
	BaseColorTexture asset.Handle
	NormalMapTexture asset.Handle
}

// Scene is the aggregate output of one load: the pruned hierarchy plus
// handles to every asset the conversion produced.
type Scene struct {
	// Roots lists the ids of the document's root models in document order.
	Roots []document.ObjectID
	// Hierarchy holds the retained nodes keyed by model id.
	Hierarchy map[document.ObjectID]Node
	// Meshes maps each mesh-bearing model id to its mesh asset.
	Meshes map[document.ObjectID]asset.Handle
	// Materials and Textures cache registered handles by label so shared
	// objects convert once.
	Materials map[string]asset.Handle
	Textures  map[string]asset.Handle
	// PrimitiveLabels maps each primitive handle back to its label.
	PrimitiveLabels map[asset.Handle]string
}

func newScene() *Scene {
	return &Scene{
		Hierarchy:       make(map[document.ObjectID]Node),
		Meshes:          make(map[document.ObjectID]asset.Handle),
		Materials:       make(map[string]asset.Handle),
		Textures:        make(map[string]asset.Handle),
		PrimitiveLabels: make(map[asset.Handle]string),
	}
}

// TreeNode is one node of the assembled render tree. Grouping nodes carry
// a transform and children; leaf nodes carry one primitive and its
// material.
type TreeNode struct {
	Name      string
	Transform math.Mat4
	Mesh      asset.Handle
	Material  asset.Handle
	Children  []*TreeNode
}

// Tree is the renderer-instantiable form of a scene: every document root
// under a single node that applies the unit scale.
type Tree struct {
	Root *TreeNode
}
