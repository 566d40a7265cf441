package document

// Model kinds mirror the subclass of the source model object.
const (
	ModelKindMesh     = "Mesh"
	ModelKindLimbNode = "LimbNode"
	ModelKindNull     = "Null"
)

// Model is one node of the scene tree. Transform properties are stored
// exactly as the document carries them; composing them into matrices is
// the pipeline's job.
type Model struct {
	object
	doc  *Document
	kind string

	Translation   [3]float64 // local translation
	Rotation      [3]float64 // local rotation, Euler XYZ in degrees
	Scaling       [3]float64 // local scale
	RotationPivot [3]float64 // pivot point for rotation
	ScalingPivot  [3]float64 // pivot point for scaling
}

// NewModel creates a model node of the given kind (ModelKindMesh,
// ModelKindLimbNode, ModelKindNull or any other subclass string) with
// identity transform properties.
func NewModel(id ObjectID, name, kind string) *Model {
	return &Model{
		object:  object{id: id, name: name},
		kind:    kind,
		Scaling: [3]float64{1, 1, 1},
	}
}

// Kind returns the model's subclass string.
func (m *Model) Kind() string { return m.kind }

// IsMesh reports whether this model node carries mesh geometry.
func (m *Model) IsMesh() bool { return m.kind == ModelKindMesh }

// Children returns the connected child models in connection order.
func (m *Model) Children() []*Model {
	if m.doc == nil {
		return nil
	}
	var models []*Model
	for _, obj := range m.doc.childrenOf(m.ID()) {
		if child, ok := obj.(*Model); ok {
			models = append(models, child)
		}
	}
	return models
}

// Geometry returns the geometry attached to this model, or nil.
func (m *Model) Geometry() *Geometry {
	if m.doc == nil {
		return nil
	}
	for _, obj := range m.doc.childrenOf(m.ID()) {
		if geo, ok := obj.(*Geometry); ok {
			return geo
		}
	}
	return nil
}

// Materials returns the materials attached to this model in connection
// order. The position of a material in this list is its local slot index
// referenced by the geometry's material layer.
func (m *Model) Materials() []*Material {
	if m.doc == nil {
		return nil
	}
	var materials []*Material
	for _, obj := range m.doc.childrenOf(m.ID()) {
		if mat, ok := obj.(*Material); ok {
			materials = append(materials, mat)
		}
	}
	return materials
}
