package document

// Shading models commonly carried by material objects.
const (
	ShadingLambert = "lambert"
	ShadingPhong   = "phong"
)

// Material carries one surface material's shading properties. Textures
// are attached through property connections keyed by slot name.
type Material struct {
	object
	doc *Document

	ShadingModel  string     // ShadingLambert, ShadingPhong or a vendor string
	DiffuseColor  [3]float64 // base color, linear RGB
	SpecularColor [3]float64
	EmissiveColor [3]float64
	Opacity       float64 // 1 is fully opaque
}

// NewMaterial creates a material with the format's default properties.
func NewMaterial(id ObjectID, name string) *Material {
	return &Material{
		object:       object{id: id, name: name},
		ShadingModel: ShadingLambert,
		DiffuseColor: [3]float64{0.8, 0.8, 0.8},
		Opacity:      1,
	}
}

// Texture returns the texture bound to the named slot (for example
// "DiffuseColor"), or nil when the slot is unbound.
func (m *Material) Texture(slot string) *Texture {
	if m.doc == nil {
		return nil
	}
	id, ok := m.doc.props[m.ID()][slot]
	if !ok {
		return nil
	}
	tex, _ := m.doc.objects[id].(*Texture)
	return tex
}
