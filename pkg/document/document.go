// Package document models a parsed FBX 7.x document: typed objects, the
// connections between them and the global settings the conversion pipeline
// reads. Turning file bytes into this model is the job of an external
// parser; this package defines the contract the pipeline consumes and a
// construction API for building documents programmatically.
package document

import (
	"errors"
	"fmt"
)

// Document errors.
var (
	ErrDuplicateObjectID = errors.New("duplicate object id")
	ErrReservedObjectID  = errors.New("object id 0 is reserved for the document root")
)

// ObjectID identifies one object for the lifetime of its document.
type ObjectID int64

// RootID is the implicit parent of top-level objects in connection records.
// It never refers to a real object.
const RootID ObjectID = 0

// Version is the document format version.
type Version struct {
	Major int
	Minor int
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Supported reports whether the conversion pipeline understands this
// document version. Only 7.4 and 7.5 documents are covered.
func (v Version) Supported() bool {
	return v.Major == 7 && (v.Minor == 4 || v.Minor == 5)
}

// GlobalSettings carries the document-wide settings the pipeline reads.
type GlobalSettings struct {
	// UnitScaleFactor is the size of one document unit in centimeters.
	UnitScaleFactor float64
}

// Object is the common surface of every typed document object.
type Object interface {
	ID() ObjectID
	Name() string
}

// object is the embedded base of all typed objects.
type object struct {
	id   ObjectID
	name string
}

func (o object) ID() ObjectID { return o.id }
func (o object) Name() string { return o.name }

// Document is one parsed scene document: an object table plus the
// object-object and object-property connections wiring it together.
type Document struct {
	version  Version
	settings GlobalSettings

	objects map[ObjectID]Object
	order   []ObjectID

	// children maps a parent id to its connected child ids in
	// connection order. Connection order is load-bearing: material
	// connections to a model define its material slot order.
	children map[ObjectID][]ObjectID
	parents  map[ObjectID][]ObjectID

	// props maps a parent id to its property-connected children,
	// keyed by property name (for example a texture on "DiffuseColor").
	props map[ObjectID]map[string]ObjectID
}

// New returns an empty document of the given version with default
// global settings (unit scale 1).
func New(version Version) *Document {
	return &Document{
		version:  version,
		settings: GlobalSettings{UnitScaleFactor: 1},
		objects:  make(map[ObjectID]Object),
		children: make(map[ObjectID][]ObjectID),
		parents:  make(map[ObjectID][]ObjectID),
		props:    make(map[ObjectID]map[string]ObjectID),
	}
}

// Version returns the document format version.
func (d *Document) Version() Version { return d.version }

// GlobalSettings returns the document-wide settings.
func (d *Document) GlobalSettings() GlobalSettings { return d.settings }

// SetGlobalSettings replaces the document-wide settings.
func (d *Document) SetGlobalSettings(s GlobalSettings) { d.settings = s }

// Add inserts an object into the document table. Object ids must be
// unique and non-zero.
func (d *Document) Add(obj Object) error {
	id := obj.ID()
	if id == RootID {
		return ErrReservedObjectID
	}
	if _, ok := d.objects[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateObjectID, id)
	}

	switch o := obj.(type) {
	case *Model:
		o.doc = d
	case *Material:
		o.doc = d
	case *Texture:
		o.doc = d
	}

	d.objects[id] = obj
	d.order = append(d.order, id)
	return nil
}

// Connect records an object-object connection from child to parent.
// Ids are not validated: connections naming unknown objects are kept and
// simply never resolve, matching the tolerance of the file format.
func (d *Document) Connect(child, parent ObjectID) {
	d.children[parent] = append(d.children[parent], child)
	d.parents[child] = append(d.parents[child], parent)
}

// ConnectProperty records an object-property connection: child becomes
// the value of the named property on parent. A later connection for the
// same property replaces the earlier one.
func (d *Document) ConnectProperty(child, parent ObjectID, property string) {
	m := d.props[parent]
	if m == nil {
		m = make(map[string]ObjectID)
		d.props[parent] = m
	}
	m[property] = child
}

// Object returns the object with the given id, or nil.
func (d *Document) Object(id ObjectID) Object {
	return d.objects[id]
}

// Objects returns all objects in insertion order.
func (d *Document) Objects() []Object {
	objs := make([]Object, 0, len(d.order))
	for _, id := range d.order {
		objs = append(objs, d.objects[id])
	}
	return objs
}

// Roots returns the model objects that have no model parent, in
// insertion order. These are the top-level nodes of the scene tree.
func (d *Document) Roots() []*Model {
	var roots []*Model
	for _, id := range d.order {
		model, ok := d.objects[id].(*Model)
		if !ok {
			continue
		}
		if d.modelParent(id) == nil {
			roots = append(roots, model)
		}
	}
	return roots
}

func (d *Document) modelParent(id ObjectID) *Model {
	for _, pid := range d.parents[id] {
		if parent, ok := d.objects[pid].(*Model); ok {
			return parent
		}
	}
	return nil
}

// childrenOf returns the connected children of id in connection order.
// Unknown child ids resolve to nil and are skipped.
func (d *Document) childrenOf(id ObjectID) []Object {
	ids := d.children[id]
	if len(ids) == 0 {
		return nil
	}
	objs := make([]Object, 0, len(ids))
	for _, cid := range ids {
		if obj := d.objects[cid]; obj != nil {
			objs = append(objs, obj)
		}
	}
	return objs
}
