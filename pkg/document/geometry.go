package document

import (
	"errors"
	"fmt"
)

// Layer element errors.
var (
	ErrUnsupportedMapping = errors.New("unsupported layer element mapping")
	ErrLayerOutOfRange    = errors.New("layer element index out of range")
)

// MappingMode describes what a layer element's values are indexed by.
type MappingMode int

const (
	MappingNone MappingMode = iota
	MappingByControlPoint
	MappingByPolygonVertex
	MappingByPolygon
	MappingAllSame
)

// String returns the mapping mode name as it appears in documents.
func (m MappingMode) String() string {
	switch m {
	case MappingByControlPoint:
		return "ByControlPoint"
	case MappingByPolygonVertex:
		return "ByPolygonVertex"
	case MappingByPolygon:
		return "ByPolygon"
	case MappingAllSame:
		return "AllSame"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ReferenceMode describes how a layer element's values are fetched.
type ReferenceMode int

const (
	// ReferenceDirect values are read at the mapped index.
	ReferenceDirect ReferenceMode = iota
	// ReferenceIndexToDirect values are read through an index array.
	ReferenceIndexToDirect
)

// String returns the reference mode name as it appears in documents.
func (r ReferenceMode) String() string {
	switch r {
	case ReferenceDirect:
		return "Direct"
	case ReferenceIndexToDirect:
		return "IndexToDirect"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}

// resolveLayerIndex maps one triangle vertex onto a value index for the
// given mapping and reference modes.
func resolveLayerIndex(mapping MappingMode, ref ReferenceMode, indexes []int32, valueCount, polygon, polygonVertex, controlPoint int) (int, error) {
	var i int
	switch mapping {
	case MappingByControlPoint:
		i = controlPoint
	case MappingByPolygonVertex:
		i = polygonVertex
	case MappingByPolygon:
		i = polygon
	case MappingAllSame:
		i = 0
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedMapping, mapping)
	}
	if ref == ReferenceIndexToDirect {
		if i < 0 || i >= len(indexes) {
			return 0, fmt.Errorf("%w: index %d of %d indexes", ErrLayerOutOfRange, i, len(indexes))
		}
		i = int(indexes[i])
	}
	if i < 0 || i >= valueCount {
		return 0, fmt.Errorf("%w: value %d of %d values", ErrLayerOutOfRange, i, valueCount)
	}
	return i, nil
}

// LayerElementNormal carries per-vertex normals.
type LayerElementNormal struct {
	Mapping   MappingMode
	Reference ReferenceMode
	Values    [][3]float64
	Indexes   []int32 // used with ReferenceIndexToDirect
}

// Normal resolves the normal for one triangle vertex, identified by its
// polygon index, flat polygon-vertex index and control point index.
func (le *LayerElementNormal) Normal(polygon, polygonVertex, controlPoint int) ([3]float64, error) {
	i, err := resolveLayerIndex(le.Mapping, le.Reference, le.Indexes, len(le.Values), polygon, polygonVertex, controlPoint)
	if err != nil {
		return [3]float64{}, err
	}
	return le.Values[i], nil
}

// LayerElementUV carries per-vertex texture coordinates.
type LayerElementUV struct {
	Mapping   MappingMode
	Reference ReferenceMode
	Values    [][2]float64
	Indexes   []int32 // used with ReferenceIndexToDirect
}

// UV resolves the texture coordinate for one triangle vertex, identified
// by its polygon index, flat polygon-vertex index and control point index.
func (le *LayerElementUV) UV(polygon, polygonVertex, controlPoint int) ([2]float64, error) {
	i, err := resolveLayerIndex(le.Mapping, le.Reference, le.Indexes, len(le.Values), polygon, polygonVertex, controlPoint)
	if err != nil {
		return [2]float64{}, err
	}
	return le.Values[i], nil
}

// LayerElementMaterial assigns a model-local material slot to each polygon.
type LayerElementMaterial struct {
	Mapping MappingMode // MappingByPolygon or MappingAllSame
	Indexes []int32     // slot per polygon, or a single slot for AllSame
}

// Slot returns the material slot index for the given polygon.
func (le *LayerElementMaterial) Slot(polygon int) (int, error) {
	var i int
	switch le.Mapping {
	case MappingByPolygon:
		i = polygon
	case MappingAllSame:
		i = 0
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedMapping, le.Mapping)
	}
	if i < 0 || i >= len(le.Indexes) {
		return 0, fmt.Errorf("%w: polygon %d of %d entries", ErrLayerOutOfRange, polygon, len(le.Indexes))
	}
	return int(le.Indexes[i]), nil
}

// Geometry carries one mesh's control points, polygon structure and
// layer elements.
type Geometry struct {
	object

	// ControlPoints are the unique vertex positions.
	ControlPoints [][3]float64

	// PolygonVertexIndex is the flat polygon description: runs of
	// control point indices where a one's-complemented (negative)
	// index closes the polygon.
	PolygonVertexIndex []int32

	Normals       *LayerElementNormal
	UVs           *LayerElementUV
	MaterialLayer *LayerElementMaterial
}

// NewGeometry creates an empty geometry object.
func NewGeometry(id ObjectID, name string) *Geometry {
	return &Geometry{object: object{id: id, name: name}}
}

// Polygons decodes PolygonVertexIndex into faces of control point
// indices. An unterminated trailing run is dropped.
func (g *Geometry) Polygons() [][]int32 {
	var polygons [][]int32
	var face []int32
	for _, index := range g.PolygonVertexIndex {
		if index < 0 {
			face = append(face, ^index)
			polygons = append(polygons, face)
			face = nil
			continue
		}
		face = append(face, index)
	}
	return polygons
}
