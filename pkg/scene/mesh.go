package scene

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/fbxscene/pkg/asset"
	"github.com/Faultbox/fbxscene/pkg/document"
)

// triangleVertex addresses one corner of one triangle in every space the
// layer elements resolve by.
type triangleVertex struct {
	polygon       int
	polygonVertex int
	controlPoint  int
}

// loadMesh converts one mesh-bearing model: its materials first, then its
// geometry, one primitive per material slot.
func (l *loader) loadMesh(ctx context.Context, model *document.Model) error {
	label := meshLabel(model)
	l.log.Debug("loading mesh", zap.String("label", label))

	geo := model.Geometry()
	if geo == nil {
		return errors.Wrapf(ErrMissingGeometry, "model %q has no geometry", model.Name())
	}

	var materials []asset.Handle
	for _, mat := range model.Materials() {
		handle, err := l.resolveMaterial(ctx, mat)
		if err != nil {
			return errors.Wrap(err, "failed to load materials for mesh")
		}
		materials = append(materials, handle)
	}
	materialCount := len(materials)
	if materialCount == 0 {
		// Keep the primitive/material lists parallel; downstream renders
		// the zero handle with its default material.
		materials = append(materials, asset.Handle{})
	}

	primitives, err := l.buildPrimitives(geo, materialCount)
	if err != nil {
		return err
	}

	mesh := &Mesh{Name: model.Name(), Primitives: primitives, Materials: materials}
	handle := l.registry.Register(label, mesh)
	l.scene.Meshes[model.ID()] = handle
	l.log.Debug("loaded mesh",
		zap.String("label", label),
		zap.Int("primitives", len(primitives)))
	return nil
}

// buildPrimitives triangulates the geometry, resolves its vertex
// attributes and splits the triangles into one primitive per material
// slot. Every primitive shares the full vertex buffers and carries its
// own index list.
func (l *loader) buildPrimitives(geo *document.Geometry, materialCount int) ([]asset.Handle, error) {
	polygons := geo.Polygons()
	if len(geo.ControlPoints) == 0 || len(polygons) == 0 {
		return nil, errors.Wrapf(ErrMissingGeometry, "geometry %q has no polygon vertices", geo.Name())
	}

	var (
		corners   []triangleVertex
		positions [][3]float32
	)
	flatBase := 0
	for pi, poly := range polygons {
		face := make([][3]float32, len(poly))
		for i, cp := range poly {
			if cp < 0 || int(cp) >= len(geo.ControlPoints) {
				return nil, errors.Wrapf(ErrMissingGeometry,
					"polygon %d references control point %d of %d", pi, cp, len(geo.ControlPoints))
			}
			p := geo.ControlPoints[cp]
			face[i] = [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
		}

		tris, err := l.triangulate(face)
		if err != nil {
			return nil, errors.Wrapf(err, "triangulation of polygon %d failed", pi)
		}
		for _, tri := range tris {
			for _, c := range tri {
				if c < 0 || c >= len(poly) {
					return nil, errors.Errorf(
						"triangulation of polygon %d returned vertex %d of %d", pi, c, len(poly))
				}
				corners = append(corners, triangleVertex{
					polygon:       pi,
					polygonVertex: flatBase + c,
					controlPoint:  int(poly[c]),
				})
				positions = append(positions, face[c])
			}
		}
		flatBase += len(poly)
	}

	normals, err := resolveNormals(geo, corners)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reconstruct normals")
	}
	uvs, err := resolveUVs(geo, corners)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reconstruct UVs")
	}
	if err := checkAttributeLengths(len(positions), len(uvs), len(normals)); err != nil {
		return nil, err
	}

	indices := make([]uint32, len(corners))
	for i := range indices {
		indices[i] = uint32(i)
	}

	perSlot, err := partitionBySlot(geo, corners, materialCount)
	if err != nil {
		return nil, err
	}

	// One tangent pass over the whole mesh; the per-slot primitives share
	// the result through their common vertex buffers.
	tangents, err := generateTangents(positions, normals, uvs, indices)
	if err != nil {
		return nil, errors.Wrapf(ErrTangentGeneration, "%v", err)
	}

	handles := make([]asset.Handle, 0, len(perSlot))
	for slot, slotIndices := range perSlot {
		prim := &Primitive{
			Positions: positions,
			Normals:   normals,
			UVs:       uvs,
			Tangents:  tangents,
			Indices:   slotIndices,
			Bounds:    boundsOf(positions, slotIndices),
		}
		label := primitiveLabel(geo, slot)
		handle := l.registry.Register(label, prim)
		l.scene.PrimitiveLabels[handle] = label
		handles = append(handles, handle)
		l.log.Debug("primitive ready",
			zap.String("label", label),
			zap.Int("indices", len(slotIndices)))
	}
	return handles, nil
}

func resolveNormals(geo *document.Geometry, corners []triangleVertex) ([][3]float32, error) {
	layer := geo.Normals
	if layer == nil {
		return nil, errors.Wrapf(ErrMissingGeometry, "geometry %q has no normal layer", geo.Name())
	}
	out := make([][3]float32, len(corners))
	for i, c := range corners {
		n, err := layer.Normal(c.polygon, c.polygonVertex, c.controlPoint)
		if err != nil {
			return nil, err
		}
		out[i] = [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
	}
	return out, nil
}

// resolveUVs flips V so that coordinates address a top-left image origin.
func resolveUVs(geo *document.Geometry, corners []triangleVertex) ([][2]float32, error) {
	layer := geo.UVs
	if layer == nil {
		return nil, errors.Wrapf(ErrMissingGeometry, "geometry %q has no UV layer", geo.Name())
	}
	out := make([][2]float32, len(corners))
	for i, c := range corners {
		uv, err := layer.UV(c.polygon, c.polygonVertex, c.controlPoint)
		if err != nil {
			return nil, err
		}
		out[i] = [2]float32{float32(uv[0]), 1 - float32(uv[1])}
	}
	return out, nil
}

// checkAttributeLengths guards the structural invariant that every
// triangle vertex has exactly one position, UV and normal.
func checkAttributeLengths(pos, uv, normals int) error {
	if pos != uv || pos != normals {
		return errors.Wrapf(ErrAttributeLength, "pos%d uv%d normals%d", pos, uv, normals)
	}
	return nil
}

// partitionBySlot splits the triangle vertices into per-material index
// lists. Without materials the whole mesh becomes a single primitive; with
// materials every polygon must map to a slot inside the material list.
func partitionBySlot(geo *document.Geometry, corners []triangleVertex, materialCount int) ([][]uint32, error) {
	if materialCount == 0 {
		all := make([]uint32, len(corners))
		for i := range all {
			all[i] = uint32(i)
		}
		return [][]uint32{all}, nil
	}

	layer := geo.MaterialLayer
	if layer == nil {
		return nil, errors.Wrapf(ErrMissingGeometry, "geometry %q has no material layer", geo.Name())
	}
	perSlot := make([][]uint32, materialCount)
	for i, c := range corners {
		slot, err := layer.Slot(c.polygon)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get material index of polygon %d", c.polygon)
		}
		if slot < 0 || slot >= materialCount {
			return nil, errors.Wrapf(ErrMaterialSlot, "num_materials=%d, got=%d", materialCount, slot)
		}
		perSlot[slot] = append(perSlot[slot], uint32(i))
	}
	return perSlot, nil
}

func boundsOf(positions [][3]float32, indices []uint32) Bounds {
	if len(indices) == 0 {
		return Bounds{}
	}
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, idx := range indices {
		p := positions[idx]
		for axis := 0; axis < 3; axis++ {
			if p[axis] < b.Min[axis] {
				b.Min[axis] = p[axis]
			}
			if p[axis] > b.Max[axis] {
				b.Max[axis] = p[axis]
			}
		}
	}
	return b
}
