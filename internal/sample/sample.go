// Package sample builds a small showcase document in memory, used by the
// demo subcommand and integration tests to exercise the conversion
// pipeline without an input file on disk.
package sample

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing/fstest"

	"github.com/Faultbox/fbxscene/pkg/document"
	"github.com/Faultbox/fbxscene/pkg/scene"
)

// Object ids of the showcase document.
const (
	RootModelID      document.ObjectID = 1
	CubeModelID      document.ObjectID = 10
	CubeGeoID        document.ObjectID = 11
	CrateMaterialID  document.ObjectID = 12
	CrateTextureID   document.ObjectID = 13
	CrateVideoID     document.ObjectID = 14
	TrimMaterialID   document.ObjectID = 15
	TrimTextureID    document.ObjectID = 16
	TrimVideoID      document.ObjectID = 17
	GroundModelID    document.ObjectID = 20
	GroundGeoID      document.ObjectID = 21
	GroundMaterialID document.ObjectID = 22
	RigModelID       document.ObjectID = 30
	RigTipModelID    document.ObjectID = 31
)

// trimClipPath is the external texture file the document references,
// relative to the document directory. Files serves it.
const trimClipPath = "textures/trim.tga"

// Document builds the showcase scene: a two-material crate on a tinted
// ground plane plus a meshless rig branch that conversion prunes. The
// crate mixes an embedded PNG texture with an external TGA one, and the
// whole document is authored in meter units.
func Document() *document.Document {
	doc := document.New(document.Version{Major: 7, Minor: 5})
	doc.SetGlobalSettings(document.GlobalSettings{UnitScaleFactor: 100})

	root := document.NewModel(RootModelID, "Showcase", document.ModelKindNull)
	mustAdd(doc, root)

	cube := document.NewModel(CubeModelID, "Cube", document.ModelKindMesh)
	cube.Translation = [3]float64{0, 0.5, 0}
	cube.Rotation = [3]float64{0, 30, 0}
	mustAdd(doc, cube)
	mustAdd(doc, cubeGeometry())

	crateMat := document.NewMaterial(CrateMaterialID, "CrateMat")
	crateMat.ShadingModel = document.ShadingPhong
	crateMat.DiffuseColor = [3]float64{1, 1, 1}
	crateMat.SpecularColor = [3]float64{0.3, 0.3, 0.3}
	mustAdd(doc, crateMat)

	checker := document.NewTexture(CrateTextureID, "Checker")
	mustAdd(doc, checker)
	checkerClip := document.NewVideo(CrateVideoID, "CheckerClip")
	checkerClip.RelativeFilename = "textures/checker.png"
	checkerClip.Content = checkerboard(64, 8)
	mustAdd(doc, checkerClip)

	trimMat := document.NewMaterial(TrimMaterialID, "TrimMat")
	trimMat.DiffuseColor = [3]float64{1, 1, 1}
	mustAdd(doc, trimMat)

	trim := document.NewTexture(TrimTextureID, "Trim")
	trim.WrapU = document.WrapClamp
	trim.WrapV = document.WrapClamp
	mustAdd(doc, trim)
	trimClip := document.NewVideo(TrimVideoID, "TrimClip")
	trimClip.RelativeFilename = "textures\\trim.tga"
	mustAdd(doc, trimClip)

	ground := document.NewModel(GroundModelID, "Ground", document.ModelKindMesh)
	ground.Scaling = [3]float64{8, 1, 8}
	mustAdd(doc, ground)
	mustAdd(doc, groundGeometry())

	groundMat := document.NewMaterial(GroundMaterialID, "GroundMat")
	groundMat.DiffuseColor = [3]float64{0.35, 0.45, 0.35}
	mustAdd(doc, groundMat)

	rig := document.NewModel(RigModelID, "Rig", document.ModelKindLimbNode)
	rig.Translation = [3]float64{0, 1, 0}
	mustAdd(doc, rig)
	rigTip := document.NewModel(RigTipModelID, "RigTip", document.ModelKindLimbNode)
	rigTip.Translation = [3]float64{0, 0.5, 0}
	mustAdd(doc, rigTip)

	doc.Connect(CubeModelID, RootModelID)
	doc.Connect(GroundModelID, RootModelID)
	doc.Connect(RigModelID, RootModelID)
	doc.Connect(RigTipModelID, RigModelID)

	doc.Connect(CubeGeoID, CubeModelID)
	// Connection order defines the material slots the geometry's material
	// layer refers to: 0 is the crate sides, 1 the top and bottom trim.
	doc.Connect(CrateMaterialID, CubeModelID)
	doc.Connect(TrimMaterialID, CubeModelID)
	doc.Connect(GroundGeoID, GroundModelID)
	doc.Connect(GroundMaterialID, GroundModelID)

	doc.Connect(CrateVideoID, CrateTextureID)
	doc.Connect(TrimVideoID, TrimTextureID)
	doc.ConnectProperty(CrateTextureID, CrateMaterialID, scene.SlotDiffuseColor)
	doc.ConnectProperty(TrimTextureID, TrimMaterialID, scene.SlotDiffuseColor)

	return doc
}

// Files serves the external texture files the showcase document refers
// to, rooted like the document's own directory.
func Files() fs.FS {
	return fstest.MapFS{
		trimClipPath: &fstest.MapFile{Data: stripes(32, 4)},
	}
}

// WriteFiles materializes the external texture files under dir, so a
// watched directory on disk can stand in for the document directory.
// Existing files are kept.
func WriteFiles(dir string) error {
	return fs.WalkDir(Files(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		dest := filepath.Join(dir, filepath.FromSlash(path))
		if _, err := os.Stat(dest); err == nil {
			return nil
		}
		data, err := fs.ReadFile(Files(), path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return os.WriteFile(dest, data, 0644)
	})
}

// cubeGeometry builds a unit cube of six quads with one outward normal
// per face and a full texture tile per face. The four side faces use
// material slot 0, top and bottom use slot 1.
func cubeGeometry() *document.Geometry {
	geo := document.NewGeometry(CubeGeoID, "CubeGeo")
	geo.ControlPoints = [][3]float64{
		{-0.5, -0.5, -0.5},
		{0.5, -0.5, -0.5},
		{0.5, 0.5, -0.5},
		{-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5},
		{0.5, -0.5, 0.5},
		{0.5, 0.5, 0.5},
		{-0.5, 0.5, 0.5},
	}
	geo.PolygonVertexIndex = []int32{
		0, 3, 2, ^int32(1), // back, -Z
		4, 5, 6, ^int32(7), // front, +Z
		0, 4, 7, ^int32(3), // left, -X
		1, 2, 6, ^int32(5), // right, +X
		0, 1, 5, ^int32(4), // bottom, -Y
		3, 7, 6, ^int32(2), // top, +Y
	}
	geo.Normals = &document.LayerElementNormal{
		Mapping:   document.MappingByPolygon,
		Reference: document.ReferenceDirect,
		Values: [][3]float64{
			{0, 0, -1},
			{0, 0, 1},
			{-1, 0, 0},
			{1, 0, 0},
			{0, -1, 0},
			{0, 1, 0},
		},
	}
	tile := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	uvs := make([][2]float64, 0, 24)
	for face := 0; face < 6; face++ {
		uvs = append(uvs, tile...)
	}
	geo.UVs = &document.LayerElementUV{
		Mapping:   document.MappingByPolygonVertex,
		Reference: document.ReferenceDirect,
		Values:    uvs,
	}
	geo.MaterialLayer = &document.LayerElementMaterial{
		Mapping: document.MappingByPolygon,
		Indexes: []int32{0, 0, 0, 0, 1, 1},
	}
	return geo
}

// groundGeometry builds a single upward-facing quad. The ground model
// stretches it to size through its scaling.
func groundGeometry() *document.Geometry {
	geo := document.NewGeometry(GroundGeoID, "GroundGeo")
	geo.ControlPoints = [][3]float64{
		{-0.5, 0, -0.5},
		{0.5, 0, -0.5},
		{0.5, 0, 0.5},
		{-0.5, 0, 0.5},
	}
	geo.PolygonVertexIndex = []int32{0, 3, 2, ^int32(1)}
	geo.Normals = &document.LayerElementNormal{
		Mapping:   document.MappingAllSame,
		Reference: document.ReferenceDirect,
		Values:    [][3]float64{{0, 1, 0}},
	}
	geo.UVs = &document.LayerElementUV{
		Mapping:   document.MappingByControlPoint,
		Reference: document.ReferenceDirect,
		Values:    [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	}
	geo.MaterialLayer = &document.LayerElementMaterial{
		Mapping: document.MappingAllSame,
		Indexes: []int32{0},
	}
	return geo
}

// checkerboard renders a cells-by-cells checker pattern into a PNG of the
// given pixel size.
func checkerboard(size, cells int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	dark := color.RGBA{R: 64, G: 64, B: 64, A: 255}
	cell := size / cells
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// stripes renders horizontal bands into an uncompressed 24-bit TGA of the
// given pixel size, written top to bottom.
func stripes(size, bands int) []byte {
	header := make([]byte, 18)
	header[2] = 2 // uncompressed true-color
	binary.LittleEndian.PutUint16(header[12:14], uint16(size))
	binary.LittleEndian.PutUint16(header[14:16], uint16(size))
	header[16] = 24
	header[17] = 0x20 // top-to-bottom row order

	buf := bytes.NewBuffer(header)
	band := size / bands
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (y/band)%2 == 0 {
				buf.Write([]byte{40, 60, 180}) // warm brown, BGR
			} else {
				buf.Write([]byte{30, 30, 30}) // near black
			}
		}
	}
	return buf.Bytes()
}

func mustAdd(doc *document.Document, obj document.Object) {
	if err := doc.Add(obj); err != nil {
		panic(err)
	}
}
