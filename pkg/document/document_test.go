package document

import (
	"errors"
	"testing"
)

func TestVersion_Supported(t *testing.T) {
	tests := []struct {
		version Version
		want    bool
	}{
		{Version{7, 4}, true},
		{Version{7, 5}, true},
		{Version{7, 3}, false},
		{Version{7, 6}, false},
		{Version{6, 1}, false},
		{Version{8, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			if got := tt.version.Supported(); got != tt.want {
				t.Errorf("Supported() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	tests := []struct {
		version Version
		want    string
	}{
		{Version{7, 4}, "7.4"},
		{Version{7, 5}, "7.5"},
		{Version{6, 1}, "6.1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.version.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocument_AddRejectsDuplicates(t *testing.T) {
	doc := New(Version{7, 4})

	if err := doc.Add(NewModel(1, "a", ModelKindNull)); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	err := doc.Add(NewModel(1, "b", ModelKindNull))
	if !errors.Is(err, ErrDuplicateObjectID) {
		t.Errorf("second Add error = %v, want ErrDuplicateObjectID", err)
	}
}

func TestDocument_AddRejectsRootID(t *testing.T) {
	doc := New(Version{7, 4})

	err := doc.Add(NewModel(RootID, "root", ModelKindNull))
	if !errors.Is(err, ErrReservedObjectID) {
		t.Errorf("Add(id=0) error = %v, want ErrReservedObjectID", err)
	}
}

func TestDocument_RootsAndChildren(t *testing.T) {
	doc := New(Version{7, 4})
	root := NewModel(1, "root", ModelKindNull)
	limb := NewModel(2, "limb", ModelKindLimbNode)
	mesh := NewModel(3, "mesh", ModelKindMesh)
	mustAdd(t, doc, root, limb, mesh)

	doc.Connect(1, RootID)
	doc.Connect(2, 1)
	doc.Connect(3, 2)

	roots := doc.Roots()
	if len(roots) != 1 || roots[0] != root {
		t.Fatalf("Roots() = %v, want [root]", roots)
	}

	children := root.Children()
	if len(children) != 1 || children[0] != limb {
		t.Errorf("root.Children() = %v, want [limb]", children)
	}

	children = limb.Children()
	if len(children) != 1 || children[0] != mesh {
		t.Errorf("limb.Children() = %v, want [mesh]", children)
	}

	if got := mesh.Children(); len(got) != 0 {
		t.Errorf("mesh.Children() = %v, want empty", got)
	}
}

func TestDocument_RootsWithoutExplicitRootConnection(t *testing.T) {
	// A model with no model parent is a root even if it was never
	// connected to the document root id.
	doc := New(Version{7, 4})
	orphan := NewModel(5, "orphan", ModelKindMesh)
	mustAdd(t, doc, orphan)

	roots := doc.Roots()
	if len(roots) != 1 || roots[0] != orphan {
		t.Errorf("Roots() = %v, want [orphan]", roots)
	}
}

func TestDocument_DanglingConnectionsAreSkipped(t *testing.T) {
	doc := New(Version{7, 4})
	root := NewModel(1, "root", ModelKindNull)
	mustAdd(t, doc, root)

	doc.Connect(99, 1) // 99 was never added

	if got := root.Children(); len(got) != 0 {
		t.Errorf("Children() = %v, want empty for dangling id", got)
	}
}

func TestModel_GeometryAndMaterialOrder(t *testing.T) {
	doc := New(Version{7, 4})
	model := NewModel(1, "cube", ModelKindMesh)
	geo := NewGeometry(2, "cubegeo")
	red := NewMaterial(3, "red")
	blue := NewMaterial(4, "blue")
	mustAdd(t, doc, model, geo, red, blue)

	doc.Connect(2, 1)
	doc.Connect(3, 1)
	doc.Connect(4, 1)

	if got := model.Geometry(); got != geo {
		t.Errorf("Geometry() = %v, want cubegeo", got)
	}

	mats := model.Materials()
	if len(mats) != 2 || mats[0] != red || mats[1] != blue {
		t.Errorf("Materials() = %v, want [red blue] in connection order", mats)
	}
}

func TestModel_GeometryMissing(t *testing.T) {
	doc := New(Version{7, 4})
	model := NewModel(1, "empty", ModelKindNull)
	mustAdd(t, doc, model)

	if got := model.Geometry(); got != nil {
		t.Errorf("Geometry() = %v, want nil", got)
	}
}

func TestMaterial_TextureSlots(t *testing.T) {
	doc := New(Version{7, 4})
	mat := NewMaterial(1, "wood")
	tex := NewTexture(2, "wood_diffuse")
	mustAdd(t, doc, mat, tex)

	doc.ConnectProperty(2, 1, "DiffuseColor")

	if got := mat.Texture("DiffuseColor"); got != tex {
		t.Errorf("Texture(DiffuseColor) = %v, want wood_diffuse", got)
	}
	if got := mat.Texture("NormalMap"); got != nil {
		t.Errorf("Texture(NormalMap) = %v, want nil", got)
	}
}

func TestTexture_Video(t *testing.T) {
	doc := New(Version{7, 4})
	tex := NewTexture(1, "skin")
	clip := NewVideo(2, "skin_clip")
	mustAdd(t, doc, tex, clip)

	doc.Connect(2, 1)

	if got := tex.Video(); got != clip {
		t.Errorf("Video() = %v, want skin_clip", got)
	}
}

func TestTexture_VideoMissing(t *testing.T) {
	doc := New(Version{7, 4})
	tex := NewTexture(1, "bare")
	mustAdd(t, doc, tex)

	if got := tex.Video(); got != nil {
		t.Errorf("Video() = %v, want nil", got)
	}
}

func TestDocument_ObjectsKeepInsertionOrder(t *testing.T) {
	doc := New(Version{7, 4})
	a := NewModel(10, "a", ModelKindNull)
	b := NewGeometry(2, "b")
	c := NewMaterial(7, "c")
	mustAdd(t, doc, a, b, c)

	objs := doc.Objects()
	if len(objs) != 3 {
		t.Fatalf("Objects() length = %d, want 3", len(objs))
	}
	wantIDs := []ObjectID{10, 2, 7}
	for i, obj := range objs {
		if obj.ID() != wantIDs[i] {
			t.Errorf("Objects()[%d].ID() = %d, want %d", i, obj.ID(), wantIDs[i])
		}
	}
}

func TestGlobalSettings_Defaults(t *testing.T) {
	doc := New(Version{7, 4})
	if got := doc.GlobalSettings().UnitScaleFactor; got != 1 {
		t.Errorf("default UnitScaleFactor = %f, want 1", got)
	}

	doc.SetGlobalSettings(GlobalSettings{UnitScaleFactor: 2.54})
	if got := doc.GlobalSettings().UnitScaleFactor; got != 2.54 {
		t.Errorf("UnitScaleFactor = %f, want 2.54", got)
	}
}

// Helper functions for creating test data

func mustAdd(t *testing.T, doc *Document, objs ...Object) {
	t.Helper()
	for _, obj := range objs {
		if err := doc.Add(obj); err != nil {
			t.Fatalf("Add(%d) failed: %v", obj.ID(), err)
		}
	}
}
